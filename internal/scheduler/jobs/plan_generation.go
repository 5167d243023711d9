package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/drip/internal/plan"
	"github.com/wonny/drip/internal/store"
	"github.com/wonny/drip/pkg/logger"
)

// PlanGenerationJob generates a fresh investment plan on the first of each
// month, after the morning market refresh
type PlanGenerationJob struct {
	service *plan.Service
	logger  *logger.Logger
}

// NewPlanGenerationJob creates a new plan generation job
func NewPlanGenerationJob(service *plan.Service, log *logger.Logger) *PlanGenerationJob {
	return &PlanGenerationJob{
		service: service,
		logger:  log,
	}
}

// Name returns the job name
func (j *PlanGenerationJob) Name() string {
	return "plan_generation"
}

// Schedule returns the cron schedule (9 AM on the 1st, with seconds)
func (j *PlanGenerationJob) Schedule() string {
	return "0 0 9 1 * *"
}

// Run generates and persists a new plan
func (j *PlanGenerationJob) Run(ctx context.Context) error {
	generated, err := j.service.GeneratePlan(ctx)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, plan.ErrNoValidAssets) {
		j.logger.Info("Plan generation skipped, no usable configuration")
		return nil
	}
	if err != nil {
		return fmt.Errorf("plan generation: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"plan_id":  generated.ID,
		"assets":   len(generated.Recommendations),
		"warnings": len(generated.Warnings),
	}).Info("Scheduled plan generated")
	return nil
}
