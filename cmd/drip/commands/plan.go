package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/drip/internal/contracts"
)

// planCmd generates an investment plan and prints it
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "투자 계획 생성",
	Long: `시세를 갱신하고 투자 계획을 생성해 저장합니다.

Example:
  go run ./cmd/drip plan
  go run ./cmd/drip plan --latest
  go run ./cmd/drip plan --json`,
	RunE: runPlan,
}

var (
	planLatest bool
	planJSON   bool
)

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().BoolVar(&planLatest, "latest", false, "생성하지 않고 최신 계획만 출력")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "JSON으로 출력")
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, closeApp, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer closeApp()

	var result *contracts.InvestmentPlan
	if planLatest {
		result, err = a.service.LatestPlan(ctx)
	} else {
		result, err = a.service.GeneratePlan(ctx)
	}
	if err != nil {
		return err
	}

	if planJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printPlan(result)
	return nil
}

func printPlan(p *contracts.InvestmentPlan) {
	fmt.Printf("Plan %s generated at %s\n", p.ID, p.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Printf("  budget=%.2f scheduled=%.2f buffer_used=%.2f/%.2f\n",
		p.TotalMonthlyAmount, p.ActualInvestmentAmount, p.BufferPoolUsage, p.BufferAmount)

	for _, rec := range p.Recommendations {
		fmt.Printf("  %-12s %-9s x%.2f single=%.2f monthly=%.2f",
			rec.Asset.Code, rec.Frequency, rec.FrequencyFactor,
			rec.SingleAmount, rec.MonthlyAmount)
		if rec.SpecialCondition != contracts.ConditionNone {
			fmt.Printf(" [%s]", rec.SpecialCondition)
		}
		fmt.Println()
		if len(rec.Dates) > 0 {
			fmt.Printf("               dates: %v\n", rec.Dates)
		}
	}

	for _, w := range p.Warnings {
		fmt.Printf("  ! %s\n", w)
	}
}
