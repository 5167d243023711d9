package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/drip/internal/api"
	"github.com/wonny/drip/internal/api/handlers"
	"github.com/wonny/drip/internal/scheduler"
	"github.com/wonny/drip/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버와 스케줄러를 시작합니다.

Endpoints:
  GET  /health                    - Health check
  GET  /api/config                - 설정 조회
  POST /api/config                - 설정 저장
  GET  /api/market-data           - 시세 스냅샷 전체 조회
  GET  /api/market-data/{code}    - 종목 스냅샷 조회
  POST /api/market-data/refresh   - 시세 갱신 트리거
  GET  /api/scores                - 점수 조회
  GET  /api/trend/{code}          - 점수 추세 조회
  GET  /api/plans                 - 계획 이력 조회
  GET  /api/plans/latest          - 최신 계획 조회
  POST /api/plans/generate        - 계획 생성 트리거

Example:
  go run ./cmd/drip api
  go run ./cmd/drip api --port 8087`,
	RunE: runAPIServer,
}

var (
	apiPort     string
	noScheduler bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
	apiCmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "스케줄러 없이 API만 실행")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== drip API Server ===")

	ctx := context.Background()
	a, closeApp, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer closeApp()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	configHandler := handlers.NewConfigHandler(a.configs, a.log)
	marketHandler := handlers.NewMarketHandler(a.snapshots, a.service, a.log)
	scoreHandler := handlers.NewScoreHandler(a.snapshots, a.log)
	trendHandler := handlers.NewTrendHandler(a.analyzer, a.log)
	planHandler := handlers.NewPlanHandler(a.service, a.plans, a.log)

	router := api.NewRouter(configHandler, marketHandler, scoreHandler, trendHandler, planHandler, a.log)
	server := api.New(a.cfg, a.log, router)

	var sched *scheduler.Scheduler
	if !noScheduler {
		sched = scheduler.New(a.log)
		if err := sched.AddJob(jobs.NewMarketRefreshJob(a.service, a.log)); err != nil {
			return err
		}
		if err := sched.AddJob(jobs.NewPlanGenerationJob(a.service, a.log)); err != nil {
			return err
		}
		sched.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
