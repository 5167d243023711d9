package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/drip/internal/scoring"
	"github.com/wonny/drip/pkg/logger"
)

// scoreCmd scores the stored snapshots and prints the result
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "저장된 스냅샷 점수 계산",
	Long: `저장된 시세 스냅샷으로 시장 점수를 계산해 출력합니다.

Example:
  go run ./cmd/drip score`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, closeApp, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer closeApp()

	snapshots, err := a.snapshots.All(ctx)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		fmt.Println("No snapshots stored yet; run `drip fetch` first")
		return nil
	}

	// Advisory read: a fresh engine keeps the planner's drawdown memory clean
	engine := scoring.NewEngine(scoring.NewPriceHistory(), logger.NewNop())

	fmt.Printf("%-12s %7s %6s %6s %6s %6s\n", "CODE", "TOTAL", "VAL", "TRD", "VOL", "EVT")
	for code, snapshot := range snapshots {
		result := engine.Score(snapshot)
		fmt.Printf("%-12s %7.1f %6.1f %6.1f %6.1f %6.1f\n",
			code, result.Total, result.Valuation, result.Trend,
			result.Volatility, result.SpecialEvent)
	}
	return nil
}
