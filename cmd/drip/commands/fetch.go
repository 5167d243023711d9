package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// fetchCmd refreshes market data for every configured asset
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "시세 스냅샷 갱신",
	Long: `설정된 모든 자산의 시세와 지표 스냅샷을 갱신합니다.

Example:
  go run ./cmd/drip fetch`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, closeApp, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer closeApp()

	snapshots, err := a.service.Refresh(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Refreshed %d snapshot(s)\n", len(snapshots))
	for code, s := range snapshots {
		if s.Price != nil {
			fmt.Printf("  %-12s price=%.2f\n", code, *s.Price)
		} else {
			fmt.Printf("  %-12s price=n/a\n", code)
		}
	}
	return nil
}
