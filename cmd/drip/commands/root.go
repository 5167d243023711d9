package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "drip",
	Short: "drip - 적립식 투자 계획 엔진",
	Long: `drip Unified CLI

시장 점수 기반 적립식(DCA) 투자 계획 백엔드.
시세 수집, 점수 계산, 전략 선택, 투자 계획 생성까지.

Usage:
  go run ./cmd/drip [command]

Examples:
  go run ./cmd/drip api
  go run ./cmd/drip fetch
  go run ./cmd/drip score
  go run ./cmd/drip plan`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
