package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boscoin.io/benor/cmd/benor/common"
	benorcommon "boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/node/supervisor"
	"boscoin.io/benor/lib/storage"
)

var (
	flagHistoryStorage string = benorcommon.GetENVValue("BENOR_STORAGE", "")
	flagHistoryOutput  string = "prettyjson"
	flagHistoryLimit   uint64 = 10
)

var historyCmd *cobra.Command

func init() {
	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Print the reports of the last simulations",
		Run: func(c *cobra.Command, args []string) {
			if len(flagHistoryStorage) < 1 {
				common.PrintFlagsError(c, "--storage", fmt.Errorf("storage is missing"))
			}
			config, err := storage.NewConfigFromString(flagHistoryStorage)
			if err != nil {
				common.PrintFlagsError(c, "--storage", err)
			}
			if _, ok := common.DefaultEncodes[flagHistoryOutput]; !ok {
				common.PrintFlagsError(c, "--output", fmt.Errorf("unknown output format, %q", flagHistoryOutput))
			}

			reports, err := loadHistory(config, flagHistoryLimit)
			if err != nil {
				common.PrintError(c, err)
			}

			if err := common.DefaultEncodes[flagHistoryOutput](reports, os.Stdout); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	historyCmd.Flags().StringVar(&flagHistoryStorage, "storage", flagHistoryStorage, "storage of the reports, like 'file:///tmp/benor'")
	historyCmd.Flags().StringVar(&flagHistoryOutput, "output", flagHistoryOutput, "output format, {json, prettyjson, yaml}")
	historyCmd.Flags().Uint64Var(&flagHistoryLimit, "limit", flagHistoryLimit, "number of reports; 0 prints every report")

	rootCmd.AddCommand(historyCmd)
}

func loadHistory(config *storage.Config, limit uint64) ([]supervisor.Report, error) {
	st, err := storage.NewStorage(config)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	return supervisor.LoadReports(st, limit)
}
