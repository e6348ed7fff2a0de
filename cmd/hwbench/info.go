package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show system information without benchmarking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := newSystemReaderFunc(slog.Default()).Collect(commandContext(cmd))
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			fmt.Fprintf(out, "OS:    %s\n", info.OS)
			fmt.Fprintf(out, "CPU:   %s\n", info.CPU)
			fmt.Fprintf(out, "Cores: %d\n", info.LogicalCores)
			fmt.Fprintf(out, "RAM:   %d MB (%d MB used)\n", info.RAMTotalMB, info.RAMUsedMB)
			if info.TemperatureC < 0 {
				fmt.Fprintln(out, "Temp:  n/a")
			} else {
				fmt.Fprintf(out, "Temp:  %.1f C\n", info.TemperatureC)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
