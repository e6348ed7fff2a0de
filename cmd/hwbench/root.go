package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"hwbench/internal/config"
	"hwbench/internal/telemetry"
)

var exit = os.Exit
var cfgFile string

// rootCmd runs the full suite when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "hwbench",
	Short: "Quick hardware benchmark",
	Long: `hwbench measures single-thread integer and floating-point throughput,
multi-thread scaling, memory bandwidth across working-set sizes and
memory latency, then condenses them into one geometric-mean score.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'hwbench --help' for usage.")
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./hwbench.yaml)")
	flags.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	flags.String("log-file", "", "Also append JSON logs to this file")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address (after the suite, or during stress)")

	bindFlags(flags, map[string]string{
		"verbose":      "verbose",
		"log_file":     "log-file",
		"metrics_file": "metrics-file",
		"metrics_addr": "metrics-addr",
	})

	opts := &runOptions{}
	addRunFlags(rootCmd, opts)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runSuite(cmd, opts)
	}

	rootCmd.AddCommand(newRunCmd(), newInfoCmd(), newStressCmd(), newConfigCmd())
}

// bindFlags binds config keys to flags so flags override file and env.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

// initConfig reads the config file and HWBENCH_* variables, validates
// them and sets up logging.
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
		return
	}

	if err := config.ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
		return
	}

	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
}
