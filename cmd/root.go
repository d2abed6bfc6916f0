/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/streaming-stats/internal/analysis"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "streaming-stats <history.json>",
	Short: "Computes listening statistics from a streaming history export",
	Long: `Reads a streaming history export (a JSON list of play events) and prints
totals, listening patterns, behavior rates, sessions, top content and daily
trends as a single document.`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := statsConfigFromViper()
		if err != nil {
			return err
		}
		// Usage is only useful for argument errors.
		cmd.SilenceUsage = true
		return runStats(cmd.OutOrStdout(), args[0], config)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.streaming-stats.yaml)")

	var format string
	rootCmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml or table")
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))

	var output string
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to this file instead of stdout")
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))

	var sessionGap string
	rootCmd.Flags().StringVar(&sessionGap, "session-gap", analysis.DefaultSessionGap.String(), "Inactivity after which a new listening session starts (e.g., 30m)")
	viper.BindPFlag("session-gap", rootCmd.Flags().Lookup("session-gap"))

	var top int
	rootCmd.Flags().IntVar(&top, "top", analysis.DefaultTopN, "Number of entries in each top content ranking")
	viper.BindPFlag("top", rootCmd.Flags().Lookup("top"))

	var window int
	rootCmd.Flags().IntVar(&window, "window", analysis.DefaultRollingWindow, "Number of active days in the rolling average")
	viper.BindPFlag("window", rootCmd.Flags().Lookup("window"))

	var timezone string
	rootCmd.Flags().StringVar(&timezone, "timezone", "", "IANA time zone to convert timestamps into (default keeps the offset in the input)")
	viper.BindPFlag("timezone", rootCmd.Flags().Lookup("timezone"))

	var period string
	rootCmd.Flags().StringVar(&period, "period", "", "Only analyze this period: yyyy[-mm[-dd]] or start,end")
	viper.BindPFlag("period", rootCmd.Flags().Lookup("period"))

	var verbose bool
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print progress to stderr")
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Values from a .env file in the working directory become ENV variables.
	// Not having one is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".streaming-stats" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".streaming-stats")
	}

	// STREAMING_STATS_SESSION_GAP=45m etc.
	viper.SetEnvPrefix("streaming_stats")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func statsConfigFromViper() (StatsConfig, error) {
	gapString := viper.GetString("session-gap")
	gap, err := time.ParseDuration(gapString)
	if err != nil {
		return StatsConfig{}, fmt.Errorf("--session-gap: %w", err)
	}
	if gap <= 0 {
		return StatsConfig{}, fmt.Errorf("--session-gap must be positive, got %q", gapString)
	}

	format := strings.ToLower(viper.GetString("format"))
	switch format {
	case "json", "yaml", "table":
	default:
		return StatsConfig{}, fmt.Errorf("--format: expected json, yaml or table, got %q", format)
	}

	config := StatsConfig{
		Format:     format,
		Output:     viper.GetString("output"),
		SessionGap: gap,
		TopN:       viper.GetInt("top"),
		Window:     viper.GetInt("window"),
		Timezone:   viper.GetString("timezone"),
		Period:     viper.GetString("period"),
		Verbose:    viper.GetBool("verbose"),
	}
	if config.TopN <= 0 {
		return StatsConfig{}, fmt.Errorf("--top must be positive, got %d", config.TopN)
	}
	if config.Window <= 0 {
		return StatsConfig{}, fmt.Errorf("--window must be positive, got %d", config.Window)
	}
	return config, nil
}
