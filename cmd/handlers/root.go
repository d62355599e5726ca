package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ecocubano/internal/config"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ecocubano",
		Short: "EcoCubano analyzes news-comment exports from Cubadebate.",
		Long: `EcoCubano loads a JSON export of news articles and their reader comments
and derives activity, narrative and sentiment signals from them:
daily and weekday activity, peak days, PRO/ANTI/NEUTRO stance,
slogan frequency, repeated comments, word clouds and more.

The 'analyze' command prints a full report; 'serve' exposes every
analysis as a JSON API for a dashboard frontend.`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ecocubano.yaml)")

	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewBlurbCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}
