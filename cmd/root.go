package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"eyewear.GO/config"
	"eyewear.GO/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "eyewear",
	Short: "Eyewear storefront catalog server and tools",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()
		logger.Init(logger.DefaultConfig())
	},
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
