package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagAddress string
	flagTerm    string
	flagRadius  int
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "lethimcook",
	Short: "TUI restaurant finder for Singapore",
	Long: "lethimcook searches Foursquare, Google Places and OpenStreetMap at once,\n" +
		"merges the results and ranks nearby restaurants by how well they match\n" +
		"what you are craving.",
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagAddress, "address", "", "pre-fill the search address")
	rootCmd.Flags().StringVar(&flagTerm, "term", "", "pre-fill the craving, e.g. sushi")
	rootCmd.Flags().IntVar(&flagRadius, "radius", 0, "pre-fill the search radius in km")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lethimcook %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
