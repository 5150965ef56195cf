package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "usintctl",
	Short: "Usint observation-catalog maintenance service",
	Long: `usintctl operates the Usint service: the HTTP API for reviewing,
editing, approving, and scheduling observation parameter records, plus the
database and account maintenance commands that go with it.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
