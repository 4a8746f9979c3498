package main

import (
	"fmt"

	"github.com/aretw0/docent"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of docent",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docent version %s\n", docent.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
