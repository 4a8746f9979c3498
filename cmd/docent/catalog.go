package main

import (
	"fmt"
	"os"

	"github.com/aretw0/docent/pkg/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the exhibit question bank",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exhibits and their questions",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig(cmd)
		cat := catalog.LoadOrEmpty(cfg.Catalog.Path, logger)
		if cat.Len() == 0 {
			fmt.Println("No exhibits found.")
			return
		}

		verbose, _ := cmd.Flags().GetBool("questions")
		for _, name := range cat.Names() {
			ex, _ := cat.Lookup(name)
			fmt.Printf("- %s (%d questions)\n", name, len(ex.Questions))
			if !verbose {
				continue
			}
			for _, q := range ex.Questions {
				fmt.Printf("    %s: %s\n", q.ID, q.Text)
			}
		}
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a question bank file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig(cmd)
		path := cfg.Catalog.Path
		if len(args) > 0 {
			path = args[0]
		}

		cat, err := catalog.Load(path, catalog.WithLogger(logger))
		if err != nil {
			fmt.Printf("❌ Invalid catalog %s: %v\n", path, err)
			os.Exit(1)
		}

		var empty []string
		for _, name := range cat.Names() {
			if ex, _ := cat.Lookup(name); len(ex.Questions) == 0 {
				empty = append(empty, name)
			}
		}
		fmt.Printf("✅ %s: %d exhibits\n", path, cat.Len())
		for _, name := range empty {
			fmt.Printf("⚠️  %s has no questions\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogListCmd.Flags().BoolP("questions", "q", false, "Print every question")
}
