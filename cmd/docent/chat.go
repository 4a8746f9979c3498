package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/docent/internal/presentation/tui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the docent in the terminal",
	Long: `Runs a single visitor conversation on stdin/stdout, exactly as the kiosk
would drive it. Type /quit to leave.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig(cmd)
		debug, _ := cmd.Flags().GetBool("debug")
		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app := buildApp(ctx, cfg, logger)
		defer app.Close()

		tui.PrintBanner(os.Stdout)
		chat := tui.NewChat(app.Engine, os.Stdin, os.Stdout,
			tui.WithRenderer(tui.RendererFor(os.Stdout)),
			tui.WithDebug(debug),
		)
		if err := chat.Run(ctx, sessionID); err != nil && ctx.Err() == nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().Bool("debug", false, "Print the step and exhibit after every reply")
	chatCmd.Flags().String("session", "", "Session id to use (random when empty)")
}
