package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	docenthttp "github.com/aretw0/docent/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the kiosk HTTP server",
	Long:  `Starts the docent engine behind the kiosk JSON API (/start, /chat, /stt, /tts).`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig(cmd)
		if cmd.Flags().Changed("port") {
			cfg.Listen.Port, _ = cmd.Flags().GetInt("port")
		}

		app := buildApp(cmd.Context(), cfg, logger)
		defer app.Close()

		opts := []docenthttp.Option{docenthttp.WithLogger(logger)}
		if app.Transcriber != nil {
			opts = append(opts, docenthttp.WithTranscriber(app.Transcriber))
		}
		if app.Synthesizer != nil {
			opts = append(opts, docenthttp.WithSynthesizer(app.Synthesizer))
		}
		if app.Registry != nil {
			opts = append(opts, docenthttp.WithGatherer(app.Registry))
		}

		srv := &http.Server{
			Addr:              cfg.Listen.Addr(),
			Handler:           docenthttp.NewHandler(app.Engine, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting docent server",
				"addr", srv.Addr,
				"exhibits", app.Catalog.Len(),
				"max_turns", cfg.Conversation.MaxTurns,
				"store", cfg.Store.Backend,
			)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			logger.Error("Server error", "error", err)
			app.Close()
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			logger.Info("Docent server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8000, "Port to listen on (overrides listen.port)")
}
