// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dataqa/internal/metrics"
	"github.com/pdiddy/dataqa/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question pipeline over HTTP",
	Long: `Serve starts an HTTP server exposing the pipeline at POST /chat. The
request body is {"question": "<text>"} and the response is
{"answer": "<text>"}; logical failures come back as answer text with
HTTP 200. Prometheus metrics are exposed at GET /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		metrics.Init()
		srv := server.New(newPipeline(cfg, os.Stderr))

		go func() {
			if err := srv.Listen(cfg.Server.Addr); err != nil {
				log.Printf("Server error: %v", err)
			}
		}()
		log.Printf("Server started on %s", cfg.Server.Addr)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			return err
		}
		log.Println("Server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8000)")

	rootCmd.AddCommand(serveCmd)
}
