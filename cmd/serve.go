package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/circadianhq/circadian/internal/config"
	"github.com/circadianhq/circadian/internal/logger"
	"github.com/circadianhq/circadian/internal/server"
	"github.com/circadianhq/circadian/internal/storage/bolt"
	"github.com/spf13/cobra"
)

var logJSON bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `The "serve" command runs the circadian tracker API server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startServer()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&logJSON, "log-json", false, "emit JSON logs")
	rootCmd.AddCommand(serveCmd)
}

func startServer() error {
	if logJSON {
		logger.InitJSON(slog.LevelInfo)
	} else {
		logger.Init(slog.LevelInfo)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	store, err := bolt.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("error opening db %s: %w", cfg.DBPath, err)
	}
	defer store.Close()

	s := server.New(store, cfg)
	if cfg.AuthEnabled {
		providers, cookie, err := server.ConfigureOIDCProviders(cfg)
		if err != nil {
			return fmt.Errorf("error configuring auth: %w", err)
		}
		s.WithAuth(providers, cookie)
	}

	logger.Info("Starting server", "addr", cfg.ListenAddr, "auth_enabled", cfg.AuthEnabled)
	if err := http.ListenAndServe(cfg.ListenAddr, s.Router()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
