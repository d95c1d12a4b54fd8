package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsie/internal/ai"
	"newsie/internal/httpapi"
	"newsie/internal/redisclient"
	"newsie/internal/session"
	"newsie/internal/websearch"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the newsletter web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		timeout, err := time.ParseDuration(cfg.OpenAI.Timeout)
		if err != nil {
			return err
		}
		gen := ai.NewOpenAI(ai.Config{
			Model:     cfg.OpenAI.Model,
			BaseURL:   cfg.OpenAI.BaseURL,
			MaxTokens: cfg.OpenAI.MaxTokens,
			Timeout:   timeout,
		})

		var search session.Searcher
		if cfg.Search.Enabled && cfg.Search.BaseURL != "" {
			search = websearch.NewClient(cfg.Search.BaseURL, cfg.Search.MaxResults)
			slog.Info("serve: search augmenter enabled", "base_url", cfg.Search.BaseURL)
		}

		var store session.Store
		if cfg.Redis.Addr != "" {
			ttl, err := time.ParseDuration(cfg.Redis.SessionTTL)
			if err != nil {
				return err
			}
			rdb := redisclient.New(cfg.Redis)
			defer rdb.Close()
			store = session.NewRedisStore(rdb, ttl)
			slog.Info("serve: using redis session store", "addr", cfg.Redis.Addr)
		} else {
			store = session.NewMemoryStore()
			slog.Info("serve: using in-memory session store")
		}

		ctrl := session.NewController(gen, search, store, defaultBrand(cfg), cfg.OpenAI.APIKey)
		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: httpapi.New(ctrl).Routes(),
		}

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("serve: received signal, shutting down", "signal", s.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()

		slog.Info("serve: listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
