package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/waylinehq/wayline"
	httpAdapter "github.com/waylinehq/wayline/pkg/adapters/http"
	"github.com/waylinehq/wayline/pkg/adapters/memory"
	redisAdapter "github.com/waylinehq/wayline/pkg/adapters/redis"
	"github.com/waylinehq/wayline/pkg/observability"
	"github.com/waylinehq/wayline/pkg/persistence/middleware"
	"github.com/waylinehq/wayline/pkg/planfile"
	"github.com/waylinehq/wayline/pkg/ports"
	"github.com/waylinehq/wayline/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the journey HTTP server",
	Long:  `Compiles the plan file and serves its journeys over a JSON API.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for journey storage (empty = in-memory)")
	serveCmd.Flags().Int("redis-db", 0, "Redis database number")
	serveCmd.Flags().Duration("ttl", 0, "Journey expiration (0 = never)")
	serveCmd.Flags().String("encryption-key", "", "Hex-encoded 32-byte key for journey encryption at rest")
}

func runServe(cmd *cobra.Command) error {
	planPath, _ := cmd.Flags().GetString("plan")
	addr, _ := cmd.Flags().GetString("addr")
	redisAddr, _ := cmd.Flags().GetString("redis")
	redisDB, _ := cmd.Flags().GetInt("redis-db")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	keyHex, _ := cmd.Flags().GetString("encryption-key")

	doc, p, specs, err := planfile.Load(planPath)
	if err != nil {
		// A plan that does not compile must never serve.
		return fmt.Errorf("plan %s: %w", planPath, err)
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	eng := wayline.New(p,
		wayline.WithFieldSpecs(specs),
		wayline.WithLogger(slog.Default()),
		wayline.WithHooks(wayline.Hooks{
			OnDeadEnd:     metrics.DeadEnd,
			OnRailsDenied: func(origin, _ string) { metrics.RailsDenied(origin) },
			OnSkip:        func(waypoint, _ string) { metrics.Skip(waypoint) },
		}),
	)

	var store ports.ContextStore
	var sessionOpts []session.Option
	if redisAddr != "" {
		redisStore := redisAdapter.New(redisAddr, os.Getenv("WAYLINE_REDIS_PASSWORD"), redisDB, redisAdapter.WithTTL(ttl))
		defer redisStore.Close()
		store = redisStore
		sessionOpts = append(sessionOpts,
			session.WithLocker(redisAdapter.NewLocker(redisStore.Client(), "wayline:journey:")),
		)
	} else {
		store = memory.NewStore()
	}

	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return fmt.Errorf("encryption-key must be 64 hex characters (32 bytes)")
		}
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
	}

	sessions := session.NewManager(store, append(sessionOpts, session.WithLogger(slog.Default()))...)

	handler := httpAdapter.NewHandler(eng, sessions,
		map[string]http.Handler{
			"/metrics": promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		},
		httpAdapter.WithLogger(slog.Default()),
		httpAdapter.WithMetrics(metrics),
	)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("starting wayline server", "addr", srv.Addr, "plan", doc.Name)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slog.Info("starting shutdown", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		slog.Info("wayline server stopped")
	}
	return nil
}
