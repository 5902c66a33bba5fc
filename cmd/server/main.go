package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/snapseek/api/internal/config"
	"github.com/snapseek/api/internal/database"
	"github.com/snapseek/api/internal/server"
	"github.com/snapseek/api/internal/session"
	"github.com/snapseek/api/internal/unsplash"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "snapseek",
		Short: "Authenticated image-search API server",
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
			slog.SetDefault(log)

			db, err := database.Init(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("database init: %w", err)
			}
			defer database.Close(db)

			if err := database.RunMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}

			var sessions session.Store
			if cfg.RedisURL != "" {
				redisStore, err := session.NewRedisStore(cfg.RedisURL)
				if err != nil {
					return fmt.Errorf("redis session store: %w", err)
				}
				defer redisStore.Close()
				sessions = redisStore
				log.Info("session store: redis")
			} else {
				memStore := session.NewMemoryStore()
				defer memStore.Close()
				sessions = memStore
				log.Info("session store: in-memory")
			}

			srv, err := server.New(cfg, db, sessions, unsplash.NewClient(cfg.UnsplashAccessKey), log)
			if err != nil {
				return fmt.Errorf("server init: %w", err)
			}

			return srv.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			slog.SetDefault(config.NewLogger(cfg.LogLevel, cfg.LogFormat))

			db, err := database.Init(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("database init: %w", err)
			}
			defer database.Close(db)

			return database.RunMigrations(db)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate development seed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			slog.SetDefault(config.NewLogger(cfg.LogLevel, cfg.LogFormat))

			if cfg.Production() {
				return fmt.Errorf("refusing to seed a production database")
			}

			db, err := database.Init(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("database init: %w", err)
			}
			defer database.Close(db)

			if err := database.RunMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}

			return database.SeedDevData(db)
		},
	}
}
