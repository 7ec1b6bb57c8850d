package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shakyaa89/MoneyTracker/internal/config"
	"github.com/shakyaa89/MoneyTracker/internal/server"
)

func newServeCommand() *cobra.Command {
	var configPath string
	var inMemory bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the finance document server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath, inMemory)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "moneytracker.yaml", "path to config file")
	cmd.Flags().BoolVar(&inMemory, "memory", false, "keep data in memory instead of MongoDB")
	return cmd
}

// loadConfig reads .env, the config file (falling back to defaults when the
// file is absent), and environment overrides, in that order.
func loadConfig(path string) *config.Config {
	_ = godotenv.Load()
	cfg, err := config.Load(path)
	if err != nil {
		cfg = config.Default()
	}
	config.FromEnv(cfg)
	return cfg
}

func runServe(ctx context.Context, configPath string, inMemory bool) error {
	cfg := loadConfig(configPath)

	var repo server.Repository
	if inMemory {
		repo = server.NewMemoryRepository()
		log.Println("Using in-memory storage; data is lost on exit")
	} else {
		client, err := mongo.Connect(options.Client().ApplyURI(cfg.Server.MongoURI))
		if err != nil {
			return fmt.Errorf("connecting to MongoDB: %w", err)
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		mongoRepo := server.NewMongoRepository(client, cfg.Server.Database)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = mongoRepo.Ping(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("pinging MongoDB: %w", err)
		}
		log.Println("Connected to MongoDB")
		repo = mongoRepo
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(repo).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("API listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
