package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blogoto/blogoto/internal/adapters/driven/storage/sqlite"
	"github.com/blogoto/blogoto/internal/api"
	"github.com/blogoto/blogoto/internal/config"
	"github.com/blogoto/blogoto/internal/connectors/google"
	"github.com/blogoto/blogoto/internal/connectors/google/drive"
	"github.com/blogoto/blogoto/internal/core/services"
	"github.com/blogoto/blogoto/internal/logger"
	"github.com/blogoto/blogoto/internal/metrics"
	htmlsanitiser "github.com/blogoto/blogoto/internal/sanitiser/html"
)

const shutdownTimeout = 15 * time.Second

var (
	serveAddr          string
	serveDataDir       string
	serveRenewInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the blog service",
	Long: `Starts the HTTP server: the OAuth endpoints, the Drive webhook, and
the public read API. Also runs the daily watch channel renewal loop.

Configuration comes from the environment:
  GOOGLE_CLIENT_ID        OAuth client ID        (required)
  GOOGLE_CLIENT_SECRET    OAuth client secret    (required)
  GOOGLE_REDIRECT_URI     OAuth callback URL     (required)
  GOOGLE_DRIVE_FOLDER_ID  Drive folder to watch  (required)
  BLOG_LISTEN_ADDR        HTTP bind address
  BLOG_DATA_DIR           SQLite data directory
  BLOG_RENEW_INTERVAL     Watch renewal period

Flags override the corresponding environment variables.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP bind address")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "SQLite data directory")
	serveCmd.Flags().DurationVar(&serveRenewInterval, "renew-interval", 0, "watch renewal period")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}
	if serveDataDir != "" {
		cfg.DataDir = serveDataDir
	}
	if serveRenewInterval > 0 {
		cfg.RenewInterval = serveRenewInterval
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()
	logger.Info("using database at %s", store.Path())

	authoriser := google.NewAuthoriser(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURI)
	factory := drive.NewFactory(authoriser, store.CredentialStore())
	exporter := services.NewExporter(htmlsanitiser.New())
	m := metrics.NewMetrics("blogoto")

	orchestrator := services.NewSyncOrchestrator(
		authoriser,
		store.CredentialStore(),
		store.PostStore(),
		factory,
		exporter,
		m,
		cfg.WebhookAddress(),
		cfg.FolderID,
	)

	posts := services.NewPostService(store.PostStore())
	server := api.NewServer(orchestrator, posts, m)
	renewer := services.NewRenewer(orchestrator, cfg.RenewInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", cfg.ListenAddr)
		errCh <- server.Start(cfg.ListenAddr)
	}()
	go func() {
		if err := renewer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("renewal loop: %v", err)
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		cmd.Println("Shutting down...")
	}

	renewer.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
