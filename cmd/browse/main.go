// Command browse is an interactive pager over the Foodgram recipe list.
//
// Usage:
//
//	browse [-env .env] [-watch] [-filter-author ID] [-favorited] [-in-cart]
//
// Configuration is read from FOODGRAM_* environment variables, optionally from
// a .env file and the YAML or TOML file named by FOODGRAM_CONFIG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"foodgram-client/internal/common/pagination"
	"foodgram-client/internal/config"
	"foodgram-client/internal/domain/entity"
	"foodgram-client/internal/infra/foodgramapi"
	"foodgram-client/internal/infra/health"
	"foodgram-client/internal/observability/logging"
	"foodgram-client/internal/observability/tracing"
	pkgconfig "foodgram-client/internal/pkg/config"
	"foodgram-client/internal/resilience/circuitbreaker"
	"foodgram-client/internal/resilience/retry"
	"foodgram-client/internal/usecase/recipes"
)

type options struct {
	envFile   string
	watch     bool
	author    int64
	favorited bool
	inCart    bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	fs.StringVar(&opts.envFile, "env", ".env", "dotenv file to load before reading the environment")
	fs.BoolVar(&opts.watch, "watch", false, "refresh the current page on FOODGRAM_REFRESH_SCHEDULE")
	fs.Int64Var(&opts.author, "filter-author", 0, "only show recipes by this author ID")
	fs.BoolVar(&opts.favorited, "favorited", false, "only show favorited recipes")
	fs.BoolVar(&opts.inCart, "in-cart", false, "only show recipes in the shopping cart")
	err := fs.Parse(args)
	return opts, err
}

var configMetrics = pkgconfig.NewConfigMetrics("foodgram_client", nil)

// stdio is the terminal the pager talks to.
type stdio struct {
	in  io.Reader
	out io.Writer
}

func main() {
	os.Exit(realMain(os.Args[1:], stdio{in: os.Stdin, out: os.Stdout}))
}

// realMain returns the process exit code so deferred cleanup runs before exit.
func realMain(args []string, term stdio) int {
	opts, err := parseFlags(args)
	if err != nil {
		return 2
	}

	// A missing .env is fine, anything else is worth reporting.
	if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", opts.envFile, err)
	}

	logger := initLogger()

	cfg, err := config.LoadFromEnv(logger, configMetrics)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		return 1
	}
	logger = logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.String("api_url", cfg.APIURL),
		slog.Bool("authenticated", cfg.APIToken != ""),
		slog.Duration("timeout", cfg.Timeout),
		slog.Int("start_page", cfg.StartPage),
		slog.String("refresh_schedule", cfg.RefreshSchedule),
		slog.Int("metrics_port", cfg.MetricsPort))

	shutdownTracing := tracing.Install(1.0)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	if err := run(logger, cfg, opts, term); err != nil {
		logger.Error("browse failed", slog.Any("error", err))
		return 1
	}
	return 0
}

// initLogger returns the bootstrap logger used while configuration loads.
func initLogger() *slog.Logger {
	logger := logging.New(os.Stderr, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))
	slog.SetDefault(logger)
	return logger
}

func run(logger *slog.Logger, cfg *config.ClientConfig, opts options, term stdio) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := foodgramapi.New(apiConfig(cfg, logger))
	if err != nil {
		return err
	}

	store := recipes.NewStore(client)
	store.SetRecipesPage(cfg.StartPage)

	var healthServer *health.Server
	ctrl := recipes.NewController(store, client, recipes.Options{
		Filter: entity.RecipeFilter{
			Author:           opts.author,
			IsFavorited:      opts.favorited,
			IsInShoppingCart: opts.inCart,
		},
		Logger: logger,
		OnApplied: func(page int) {
			if healthServer != nil {
				healthServer.SetReady(true)
			}
		},
	})
	defer ctrl.Close()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.MetricsPort != 0 {
		healthServer = health.NewServer(fmt.Sprintf(":%d", cfg.MetricsPort), logger, client.CircuitBreaker())
		g.Go(func() error {
			if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("health server: %w", err)
			}
			return nil
		})
	}

	if err := ctrl.Start(ctx); err != nil {
		return err
	}

	sess := newSession(ctrl, store, client, term.out)

	if opts.watch || cfg.Watch {
		if cfg.RefreshSchedule == "" {
			logger.Warn("watch mode requested without FOODGRAM_REFRESH_SCHEDULE, refresh disabled")
		} else {
			c := cron.New(cron.WithLocation(cfg.Location()))
			if _, err := c.AddFunc(cfg.RefreshSchedule, func() {
				logger.Info("scheduled refresh", slog.Int("page", store.Page()))
				ctrl.Refresh()
				ctrl.Wait()
				sess.render()
			}); err != nil {
				return fmt.Errorf("schedule refresh: %w", err)
			}
			c.Start()
			g.Go(func() error {
				<-ctx.Done()
				<-c.Stop().Done()
				return nil
			})
		}
	}

	g.Go(func() error {
		defer stop()
		sess.printf("%s", helpText)
		return sess.run(ctx, term.in)
	})

	return g.Wait()
}

// apiConfig maps the client configuration onto the API client's.
func apiConfig(cfg *config.ClientConfig, logger *slog.Logger) foodgramapi.Config {
	listRetry := retry.RecipeListConfig()
	listRetry.MaxAttempts = cfg.RetryAttempts

	return foodgramapi.Config{
		BaseURL:     cfg.APIURL,
		Token:       cfg.APIToken,
		Timeout:     cfg.Timeout,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
		ListRetry:   listRetry,
		ActionRetry: retry.ActionConfig(),
		Breaker:     circuitbreaker.FoodgramAPIConfig(),
		Pagination:  pagination.LoadFromEnv(),
		Logger:      logger,
	}
}
