package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/dailyhustle/hustle/internal/client/cli"
	"github.com/dailyhustle/hustle/internal/client/config"
	"github.com/dailyhustle/hustle/internal/client/gateway"
	"github.com/dailyhustle/hustle/internal/client/httpclient"
	"github.com/dailyhustle/hustle/internal/client/localdb"
	"github.com/dailyhustle/hustle/internal/client/metrics"
	"github.com/dailyhustle/hustle/internal/client/notify"
	"github.com/dailyhustle/hustle/internal/client/oauth"
	"github.com/dailyhustle/hustle/internal/client/repositories/metadata"
	"github.com/dailyhustle/hustle/internal/client/store"
	"github.com/dailyhustle/hustle/internal/client/tokenstore"
	"github.com/dailyhustle/hustle/internal/cryptox"
	"github.com/dailyhustle/hustle/internal/filex"
	"github.com/dailyhustle/hustle/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	log := logging.New(os.Stderr, cfg.LogLevel)

	stateDir, err := filex.EnsureDir(cfg.StateDir)
	if err != nil {
		log.Error(ctx, "state dir", "error", err)
		return err
	}
	cfg.StateDir = stateDir

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Error(ctx, "open local state", "driver", cfg.StoreDriver, "error", err)
		return err
	}
	defer closeRepo()

	sealer, err := cryptox.NewDeviceSealer(cfg.SecretPath())
	if err != nil {
		log.Error(ctx, "device key", "error", err)
		return err
	}

	tokens := tokenstore.New(repo, sealer)
	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr, log); err != nil {
				log.Warn(ctx, "metrics server stopped", "error", err)
			}
		}()
	}

	gw := gateway.New(httpclient.New(httpclient.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		Tokens:    tokens,
		Logger:    log,
		Metrics:   m,
	}))

	st := store.New(store.Deps{
		Gateway:  gw,
		Tokens:   tokens,
		Notifier: notify.NewConsole(os.Stderr),
		Logger:   log,
	})
	defer st.Close()

	app := cli.NewApp(cli.Deps{
		Session:      st,
		Remote:       gw,
		OAuth:        oauth.NewReceiver(cfg.OAuthCallbackAddr, log),
		Metrics:      m,
		Logger:       log,
		PollInterval: cfg.UnreadPollInterval,
	})
	return app.Execute(ctx, args)
}

// openRepository returns the metadata backend chosen by cfg together with
// its cleanup.
func openRepository(ctx context.Context, cfg *config.Config) (metadata.Repository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return metadata.NewRedisRepository(rdb, "dailyhustle:"), func() { _ = rdb.Close() }, nil
	default:
		db, err := localdb.Open(ctx, cfg.DatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return metadata.NewSQLiteRepository(db), func() { _ = db.Close() }, nil
	}
}
