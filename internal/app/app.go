package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/aufaa4aaaaa/kasir-app/api"
	"github.com/aufaa4aaaaa/kasir-app/api/routes"
	"github.com/aufaa4aaaaa/kasir-app/internal/catalog"
	"github.com/aufaa4aaaaa/kasir-app/internal/cron"
	"github.com/aufaa4aaaaa/kasir-app/internal/mirror"
	"github.com/aufaa4aaaaa/kasir-app/internal/pos"
	"github.com/aufaa4aaaaa/kasir-app/internal/report"
	"github.com/aufaa4aaaaa/kasir-app/pkg/config"
	"github.com/aufaa4aaaaa/kasir-app/pkg/instance"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
	"github.com/aufaa4aaaaa/kasir-app/pkg/metrics"
	"github.com/aufaa4aaaaa/kasir-app/pkg/redis"
)

const flushLockJob = "mirror_flush"

// App is a fully wired till: engine, service, mirror and tick service.
type App struct {
	Config    *config.Config
	Logger    *logger.Logger
	Registry  *prometheus.Registry
	Service   *pos.Service
	Formatter *report.Formatter

	mirror mirror.Mirror
	ticks  *cron.Service
}

// Options override the pieces tests and the CLI need to swap.
type Options struct {
	Mirror mirror.Mirror
	Lock   cron.Lock
}

// New wires the application and restores the engine from the mirror.
func New(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts Options) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}

	seed, err := catalog.LoadSeed(cfg.POS.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog seed: %w", err)
	}

	store, lock := opts.Mirror, opts.Lock
	if store == nil {
		store, lock, err = openMirror(ctx, cfg, logg, lock)
		if err != nil {
			return nil, fmt.Errorf("open mirror: %w", err)
		}
	}
	if lock == nil {
		lock = cron.NewLocalLock()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	loc := cfg.POS.Location()
	engine := pos.NewEngine(pos.Options{
		TaxRate:           cfg.POS.Tax(),
		LowStockThreshold: cfg.POS.LowStockThreshold,
		Location:          loc,
		Seed:              seed,
	})
	svc, err := pos.NewService(pos.ServiceParams{
		Engine:  engine,
		Store:   store,
		Logger:  logg,
		Metrics: metrics.NewPOSMetrics(reg),
	})
	if err != nil {
		return nil, multierr.Append(err, store.Close())
	}

	flushJob, err := cron.NewMirrorFlushJob(svc)
	if err != nil {
		return nil, multierr.Append(err, store.Close())
	}
	ticks, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(flushJob),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(reg),
		Interval: cfg.Mirror.FlushInterval,
	})
	if err != nil {
		return nil, multierr.Append(err, store.Close())
	}

	if err := svc.Bootstrap(ctx); err != nil {
		return nil, multierr.Append(err, store.Close())
	}

	return &App{
		Config:    cfg,
		Logger:    logg,
		Registry:  reg,
		Service:   svc,
		Formatter: report.NewFormatter(cfg.POS.Locale, loc),
		mirror:    store,
		ticks:     ticks,
	}, nil
}

// openMirror opens the configured mirror. The redis driver also shares its
// client with a redis tick lock so tills on one redis flush one at a time.
func openMirror(ctx context.Context, cfg *config.Config, logg *logger.Logger, lock cron.Lock) (mirror.Mirror, cron.Lock, error) {
	if cfg.Mirror.DriverName() != config.MirrorDriverRedis {
		store, err := mirror.Open(ctx, cfg, logg)
		return store, lock, err
	}

	client, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return nil, nil, err
	}
	if lock == nil {
		lock, err = cron.NewRedisLock(client, client.LockKey(flushLockJob), 0)
		if err != nil {
			return nil, nil, multierr.Append(err, client.Close())
		}
	}
	return mirror.NewRedis(client), lock, nil
}

// Handler builds the HTTP router for this till.
func (a *App) Handler() http.Handler {
	return routes.NewRouter(a.Config, a.Logger, a.Service, a.Formatter, a.Registry)
}

// Serve runs the API server and the flush ticker until ctx is canceled.
func (a *App) Serve(ctx context.Context) error {
	addr := net.JoinHostPort("", a.Config.App.Port)
	ctx = a.Logger.WithFields(ctx, map[string]any{
		"env":    a.Config.App.Env,
		"addr":   addr,
		"till":   instance.GetID(),
		"mirror": a.Config.Mirror.DriverName(),
	})
	a.Logger.Info(ctx, "starting kasir api")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tickErr := make(chan error, 1)
	go func() {
		tickErr <- a.ticks.Run(ctx)
	}()

	err := api.Serve(ctx, api.NewServer(addr, a.Handler()))
	if err != nil {
		a.Logger.Error(ctx, "api server stopped unexpectedly", err)
	}
	cancel()
	if tErr := <-tickErr; tErr != nil && !errors.Is(tErr, context.Canceled) {
		err = multierr.Append(err, tErr)
	}
	return err
}

// Close writes a final snapshot and releases the mirror.
func (a *App) Close(ctx context.Context) error {
	err := a.Service.Flush(ctx)
	return multierr.Append(err, a.mirror.Close())
}
