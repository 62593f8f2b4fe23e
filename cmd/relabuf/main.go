package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/MasterOfBinary/relabuf/buffer"
	"github.com/MasterOfBinary/relabuf/config"
	"github.com/MasterOfBinary/relabuf/obs"
	"github.com/MasterOfBinary/relabuf/processor"
	"github.com/MasterOfBinary/relabuf/source"
)

func main() {
	opts := NewOptions()
	opts.AddFlags(pflag.CommandLine)
	pflag.Parse()

	cfg, err := opts.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := obs.SetupLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("relabuf failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Root, logger zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.NewMetrics(reg)

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn().Err(err).Msg("metrics server shutdown failed")
			}
		}()
	}

	var err error
	switch cfg.Source.Kind {
	case config.KindRedis:
		err = runRedis(ctx, cfg, logger, metrics)
	default:
		err = runDemo(ctx, cfg, logger, metrics)
	}
	if errors.Is(err, context.Canceled) {
		logger.Info().Msg("interrupted")
		return nil
	}
	return err
}

func serveMetrics(addr string, reg *prometheus.Registry, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           obs.Logger(logger)(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()
	return srv
}

// throttle wraps src in a rate limit when one is configured.
func throttle[T any](src buffer.Source[T], cfg config.Source) (buffer.Source[T], error) {
	if cfg.RatePerSecond <= 0 {
		return src, nil
	}
	return source.NewThrottle(source.ThrottleConfig[T]{
		Source: src,
		Rate:   cfg.RatePerSecond,
		Burst:  cfg.Burst,
	})
}

func runDemo(ctx context.Context, cfg *config.Root, logger zerolog.Logger, metrics *obs.Metrics) error {
	buf, err := buffer.New[uint32](cfg.Buffer)
	if err != nil {
		return err
	}
	buf.WithLogger(logger).WithStats(metrics)

	items := make(chan uint32, cfg.Buffer.HardCap)
	go produce(ctx, items, logger.With().Str("component", "producer").Logger())

	src, err := throttle[uint32](&source.Channel[uint32]{Input: items}, cfg.Source)
	if err != nil {
		return err
	}
	buf.Go(ctx, src)

	proc := processor.WrapWithLogging(failFirst[uint32](demoFailures, logger), logger, "demo")
	err = processor.Drain[uint32](ctx, buf, proc)
	logStats(logger, metrics.GetStats())
	return err
}

func runRedis(ctx context.Context, cfg *config.Root, logger zerolog.Logger, metrics *obs.Metrics) error {
	rc := cfg.Source.Redis
	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis at %s: %w", rc.Addr, err)
	}
	logger.Info().Str("addr", rc.Addr).Str("key", rc.Key).Msg("reading from redis")

	redisSrc, err := source.NewRedis(source.RedisConfig{
		Client:     client,
		Key:        rc.Key,
		PopTimeout: rc.PopTimeout,
	})
	if err != nil {
		return err
	}
	src, err := throttle[string](redisSrc, cfg.Source)
	if err != nil {
		return err
	}

	buf, err := buffer.New[string](cfg.Buffer)
	if err != nil {
		return err
	}
	buf.WithLogger(logger).WithStats(metrics)
	buf.Go(ctx, src)

	var inner processor.Processor[string] = logItems[string](logger)
	if rc.OutputKey != "" {
		inner = &processor.RedisPush[string]{Client: client, Key: rc.OutputKey}
	}
	proc := processor.WrapWithLogging(inner, logger, "redis")
	err = processor.Drain[string](ctx, buf, proc)
	logStats(logger, metrics.GetStats())
	return err
}
