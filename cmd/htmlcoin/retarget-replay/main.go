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

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chaincfg"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/metrics"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/pow"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/repository/clickhouse"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/service/replay"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/validator"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	ClickhouseDSN string `long:"clickhouse-dsn" env:"HTMLCOIN_REPLAY_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	Network       string `long:"network" env:"HTMLCOIN_REPLAY_NETWORK" description:"network name (main, test, regtest, unittest)" default:"main"`
	ParamsFile    string `long:"params-file" env:"HTMLCOIN_REPLAY_PARAMS_FILE" description:"TOML file overriding consensus parameters"`
	ChunkSize     uint64 `long:"chunk-size" env:"HTMLCOIN_REPLAY_CHUNK_SIZE" description:"headers loaded per query" default:"5000"`
	Workers       int    `long:"workers" env:"HTMLCOIN_REPLAY_WORKERS" description:"concurrent validation workers" default:"4"`
	MetricsAddr   string `long:"metrics-addr" env:"HTMLCOIN_REPLAY_METRICS_ADDR" description:"address for metrics server" default:":2113"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		var ce *validator.ConsensusError
		if errors.As(err, &ce) {
			logger.Error("stored chain violates consensus rules",
				zap.Int32("height", ce.Height),
				zap.Stringer("hash", ce.Hash),
				zap.Error(ce.Err),
			)
			_ = logger.Sync()
			os.Exit(2)
		}
		logger.Fatal("retarget replay failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network, err := model.ParseNetwork(cfg.Network)
	if err != nil {
		return err
	}
	params, err := chaincfg.Load(network, cfg.ParamsFile)
	if err != nil {
		return fmt.Errorf("load consensus params: %w", err)
	}

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("close repository", zap.Error(err))
		}
	}()

	validatorMetrics := metrics.NewValidator(network)
	index := chain.NewIndex()
	v := validator.New(
		index,
		pow.NewCalculator(params, logger),
		validatorMetrics,
		logger,
		validator.WithWorkers(cfg.Workers),
	)

	return replay.NewService(repo, index, v, validatorMetrics, network, logger, cfg.ChunkSize).Run(ctx)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
