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

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/metrics"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/node"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/repository/clickhouse"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/service/ingester"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	ClickhouseDSN string `long:"clickhouse-dsn" env:"HTMLCOIN_INGESTER_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	Network       string `long:"network" env:"HTMLCOIN_INGESTER_NETWORK" description:"network name (main, test, regtest)" default:"main"`
	RPCURL        string `long:"rpc-url" env:"HTMLCOIN_INGESTER_RPC_URL" description:"HTMLCOIN node RPC URL" default:"http://127.0.0.1:4889"`
	RPCUser       string `long:"rpc-user" env:"HTMLCOIN_INGESTER_RPC_USER" description:"HTMLCOIN node RPC username"`
	RPCPassword   string `long:"rpc-password" env:"HTMLCOIN_INGESTER_RPC_PASSWORD" description:"HTMLCOIN node RPC password"`
	RPCRate       int    `long:"rpc-rps" env:"HTMLCOIN_INGESTER_RPC_RPS" description:"maximum header fetches per second, 0 for unlimited" default:"200"`
	Workers       int    `long:"workers" env:"HTMLCOIN_INGESTER_WORKERS" description:"concurrent header fetches" default:"16"`
	MetricsAddr   string `long:"metrics-addr" env:"HTMLCOIN_INGESTER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
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
		logger.Fatal("header ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network, err := model.ParseNetwork(cfg.Network)
	if err != nil {
		return err
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

	client, err := rpcclient.Dial(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init htmlcoin rpc client: %w", err)
	}
	rpc := rpcclient.NewObservedClient(client, metrics.NewRPCClient(network))
	defer rpc.Shutdown()

	svc, err := ingester.NewService(
		node.NewHeaderSource(rpc, network, cfg.RPCRate),
		repo,
		metrics.NewHeaderIngester(network),
		network,
		logger,
		ingester.WithWorkerCount(cfg.Workers),
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
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
