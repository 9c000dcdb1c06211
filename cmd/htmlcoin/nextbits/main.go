package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chaincfg"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	Network    string `long:"network" env:"HTMLCOIN_NEXTBITS_NETWORK" description:"network name (main, test, regtest, unittest)" default:"main"`
	ParamsFile string `long:"params-file" env:"HTMLCOIN_NEXTBITS_PARAMS_FILE" description:"TOML file overriding consensus parameters"`
	Input      string `long:"input" short:"i" description:"JSON lines header file, - for stdin" default:"-"`
	Time       int64  `long:"time" description:"candidate block time; defaults to tip time plus target spacing"`
	Verbose    bool   `long:"verbose" short:"v" description:"log retarget details"`
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	if cfg.Verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic("can't initialize zap logger: " + err.Error())
		}
		logger = l
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(cfg, os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("nextbits failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config, stdin io.Reader, stdout io.Writer, logger *zap.Logger) error {
	network, err := model.ParseNetwork(cfg.Network)
	if err != nil {
		return err
	}
	params, err := chaincfg.Load(network, cfg.ParamsFile)
	if err != nil {
		return fmt.Errorf("load consensus params: %w", err)
	}

	in := stdin
	if cfg.Input != "-" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	res, err := nextBits(in, params, cfg.Time, logger)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
