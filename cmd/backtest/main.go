package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"kairos/examples/strategy"
	"kairos/internal/dbg"
	"kairos/pkg/broker"
	"kairos/pkg/bus"
	"kairos/pkg/common"
	"kairos/pkg/data/db/sqlite"
	"kairos/pkg/data/duckdb"
	"kairos/pkg/data/mapper"
	"kairos/pkg/market"
	"kairos/pkg/middleware"
	"kairos/pkg/simulation"
	"kairos/pkg/tools/metrics"
	"kairos/pkg/tools/store"
	"kairos/pkg/utility/fixed"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the backtest configuration")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := dbg.NewLogger(cfg.Logging.Dev)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("backtest failed", zap.Error(err))
	}
	logger.Info("done")
}

func run(cfg *Config, logger *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	from, to, err := cfg.SimulationRange()
	if err != nil {
		return err
	}

	history, err := loadHistory(ctx, cfg, from, to)
	if err != nil {
		return err
	}

	journalDb, err := sqlite.Connect(ctx, cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("unable to open trade journal: %w", err)
	}
	defer func() {
		_ = journalDb.Close()
	}()
	if err := sqlite.CreateTradesTable(ctx, journalDb); err != nil {
		return fmt.Errorf("unable to create trades table: %w", err)
	}

	symbols := store.CreateSymbolStore(cfg.SymbolInfos()...)
	router := bus.NewRouter()
	b := broker.NewBroker(router, history, symbols)

	advisor := strategy.NewBreakout(b, cfg.Strategy.Window, fixed.FromFloat64(cfg.Strategy.TargetRatio))
	audit := metrics.NewAudit()

	monitor := middleware.NewMonitor(MonitorFlags)
	telemetry := middleware.NewTelemetry(logger)
	performance := middleware.NewPerformance(logger)
	journal := middleware.NewJournal(journalDb, cfg.Journal.RunId)

	router.BarHandler = middleware.Chain(telemetry.WithBar, performance.WithBar, monitor.WithBar)(advisor.OnBar)
	router.OrderHandler = middleware.Chain(telemetry.WithOrder, monitor.WithOrder)(middleware.NoopOrderHdl)
	router.OrderExecutedHandler = middleware.Chain(telemetry.WithOrderExecuted, monitor.WithOrderExecuted)(middleware.NoopOrderExecHdl)
	router.OrderCanceledHandler = middleware.Chain(telemetry.WithOrderCanceled, monitor.WithOrderCanceled)(middleware.NoopOrderCancHdl)
	router.PositionOpenedHandler = middleware.Chain(telemetry.WithPositionOpened, monitor.WithPositionOpened)(advisor.OnPositionOpened)
	router.PositionClosedHandler = middleware.Chain(telemetry.WithPositionClosed, journal.WithPositionClosed, monitor.WithPositionClosed)(
		bus.PositionClosedEventHandler(bus.MergeHandlers[common.Position](audit.OnPositionClosed, advisor.OnPositionClosed)))

	executor := simulation.NewExecutor(router, b, history, from, to)

	startTime := time.Now()
	if err := executor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err := b.CloseAllOpenPositions(context.Background()); err != nil {
		return err
	}
	logger.Info("simulation finished",
		zap.Duration("elapsed", time.Since(startTime)),
		zap.Int("total_trades", b.TotalTrades()),
		zap.Int("closed_trades", b.ClosedTrades()))

	audit.GenerateReport().Print()

	if cfg.Bootstrap.Iterations > 0 {
		bootstrap := metrics.NewBootstrap(cfg.Bootstrap.Seed, cfg.Bootstrap.Iterations)
		expectancy, profitFactor := bootstrap.Run(audit.ClosedPositions())
		expectancy.Print("expectancy")
		profitFactor.Print("profit_factor")
	}

	telemetry.PrintStatistics()
	performance.PrintStatistics(telemetry)
	router.Statistics().Print()
	return nil
}

func loadHistory(ctx context.Context, cfg *Config, from, to time.Time) (*market.History, error) {
	history := market.NewHistory()

	switch cfg.Data.Kind {
	case "duckdb":
		reader := duckdb.NewReader(cfg.Data.DuckDB)
		if err := reader.Connect(); err != nil {
			return nil, err
		}
		defer reader.Close()

		for _, symbol := range cfg.Symbols {
			err := reader.LoadBars(ctx, symbol.Name, from, to, func(bar common.Bar) error {
				history.Add(bar)
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("unable to load bars for %s: %w", symbol.Name, err)
			}
		}
	case "binary":
		for _, symbol := range cfg.Symbols {
			path := filepath.Join(cfg.Data.Dir, fmt.Sprintf("%s_bars.bin", strings.ToLower(symbol.Name)))
			if err := loadBinaryBars(history, symbol.Name, path, from, to); err != nil {
				return nil, fmt.Errorf("unable to load bars for %s: %w", symbol.Name, err)
			}
		}
	default:
		return nil, fmt.Errorf("unknown data source kind %q", cfg.Data.Kind)
	}

	return history, nil
}

func loadBinaryBars(history *market.History, symbol, path string, from, to time.Time) error {
	reader := mapper.NewReader[mapper.BinaryBar](path)
	if err := reader.Open(); err != nil {
		return err
	}
	defer reader.Close()

	entryCount, err := reader.EntryCount()
	if err != nil {
		return err
	}

	var (
		binaryBar mapper.BinaryBar
		bar       common.Bar
	)
	for idx := int64(0); idx < entryCount; idx++ {
		if err := reader.Read(idx, &binaryBar); err != nil {
			return err
		}
		ts := time.Unix(0, binaryBar.TimeStamp)
		if ts.Before(from) || ts.After(to.Add(common.BarPeriodD1)) {
			continue
		}
		binaryBar.ToCommonBar(symbol, &bar)
		history.Add(bar)
	}
	return nil
}
