package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"swampwatch/internal/alert"
	"swampwatch/internal/chain"
	"swampwatch/internal/config"
	"swampwatch/internal/journal"
	"swampwatch/internal/journal/postgres"
	"swampwatch/internal/notify"
	"swampwatch/internal/pair"
	"swampwatch/internal/watcher"
)

func main() {
	root := &cobra.Command{
		Use:          "swampwatch",
		Short:        "Pair buy-alert watcher",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the watcher",
		RunE:  runWatcher,
	}

	runCmd.Flags().String("rpc", "", "chain RPC URL")
	runCmd.Flags().String("pair", "", "pair contract address")
	runCmd.Flags().String("token", "", "tracked token address")
	runCmd.Flags().String("telegram-token", "", "Telegram bot token")
	runCmd.Flags().String("telegram-chat", "", "Telegram chat id")
	runCmd.Flags().Duration("poll-interval", 6*time.Second, "poll interval")
	runCmd.Flags().Uint64("confirmations", 2, "confirmation depth in blocks")
	runCmd.Flags().Float64("tier-tadpole", 100, "tadpole tier lower bound")
	runCmd.Flags().Float64("tier-small-guy", 1000, "small guy tier lower bound")
	runCmd.Flags().Float64("tier-swamp-boss", 10000, "swamp boss tier lower bound")
	runCmd.Flags().Float64("tier-frog-king", 50000, "frog king tier lower bound")
	runCmd.Flags().String("indicator-strategy", "ladder", "magnitude indicator strategy (ladder, linear)")
	runCmd.Flags().Float64("indicator-step", 500, "linear meter step size")
	runCmd.Flags().Int("indicator-max", 10, "linear meter unit cap")
	runCmd.Flags().Float64("ladder-base", 100, "doubling ladder base amount")
	runCmd.Flags().Int("ladder-slots", 10, "doubling ladder slot count")
	runCmd.Flags().String("symbol-alias", "", "display symbol aliases (key=value, comma-separated)")
	runCmd.Flags().String("explorer-tx", "https://bscscan.com/tx/%s", "explorer tx link template")
	runCmd.Flags().String("explorer-address", "https://bscscan.com/address/%s", "explorer address link template")
	runCmd.Flags().String("journal", "", "optional JSONL alert history path")
	runCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for alert history")
	runCmd.Flags().Int("max-retries", 3, "startup metadata retry attempts")
	runCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial startup retry backoff")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runWatcher(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	pairMeta, err := pair.ResolvePairMeta(ctx, chainClient, cfg.PairAddress, cfg.TokenAddress, cfg.MaxRetries, cfg.RetryBackoff)
	if err != nil {
		return err
	}

	tracked := pair.ResolveTokenMeta(ctx, chainClient, pairMeta.TrackedToken(), logger)
	counter := pair.ResolveTokenMeta(ctx, chainClient, pairMeta.CounterToken(), logger)
	if !tracked.Resolved {
		logger.Warn("tracked token metadata defaulted", zap.String("token", tracked.Address.Hex()))
	}
	if !counter.Resolved {
		logger.Warn("counter token metadata defaulted", zap.String("token", counter.Address.Hex()))
	}

	sink := notify.NewTelegram(notify.TelegramConfig{
		BotToken: cfg.TelegramToken,
		ChatID:   cfg.TelegramChat,
	}, logger)

	composer := notify.NewComposer(notify.ComposerConfig{
		Tracked:         tracked,
		Counter:         counter,
		SymbolAliases:   cfg.SymbolAliases,
		ExplorerTxURL:   cfg.ExplorerTxURL,
		ExplorerAddrURL: cfg.ExplorerAddrURL,
	})

	journalSink, closeJournal, err := buildJournal(ctx, cfg)
	if err != nil {
		return err
	}
	if closeJournal != nil {
		defer closeJournal()
	}

	alerter, err := alert.New(alert.Config{
		PairMeta:   pairMeta,
		Tracked:    tracked,
		Counter:    counter,
		Thresholds: cfg.Thresholds,
		Indicator:  cfg.Indicator,
	}, composer, sink, chainClient, journalSink, logger)
	if err != nil {
		return err
	}

	decoder, err := pair.NewSwapDecoder()
	if err != nil {
		return err
	}

	poller, err := watcher.NewPoller(watcher.Config{
		Pair:          cfg.PairAddress,
		PollInterval:  cfg.PollInterval,
		Confirmations: cfg.Confirmations,
	}, chainClient, decoder, alerter, logger)
	if err != nil {
		return err
	}

	logger.Info("watcher start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("pair", cfg.PairAddress.Hex()),
		zap.String("tracked", tracked.Address.Hex()),
		zap.String("tracked_symbol", tracked.Symbol),
		zap.Bool("tracked_is_token0", pairMeta.TrackedIsToken0),
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.Uint64("confirmations", cfg.Confirmations),
		zap.Bool("telegram_enabled", sink.Enabled()),
	)

	if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// buildJournal assembles the optional alert-history journals.
func buildJournal(ctx context.Context, cfg config.Config) (alert.Journal, func(), error) {
	var journals []journal.Appender
	var closers []func()

	if cfg.JournalPath != "" {
		journals = append(journals, journal.NewJSONL(cfg.JournalPath))
	}
	if cfg.PostgresDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		journals = append(journals, store)
		closers = append(closers, store.Close)
	}

	if len(journals) == 0 {
		return nil, nil, nil
	}

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	return journal.NewMulti(journals...), closeAll, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
