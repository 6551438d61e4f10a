package watcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"swampwatch/internal/model"
	"swampwatch/internal/pair"
)

// ChainSource provides the head and log reads the poller needs. Logs are
// assumed to be complete and duplicate-free within a single call; that
// contract is the log source's, not validated here.
type ChainSource interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, fromBlock, toBlock uint64, addresses []common.Address, topic0 []common.Hash) ([]types.Log, error)
}

// Handler consumes decoded swaps in log order. Handler errors are per-event
// failures: logged, never batch-aborting.
type Handler interface {
	HandleSwap(ctx context.Context, rec model.SwapRecord) error
}

// Config holds runtime settings for the poller.
type Config struct {
	Pair          common.Address
	PollInterval  time.Duration
	Confirmations uint64
}

// Poller owns the confirmed-block cursor and drives the scan loop. The
// cursor lives only in memory: a restart resumes from the then-current head
// and swaps emitted while down are skipped.
type Poller struct {
	cfg       Config
	chain     ChainSource
	decoder   *pair.SwapDecoder
	handler   Handler
	logger    *zap.Logger
	swapTopic common.Hash

	cursor uint64
}

// NewPoller builds a Poller with its dependencies.
func NewPoller(cfg Config, chain ChainSource, decoder *pair.SwapDecoder, handler Handler, logger *zap.Logger) (*Poller, error) {
	if chain == nil {
		return nil, fmt.Errorf("chain source is nil")
	}
	if decoder == nil {
		return nil, fmt.Errorf("swap decoder is nil")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler is nil")
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	topic, err := pair.SwapTopic()
	if err != nil {
		return nil, fmt.Errorf("swap topic: %w", err)
	}

	return &Poller{
		cfg:       cfg,
		chain:     chain,
		decoder:   decoder,
		handler:   handler,
		logger:    logger,
		swapTopic: topic,
	}, nil
}

// Cursor returns the highest fully-processed block number.
func (p *Poller) Cursor() uint64 {
	return p.cursor
}

// Run starts from the current head and ticks until the context is done.
// Ticks never overlap: each tick completes, then the loop sleeps the full
// interval before the next one.
func (p *Poller) Run(ctx context.Context) error {
	head, err := p.chain.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("initial head: %w", err)
	}
	p.cursor = head

	p.logger.Info("poller start",
		zap.String("pair", p.cfg.Pair.Hex()),
		zap.Uint64("cursor", p.cursor),
		zap.Uint64("confirmations", p.cfg.Confirmations),
		zap.Duration("poll_interval", p.cfg.PollInterval),
	)

	for {
		p.tick(ctx)

		timer := time.NewTimer(p.cfg.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// tick scans one confirmed range. The cursor advances, absolutely, to the
// range's upper bound only after every log in the batch was dispatched; any
// batch-level failure leaves it unchanged so the identical range is retried
// on the next tick. That re-tick is the sole retry mechanism.
func (p *Poller) tick(ctx context.Context) {
	head, err := p.chain.BlockNumber(ctx)
	if err != nil {
		p.logger.Warn("head fetch failed", zap.Error(err))
		return
	}

	scan, ok := ScanRange(head, p.cfg.Confirmations, p.cursor)
	if !ok {
		p.logger.Debug("no new confirmed range", zap.Uint64("head", head), zap.Uint64("cursor", p.cursor))
		return
	}

	logs, err := p.chain.FilterLogs(ctx, scan.From, scan.To, []common.Address{p.cfg.Pair}, []common.Hash{p.swapTopic})
	if err != nil {
		p.logger.Warn("filter logs failed", zap.Error(err), zap.Uint64("from", scan.From), zap.Uint64("to", scan.To))
		return
	}

	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})

	for _, log := range logs {
		if log.Removed || !p.decoder.CanDecode(log) {
			continue
		}

		rec, err := p.decoder.DecodeSwapLog(log)
		if err != nil {
			p.logger.Warn("swap decode failed",
				zap.Error(err),
				zap.Uint64("block", log.BlockNumber),
				zap.String("tx", log.TxHash.Hex()),
				zap.Uint("log_index", log.Index),
			)
			continue
		}

		if err := p.handler.HandleSwap(ctx, rec); err != nil {
			p.logger.Warn("swap handling failed",
				zap.Error(err),
				zap.Uint64("block", rec.BlockNumber),
				zap.String("tx", rec.TxHash.Hex()),
			)
		}
	}

	p.cursor = scan.To
	p.logger.Debug("range complete", zap.Uint64("from", scan.From), zap.Uint64("to", scan.To), zap.Int("logs", len(logs)))
}
