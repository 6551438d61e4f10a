package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"swampwatch/internal/classify"
	"swampwatch/internal/model"
	"swampwatch/internal/notify"
	"swampwatch/internal/pair"
)

// TxReader resolves the initiating account of a transaction. Best-effort:
// a failed lookup falls back to the swap recipient.
type TxReader interface {
	TransactionSender(ctx context.Context, txHash common.Hash) (common.Address, error)
}

// Journal records composed alerts for history. Append failures are logged
// and swallowed.
type Journal interface {
	Append(rec model.AlertRecord) error
}

// Config wires the per-buy pipeline.
type Config struct {
	PairMeta   model.PairMeta
	Tracked    model.TokenMeta
	Counter    model.TokenMeta
	Thresholds classify.Thresholds
	Indicator  classify.IndicatorConfig
}

// Alerter turns swap records into delivered buy alerts. It implements the
// poller's Handler: sells and non-buys are dropped silently, and no
// per-event failure ever aborts the surrounding batch.
type Alerter struct {
	cfg      Config
	composer *notify.Composer
	sink     notify.Sink
	tx       TxReader
	journal  Journal
	logger   *zap.Logger
	now      func() time.Time
}

// New builds an Alerter. tx and journal may be nil.
func New(cfg Config, composer *notify.Composer, sink notify.Sink, tx TxReader, journal Journal, logger *zap.Logger) (*Alerter, error) {
	if composer == nil {
		return nil, fmt.Errorf("composer is nil")
	}
	if sink == nil {
		return nil, fmt.Errorf("sink is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Alerter{
		cfg:      cfg,
		composer: composer,
		sink:     sink,
		tx:       tx,
		journal:  journal,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// HandleSwap classifies one swap and, for buys, composes and delivers the
// alert. Tier, indicator and label derive from the bought human amount only.
func (a *Alerter) HandleSwap(ctx context.Context, rec model.SwapRecord) error {
	ev, ok := pair.ClassifyBuy(rec, a.cfg.PairMeta)
	if !ok {
		return nil
	}

	if a.tx != nil {
		if sender, err := a.tx.TransactionSender(ctx, ev.TxHash); err == nil {
			ev.Buyer = sender
			ev.BuyerResolved = true
		} else {
			a.logger.Warn("buyer lookup failed, attributing to recipient",
				zap.Error(err),
				zap.String("tx", ev.TxHash.Hex()),
			)
		}
	}

	trackedHuman, trackedText := classify.HumanAmount(ev.TrackedRaw, a.cfg.Tracked.Decimals)
	_, counterText := classify.HumanAmount(ev.CounterRaw, a.cfg.Counter.Decimals)

	tier := classify.TierFor(trackedHuman, a.cfg.Thresholds)
	msg := a.composer.Compose(notify.Alert{
		Event:       ev,
		TrackedText: trackedText,
		CounterText: counterText,
		Label:       classify.CompactLabel(trackedHuman),
		TierBadge:   tier.Badge(),
		Indicator:   classify.Indicator(trackedHuman, a.cfg.Indicator),
	})

	delivered := true
	if err := a.sink.Send(ctx, msg); err != nil {
		delivered = false
		a.logger.Warn("alert delivery failed",
			zap.Error(err),
			zap.String("tx", ev.TxHash.Hex()),
			zap.Uint64("block", ev.BlockNumber),
		)
	}

	if a.journal != nil {
		record := model.AlertRecord{
			BlockNumber:   ev.BlockNumber,
			TxHash:        ev.TxHash.Hex(),
			LogIndex:      uint64(ev.LogIndex),
			Buyer:         ev.Buyer.Hex(),
			BuyerResolved: ev.BuyerResolved,
			Recipient:     ev.Recipient.Hex(),
			TrackedRaw:    ev.TrackedRaw.String(),
			CounterRaw:    ev.CounterRaw.String(),
			TrackedHuman:  trackedText,
			CounterHuman:  counterText,
			Tier:          tier.String(),
			Delivered:     delivered,
			CreatedAt:     a.now().UTC().Format(time.RFC3339Nano),
		}
		if err := a.journal.Append(record); err != nil {
			a.logger.Warn("journal append failed", zap.Error(err), zap.String("tx", ev.TxHash.Hex()))
		}
	}

	return nil
}
