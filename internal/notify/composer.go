package notify

import (
	"fmt"
	"html"
	"strings"

	"swampwatch/internal/model"
)

// Alert carries everything the composer needs, already classified. Amount
// texts are exact human-readable forms; Label is the compacted form and may
// be empty when the amount does not fit a float64.
type Alert struct {
	Event       model.BuyEvent
	TrackedText string
	CounterText string
	Label       string
	TierBadge   string
	Indicator   string
}

// ComposerConfig holds the display-side configuration. Symbol aliases are
// cosmetic only; they never touch amounts or classification.
type ComposerConfig struct {
	Tracked         model.TokenMeta
	Counter         model.TokenMeta
	SymbolAliases   map[string]string
	ExplorerTxURL   string
	ExplorerAddrURL string
}

// Composer assembles buy alerts into Telegram HTML messages. Pure string
// assembly; all free text is escaped for HTML.
type Composer struct {
	cfg ComposerConfig
}

// NewComposer builds a composer.
func NewComposer(cfg ComposerConfig) *Composer {
	return &Composer{cfg: cfg}
}

// Compose renders the alert message.
func (c *Composer) Compose(a Alert) string {
	trackedSym := html.EscapeString(c.displaySymbol(c.cfg.Tracked.Symbol))
	counterSym := html.EscapeString(c.displaySymbol(c.cfg.Counter.Symbol))

	var b strings.Builder

	fmt.Fprintf(&b, "🐸 <b>%s BUY!</b>\n", trackedSym)

	if a.Indicator != "" {
		b.WriteString(a.Indicator)
		b.WriteByte('\n')
	}

	amount := a.Label
	if amount == "" {
		amount = a.TrackedText
	}
	fmt.Fprintf(&b, "💰 <b>%s %s</b>\n", html.EscapeString(amount), trackedSym)
	fmt.Fprintf(&b, "💸 Spent: %s %s\n", html.EscapeString(a.CounterText), counterSym)

	if a.TierBadge != "" {
		fmt.Fprintf(&b, "🏅 %s\n", html.EscapeString(a.TierBadge))
	}

	actorLabel := "Recipient"
	if a.Event.BuyerResolved {
		actorLabel = "Buyer"
	}
	actor := a.Event.Buyer.Hex()
	if c.cfg.ExplorerAddrURL != "" {
		fmt.Fprintf(&b, "👤 %s: <a href=\"%s\">%s</a>\n", actorLabel, fmt.Sprintf(c.cfg.ExplorerAddrURL, actor), shortHex(actor))
	} else {
		fmt.Fprintf(&b, "👤 %s: %s\n", actorLabel, shortHex(actor))
	}

	tx := a.Event.TxHash.Hex()
	if c.cfg.ExplorerTxURL != "" {
		fmt.Fprintf(&b, "🔗 <a href=\"%s\">Tx</a>", fmt.Sprintf(c.cfg.ExplorerTxURL, tx))
	} else {
		fmt.Fprintf(&b, "🔗 %s", tx)
	}

	return b.String()
}

func (c *Composer) displaySymbol(symbol string) string {
	if alias, ok := c.cfg.SymbolAliases[symbol]; ok {
		return alias
	}
	return symbol
}

func shortHex(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}
