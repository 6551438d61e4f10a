package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"swampwatch/internal/classify"
)

// Config holds configuration values loaded from flags, env, or config file.
// Built once at startup and passed around immutably; no ambient globals.
type Config struct {
	RPCURL        string
	PairAddress   common.Address
	TokenAddress  common.Address
	PollInterval  time.Duration
	Confirmations uint64

	TelegramToken string
	TelegramChat  string

	Thresholds classify.Thresholds
	Indicator  classify.IndicatorConfig

	SymbolAliases   map[string]string
	ExplorerTxURL   string
	ExplorerAddrURL string

	JournalPath string
	PostgresDSN string

	MaxRetries   int
	RetryBackoff time.Duration
	LogLevel     string
}

// Load merges config file, environment variables, and flags into Config and
// validates the parts that are fatal when wrong.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SWAMPWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := classify.DefaultThresholds()
	indicator := classify.DefaultIndicatorConfig()

	v.SetDefault("poll-interval", 6*time.Second)
	v.SetDefault("confirmations", uint64(2))
	v.SetDefault("tier-tadpole", defaults.Tadpole)
	v.SetDefault("tier-small-guy", defaults.SmallGuy)
	v.SetDefault("tier-swamp-boss", defaults.SwampBoss)
	v.SetDefault("tier-frog-king", defaults.FrogKing)
	v.SetDefault("indicator-strategy", indicator.Strategy)
	v.SetDefault("indicator-step", indicator.Step)
	v.SetDefault("indicator-max", indicator.MaxUnits)
	v.SetDefault("ladder-base", indicator.Base)
	v.SetDefault("ladder-slots", indicator.Slots)
	v.SetDefault("explorer-tx", "https://bscscan.com/tx/%s")
	v.SetDefault("explorer-address", "https://bscscan.com/address/%s")
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	pairAddr, err := parseAddress(v.GetString("pair"), "pair")
	if err != nil {
		return Config{}, err
	}
	tokenAddr, err := parseAddress(v.GetString("token"), "token")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		RPCURL:        v.GetString("rpc"),
		PairAddress:   pairAddr,
		TokenAddress:  tokenAddr,
		PollInterval:  v.GetDuration("poll-interval"),
		Confirmations: v.GetUint64("confirmations"),
		TelegramToken: v.GetString("telegram-token"),
		TelegramChat:  v.GetString("telegram-chat"),
		Thresholds: classify.Thresholds{
			Tadpole:   v.GetFloat64("tier-tadpole"),
			SmallGuy:  v.GetFloat64("tier-small-guy"),
			SwampBoss: v.GetFloat64("tier-swamp-boss"),
			FrogKing:  v.GetFloat64("tier-frog-king"),
		},
		Indicator: classify.IndicatorConfig{
			Strategy: v.GetString("indicator-strategy"),
			Step:     v.GetFloat64("indicator-step"),
			MaxUnits: v.GetInt("indicator-max"),
			Base:     v.GetFloat64("ladder-base"),
			Slots:    v.GetInt("ladder-slots"),
			Filled:   indicator.Filled,
			Empty:    indicator.Empty,
		},
		SymbolAliases:   getStringMap(v, "symbol-alias"),
		ExplorerTxURL:   v.GetString("explorer-tx"),
		ExplorerAddrURL: v.GetString("explorer-address"),
		JournalPath:     v.GetString("journal"),
		PostgresDSN:     v.GetString("pg-dsn"),
		MaxRetries:      v.GetInt("max-retries"),
		RetryBackoff:    v.GetDuration("retry-backoff"),
		LogLevel:        v.GetString("log-level"),
	}

	if cfg.RPCURL == "" {
		return Config{}, fmt.Errorf("rpc url is required")
	}
	if cfg.PollInterval <= 0 {
		return Config{}, fmt.Errorf("poll interval must be positive")
	}
	switch cfg.Indicator.Strategy {
	case classify.StrategyLinear, classify.StrategyLadder:
	default:
		return Config{}, fmt.Errorf("unknown indicator strategy: %s", cfg.Indicator.Strategy)
	}

	return cfg, nil
}

func parseAddress(input, name string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return common.Address{}, fmt.Errorf("%s address is required", name)
	}
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid %s address: %s", name, input)
	}
	return common.HexToAddress(input), nil
}

func getStringMap(v *viper.Viper, key string) map[string]string {
	if !v.IsSet(key) {
		return map[string]string{}
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case map[string]string:
		return typed
	case map[string]interface{}:
		out := make(map[string]string, len(typed))
		for k, item := range typed {
			out[k] = fmt.Sprintf("%v", item)
		}
		return out
	case string:
		return parseStringMap(typed)
	default:
		return map[string]string{}
	}
}

func parseStringMap(input string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(input) == "" {
		return out
	}
	pairs := strings.Split(input, ",")
	for _, entry := range pairs {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}
