package pair

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"swampwatch/internal/model"
)

// ContractCaller performs read-only contract calls.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// ResolvePairMeta loads token0/token1 from the pair contract and determines
// which slot holds the tracked token. The tracked token not being part of
// the pair is a configuration error and fatal to the caller.
func ResolvePairMeta(ctx context.Context, caller ContractCaller, pairAddr, tracked common.Address, maxRetries int, retryBackoff time.Duration) (model.PairMeta, error) {
	if caller == nil {
		return model.PairMeta{}, fmt.Errorf("contract caller is nil")
	}

	pairABI, err := V2PairABI()
	if err != nil {
		return model.PairMeta{}, fmt.Errorf("parse pair abi: %w", err)
	}

	var token0, token1 common.Address
	err = withRetry(ctx, maxRetries, retryBackoff, func(ctx context.Context) error {
		values, err := callMethod(ctx, caller, pairAddr, pairABI, "token0")
		if err != nil {
			return err
		}
		if token0, err = asAddress(values[0]); err != nil {
			return fmt.Errorf("token0: %w", err)
		}

		values, err = callMethod(ctx, caller, pairAddr, pairABI, "token1")
		if err != nil {
			return err
		}
		if token1, err = asAddress(values[0]); err != nil {
			return fmt.Errorf("token1: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.PairMeta{}, fmt.Errorf("resolve pair tokens: %w", err)
	}

	meta := model.PairMeta{
		PairAddress: pairAddr,
		Token0:      token0,
		Token1:      token1,
	}

	switch tracked {
	case token0:
		meta.TrackedIsToken0 = true
	case token1:
		meta.TrackedIsToken0 = false
	default:
		return model.PairMeta{}, fmt.Errorf("tracked token %s is not part of pair %s (token0=%s token1=%s)",
			tracked.Hex(), pairAddr.Hex(), token0.Hex(), token1.Hex())
	}

	return meta, nil
}

// ResolveTokenMeta loads ERC20 decimals and symbol for a token. Lookup
// failures substitute the documented defaults field by field and never
// surface as errors; Resolved is false when any default was applied.
func ResolveTokenMeta(ctx context.Context, caller ContractCaller, token common.Address, logger *zap.Logger) model.TokenMeta {
	if logger == nil {
		logger = zap.NewNop()
	}

	meta := model.TokenMeta{Address: token, Resolved: true}

	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		logger.Warn("erc20 abi parse failed, using token defaults", zap.Error(err))
		return model.DefaultTokenMeta(token)
	}

	if values, err := callMethod(ctx, caller, token, stringABI, "decimals"); err == nil {
		if decimals, err := asUint8(values[0]); err == nil {
			meta.Decimals = decimals
		} else {
			logger.Warn("decimals decode failed", zap.String("token", token.Hex()), zap.Error(err))
			meta.Decimals = model.DefaultTokenDecimals
			meta.Resolved = false
		}
	} else {
		logger.Warn("decimals call failed", zap.String("token", token.Hex()), zap.Error(err))
		meta.Decimals = model.DefaultTokenDecimals
		meta.Resolved = false
	}

	meta.Symbol = resolveSymbol(ctx, caller, token, stringABI, logger)
	if meta.Symbol == "" {
		meta.Symbol = model.DefaultTokenSymbol
		meta.Resolved = false
	}

	return meta
}

func resolveSymbol(ctx context.Context, caller ContractCaller, token common.Address, stringABI abi.ABI, logger *zap.Logger) string {
	if values, err := callMethod(ctx, caller, token, stringABI, "symbol"); err == nil {
		if symbol, ok := values[0].(string); ok {
			return symbol
		}
	}

	// Some older tokens expose symbol() as bytes32.
	bytes32ABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return ""
	}
	if values, err := callMethod(ctx, caller, token, bytes32ABI, "symbol"); err == nil {
		if symbol, ok := bytes32ToString(values[0]); ok {
			return symbol
		}
	} else {
		logger.Debug("symbol call failed", zap.String("token", token.Hex()), zap.Error(err))
	}
	return ""
}

func callMethod(ctx context.Context, caller ContractCaller, target common.Address, parsed abi.ABI, method string) ([]interface{}, error) {
	data, err := parsed.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &target, Data: data}
	resp, err := caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s returned no values", method)
	}
	return values, nil
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case uint16:
		return uint8(v), nil
	case uint32:
		return uint8(v), nil
	case uint64:
		return uint8(v), nil
	case *big.Int:
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}
