package pair

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"swampwatch/internal/model"
)

// SwapDecoder decodes V2 pair Swap logs into swap records.
type SwapDecoder struct {
	pairABI   abi.ABI
	swapTopic common.Hash
}

// NewSwapDecoder builds a swap decoder.
func NewSwapDecoder() (*SwapDecoder, error) {
	pairABI, err := V2PairABI()
	if err != nil {
		return nil, err
	}
	return &SwapDecoder{
		pairABI:   pairABI,
		swapTopic: pairABI.Events["Swap"].ID,
	}, nil
}

// CanDecode checks whether the log carries the pair Swap topic.
func (d *SwapDecoder) CanDecode(log types.Log) bool {
	return len(log.Topics) > 0 && log.Topics[0] == d.swapTopic
}

// DecodeSwapLog converts a raw chain log into a SwapRecord.
func (d *SwapDecoder) DecodeSwapLog(log types.Log) (model.SwapRecord, error) {
	event := d.pairABI.Events["Swap"]
	if len(log.Topics) == 0 || log.Topics[0] != event.ID {
		return model.SwapRecord{}, fmt.Errorf("not a swap log")
	}
	if len(log.Topics) != 3 {
		return model.SwapRecord{}, fmt.Errorf("expected 3 topics, got %d", len(log.Topics))
	}

	var indexed struct {
		Sender common.Address
		To     common.Address
	}
	if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), log.Topics[1:]); err != nil {
		return model.SwapRecord{}, fmt.Errorf("parse topics: %w", err)
	}

	values, err := event.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil {
		return model.SwapRecord{}, fmt.Errorf("unpack swap: %w", err)
	}
	if len(values) != 4 {
		return model.SwapRecord{}, fmt.Errorf("unexpected swap values: %d", len(values))
	}

	amounts := make([]*big.Int, 4)
	for i, value := range values {
		amount, err := asBigInt(value)
		if err != nil {
			return model.SwapRecord{}, fmt.Errorf("swap amount %d: %w", i, err)
		}
		amounts[i] = amount
	}

	return model.SwapRecord{
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash,
		LogIndex:    log.Index,
		Sender:      indexed.Sender,
		Recipient:   indexed.To,
		Amount0In:   amounts[0],
		Amount1In:   amounts[1],
		Amount0Out:  amounts[2],
		Amount1Out:  amounts[3],
	}, nil
}

// ClassifyBuy determines whether the swap is a buy of the tracked token. A
// buy is the tracked token leaving the pool: the tracked slot's Out amount
// is positive. The counter slot's In amount is what was spent; absent
// accounting reads as zero rather than failing.
func ClassifyBuy(rec model.SwapRecord, meta model.PairMeta) (model.BuyEvent, bool) {
	trackedOut := rec.Amount0Out
	counterIn := rec.Amount1In
	if !meta.TrackedIsToken0 {
		trackedOut = rec.Amount1Out
		counterIn = rec.Amount0In
	}

	if trackedOut == nil || trackedOut.Sign() <= 0 {
		return model.BuyEvent{}, false
	}
	if counterIn == nil {
		counterIn = new(big.Int)
	}

	return model.BuyEvent{
		TrackedRaw:  new(big.Int).Set(trackedOut),
		CounterRaw:  new(big.Int).Set(counterIn),
		Buyer:       rec.Recipient,
		Recipient:   rec.Recipient,
		TxHash:      rec.TxHash,
		BlockNumber: rec.BlockNumber,
		LogIndex:    rec.LogIndex,
	}, true
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	indexed := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}
