package pair

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"swampwatch/internal/model"
)

func buildSwapLog(t *testing.T, amount0In, amount1In, amount0Out, amount1Out *big.Int) types.Log {
	t.Helper()

	pairABI, err := V2PairABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}

	data, err := pairABI.Events["Swap"].Inputs.NonIndexed().Pack(
		amount0In, amount1In, amount0Out, amount1Out,
	)
	if err != nil {
		t.Fatalf("pack swap: %v", err)
	}

	sender := common.HexToAddress("0x2222222222222222222222222222222222222222")
	recipient := common.HexToAddress("0x3333333333333333333333333333333333333333")

	return types.Log{
		Address:     common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Topics:      []common.Hash{pairABI.Events["Swap"].ID, common.BytesToHash(sender.Bytes()), common.BytesToHash(recipient.Bytes())},
		Data:        data,
		BlockNumber: 12345,
		TxHash:      common.HexToHash("0xdeadbeef"),
		Index:       7,
	}
}

func TestDecodeSwapLog(t *testing.T) {
	decoder, err := NewSwapDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	log := buildSwapLog(t, big.NewInt(0), big.NewInt(10), big.NewInt(500), big.NewInt(0))
	if !decoder.CanDecode(log) {
		t.Fatalf("swap log should be decodable")
	}

	rec, err := decoder.DecodeSwapLog(log)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if rec.Amount0In.Sign() != 0 || rec.Amount1In.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("in amounts mismatch: %+v", rec)
	}
	if rec.Amount0Out.Cmp(big.NewInt(500)) != 0 || rec.Amount1Out.Sign() != 0 {
		t.Fatalf("out amounts mismatch: %+v", rec)
	}
	if rec.BlockNumber != 12345 || rec.LogIndex != 7 {
		t.Fatalf("position mismatch: %+v", rec)
	}
	if rec.Recipient != common.HexToAddress("0x3333333333333333333333333333333333333333") {
		t.Fatalf("recipient mismatch: %s", rec.Recipient.Hex())
	}
}

func TestDecodeSwapLogRejectsForeignTopic(t *testing.T) {
	decoder, err := NewSwapDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	log := buildSwapLog(t, big.NewInt(0), big.NewInt(1), big.NewInt(2), big.NewInt(0))
	log.Topics[0] = common.HexToHash("0xabcdef")

	if decoder.CanDecode(log) {
		t.Fatalf("foreign topic should not be decodable")
	}
	if _, err := decoder.DecodeSwapLog(log); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestClassifyBuyTrackedFirstSlot(t *testing.T) {
	meta := model.PairMeta{TrackedIsToken0: true}
	rec := model.SwapRecord{
		Amount0In:  big.NewInt(0),
		Amount1In:  big.NewInt(10),
		Amount0Out: big.NewInt(500),
		Amount1Out: big.NewInt(0),
		Recipient:  common.HexToAddress("0x3333333333333333333333333333333333333333"),
		TxHash:     common.HexToHash("0xdeadbeef"),
	}

	ev, ok := ClassifyBuy(rec, meta)
	if !ok {
		t.Fatalf("expected a buy")
	}
	if ev.TrackedRaw.Cmp(big.NewInt(500)) != 0 {
		t.Fatalf("tracked raw = %s, want 500", ev.TrackedRaw)
	}
	if ev.CounterRaw.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("counter raw = %s, want 10", ev.CounterRaw)
	}
	if ev.BuyerResolved {
		t.Fatalf("buyer should not be marked resolved by classification")
	}
	if ev.Buyer != rec.Recipient {
		t.Fatalf("buyer should default to recipient")
	}
}

func TestClassifyBuyZeroTrackedOut(t *testing.T) {
	meta := model.PairMeta{TrackedIsToken0: true}
	rec := model.SwapRecord{
		Amount0In:  big.NewInt(500),
		Amount1In:  big.NewInt(0),
		Amount0Out: big.NewInt(0),
		Amount1Out: big.NewInt(10),
	}

	if _, ok := ClassifyBuy(rec, meta); ok {
		t.Fatalf("tracked-out of zero must not be a buy")
	}
}

func TestClassifyBuySecondSlot(t *testing.T) {
	meta := model.PairMeta{TrackedIsToken0: false}
	rec := model.SwapRecord{
		Amount0In:  big.NewInt(50),
		Amount1In:  big.NewInt(0),
		Amount0Out: big.NewInt(0),
		Amount1Out: big.NewInt(3000),
	}

	ev, ok := ClassifyBuy(rec, meta)
	if !ok {
		t.Fatalf("expected a buy")
	}
	if ev.TrackedRaw.Cmp(big.NewInt(3000)) != 0 {
		t.Fatalf("tracked raw = %s, want 3000", ev.TrackedRaw)
	}
	if ev.CounterRaw.Cmp(big.NewInt(50)) != 0 {
		t.Fatalf("counter raw = %s, want 50", ev.CounterRaw)
	}
}

func TestClassifyBuyNoCounterAccounting(t *testing.T) {
	// Pool paying out with both In amounts zero is still a buy, spent = 0.
	meta := model.PairMeta{TrackedIsToken0: true}
	rec := model.SwapRecord{
		Amount0In:  big.NewInt(0),
		Amount1In:  big.NewInt(0),
		Amount0Out: big.NewInt(700),
		Amount1Out: big.NewInt(0),
	}

	ev, ok := ClassifyBuy(rec, meta)
	if !ok {
		t.Fatalf("expected a buy")
	}
	if ev.CounterRaw.Sign() != 0 {
		t.Fatalf("counter raw = %s, want 0", ev.CounterRaw)
	}
}

func TestClassifyBuyNilAmounts(t *testing.T) {
	meta := model.PairMeta{TrackedIsToken0: true}
	rec := model.SwapRecord{Amount0Out: big.NewInt(42)}

	ev, ok := ClassifyBuy(rec, meta)
	if !ok {
		t.Fatalf("expected a buy")
	}
	if ev.CounterRaw.Sign() != 0 {
		t.Fatalf("nil counter-in should read as zero")
	}
}
