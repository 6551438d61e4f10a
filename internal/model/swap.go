package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SwapRecord is a raw decoded pair Swap event. Amounts are unsigned integers
// in each token's smallest unit; a nil amount reads as zero.
type SwapRecord struct {
	BlockNumber uint64
	TxHash      common.Hash
	LogIndex    uint
	Sender      common.Address
	Recipient   common.Address
	Amount0In   *big.Int
	Amount1In   *big.Int
	Amount0Out  *big.Int
	Amount1Out  *big.Int
}

// BuyEvent is a swap classified as a buy of the tracked token. Buyer is the
// transaction initiator when it could be resolved, otherwise the event
// recipient with BuyerResolved false.
type BuyEvent struct {
	TrackedRaw    *big.Int
	CounterRaw    *big.Int
	Buyer         common.Address
	BuyerResolved bool
	Recipient     common.Address
	TxHash        common.Hash
	BlockNumber   uint64
	LogIndex      uint
}
