package model

import "github.com/ethereum/go-ethereum/common"

// PairMeta captures immutable pair metadata resolved once at startup.
type PairMeta struct {
	PairAddress     common.Address
	Token0          common.Address
	Token1          common.Address
	TrackedIsToken0 bool
}

// TrackedToken returns the address of the tracked token.
func (m PairMeta) TrackedToken() common.Address {
	if m.TrackedIsToken0 {
		return m.Token0
	}
	return m.Token1
}

// CounterToken returns the address of the non-tracked token in the pair.
func (m PairMeta) CounterToken() common.Address {
	if m.TrackedIsToken0 {
		return m.Token1
	}
	return m.Token0
}
