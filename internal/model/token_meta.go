package model

import "github.com/ethereum/go-ethereum/common"

// Defaults substituted when on-chain metadata resolution fails.
const (
	DefaultTokenDecimals uint8  = 18
	DefaultTokenSymbol   string = "TOKEN"
)

// TokenMeta captures ERC20 metadata. Resolved is false when the defaults
// were substituted because the on-chain lookup failed.
type TokenMeta struct {
	Address  common.Address
	Decimals uint8
	Symbol   string
	Resolved bool
}

// DefaultTokenMeta returns the documented fallback metadata for a token.
func DefaultTokenMeta(address common.Address) TokenMeta {
	return TokenMeta{
		Address:  address,
		Decimals: DefaultTokenDecimals,
		Symbol:   DefaultTokenSymbol,
		Resolved: false,
	}
}
