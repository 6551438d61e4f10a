package model

// AlertRecord is the journal row written for every composed alert. Raw
// amounts are kept as decimal strings so history survives JSON round-trips
// without precision loss.
type AlertRecord struct {
	BlockNumber   uint64 `json:"block_number"`
	TxHash        string `json:"tx_hash"`
	LogIndex      uint64 `json:"log_index"`
	Buyer         string `json:"buyer"`
	BuyerResolved bool   `json:"buyer_resolved"`
	Recipient     string `json:"recipient"`
	TrackedRaw    string `json:"tracked_raw"`
	CounterRaw    string `json:"counter_raw"`
	TrackedHuman  string `json:"tracked_human"`
	CounterHuman  string `json:"counter_human"`
	Tier          string `json:"tier"`
	Delivered     bool   `json:"delivered"`
	CreatedAt     string `json:"created_at"`
}
