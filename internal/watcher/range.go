package watcher

// BlockRange represents an inclusive block range.
type BlockRange struct {
	From uint64
	To   uint64
}

// ScanRange computes the next confirmed range to scan. The upper bound lags
// the head by the confirmation depth, clamped so chains near genesis never
// produce a negative range. Returns false when no new confirmed blocks exist
// past the cursor, in which case the log source must not be contacted.
func ScanRange(head, confirmations, cursor uint64) (BlockRange, bool) {
	toBlock := head
	if head > confirmations {
		toBlock = head - confirmations
	}

	fromBlock := cursor + 1
	if fromBlock > toBlock {
		return BlockRange{}, false
	}
	return BlockRange{From: fromBlock, To: toBlock}, true
}
