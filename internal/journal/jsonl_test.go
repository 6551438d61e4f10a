package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"swampwatch/internal/model"
)

func sampleRecord(block uint64) model.AlertRecord {
	return model.AlertRecord{
		BlockNumber:   block,
		TxHash:        "0xdeadbeef",
		LogIndex:      7,
		Buyer:         "0x4444444444444444444444444444444444444444",
		BuyerResolved: true,
		Recipient:     "0x3333333333333333333333333333333333333333",
		TrackedRaw:    "3000000000000000000000",
		CounterRaw:    "250000000000000000",
		TrackedHuman:  "3000",
		CounterHuman:  "0.25",
		Tier:          "SmallGuy",
		Delivered:     true,
		CreatedAt:     "2026-08-30T12:00:00Z",
	}
}

func TestJSONLAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts", "journal.jsonl")
	j := NewJSONL(path)

	for i := uint64(0); i < 3; i++ {
		if err := j.Append(sampleRecord(990 + i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer file.Close()

	var read []model.AlertRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var rec model.AlertRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line %d: %v", len(read), err)
		}
		read = append(read, rec)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(read) != 3 {
		t.Fatalf("read %d records, want 3", len(read))
	}
	for i, rec := range read {
		if rec.BlockNumber != 990+uint64(i) {
			t.Fatalf("record %d block = %d", i, rec.BlockNumber)
		}
	}
	if read[0].TrackedRaw != "3000000000000000000000" {
		t.Fatalf("raw amount lost precision: %q", read[0].TrackedRaw)
	}
	if read[0].Tier != "SmallGuy" || !read[0].Delivered {
		t.Fatalf("record fields mismatch: %+v", read[0])
	}
}

type countingJournal struct {
	appends int
	err     error
}

func (c *countingJournal) Append(_ model.AlertRecord) error {
	c.appends++
	return c.err
}

func TestMultiFansOut(t *testing.T) {
	first := &countingJournal{}
	second := &countingJournal{}

	m := NewMulti(first, second)
	if err := m.Append(sampleRecord(990)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if first.appends != 1 || second.appends != 1 {
		t.Fatalf("appends = %d/%d, want 1/1", first.appends, second.appends)
	}
}

func TestMultiKeepsGoingOnFailure(t *testing.T) {
	first := &countingJournal{err: fmt.Errorf("disk full")}
	second := &countingJournal{}

	m := NewMulti(first, second)
	err := m.Append(sampleRecord(990))
	if err == nil {
		t.Fatalf("expected the first journal's error to surface")
	}
	if second.appends != 1 {
		t.Fatalf("second journal should still be written")
	}
}
