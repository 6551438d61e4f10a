package watcher

import "testing"

func TestScanRangeLagsHead(t *testing.T) {
	got, ok := ScanRange(1000, 2, 990)
	if !ok {
		t.Fatalf("expected a range")
	}
	want := BlockRange{From: 991, To: 998}
	if got != want {
		t.Fatalf("range = %+v, want %+v", got, want)
	}
}

func TestScanRangeNothingConfirmed(t *testing.T) {
	if _, ok := ScanRange(1000, 2, 998); ok {
		t.Fatalf("cursor at confirmed head should yield no range")
	}
	if _, ok := ScanRange(1000, 2, 999); ok {
		t.Fatalf("cursor past confirmed head should yield no range")
	}
}

func TestScanRangeGenesisClamp(t *testing.T) {
	// Near genesis the confirmation lag cannot go below block zero.
	got, ok := ScanRange(1, 5, 0)
	if !ok {
		t.Fatalf("expected a range")
	}
	want := BlockRange{From: 1, To: 1}
	if got != want {
		t.Fatalf("range = %+v, want %+v", got, want)
	}
}

func TestScanRangeZeroConfirmations(t *testing.T) {
	got, ok := ScanRange(100, 0, 95)
	if !ok {
		t.Fatalf("expected a range")
	}
	if got.To != 100 {
		t.Fatalf("to = %d, want head", got.To)
	}
}
