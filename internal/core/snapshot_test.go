package core

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestSnapshotRoundTrip(t *testing.T) {
	orders := []Order{
		{
			ID:          "a1",
			Date:        "2024-06-01",
			OrderNumber: "4500123",
			InternalID:  "X-1",
			Branch:      "SPE",
			Region:      "SUDESTE",
			Boards: []Board{
				{ID: "b1", Name: "Prancha 1", PositionCount: 5},
				{ID: "b2", PositionCount: 3},
			},
			TotalPositions: 8,
			Observation:    "entrega parcial",
			CreatedAt:      1717200000000,
		},
	}
	statuses := []MonthlyStatus{{MonthKey: "2024-06", Status: StatusInvoiced}}

	snap := NewSnapshot(orders, statuses, time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))
	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got.Orders, orders) {
		t.Fatalf("orders did not round-trip:\n got %+v\nwant %+v", got.Orders, orders)
	}
	if !reflect.DeepEqual(got.Statuses, statuses) {
		t.Fatalf("statuses did not round-trip:\n got %+v\nwant %+v", got.Statuses, statuses)
	}
	if got.Version != SnapshotVersion {
		t.Fatalf("version = %q, want %q", got.Version, SnapshotVersion)
	}
	if got.ExportDate != "2024-07-01T12:00:00Z" {
		t.Fatalf("exportDate = %q", got.ExportDate)
	}
}

func TestDecodeSnapshotToleratesUnknownFields(t *testing.T) {
	doc := `{"orders":[],"statuses":[],"exportDate":"2024-07-01T00:00:00Z","version":"2.0","device":"tablet"}`
	snap, err := DecodeSnapshot([]byte(doc))
	if err != nil {
		t.Fatalf("unknown fields should be tolerated: %v", err)
	}
	if len(snap.Orders) != 0 || len(snap.Statuses) != 0 {
		t.Fatalf("expected empty collections, got %+v", snap)
	}
}

func TestDecodeSnapshotRejectsMissingCollections(t *testing.T) {
	cases := []string{
		`{"statuses":[],"version":"2.0"}`,
		`{"orders":[],"version":"2.0"}`,
		`{"orders":null,"statuses":[],"version":"2.0"}`,
		`{}`,
	}
	for _, doc := range cases {
		if _, err := DecodeSnapshot([]byte(doc)); !errors.Is(err, ErrMalformedSnapshot) {
			t.Fatalf("doc %s: expected ErrMalformedSnapshot, got %v", doc, err)
		}
	}
	if _, err := DecodeSnapshot([]byte("not json")); err == nil {
		t.Fatalf("expected parse error for invalid JSON")
	}
}

func TestNewSnapshotNeverNil(t *testing.T) {
	snap := NewSnapshot(nil, nil, time.Now())
	if snap.Orders == nil || snap.Statuses == nil {
		t.Fatalf("collections must encode as [] rather than null: %+v", snap)
	}
}
