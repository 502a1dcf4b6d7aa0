package core

import (
	"encoding/json"
	"errors"
	"time"
)

// SnapshotVersion tags the export artifact format. Version 2.0 is the format
// the stored collections already use; bump only on a breaking shape change.
const SnapshotVersion = "2.0"

// Snapshot is the full application state as a versioned backup/restore
// document. It is the sole interchange format.
type Snapshot struct {
	Orders     []Order         `json:"orders"`
	Statuses   []MonthlyStatus `json:"statuses"`
	ExportDate string          `json:"exportDate"`
	Version    string          `json:"version"`
}

var ErrMalformedSnapshot = errors.New("malformed snapshot: missing orders or statuses")

// NewSnapshot captures both collections with a timestamp and format version.
func NewSnapshot(orders []Order, statuses []MonthlyStatus, now time.Time) Snapshot {
	if orders == nil {
		orders = []Order{}
	}
	if statuses == nil {
		statuses = []MonthlyStatus{}
	}
	return Snapshot{
		Orders:     orders,
		Statuses:   statuses,
		ExportDate: now.UTC().Format(time.RFC3339),
		Version:    SnapshotVersion,
	}
}

// Encode serializes the snapshot as indented JSON, the shape the original
// backups use.
func (s Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// DecodeSnapshot parses a backup document. Unknown extra fields are
// tolerated; a document missing (or nulling) the orders or statuses array is
// rejected with ErrMalformedSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var aux struct {
		Orders     *[]Order         `json:"orders"`
		Statuses   *[]MonthlyStatus `json:"statuses"`
		ExportDate string           `json:"exportDate"`
		Version    string           `json:"version"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return Snapshot{}, err
	}
	if aux.Orders == nil || aux.Statuses == nil {
		return Snapshot{}, ErrMalformedSnapshot
	}
	return Snapshot{
		Orders:     *aux.Orders,
		Statuses:   *aux.Statuses,
		ExportDate: aux.ExportDate,
		Version:    aux.Version,
	}, nil
}
