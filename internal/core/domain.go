package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusPending  Status = "pending"
	StatusInvoiced Status = "invoiced"
	StatusPaid     Status = "paid"
)

type (
	// Status is the payment state of a calendar month. Absence of a record
	// for a month means StatusPending.
	Status string

	// Board is one line item inside an order. Boards are owned by their
	// order and have no independent lifecycle.
	Board struct {
		ID            string `json:"id"`
		Name          string `json:"name,omitempty"`
		PositionCount int    `json:"positionCount"`
	}

	// Order is one finalized work order. The board list is fixed at
	// creation time; TotalPositions is recomputed from it and never edited
	// independently.
	Order struct {
		ID             string  `json:"id"`
		Date           string  `json:"date"` // YYYY-MM-DD
		OrderNumber    string  `json:"orderNumber"`
		SubItem        string  `json:"subItem"` // kept for stored-data compatibility
		InternalID     string  `json:"internalId"`
		Branch         string  `json:"branch"`
		Region         string  `json:"region"`
		Boards         []Board `json:"boards"`
		TotalPositions int     `json:"totalPositions"`
		Observation    string  `json:"observation,omitempty"`
		CreatedAt      int64   `json:"createdAt"` // epoch milliseconds
	}

	// MonthlyStatus is the payment state for one calendar month.
	// At most one record exists per month key.
	MonthlyStatus struct {
		MonthKey string `json:"monthKey"` // YYYY-MM
		Status   Status `json:"status"`
	}
)

var (
	ErrEmptyOrderNumber = errors.New("empty order number")
	ErrNoBoards         = errors.New("order has no boards")
	ErrInvalidPositions = errors.New("invalid position count")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidStatus    = errors.New("invalid status")
)

// Next advances the status along the fixed cycle
// pending -> invoiced -> paid -> pending. Paid is not terminal; the status is
// a recurring monthly label, so it wraps back to pending.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusInvoiced
	case StatusInvoiced:
		return StatusPaid
	default:
		return StatusPending
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInvoiced, StatusPaid:
		return true
	}
	return false
}

// ParseStatus validates boundary input against the closed status set.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.TrimSpace(strings.ToLower(s)))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (b Board) Validate() error {
	if b.PositionCount <= 0 {
		return ErrInvalidPositions
	}
	return nil
}

func (o Order) Validate() error {
	if strings.TrimSpace(o.OrderNumber) == "" {
		return ErrEmptyOrderNumber
	}
	if _, err := time.Parse("2006-01-02", o.Date); err != nil {
		return ErrInvalidDate
	}
	if len(o.Boards) == 0 {
		return ErrNoBoards
	}
	for _, b := range o.Boards {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MonthKey returns the YYYY-MM grouping key of the order's date.
func (o Order) MonthKey() string {
	return MonthKeyOf(o.Date)
}

// MonthKeyOf extracts the YYYY-MM prefix of a YYYY-MM-DD date string.
func MonthKeyOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// ValidMonthKey reports whether s is a well-formed YYYY-MM month key.
func ValidMonthKey(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil
}

// DaysInMonth returns the number of calendar days in the month identified by
// a YYYY-MM key, or 0 if the key is malformed.
func DaysInMonth(monthKey string) int {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return 0
	}
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsValidation reports whether err belongs to the creation-precondition
// error family, as opposed to infrastructure failures.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrEmptyOrderNumber, ErrNoBoards, ErrInvalidPositions,
		ErrInvalidDate, ErrInvalidStatus,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
