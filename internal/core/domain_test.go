package core

import (
	"errors"
	"testing"
)

func TestOrderValidate(t *testing.T) {
	good := Order{
		OrderNumber: "4500123",
		Date:        "2024-06-01",
		Boards:      []Board{{PositionCount: 5}},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		o    Order
		want error
	}{
		{"blank order number", Order{OrderNumber: "  ", Date: "2024-06-01", Boards: []Board{{PositionCount: 1}}}, ErrEmptyOrderNumber},
		{"no boards", Order{OrderNumber: "1", Date: "2024-06-01"}, ErrNoBoards},
		{"zero positions", Order{OrderNumber: "1", Date: "2024-06-01", Boards: []Board{{PositionCount: 0}}}, ErrInvalidPositions},
		{"negative positions", Order{OrderNumber: "1", Date: "2024-06-01", Boards: []Board{{PositionCount: -3}}}, ErrInvalidPositions},
		{"bad date", Order{OrderNumber: "1", Date: "01/06/2024", Boards: []Board{{PositionCount: 1}}}, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.o.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestStatusCycle(t *testing.T) {
	if got := StatusPending.Next(); got != StatusInvoiced {
		t.Fatalf("pending should advance to invoiced, got %s", got)
	}
	if got := StatusInvoiced.Next(); got != StatusPaid {
		t.Fatalf("invoiced should advance to paid, got %s", got)
	}
	if got := StatusPaid.Next(); got != StatusPending {
		t.Fatalf("paid should wrap to pending, got %s", got)
	}

	// Period-3 cycle: three advances return to the start for any status.
	for _, s := range []Status{StatusPending, StatusInvoiced, StatusPaid} {
		if got := s.Next().Next().Next(); got != s {
			t.Fatalf("cycle of %s should have period 3, got %s", s, got)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if st, err := ParseStatus(" Paid "); err != nil || st != StatusPaid {
		t.Fatalf("expected paid, got %q err %v", st, err)
	}
	if _, err := ParseStatus("done"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestMonthKeyOf(t *testing.T) {
	if got := MonthKeyOf("2024-06-15"); got != "2024-06" {
		t.Fatalf("expected 2024-06, got %s", got)
	}
	if got := MonthKeyOf("short"); got != "short" {
		t.Fatalf("short input should pass through, got %s", got)
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		key  string
		want int
	}{
		{"2024-02", 29}, // leap year
		{"2025-02", 28},
		{"2024-03", 31},
		{"2024-04", 30},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.key); got != tc.want {
			t.Fatalf("DaysInMonth(%s) = %d, want %d", tc.key, got, tc.want)
		}
	}
}
