package core

import (
	"fmt"
	"sort"
)

type (
	// DayRevenue is one point of the daily revenue series.
	DayRevenue struct {
		Day       int
		Positions int
		Revenue   Money
	}

	// MonthGroup is one bucket of the by-month partition of the order
	// collection.
	MonthGroup struct {
		MonthKey       string
		TotalPositions int
		Orders         []Order
	}
)

// FilterByMonth returns the orders whose date falls in the given YYYY-MM
// month, preserving input order.
func FilterByMonth(orders []Order, monthKey string) []Order {
	var out []Order
	for _, o := range orders {
		if o.MonthKey() == monthKey {
			out = append(out, o)
		}
	}
	return out
}

// SumPositions sums TotalPositions over the sequence. Empty input yields 0.
func SumPositions(orders []Order) int {
	sum := 0
	for _, o := range orders {
		sum += o.TotalPositions
	}
	return sum
}

// Revenue converts a position count to currency at the given unit price.
func Revenue(positions int, pricePerPosition Money) Money {
	return pricePerPosition.Mul(positions)
}

// DailySeries computes revenue per calendar day 1..daysInMonth for the given
// month. The result always has exactly daysInMonth entries in ascending day
// order, zero-revenue days included; callers that want to hide trailing empty
// days filter on top of this.
func DailySeries(orders []Order, monthKey string, daysInMonth int, pricePerPosition Money) []DayRevenue {
	monthOrders := FilterByMonth(orders, monthKey)
	series := make([]DayRevenue, daysInMonth)
	for i := range series {
		day := i + 1
		date := fmt.Sprintf("%s-%02d", monthKey, day)
		positions := 0
		for _, o := range monthOrders {
			if o.Date == date {
				positions += o.TotalPositions
			}
		}
		series[i] = DayRevenue{
			Day:       day,
			Positions: positions,
			Revenue:   Revenue(positions, pricePerPosition),
		}
	}
	return series
}

// GroupByMonth partitions the orders by month key. Every order lands in
// exactly one bucket; within a bucket orders keep their input order and
// TotalPositions is the sum over members. Buckets are returned most recent
// month first (the display order of the history view).
func GroupByMonth(orders []Order) []MonthGroup {
	index := make(map[string]int)
	var groups []MonthGroup
	for _, o := range orders {
		key := o.MonthKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MonthGroup{MonthKey: key})
		}
		groups[i].TotalPositions += o.TotalPositions
		groups[i].Orders = append(groups[i].Orders, o)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].MonthKey > groups[j].MonthKey
	})
	return groups
}

// DaysWorked counts the distinct date values in the sequence.
func DaysWorked(orders []Order) int {
	seen := make(map[string]struct{})
	for _, o := range orders {
		seen[o.Date] = struct{}{}
	}
	return len(seen)
}
