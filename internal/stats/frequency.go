// Package stats contains the frequency, ranking and pick calculations and their reports.
package stats

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/jackpot/internal/model"
)

// ErrOutOfRange is returned when a number falls outside a table's range.
var ErrOutOfRange = errors.New("number out of range")

// Table counts occurrences of the numbers in [Min, Max].
type Table struct {
	min    int
	max    int
	counts []int
}

// NewTable creates an empty table for the inclusive range [lo, hi].
func NewTable(lo, hi int) (*Table, error) {
	if lo > hi {
		return nil, fmt.Errorf("invalid range %d-%d", lo, hi)
	}
	return &Table{min: lo, max: hi, counts: make([]int, hi-lo+1)}, nil
}

// MainTable creates an empty table for main numbers.
func MainTable() *Table {
	return &Table{min: model.MainMin, max: model.MainMax, counts: make([]int, model.MainMax-model.MainMin+1)}
}

// StarTable creates an empty table for star numbers.
func StarTable() *Table {
	return &Table{min: model.StarMin, max: model.StarMax, counts: make([]int, model.StarMax-model.StarMin+1)}
}

// Min returns the smallest valid number.
func (t *Table) Min() int { return t.min }

// Max returns the largest valid number.
func (t *Table) Max() int { return t.max }

// Add counts one occurrence of n.
func (t *Table) Add(n int) error {
	if n < t.min || n > t.max {
		return fmt.Errorf("%w: %d not in %d-%d", ErrOutOfRange, n, t.min, t.max)
	}
	t.counts[n-t.min]++
	return nil
}

// Count returns the occurrences of n, or 0 outside the range.
func (t *Table) Count(n int) int {
	if n < t.min || n > t.max {
		return 0
	}
	return t.counts[n-t.min]
}

// Total returns the sum of all counts.
func (t *Table) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// MaxCount returns the highest count in the table.
func (t *Table) MaxCount() int {
	highest := 0
	for _, c := range t.counts {
		if c > highest {
			highest = c
		}
	}
	return highest
}

// Numbers returns every valid number in ascending order.
func (t *Table) Numbers() []int {
	out := make([]int, 0, len(t.counts))
	for n := t.min; n <= t.max; n++ {
		out = append(out, n)
	}
	return out
}

// Frequencies holds main and star counts over a set of draws.
type Frequencies struct {
	Main  *Table
	Stars *Table
	Draws int
}

// Aggregate counts main numbers and stars across draws. Draws are not modified.
func Aggregate(draws []model.Draw) (Frequencies, error) {
	freq := Frequencies{Main: MainTable(), Stars: StarTable()}
	for _, d := range draws {
		for _, n := range d.Main {
			if err := freq.Main.Add(n); err != nil {
				return Frequencies{}, fmt.Errorf("draw %s main: %w", d.Date, err)
			}
		}
		for _, s := range d.Stars {
			if err := freq.Stars.Add(s); err != nil {
				return Frequencies{}, fmt.Errorf("draw %s stars: %w", d.Date, err)
			}
		}
		freq.Draws++
	}
	return freq, nil
}
