// Package fetch retrieves draw results from the remote endpoint.
package fetch

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/jackpot/internal/model"
)

var (
	// ErrUnavailable marks any failure to obtain usable draw data.
	ErrUnavailable = errors.New("draw data unavailable")
	// ErrMalformedRecord marks a record with missing or unparsable fields.
	ErrMalformedRecord = errors.New("malformed draw record")
	// ErrOutOfDomain marks a number outside its lottery domain.
	ErrOutOfDomain = errors.New("number out of domain")
)

// RawDraw is a record as returned by the remote endpoint.
type RawDraw struct {
	Date        *string `json:"date"`
	Numbers     []int   `json:"numbers"`
	EuroNumbers []int   `json:"euroNumbers"`
}

// RecordError describes which record failed validation.
type RecordError struct {
	Index int
	Date  string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Date != "" {
		return fmt.Sprintf("record %d (%s): %v", e.Index, e.Date, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Normalize maps remote records to draws, preserving order.
func Normalize(raw []RawDraw) ([]model.Draw, error) {
	out := make([]model.Draw, 0, len(raw))
	for i, r := range raw {
		d, err := normalizeOne(r)
		if err != nil {
			date := ""
			if r.Date != nil {
				date = *r.Date
			}
			return nil, &RecordError{Index: i, Date: date, Err: err}
		}
		out = append(out, d)
	}
	return out, nil
}

func normalizeOne(r RawDraw) (model.Draw, error) {
	if r.Date == nil || *r.Date == "" {
		return model.Draw{}, fmt.Errorf("%w: missing date", ErrMalformedRecord)
	}
	if _, err := time.Parse("2006-01-02", *r.Date); err != nil {
		return model.Draw{}, fmt.Errorf("%w: invalid date %q", ErrMalformedRecord, *r.Date)
	}
	if len(r.Numbers) == 0 {
		return model.Draw{}, fmt.Errorf("%w: missing numbers", ErrMalformedRecord)
	}
	if len(r.EuroNumbers) == 0 {
		return model.Draw{}, fmt.Errorf("%w: missing euro numbers", ErrMalformedRecord)
	}
	if len(r.Numbers) != model.MainPerDraw {
		return model.Draw{}, fmt.Errorf("%w: %d numbers, want %d", ErrMalformedRecord, len(r.Numbers), model.MainPerDraw)
	}
	if len(r.EuroNumbers) != model.StarsPerDraw {
		return model.Draw{}, fmt.Errorf("%w: %d euro numbers, want %d", ErrMalformedRecord, len(r.EuroNumbers), model.StarsPerDraw)
	}
	if err := checkDomain("number", r.Numbers, model.MainMin, model.MainMax); err != nil {
		return model.Draw{}, err
	}
	if err := checkDomain("euro number", r.EuroNumbers, model.StarMin, model.StarMax); err != nil {
		return model.Draw{}, err
	}
	if err := checkDistinct("number", r.Numbers); err != nil {
		return model.Draw{}, err
	}
	if err := checkDistinct("euro number", r.EuroNumbers); err != nil {
		return model.Draw{}, err
	}
	return model.Draw{
		Date:  *r.Date,
		Main:  append([]int(nil), r.Numbers...),
		Stars: append([]int(nil), r.EuroNumbers...),
	}, nil
}

func checkDomain(kind string, values []int, lo, hi int) error {
	for _, v := range values {
		if v < lo || v > hi {
			return fmt.Errorf("%w: %s %d not in %d-%d", ErrOutOfDomain, kind, v, lo, hi)
		}
	}
	return nil
}

func checkDistinct(kind string, values []int) error {
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return fmt.Errorf("%w: repeated %s %d", ErrMalformedRecord, kind, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}
