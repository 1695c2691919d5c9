// Package model defines shared data structures.
package model

import "time"

// Number domains of the Eurojackpot format.
const (
	MainMin      = 1
	MainMax      = 50
	StarMin      = 1
	StarMax      = 12
	MainPerDraw  = 5
	StarsPerDraw = 2
)

// MonthAll selects every month of a year.
const MonthAll = "all"

// Draw is a single normalized draw result.
type Draw struct {
	Date  string `json:"date" yaml:"date"`
	Main  []int  `json:"main" yaml:"main"`
	Stars []int  `json:"stars" yaml:"stars"`
}

// Year returns the YYYY part of the draw date.
func (d Draw) Year() string {
	if len(d.Date) < 4 {
		return ""
	}
	return d.Date[:4]
}

// Month returns the MM part of the draw date.
func (d Draw) Month() string {
	if len(d.Date) < 7 {
		return ""
	}
	return d.Date[5:7]
}

// DayClass is the weekday bucket a draw is reported under.
type DayClass int

// Day classes.
const (
	DayTuesday DayClass = iota
	DayFriday
)

// Label returns the display label of the class.
func (c DayClass) Label() string {
	if c == DayTuesday {
		return "Tirsdag"
	}
	return "Fredag"
}

// Key returns the CLI/config key of the class.
func (c DayClass) Key() string {
	if c == DayTuesday {
		return "tuesday"
	}
	return "friday"
}

// Filter selects draws by year and month.
type Filter struct {
	Year  string
	Month string
}

// AllMonths reports whether the filter spans the whole year.
func (f Filter) AllMonths() bool {
	return f.Month == "" || f.Month == MonthAll
}

// Pick is a suggested line: ascending main numbers and stars.
type Pick struct {
	Day   DayClass `json:"-" yaml:"-"`
	Main  []int    `json:"main" yaml:"main"`
	Stars []int    `json:"stars" yaml:"stars"`
}

// FetchConfig defines how draws are retrieved.
type FetchConfig struct {
	Endpoint string
	Limit    int
	Timeout  time.Duration
}

// ReportConfig defines report output options.
type ReportConfig struct {
	Filter Filter
	Format string
	Width  int
}
