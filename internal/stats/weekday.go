package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/jackpot/internal/model"
)

// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid draw date")

// ClassifyDay buckets a draw date. Tuesday is DayTuesday; every other
// weekday, not only Friday, is DayFriday.
func ClassifyDay(date string) (model.DayClass, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return model.DayFriday, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if t.Weekday() == time.Tuesday {
		return model.DayTuesday, nil
	}
	return model.DayFriday, nil
}

// IsScheduledDrawDay reports whether the date falls on a Tuesday or a Friday.
// Dates for which it is false are still reported under the Friday label.
func IsScheduledDrawDay(date string) bool {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return t.Weekday() == time.Tuesday || t.Weekday() == time.Friday
}

// SplitByDay separates draws by day class, keeping order.
func SplitByDay(draws []model.Draw) (tuesday, friday []model.Draw, err error) {
	for _, d := range draws {
		class, err := ClassifyDay(d.Date)
		if err != nil {
			return nil, nil, err
		}
		if class == model.DayTuesday {
			tuesday = append(tuesday, d)
		} else {
			friday = append(friday, d)
		}
	}
	return tuesday, friday, nil
}
