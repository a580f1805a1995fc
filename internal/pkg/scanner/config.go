package scanner

import (
	"fmt"
	"time"

	"github.com/flymeaway/flight-price-scanner/internal/pkg/offer"
)

// Config is one immutable scan definition: a route, a preferred departure
// weekday, a stay length and the date range to sweep.
type Config struct {
	Origin        string
	Destination   string
	Weekday       time.Weekday
	Nights        int
	StartDate     time.Time
	EndDate       time.Time
	TravelClass   string
	DirectOnly    bool
	DeparturePref offer.TimeWindow
	ReturnPref    offer.TimeWindow
	Currency      string
}

func (c Config) Validate() error {
	if c.Origin == "" || c.Destination == "" {
		return fmt.Errorf("origin and destination are required")
	}

	if c.Nights < 1 {
		return fmt.Errorf("stay length must be at least 1 night, got %d", c.Nights)
	}

	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("end date %s before start date %s",
			c.EndDate.Format(time.DateOnly), c.StartDate.Format(time.DateOnly))
	}

	return nil
}

// DatePair is one (departure, return) date combination, with the return
// date fixed at departure plus the configured stay length.
type DatePair struct {
	Departure time.Time
	Return    time.Time
}

// DatePairs enumerates every date in [StartDate, EndDate] whose weekday
// matches the target weekday, paired with its return date. Recomputing the
// sequence is cheap and side-effect free.
func (c Config) DatePairs() []DatePair {
	var pairs []DatePair

	for d := c.StartDate; !d.After(c.EndDate); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != c.Weekday {
			continue
		}

		pairs = append(pairs, DatePair{
			Departure: d,
			Return:    d.AddDate(0, 0, c.Nights),
		})
	}

	return pairs
}
