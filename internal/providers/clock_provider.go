package providers

import (
	"carhoot/internal/structures"
	"time"
)

const DateLayout = "2006-01-02"

// ClockInterface fixes what "today" means for every daily puzzle.
type ClockInterface interface {
	Now() time.Time
	Today() string
}

type Clock struct {
	loc *time.Location
}

func NewClockProvider(conf *structures.Config) (ClockInterface, error) {
	loc, err := time.LoadLocation(conf.Game.Timezone)
	if err != nil {
		return nil, err
	}
	return &Clock{loc: loc}, nil
}

func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *Clock) Today() string {
	return c.Now().Format(DateLayout)
}

// Yesterday returns the calendar day before date, or "" for a malformed date.
func Yesterday(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, -1).Format(DateLayout)
}
