package models

import (
	"time"

	"inspector-backend/internal/timeutil"
)

// Date is a calendar date that marshals as plain YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: timeutil.DateOnly(t)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(timeutil.DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(`"`+timeutil.DateLayout+`"`, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
