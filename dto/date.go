package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

const (
	LayoutBR  = "02/01/2006" // dd/MM/yyyy
	LayoutISO = "2006-01-02"
)

var ErrInvalidDate = errors.New("invalid date")

var dateLayout atomic.Value

func init() {
	dateLayout.Store(LayoutBR)
}

// SetDateLayout selects the textual layout used for every Date on the wire.
func SetDateLayout(layout string) {
	dateLayout.Store(layout)
}

func DateLayout() string {
	return dateLayout.Load().(string)
}

// Date is a calendar date carried as text in the configured layout.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses text in the configured layout.
func ParseDate(text string) (Date, error) {
	layout := DateLayout()
	t, err := time.Parse(layout, text)
	if err != nil {
		return Date{}, fmt.Errorf("%w: '%s' does not match layout %s", ErrInvalidDate, text, layout)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout())
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("%w: expected a string", ErrInvalidDate)
	}
	parsed, err := ParseDate(text)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
