package dateutil

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the ISO-8601 calendar date layout accepted on every input.
	DateLayout = "2006-01-02"
	// YearMonthLayout is the ISO-8601 year-month layout used for tax periods.
	YearMonthLayout = "2006-01"
)

var monthAbbrevPT = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

var monthNamePT = [...]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"}

// ParseDate parses a strict YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// YearMonth identifies a calendar month, e.g. a DAS apuração period.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses a strict YYYY-MM period.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(YearMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid period %q: expected YYYY-MM", s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// YearMonthOf returns the month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// AddMonths moves the period by n months, rolling the year as needed.
func (ym YearMonth) AddMonths(n int) YearMonth {
	idx := ym.Year*12 + int(ym.Month-1) + n
	return YearMonth{Year: idx / 12, Month: time.Month(idx%12 + 1)}
}

// Next returns the following month (December rolls into January of the next year).
func (ym YearMonth) Next() YearMonth {
	return ym.AddMonths(1)
}

// Day returns the given day of the month as a UTC date.
func (ym YearMonth) Day(day int) time.Time {
	return time.Date(ym.Year, ym.Month, day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the period was never set.
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// String returns the ISO form "2025-12".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Label returns the short pt-BR label, e.g. "dez/2025". A period without a
// valid month has no label.
func (ym YearMonth) Label() string {
	if ym.Month < time.January || ym.Month > time.December {
		return ""
	}
	return fmt.Sprintf("%s/%d", monthAbbrevPT[ym.Month-1], ym.Year)
}

// MarshalText implements encoding.TextMarshaler.
func (ym YearMonth) MarshalText() ([]byte, error) {
	return []byte(ym.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ym *YearMonth) UnmarshalText(text []byte) error {
	parsed, err := ParseYearMonth(string(text))
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

// MonthNamePT returns the full pt-BR month name ("outubro").
func MonthNamePT(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNamePT[m-1]
}
