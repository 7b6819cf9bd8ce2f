// Package schedule decides which dates a chamber may convene ordinary
// sittings on, based on national and municipal holidays.
package schedule

import (
	"fmt"
	"time"

	"github.com/rickar/cal"
)

// Calendar wraps a holiday calendar for the chamber's municipality.
type Calendar struct {
	cal *cal.Calendar
}

// NewCalendar builds a calendar with the national holidays plus extra
// municipal holidays given as "MM-DD" strings.
func NewCalendar(extra []string) (*Calendar, error) {
	c := cal.NewCalendar()
	c.Observed = cal.ObservedExact

	c.AddHoliday(
		cal.NewYear,                       // Confraternização Universal
		cal.NewHoliday(time.April, 21),    // Tiradentes
		cal.NewHoliday(time.May, 1),       // Dia do Trabalho
		cal.NewHoliday(time.September, 7), // Independência
		cal.NewHoliday(time.October, 12),  // Nossa Senhora Aparecida
		cal.NewHoliday(time.November, 2),  // Finados
		cal.NewHoliday(time.November, 15), // Proclamação da República
		cal.NewHoliday(time.November, 20), // Consciência Negra
		cal.Christmas,                     // Natal
		cal.GoodFriday,                    // Sexta-feira Santa
		cal.DEFronleichnam,                // Corpus Christi
	)

	for _, s := range extra {
		var month, day int
		if _, err := fmt.Sscanf(s, "%d-%d", &month, &day); err != nil || month < 1 || month > 12 || day < 1 || day > 31 {
			return nil, fmt.Errorf("invalid holiday %q (want MM-DD)", s)
		}
		c.AddHoliday(cal.NewHoliday(time.Month(month), day))
	}

	return &Calendar{cal: c}, nil
}

// IsHoliday reports whether date is a holiday.
func (c *Calendar) IsHoliday(date time.Time) bool {
	return c.cal.IsHoliday(date)
}

// CanConvene reports whether a sitting of an ordinary kind may be scheduled
// at date. Extraordinary and solemn sittings are convened by act and may fall
// on any date.
func (c *Calendar) CanConvene(ordinary bool, date time.Time) error {
	if ordinary && c.IsHoliday(date) {
		return fmt.Errorf("%s is a holiday; convene an extraordinary sitting instead", date.Format("2006-01-02"))
	}
	return nil
}
