package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrUnknownCity  = errors.New("unknown city")
	ErrUnknownMonth = errors.New("unknown month")
	ErrUnknownDay   = errors.New("unknown day")
)

// City identifies one of the supported bikeshare datasets
type City string

const (
	Chicago     City = "chicago"
	NewYorkCity City = "new york city"
	Washington  City = "washington"
)

// Cities lists the supported cities in prompt order
var Cities = []City{Chicago, NewYorkCity, Washington}

var cityFiles = map[City]string{
	Chicago:     "chicago.csv",
	NewYorkCity: "new_york_city.csv",
	Washington:  "washington.csv",
}

// FileName returns the CSV file name holding the city's trips
func (c City) FileName() string {
	return cityFiles[c]
}

// Title returns the display name, e.g. "New York City"
func (c City) Title() string {
	return cases.Title(language.English).String(string(c))
}

// ParseCity validates a city name, ignoring case and surrounding space
func ParseCity(s string) (City, error) {
	c := City(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := cityFiles[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCity, s)
	}
	return c, nil
}

// Month is a month filter value. AllMonths disables the month constraint.
// The datasets only cover January through June.
type Month int

const (
	AllMonths Month = iota
	January
	February
	March
	April
	May
	June
)

// Months lists every month filter value in prompt order
var Months = []Month{AllMonths, January, February, March, April, May, June}

// Valid reports whether m is AllMonths or one of January..June
func (m Month) Valid() bool {
	return m >= AllMonths && m <= June
}

func (m Month) String() string {
	if m == AllMonths {
		return "all"
	}
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return strings.ToLower(time.Month(m).String())
}

// Title returns the capitalised label used in reports
func (m Month) Title() string {
	if m == AllMonths {
		return "All"
	}
	return time.Month(m).String()
}

// ParseMonth accepts "all" or a full month name from january to june
func ParseMonth(s string) (Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Months {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMonth, s)
}

// AllDays disables the day-of-week constraint
const AllDays = "all"

// Weekdays lists canonical day names, Monday first
var Weekdays = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

// WeekdayIndex returns the position of a day name in Weekdays, or -1
func WeekdayIndex(day string) int {
	for i, d := range Weekdays {
		if strings.EqualFold(d, day) {
			return i
		}
	}
	return -1
}

// ParseDay accepts "all" or a full day name and returns it in canonical form
func ParseDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, AllDays) {
		return AllDays, nil
	}
	if i := WeekdayIndex(s); i >= 0 {
		return Weekdays[i], nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDay, s)
}

// Selection is a validated (city, month, day) choice
type Selection struct {
	City  City
	Month Month
	Day   string
}

// NewSelection validates raw user input into a Selection
func NewSelection(city, month, day string) (Selection, error) {
	c, err := ParseCity(city)
	if err != nil {
		return Selection{}, err
	}
	m, err := ParseMonth(month)
	if err != nil {
		return Selection{}, err
	}
	d, err := ParseDay(day)
	if err != nil {
		return Selection{}, err
	}
	return Selection{City: c, Month: m, Day: d}, nil
}

// DayTitle returns the day label used in reports
func (s Selection) DayTitle() string {
	if s.Day == "" || strings.EqualFold(s.Day, AllDays) {
		return "All"
	}
	return s.Day
}

// AllDaysSelected reports whether no day constraint applies
func (s Selection) AllDaysSelected() bool {
	return s.Day == "" || strings.EqualFold(s.Day, AllDays)
}
