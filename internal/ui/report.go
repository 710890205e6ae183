package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/thesavant42/bikeshare-ng/internal/analysis"
	"github.com/thesavant42/bikeshare-ng/internal/models"
)

// Messages for optional columns that cannot be summarised
const (
	MsgUnavailable = "data not available for this field"
	MsgNoData      = "no data"
)

const ruleWidth = 40

var sectionStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorAccent).
	MarginTop(1)

// RenderSelection describes the chosen filters and how many trips matched
func RenderSelection(sel models.Selection, rows int) string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render("City: "))
	b.WriteString(ValueStyle.Render(sel.City.Title()))
	b.WriteString(LabelStyle.Render("  Month: "))
	b.WriteString(ValueStyle.Render(sel.Month.Title()))
	b.WriteString(LabelStyle.Render("  Day: "))
	b.WriteString(ValueStyle.Render(sel.DayTitle()))
	b.WriteString("\n")
	b.WriteString(NormalStyle.Render(fmt.Sprintf("%s trips match these filters", humanize.Comma(int64(rows)))))
	return b.String()
}

// RenderReport lays out the four statistic groups in report order.
// A group that failed is reported as an error line; the others still render.
func RenderReport(r analysis.Report) string {
	sections := []struct {
		group string
		title string
		body  func() []string
	}{
		{analysis.GroupTime, "The Most Frequent Times of Travel", func() []string { return timeLines(r.Time) }},
		{analysis.GroupStations, "The Most Popular Stations and Trip", func() []string { return stationLines(r.Stations) }},
		{analysis.GroupDuration, "Trip Duration", func() []string { return durationLines(r.Duration) }},
		{analysis.GroupUsers, "User Stats", func() []string { return userLines(r.Users) }},
	}

	var b strings.Builder
	b.WriteString(RenderSelection(r.Selection, r.Rows))
	b.WriteString("\n")

	for _, s := range sections {
		res := r.Groups[s.group]
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		if res.Err != nil {
			b.WriteString(RenderError("Error: " + res.Err.Error()))
			b.WriteString("\n")
		} else {
			for _, line := range s.body() {
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
		b.WriteString(RenderDim(tookLine(res.Elapsed)))
		b.WriteString("\n")
		b.WriteString(RenderDim(Divider(ruleWidth)))
		b.WriteString("\n")
	}

	return b.String()
}

// PrintReport writes the rendered report to stdout
func PrintReport(r analysis.Report) {
	fmt.Println(RenderReport(r))
}

func tookLine(d time.Duration) string {
	return fmt.Sprintf("This took %s seconds.", strconv.FormatFloat(d.Seconds(), 'f', 6, 64))
}

func stat(label, value string) string {
	return LabelStyle.Render(label+": ") + ValueStyle.Render(value)
}

func modeValue[K comparable](m analysis.Mode[K], format func(K) string) string {
	if !m.OK {
		return MsgNoData
	}
	return fmt.Sprintf("%s (%s trips)", format(m.Value), humanize.Comma(int64(m.Count)))
}

func timeLines(t analysis.TimeStats) []string {
	return []string{
		stat("The most common month", modeValue(t.Month, time.Month.String)),
		stat("The most common day of the week", modeValue(t.Day, func(d string) string { return d })),
		stat("The most common start hour (24-hour)", modeValue(t.Hour, strconv.Itoa)),
	}
}

func stationLines(s analysis.StationStats) []string {
	identity := func(v string) string { return v }
	return []string{
		stat("The most common start station", modeValue(s.Start, identity)),
		stat("The most common end station", modeValue(s.End, identity)),
		stat("The most common trip", modeValue(s.Route, identity)),
	}
}

func durationLines(d analysis.DurationStats) []string {
	return []string{
		stat("The total travel time", formatSeconds(d.Total)),
		stat("The mean travel time", formatSeconds(float64(d.Mean))),
	}
}

// formatSeconds prints a duration in seconds with a readable equivalent
func formatSeconds(secs float64) string {
	readable := time.Duration(secs * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("%s seconds (%s)", humanize.CommafWithDigits(secs, 2), readable)
}

func userLines(u analysis.UserStats) []string {
	var lines []string
	lines = append(lines, categoryLines("User type", u.UserType)...)
	lines = append(lines, categoryLines("Gender", u.Gender)...)
	lines = append(lines, birthYearLines(u.BirthYear)...)
	return lines
}

func categoryLines(label string, c analysis.CategoryStats) []string {
	switch c.Status {
	case analysis.FieldUnavailable:
		return []string{stat(label, MsgUnavailable)}
	case analysis.FieldNoData:
		return []string{stat(label, MsgNoData)}
	}

	lines := []string{
		NormalStyle.Render(fmt.Sprintf("There are %s rows with no data on %s",
			humanize.Comma(int64(c.Missing)), strings.ToLower(label))),
	}
	for _, cnt := range c.Counts {
		lines = append(lines, "  "+stat(cnt.Value, humanize.Comma(int64(cnt.Count))))
	}
	return lines
}

func birthYearLines(by analysis.BirthYearStats) []string {
	const label = "Birth year"
	switch by.Status {
	case analysis.FieldUnavailable:
		return []string{stat(label, MsgUnavailable)}
	case analysis.FieldNoData:
		return []string{stat(label, MsgNoData)}
	}

	return []string{
		NormalStyle.Render(fmt.Sprintf("There are %s rows with no data on birth year",
			humanize.Comma(int64(by.Missing)))),
		stat("The earliest birth year", strconv.Itoa(by.Earliest)),
		stat("The most recent birth year", strconv.Itoa(by.MostRecent)),
		stat("The most common birth year", modeValue(by.MostCommon, strconv.Itoa)),
	}
}

// PrintProgressLine prints a one-line progress or info message
func PrintProgressLine(message string) {
	fmt.Println(ProgressStyle.Render(message))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(ValueStyle.Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(ErrorStyle.Render("Error: " + message))
}
