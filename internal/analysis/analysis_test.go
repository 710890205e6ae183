package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/bikeshare-ng/internal/models"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

var fullSchema = models.Schema{HasUserType: true, HasGender: true, HasBirthYear: true}

func trip(start time.Time, from, to string, duration float64) models.Trip {
	return models.Trip{
		StartTime:    start,
		EndTime:      start.Add(time.Duration(duration) * time.Second),
		StartStation: from,
		EndStation:   to,
		TripDuration: duration,
	}
}

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2017, month, day, hour, 15, 0, 0, time.UTC)
}

// scenarioTable is the three-trip table: two January Mondays and one February Tuesday
func scenarioTable() *models.Table {
	return models.NewTable(models.Chicago, fullSchema, []models.Trip{
		trip(at(time.January, 2, 8), "A", "B", 10),
		trip(at(time.January, 2, 9), "A", "C", 20),
		trip(at(time.February, 7, 8), "A", "B", 30),
	})
}

func mixedTable() *models.Table {
	return models.NewTable(models.Washington, fullSchema, []models.Trip{
		trip(at(time.January, 2, 7), "A", "B", 100),
		trip(at(time.January, 3, 7), "B", "C", 200),
		trip(at(time.March, 6, 17), "C", "A", 300),
		trip(at(time.March, 7, 17), "A", "C", 400),
		trip(at(time.June, 5, 23), "B", "A", 500),
		trip(at(time.June, 11, 0), "C", "B", 600),
	})
}

func mustFilter(t *testing.T, table *models.Table, sel models.Selection) (*models.Table, int) {
	t.Helper()
	view, n, err := Filter(table, sel)
	require.NoError(t, err)
	return view, n
}

// ---------------------------------------------------------------------------
// Filter Engine
// ---------------------------------------------------------------------------

func TestFilter_AllAllIsIdentity(t *testing.T) {
	table := mixedTable()

	view, n := mustFilter(t, table, models.Selection{Month: models.AllMonths, Day: models.AllDays})

	assert.Equal(t, table.Len(), n)
	assert.Equal(t, table.Trips, view.Trips)
	assert.Equal(t, table.Schema, view.Schema)
	assert.Equal(t, table.City, view.City)
}

func TestFilter_ZeroSelectionIsIdentity(t *testing.T) {
	table := mixedTable()

	view, n := mustFilter(t, table, models.Selection{})

	assert.Equal(t, table.Len(), n)
	assert.Equal(t, table.Trips, view.Trips)
}

func TestFilter_Idempotent(t *testing.T) {
	selections := []models.Selection{
		{Month: models.January, Day: models.AllDays},
		{Month: models.AllMonths, Day: "Tuesday"},
		{Month: models.March, Day: "monday"},
		{Month: models.June, Day: "Sunday"},
	}
	for _, sel := range selections {
		t.Run(sel.Month.String()+"/"+sel.Day, func(t *testing.T) {
			once, n1 := mustFilter(t, mixedTable(), sel)
			twice, n2 := mustFilter(t, once, sel)
			assert.Equal(t, n1, n2)
			assert.Equal(t, once.Trips, twice.Trips)
		})
	}
}

func TestFilter_MonthPostcondition(t *testing.T) {
	for _, m := range models.Months[1:] {
		t.Run(m.String(), func(t *testing.T) {
			view, n := mustFilter(t, mixedTable(), models.Selection{Month: m, Day: models.AllDays})
			assert.Equal(t, view.Len(), n)
			for _, tr := range view.Trips {
				assert.Equal(t, time.Month(m), tr.Month)
			}
		})
	}
}

func TestFilter_DayIsCaseInsensitive(t *testing.T) {
	upper, _ := mustFilter(t, mixedTable(), models.Selection{Day: "TUESDAY"})
	lower, _ := mustFilter(t, mixedTable(), models.Selection{Day: "tuesday"})

	require.Equal(t, 2, upper.Len())
	assert.Equal(t, upper.Trips, lower.Trips)
	for _, tr := range upper.Trips {
		assert.Equal(t, "Tuesday", tr.DayOfWeek)
	}
}

func TestFilter_MonthAndDayAreCombined(t *testing.T) {
	view, n := mustFilter(t, mixedTable(), models.Selection{Month: models.March, Day: "Monday"})

	require.Equal(t, 1, n)
	assert.Equal(t, "C", view.Trips[0].StartStation)
}

func TestFilter_EmptyResultIsValid(t *testing.T) {
	view, n := mustFilter(t, mixedTable(), models.Selection{Month: models.April, Day: models.AllDays})

	assert.Equal(t, 0, n)
	assert.NotNil(t, view)
	assert.Equal(t, fullSchema, view.Schema)

	// empty views flow through every statistic group
	report := BuildReport(view, models.Selection{Month: models.April}, nil)
	for name, g := range report.Groups {
		assert.NoError(t, g.Err, name)
	}
	assert.False(t, report.Time.Month.OK)
	assert.False(t, report.Stations.Route.OK)
}

func TestFilter_DoesNotMutateSource(t *testing.T) {
	table := mixedTable()
	before := append([]models.Trip(nil), table.Trips...)

	view, _ := mustFilter(t, table, models.Selection{Month: models.June})
	view.Trips[0].StartStation = "changed"

	assert.Equal(t, before, table.Trips)
}

func TestFilter_RejectsInvalidSelection(t *testing.T) {
	tests := []struct {
		name string
		sel  models.Selection
	}{
		{"month above june", models.Selection{Month: models.Month(7)}},
		{"negative month", models.Selection{Month: models.Month(-1)}},
		{"unknown day", models.Selection{Day: "Funday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Filter(mixedTable(), tt.sel)
			assert.ErrorIs(t, err, ErrInvalidSelection)
		})
	}
}

// ---------------------------------------------------------------------------
// Statistics Aggregator
// ---------------------------------------------------------------------------

func TestScenario_JanuaryFilter(t *testing.T) {
	view, n := mustFilter(t, scenarioTable(), models.Selection{Month: models.January, Day: models.AllDays})
	require.Equal(t, 2, n)

	stations := StationStatsOf(view)
	assert.Equal(t, "A", stations.Start.Value)
	assert.Equal(t, 2, stations.Start.Count)

	duration := DurationStatsOf(view)
	assert.Equal(t, 30.0, duration.Total)
	assert.Equal(t, int64(15), duration.Mean)
	assert.Equal(t, 2, duration.Trips)

	times := TimeStatsOf(view)
	assert.Equal(t, time.January, times.Month.Value)
	assert.Equal(t, "Monday", times.Day.Value)
}

func TestDurationStats_EmptyView(t *testing.T) {
	for _, view := range []*models.Table{nil, {}, models.NewTable(models.Chicago, fullSchema, nil)} {
		stats := DurationStatsOf(view)
		assert.Equal(t, 0.0, stats.Total)
		assert.Equal(t, int64(0), stats.Mean)
		assert.Equal(t, 0, stats.Trips)
	}
}

func TestDurationStats_MeanTruncates(t *testing.T) {
	table := models.NewTable(models.Chicago, fullSchema, []models.Trip{
		trip(at(time.May, 1, 1), "A", "B", 10),
		trip(at(time.May, 1, 2), "A", "B", 11),
	})

	stats := DurationStatsOf(table)
	assert.Equal(t, 21.0, stats.Total)
	assert.Equal(t, int64(10), stats.Mean)
}

func TestStationStats_RouteIsCountedPerTrip(t *testing.T) {
	// X is the busiest start and Y the busiest end, but no trip goes X > Y
	trips := []models.Trip{
		trip(at(time.May, 1, 1), "X", "P", 1),
		trip(at(time.May, 1, 2), "X", "Q", 1),
		trip(at(time.May, 1, 3), "X", "R", 1),
		trip(at(time.May, 1, 4), "S", "Y", 1),
		trip(at(time.May, 1, 5), "T", "Y", 1),
		trip(at(time.May, 1, 6), "U", "Y", 1),
		trip(at(time.May, 1, 7), "A", "B", 1),
		trip(at(time.May, 1, 8), "A", "B", 1),
	}
	stats := StationStatsOf(models.NewTable(models.Chicago, fullSchema, trips))

	assert.Equal(t, "X", stats.Start.Value)
	assert.Equal(t, "Y", stats.End.Value)
	naive := stats.Start.Value + models.RouteSeparator + stats.End.Value
	assert.NotEqual(t, naive, stats.Route.Value)
	assert.Equal(t, "A > B", stats.Route.Value)
	assert.Equal(t, 2, stats.Route.Count)
}

func TestTimeStats_TieBreak(t *testing.T) {
	// one trip each at 17:00 and 07:00 on a Wednesday and a Monday
	table := models.NewTable(models.Chicago, fullSchema, []models.Trip{
		trip(at(time.March, 8, 17), "A", "B", 1),
		trip(at(time.March, 6, 7), "A", "B", 1),
	})

	stats := TimeStatsOf(table)
	assert.Equal(t, 7, stats.Hour.Value)
	assert.Equal(t, "Monday", stats.Day.Value)
	assert.Equal(t, time.March, stats.Month.Value)
	assert.Equal(t, 2, stats.Month.Count)
}

func TestUserStats_MissingGenderColumn(t *testing.T) {
	schema := models.Schema{HasUserType: true}
	trips := []models.Trip{
		trip(at(time.May, 1, 1), "A", "B", 1),
		trip(at(time.May, 1, 2), "A", "B", 1),
		trip(at(time.May, 1, 3), "A", "B", 1),
	}
	trips[0].UserType = "Subscriber"
	trips[1].UserType = "Customer"
	trips[2].UserType = "Subscriber"

	stats := UserStatsOf(models.NewTable(models.Washington, schema, trips))

	assert.Equal(t, FieldUnavailable, stats.Gender.Status)
	assert.Equal(t, FieldUnavailable, stats.BirthYear.Status)
	assert.Equal(t, FieldAvailable, stats.UserType.Status)
	assert.Equal(t, 0, stats.UserType.Missing)
	assert.Equal(t, []Count[string]{
		{Value: "Subscriber", Count: 2},
		{Value: "Customer", Count: 1},
	}, stats.UserType.Counts)
}

func TestUserStats_AllBirthYearsMissing(t *testing.T) {
	trips := []models.Trip{
		trip(at(time.May, 1, 1), "A", "B", 1),
		trip(at(time.May, 1, 2), "A", "B", 1),
	}
	var stats UserStats
	require.NotPanics(t, func() {
		stats = UserStatsOf(models.NewTable(models.Chicago, fullSchema, trips))
	})

	assert.Equal(t, FieldNoData, stats.BirthYear.Status)
	assert.Equal(t, 2, stats.BirthYear.Missing)
	assert.False(t, stats.BirthYear.MostCommon.OK)
}

func TestUserStats_CountsMissingValues(t *testing.T) {
	trips := []models.Trip{
		trip(at(time.May, 1, 1), "A", "B", 1),
		trip(at(time.May, 1, 2), "A", "B", 1),
		trip(at(time.May, 1, 3), "A", "B", 1),
		trip(at(time.May, 1, 4), "A", "B", 1),
	}
	trips[0].Gender, trips[0].BirthYear = "Male", models.NullInt{Int: 1990, Valid: true}
	trips[1].Gender, trips[1].BirthYear = "Female", models.NullInt{Int: 1985, Valid: true}
	trips[2].Gender, trips[2].BirthYear = "", models.NullInt{Int: 1990, Valid: true}
	trips[3].Gender, trips[3].BirthYear = "Male", models.NullInt{}

	stats := UserStatsOf(models.NewTable(models.NewYorkCity, fullSchema, trips))

	assert.Equal(t, 1, stats.Gender.Missing)
	assert.Equal(t, []Count[string]{
		{Value: "Male", Count: 2},
		{Value: "Female", Count: 1},
	}, stats.Gender.Counts)

	assert.Equal(t, FieldAvailable, stats.BirthYear.Status)
	assert.Equal(t, 1, stats.BirthYear.Missing)
	assert.Equal(t, 1985, stats.BirthYear.Earliest)
	assert.Equal(t, 1990, stats.BirthYear.MostRecent)
	assert.Equal(t, 1990, stats.BirthYear.MostCommon.Value)

	// user type column exists but every value is empty
	assert.Equal(t, FieldNoData, stats.UserType.Status)
	assert.Equal(t, 4, stats.UserType.Missing)
}

// ---------------------------------------------------------------------------
// Report
// ---------------------------------------------------------------------------

func TestBuildReport_GroupsAreIndependent(t *testing.T) {
	view, _ := mustFilter(t, scenarioTable(), models.Selection{Month: models.January})
	view.Schema = models.Schema{HasUserType: true}

	report := BuildReport(view, models.Selection{Month: models.January}, nil)

	require.Len(t, report.Groups, 4)
	assert.Equal(t, 2, report.Rows)
	assert.Equal(t, FieldUnavailable, report.Users.Gender.Status)
	assert.Equal(t, "A", report.Stations.Start.Value)
	assert.Equal(t, int64(15), report.Duration.Mean)
}

func TestRunGroup_RecoversFailure(t *testing.T) {
	failed := runGroup("broken", nil, func() { panic("boom") })
	ok := runGroup("fine", nil, func() {})

	require.Error(t, failed.Err)
	assert.Contains(t, failed.Err.Error(), "boom")
	assert.NoError(t, ok.Err)
}
