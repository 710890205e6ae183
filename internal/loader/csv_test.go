package loader

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/bikeshare-ng/internal/models"
)

const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1423854,2017-06-23 15:09:32,2017-06-23 15:14:53,321,Wood St & Hubbard St,Damen Ave & Chicago Ave,Subscriber,Male,1992.0
955915,2017-05-25 18:19:03,2017-05-25 18:45:53,1610,Theater on the Lake,Sheffield Ave & Waveland Ave,Subscriber,Female,
9031,2017-01-04 08:27:49,2017-01-04 08:34:45,416,May St & Taylor St,Wood St & Taylor St,Customer,,
`

const washingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
1621326,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
482740,2017-03-11 10:40:00,2017-03-11 10:46:00,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Subscriber
`

func TestReadCSV_FullSchema(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(chicagoCSV), models.Chicago)
	require.NoError(t, err)

	assert.Equal(t, models.Chicago, table.City)
	assert.Equal(t, models.Schema{HasEndTime: true, HasUserType: true, HasGender: true, HasBirthYear: true}, table.Schema)
	require.Equal(t, 3, table.Len())

	first := table.Trips[0]
	assert.Equal(t, int64(1423854), first.RecordID)
	assert.Equal(t, time.Date(2017, 6, 23, 15, 9, 32, 0, time.UTC), first.StartTime)
	assert.Equal(t, 321.0, first.TripDuration)
	assert.Equal(t, "Wood St & Hubbard St", first.StartStation)
	assert.Equal(t, "Male", first.Gender)
	assert.Equal(t, models.NullInt{Int: 1992, Valid: true}, first.BirthYear)

	// derived at load
	assert.Equal(t, time.June, first.Month)
	assert.Equal(t, "Friday", first.DayOfWeek)
	assert.Equal(t, 15, first.Hour)

	assert.False(t, table.Trips[1].BirthYear.Valid)
	assert.Equal(t, "", table.Trips[2].Gender)
}

func TestReadCSV_MissingOptionalColumns(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(washingtonCSV), models.Washington)
	require.NoError(t, err)

	assert.True(t, table.Schema.HasUserType)
	assert.False(t, table.Schema.HasGender)
	assert.False(t, table.Schema.HasBirthYear)
	require.Equal(t, 2, table.Len())
	assert.InDelta(t, 489.066, table.Trips[0].TripDuration, 1e-9)
	assert.Equal(t, "Saturday", table.Trips[1].DayOfWeek)
}

func TestReadCSV_PositionalRecordIDs(t *testing.T) {
	data := "Start Time,Trip Duration,Start Station,End Station\n" +
		"2017-01-01 09:00:00,10,A,B\n" +
		"2017-01-02 09:00:00,20,B,C\n"

	table, err := ReadCSV(strings.NewReader(data), models.Chicago)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, int64(0), table.Trips[0].RecordID)
	assert.Equal(t, int64(1), table.Trips[1].RecordID)
	assert.False(t, table.Schema.HasEndTime)
}

func TestReadCSV_HeaderIsNormalized(t *testing.T) {
	data := "\ufeffSTART TIME , trip duration,Start Station,End Station\n" +
		"2017-02-01 09:00:00,10,A,B\n"

	table, err := ReadCSV(strings.NewReader(data), models.Chicago)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, time.February, table.Trips[0].Month)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "missing start station",
			data:    "Start Time,Trip Duration,End Station\n2017-01-01 09:00:00,10,B\n",
			wantErr: ErrMissingColumn,
		},
		{
			name: "bad start time",
			data: "Start Time,Trip Duration,Start Station,End Station\nyesterday,10,A,B\n",
		},
		{
			name: "negative duration",
			data: "Start Time,Trip Duration,Start Station,End Station\n2017-01-01 09:00:00,-4,A,B\n",
		},
		{
			name: "empty file",
			data: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data), models.Chicago)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

func TestParseBirthYear(t *testing.T) {
	tests := []struct {
		raw  string
		want models.NullInt
	}{
		{"1989.0", models.NullInt{Int: 1989, Valid: true}},
		{"1975", models.NullInt{Int: 1975, Valid: true}},
		{"", models.NullInt{}},
		{"unknown", models.NullInt{}},
		{"NaN", models.NullInt{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parseBirthYear(tt.raw))
		})
	}
}
