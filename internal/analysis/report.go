package analysis

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/bikeshare-ng/internal/models"
)

// Group names, in report order
const (
	GroupTime     = "time"
	GroupStations = "stations"
	GroupDuration = "duration"
	GroupUsers    = "users"
)

// GroupResult carries the bookkeeping shared by every statistic group
type GroupResult struct {
	Elapsed time.Duration
	Err     error // set when the group failed; its stats are zero values
}

// Report is the full set of statistics for one filtered view
type Report struct {
	Selection models.Selection
	Rows      int

	Time     TimeStats
	Stations StationStats
	Duration DurationStats
	Users    UserStats

	Groups map[string]GroupResult
}

// BuildReport computes the four statistic groups over view.
// Each group runs on its own: a failure is logged and recorded in Groups
// for that group only, and the remaining groups still run.
func BuildReport(view *models.Table, sel models.Selection, logger *log.Logger) Report {
	r := Report{
		Selection: sel,
		Rows:      view.Len(),
		Groups:    make(map[string]GroupResult, 4),
	}

	r.Groups[GroupTime] = runGroup(GroupTime, logger, func() { r.Time = TimeStatsOf(view) })
	r.Groups[GroupStations] = runGroup(GroupStations, logger, func() { r.Stations = StationStatsOf(view) })
	r.Groups[GroupDuration] = runGroup(GroupDuration, logger, func() { r.Duration = DurationStatsOf(view) })
	r.Groups[GroupUsers] = runGroup(GroupUsers, logger, func() { r.Users = UserStatsOf(view) })

	return r
}

// runGroup times fn and converts a panic inside it into the group's error
func runGroup(name string, logger *log.Logger, fn func()) (res GroupResult) {
	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("failed to compute %s statistics: %v", name, p)
			if logger != nil {
				logger.Error("Statistic group failed", "group", name, "error", res.Err)
			}
			return
		}
		if logger != nil {
			logger.Debug("Statistic group done", "group", name, "elapsed", res.Elapsed)
		}
	}()
	fn()
	return res
}
