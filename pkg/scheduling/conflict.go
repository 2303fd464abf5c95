package scheduling

import (
	"sort"

	"agenda/pkg/model"
)

// CheckConflicts reports which proposed dates collide with entries already
// stored for the resource. With includeCustomized=true (the default mode),
// only customized entries block a write: plain expanded entries are
// replaceable. With includeCustomized=false any existing entry on a proposed
// date counts. The check never mutates anything; conflicting dates come back
// sorted ascending and deduplicated.
func CheckConflicts(resourceID string, proposedDates []string, existing []model.ScheduleEntry, includeCustomized bool) model.ConflictReport {
	report := model.ConflictReport{ResourceID: resourceID}

	byDate := make(map[string]model.ScheduleEntry, len(existing))
	for _, e := range existing {
		if e.ResourceID == resourceID {
			byDate[e.Date] = e
		}
	}

	seen := make(map[string]bool, len(proposedDates))
	for _, date := range proposedDates {
		if seen[date] {
			continue
		}
		seen[date] = true

		entry, ok := byDate[date]
		if !ok {
			continue
		}
		if includeCustomized && !entry.Customized {
			continue
		}
		report.AddConflict(date)
	}

	sort.Strings(report.ConflictingDates)
	return report
}
