package scheduling

import "agenda/pkg/model"

// Policy decides what happens to dates that already carry a customized
// entry when a recurring pattern is applied over them.
type Policy int

const (
	// Preserve keeps existing customized entries and drops those dates from
	// the expansion.
	Preserve Policy = iota
	// Overwrite replaces customized entries with the expanded pattern.
	Overwrite
)

func (p Policy) String() string {
	if p == Overwrite {
		return "overwrite"
	}
	return "preserve"
}

// PolicyFromReplaceExisting maps the wire flag to a policy.
func PolicyFromReplaceExisting(replace bool) Policy {
	if replace {
		return Overwrite
	}
	return Preserve
}

// ApplyRecurring expands the pattern over the range and resolves it against
// the existing entries under the given policy. It returns the set of entries
// to commit plus the conflict report describing which dates held customized
// entries. Under Preserve the conflicting dates are absent from the commit
// set; under Overwrite they are present and the caller is expected to replace
// the stored exceptions. The commit set must be written atomically, the
// function itself touches nothing.
func ApplyRecurring(resourceID string, pattern WeeklyPattern, r DateRange, existing []model.ScheduleEntry, policy Policy) ([]model.ScheduleEntry, model.ConflictReport, error) {
	expanded, err := Expand(resourceID, pattern, r)
	if err != nil {
		return nil, model.ConflictReport{ResourceID: resourceID}, err
	}

	// Only open-weekday dates count as proposed writes for the report.
	var proposed []string
	for _, e := range expanded {
		if !e.Closed {
			proposed = append(proposed, e.Date)
		}
	}

	report := CheckConflicts(resourceID, proposed, existing, true)
	if policy == Overwrite {
		return expanded, report, nil
	}

	// Preserve: no date bearing a customized entry may be touched, open or
	// closed in the new pattern alike.
	customized := make(map[string]bool, len(existing))
	for _, e := range existing {
		if e.ResourceID == resourceID && e.Customized {
			customized[e.Date] = true
		}
	}
	if len(customized) == 0 {
		return expanded, report, nil
	}

	kept := make([]model.ScheduleEntry, 0, len(expanded))
	for _, e := range expanded {
		if !customized[e.Date] {
			kept = append(kept, e)
		}
	}

	return kept, report, nil
}
