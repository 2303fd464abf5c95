package scheduling

import (
	"testing"
	"time"

	"agenda/pkg/model"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return ts
}

func appt(t *testing.T, id, resourceID, professionalID, start, end, status string) *model.Appointment {
	t.Helper()
	return &model.Appointment{
		ID:             id,
		ResourceID:     resourceID,
		ProfessionalID: professionalID,
		StartTime:      at(t, start),
		EndTime:        at(t, end),
		Status:         status,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		start1, end1, start2, end2 string
		want                       bool
	}{
		{"partial overlap", "2024-06-05T09:00:00Z", "2024-06-05T09:30:00Z", "2024-06-05T09:15:00Z", "2024-06-05T09:45:00Z", true},
		{"containment", "2024-06-05T09:00:00Z", "2024-06-05T12:00:00Z", "2024-06-05T10:00:00Z", "2024-06-05T11:00:00Z", true},
		{"identical", "2024-06-05T09:00:00Z", "2024-06-05T10:00:00Z", "2024-06-05T09:00:00Z", "2024-06-05T10:00:00Z", true},
		{"back to back", "2024-06-05T09:00:00Z", "2024-06-05T09:30:00Z", "2024-06-05T09:30:00Z", "2024-06-05T10:00:00Z", false},
		{"disjoint", "2024-06-05T09:00:00Z", "2024-06-05T09:30:00Z", "2024-06-05T11:00:00Z", "2024-06-05T11:30:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(t, tt.start1), at(t, tt.end1), at(t, tt.start2), at(t, tt.end2))
			if got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}

			// Overlap is symmetric.
			reversed := Overlaps(at(t, tt.start2), at(t, tt.end2), at(t, tt.start1), at(t, tt.end1))
			if reversed != got {
				t.Errorf("Overlaps() is not symmetric: %v vs %v", got, reversed)
			}
		})
	}
}

func TestHasConflict(t *testing.T) {
	const (
		resourceA = "507f1f77bcf86cd799439011"
		resourceB = "507f1f77bcf86cd799439012"
		proOne    = "64b2f0a9e4b0c72a18f00001"
		proTwo    = "64b2f0a9e4b0c72a18f00002"
	)

	existing := appt(t, "a1", resourceA, proOne,
		"2024-06-05T09:00:00Z", "2024-06-05T09:30:00Z", model.AppointmentStatusScheduled)

	tests := []struct {
		name      string
		candidate *model.Appointment
		existing  []*model.Appointment
		want      bool
	}{
		{
			name: "same resource overlapping",
			candidate: appt(t, "", resourceA, proTwo,
				"2024-06-05T09:15:00Z", "2024-06-05T09:45:00Z", model.AppointmentStatusScheduled),
			existing: []*model.Appointment{existing},
			want:     true,
		},
		{
			name: "same professional different resource",
			candidate: appt(t, "", resourceB, proOne,
				"2024-06-05T09:15:00Z", "2024-06-05T09:45:00Z", model.AppointmentStatusScheduled),
			existing: []*model.Appointment{existing},
			want:     true,
		},
		{
			name: "different resource and professional",
			candidate: appt(t, "", resourceB, proTwo,
				"2024-06-05T09:15:00Z", "2024-06-05T09:45:00Z", model.AppointmentStatusScheduled),
			existing: []*model.Appointment{existing},
			want:     false,
		},
		{
			name: "back to back same resource",
			candidate: appt(t, "", resourceA, proTwo,
				"2024-06-05T09:30:00Z", "2024-06-05T10:00:00Z", model.AppointmentStatusScheduled),
			existing: []*model.Appointment{existing},
			want:     false,
		},
		{
			name: "cancelled appointment frees the slot",
			candidate: appt(t, "", resourceA, proTwo,
				"2024-06-05T09:15:00Z", "2024-06-05T09:45:00Z", model.AppointmentStatusScheduled),
			existing: []*model.Appointment{
				appt(t, "a1", resourceA, proOne,
					"2024-06-05T09:00:00Z", "2024-06-05T09:30:00Z", model.AppointmentStatusCancelled),
			},
			want: false,
		},
		{
			name: "no show frees the slot",
			candidate: appt(t, "", resourceA, proTwo,
				"2024-06-05T09:15:00Z", "2024-06-05T09:45:00Z", model.AppointmentStatusScheduled),
			existing: []*model.Appointment{
				appt(t, "a1", resourceA, proOne,
					"2024-06-05T09:00:00Z", "2024-06-05T09:30:00Z", model.AppointmentStatusNoShow),
			},
			want: false,
		},
		{
			name: "editing skips own record",
			candidate: appt(t, "a1", resourceA, proOne,
				"2024-06-05T09:00:00Z", "2024-06-05T09:45:00Z", model.AppointmentStatusScheduled),
			existing: []*model.Appointment{existing},
			want:     false,
		},
		{
			name: "empty professional never matches by professional",
			candidate: appt(t, "", resourceB, "",
				"2024-06-05T09:15:00Z", "2024-06-05T09:45:00Z", model.AppointmentStatusScheduled),
			existing: []*model.Appointment{
				appt(t, "a2", resourceA, "",
					"2024-06-05T09:00:00Z", "2024-06-05T09:30:00Z", model.AppointmentStatusScheduled),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasConflict(tt.candidate, tt.existing)
			if (got != nil) != tt.want {
				t.Errorf("HasConflict() = %v, want conflict %v", got, tt.want)
			}
		})
	}
}

func TestHasConflictSymmetry(t *testing.T) {
	a := appt(t, "a1", "507f1f77bcf86cd799439011", "64b2f0a9e4b0c72a18f00001",
		"2024-06-05T09:00:00Z", "2024-06-05T09:30:00Z", model.AppointmentStatusScheduled)
	b := appt(t, "b1", "507f1f77bcf86cd799439011", "64b2f0a9e4b0c72a18f00002",
		"2024-06-05T09:15:00Z", "2024-06-05T09:45:00Z", model.AppointmentStatusScheduled)

	ab := HasConflict(a, []*model.Appointment{b}) != nil
	ba := HasConflict(b, []*model.Appointment{a}) != nil
	if ab != ba {
		t.Errorf("conflict is not symmetric: a vs b = %v, b vs a = %v", ab, ba)
	}
	if !ab {
		t.Error("expected overlapping same-resource appointments to conflict")
	}
}
