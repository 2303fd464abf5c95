package scheduling

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"agenda/pkg/model"
)

// fullWeek returns a seven-key week map, every day closed, with the given
// overrides applied on top.
func fullWeek(overrides map[string]model.DayScheduleConfig) map[string]model.DayScheduleConfig {
	week := make(map[string]model.DayScheduleConfig, 7)
	for dow := 0; dow < 7; dow++ {
		week[strconv.Itoa(dow)] = model.DayScheduleConfig{Open: false}
	}
	for key, day := range overrides {
		week[key] = day
	}
	return week
}

func TestNewWeeklyPattern(t *testing.T) {
	tests := []struct {
		name      string
		week      map[string]model.DayScheduleConfig
		wantError bool
	}{
		{
			name: "full business week",
			week: fullWeek(map[string]model.DayScheduleConfig{
				"1": {Open: true, OpenTime: "08:00", CloseTime: "18:00"},
				"2": {Open: true, OpenTime: "08:00", CloseTime: "18:00"},
				"3": {Open: true, OpenTime: "08:00", CloseTime: "18:00"},
				"4": {Open: true, OpenTime: "08:00", CloseTime: "18:00"},
				"5": {Open: true, OpenTime: "08:00", CloseTime: "18:00"},
			}),
			wantError: false,
		},
		{
			name:      "every day closed",
			week:      fullWeek(nil),
			wantError: false,
		},
		{
			name:      "empty week schedule",
			week:      map[string]model.DayScheduleConfig{},
			wantError: true,
		},
		{
			name: "missing weekday key",
			week: map[string]model.DayScheduleConfig{
				"1": {Open: true, OpenTime: "09:00", CloseTime: "17:00"},
			},
			wantError: true,
		},
		{
			name: "weekday key out of range",
			week: fullWeek(map[string]model.DayScheduleConfig{
				"7": {Open: true, OpenTime: "09:00", CloseTime: "17:00"},
			}),
			wantError: true,
		},
		{
			name: "non-numeric weekday key",
			week: fullWeek(map[string]model.DayScheduleConfig{
				"monday": {Open: true, OpenTime: "09:00", CloseTime: "17:00"},
			}),
			wantError: true,
		},
		{
			name: "open equals close",
			week: fullWeek(map[string]model.DayScheduleConfig{
				"1": {Open: true, OpenTime: "09:00", CloseTime: "09:00"},
			}),
			wantError: true,
		},
		{
			name: "inverted window",
			week: fullWeek(map[string]model.DayScheduleConfig{
				"1": {Open: true, OpenTime: "18:00", CloseTime: "08:00"},
			}),
			wantError: true,
		},
		{
			name: "malformed open time",
			week: fullWeek(map[string]model.DayScheduleConfig{
				"1": {Open: true, OpenTime: "8am", CloseTime: "17:00"},
			}),
			wantError: true,
		},
		{
			name: "closed day ignores bad times",
			week: fullWeek(map[string]model.DayScheduleConfig{
				"1": {Open: false, OpenTime: "nonsense", CloseTime: ""},
			}),
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeeklyPattern(tt.week)
			if (err != nil) != tt.wantError {
				t.Errorf("NewWeeklyPattern() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, ErrInvalidPattern) {
				t.Errorf("NewWeeklyPattern() error = %v, want ErrInvalidPattern", err)
			}
		})
	}
}

func TestNewWeeklyPatternRequiresAllSevenKeys(t *testing.T) {
	// Six keys, Saturday omitted. Closed days must be declared explicitly,
	// never inferred from absence.
	week := fullWeek(nil)
	delete(week, "6")

	_, err := NewWeeklyPattern(week)
	if err == nil {
		t.Fatal("NewWeeklyPattern() accepted a week with weekday 6 missing")
	}
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("NewWeeklyPattern() error = %v, want ErrInvalidPattern", err)
	}
	if !strings.Contains(err.Error(), `"6"`) {
		t.Errorf("NewWeeklyPattern() error = %v, want it to name the missing key", err)
	}
}

func TestValidClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59", "12:00"}
	invalid := []string{"24:00", "9:00", "09:60", "09-00", "", "0900"}

	for _, s := range valid {
		if !ValidClock(s) {
			t.Errorf("ValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidClock(s) {
			t.Errorf("ValidClock(%q) = true, want false", s)
		}
	}
}
