package service

import (
	"context"
	"errors"
	"testing"
	"time"

	schederrors "agenda/internal/schedules/errors"
	"agenda/internal/schedules/validator"
	"agenda/pkg/config"
	mongotx "agenda/pkg/db/mongo"
	apperrors "agenda/pkg/errors"
	"agenda/pkg/events"
	"agenda/pkg/logger"
	"agenda/pkg/model"
)

const testResourceID = "507f1f77bcf86cd799439011"

type mockScheduleEntryRepository struct {
	insertFunc                func(ctx context.Context, entry *model.ScheduleEntry) error
	upsertFunc                func(ctx context.Context, entry *model.ScheduleEntry) error
	findByIDFunc              func(ctx context.Context, id string) (*model.ScheduleEntry, error)
	findByResourceAndDateFunc func(ctx context.Context, resourceID string, date string) (*model.ScheduleEntry, error)
	findByResourceFunc        func(ctx context.Context, resourceID string, limit int, offset int64) ([]*model.ScheduleEntry, error)
	findInRangeFunc           func(ctx context.Context, resourceID string, startDate string, endDate string) ([]*model.ScheduleEntry, error)
	replaceRangeFunc          func(ctx context.Context, resourceID string, startDate string, endDate string, keepCustomized bool, entries []*model.ScheduleEntry) (int, error)
	deleteByIDFunc            func(ctx context.Context, id string) error
	deleteByResourceFunc      func(ctx context.Context, resourceID string) (int64, error)
	deleteInRangeFunc         func(ctx context.Context, resourceID string, startDate string, endDate string) (int64, error)
	countFunc                 func(ctx context.Context, resourceID string) (int64, error)
}

func (m *mockScheduleEntryRepository) Insert(ctx context.Context, entry *model.ScheduleEntry) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, entry)
	}
	return nil
}

func (m *mockScheduleEntryRepository) Upsert(ctx context.Context, entry *model.ScheduleEntry) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, entry)
	}
	return nil
}

func (m *mockScheduleEntryRepository) FindByID(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, schederrors.ErrEntryNotFound
}

func (m *mockScheduleEntryRepository) FindByResourceAndDate(ctx context.Context, resourceID string, date string) (*model.ScheduleEntry, error) {
	if m.findByResourceAndDateFunc != nil {
		return m.findByResourceAndDateFunc(ctx, resourceID, date)
	}
	return nil, schederrors.ErrEntryNotFound
}

func (m *mockScheduleEntryRepository) FindByResource(ctx context.Context, resourceID string, limit int, offset int64) ([]*model.ScheduleEntry, error) {
	if m.findByResourceFunc != nil {
		return m.findByResourceFunc(ctx, resourceID, limit, offset)
	}
	return []*model.ScheduleEntry{}, nil
}

func (m *mockScheduleEntryRepository) FindByResourceInRange(ctx context.Context, resourceID string, startDate string, endDate string) ([]*model.ScheduleEntry, error) {
	if m.findInRangeFunc != nil {
		return m.findInRangeFunc(ctx, resourceID, startDate, endDate)
	}
	return []*model.ScheduleEntry{}, nil
}

func (m *mockScheduleEntryRepository) ReplaceRange(ctx context.Context, resourceID string, startDate string, endDate string, keepCustomized bool, entries []*model.ScheduleEntry) (int, error) {
	if m.replaceRangeFunc != nil {
		return m.replaceRangeFunc(ctx, resourceID, startDate, endDate, keepCustomized, entries)
	}
	return len(entries), nil
}

func (m *mockScheduleEntryRepository) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFunc != nil {
		return m.deleteByIDFunc(ctx, id)
	}
	return nil
}

func (m *mockScheduleEntryRepository) DeleteByResource(ctx context.Context, resourceID string) (int64, error) {
	if m.deleteByResourceFunc != nil {
		return m.deleteByResourceFunc(ctx, resourceID)
	}
	return 0, nil
}

func (m *mockScheduleEntryRepository) DeleteByResourceInRange(ctx context.Context, resourceID string, startDate string, endDate string) (int64, error) {
	if m.deleteInRangeFunc != nil {
		return m.deleteInRangeFunc(ctx, resourceID, startDate, endDate)
	}
	return 0, nil
}

func (m *mockScheduleEntryRepository) Count(ctx context.Context, resourceID string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, resourceID)
	}
	return 0, nil
}

func (m *mockScheduleEntryRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestService(repo *mockScheduleEntryRepository) ScheduleService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})

	cfg := &config.Config{
		Log:                  log,
		ReadTimeout:          5 * time.Second,
		WriteTimeout:         5 * time.Second,
		MaxScheduleRangeDays: 366,
	}

	return NewScheduleService(repo, validator.NewScheduleValidator(log), events.NewNoop(), cfg)
}

func businessWeekRequest(replaceExisting bool) *model.RecurringScheduleRequest {
	return &model.RecurringScheduleRequest{
		ResourceID: testResourceID,
		WeekSchedule: map[string]model.DayScheduleConfig{
			"0": {Open: false},
			"1": {Open: true, OpenTime: "08:00", CloseTime: "18:00"},
			"2": {Open: true, OpenTime: "08:00", CloseTime: "18:00"},
			"3": {Open: true, OpenTime: "08:00", CloseTime: "18:00"},
			"4": {Open: true, OpenTime: "08:00", CloseTime: "18:00"},
			"5": {Open: true, OpenTime: "08:00", CloseTime: "18:00"},
			"6": {Open: false},
		},
		StartDate:       "2024-06-03",
		EndDate:         "2024-06-09",
		ReplaceExisting: replaceExisting,
	}
}

func appErrorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestApplyRecurringPreservesCustomizedDates(t *testing.T) {
	existing := []*model.ScheduleEntry{
		{
			ResourceID: testResourceID,
			Date:       "2024-06-05",
			DayOfWeek:  3,
			OpenTime:   "10:00",
			CloseTime:  "14:00",
			Customized: true,
		},
	}

	var gotKeepCustomized bool
	var gotEntries []*model.ScheduleEntry
	repo := &mockScheduleEntryRepository{
		findInRangeFunc: func(ctx context.Context, resourceID, startDate, endDate string) ([]*model.ScheduleEntry, error) {
			return existing, nil
		},
		replaceRangeFunc: func(ctx context.Context, resourceID, startDate, endDate string, keepCustomized bool, entries []*model.ScheduleEntry) (int, error) {
			gotKeepCustomized = keepCustomized
			gotEntries = entries
			return len(entries), nil
		},
	}

	svc := newTestService(repo)
	result, err := svc.ApplyRecurring(context.Background(), businessWeekRequest(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !gotKeepCustomized {
		t.Error("expected customized entries to be kept in storage")
	}
	if result.EntriesWritten != 6 {
		t.Errorf("expected 6 entries written, got %d", result.EntriesWritten)
	}
	if len(result.DatesPreserved) != 1 || result.DatesPreserved[0] != "2024-06-05" {
		t.Errorf("expected [2024-06-05] preserved, got %v", result.DatesPreserved)
	}
	for _, e := range gotEntries {
		if e.Date == "2024-06-05" {
			t.Error("customized date must not be rewritten without replace_existing")
		}
	}
}

func TestApplyRecurringOverwrite(t *testing.T) {
	existing := []*model.ScheduleEntry{
		{
			ResourceID: testResourceID,
			Date:       "2024-06-05",
			DayOfWeek:  3,
			OpenTime:   "10:00",
			CloseTime:  "14:00",
			Customized: true,
		},
	}

	var gotKeepCustomized bool
	var gotEntries []*model.ScheduleEntry
	repo := &mockScheduleEntryRepository{
		findInRangeFunc: func(ctx context.Context, resourceID, startDate, endDate string) ([]*model.ScheduleEntry, error) {
			return existing, nil
		},
		replaceRangeFunc: func(ctx context.Context, resourceID, startDate, endDate string, keepCustomized bool, entries []*model.ScheduleEntry) (int, error) {
			gotKeepCustomized = keepCustomized
			gotEntries = entries
			return len(entries), nil
		},
	}

	svc := newTestService(repo)
	result, err := svc.ApplyRecurring(context.Background(), businessWeekRequest(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKeepCustomized {
		t.Error("overwrite must clear customized entries too")
	}
	if result.EntriesWritten != 7 {
		t.Errorf("expected 7 entries written, got %d", result.EntriesWritten)
	}
	if len(result.DatesPreserved) != 0 {
		t.Errorf("expected no preserved dates, got %v", result.DatesPreserved)
	}

	for _, e := range gotEntries {
		if e.Date == "2024-06-05" {
			if e.Customized {
				t.Error("overwritten Wednesday must come from the pattern, not the old exception")
			}
			if e.OpenTime != "08:00" || e.CloseTime != "18:00" {
				t.Errorf("overwritten Wednesday has window %s-%s, want 08:00-18:00", e.OpenTime, e.CloseTime)
			}
		}
	}
}

func TestApplyRecurringValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *model.RecurringScheduleRequest)
		code    string
	}{
		{
			name:   "bad start date",
			mutate: func(req *model.RecurringScheduleRequest) { req.StartDate = "June 3rd" },
			code:   apperrors.CodeValidation,
		},
		{
			name:   "inverted range",
			mutate: func(req *model.RecurringScheduleRequest) { req.StartDate, req.EndDate = req.EndDate, req.StartDate },
			code:   apperrors.CodeValidation,
		},
		{
			name:   "empty week schedule",
			mutate: func(req *model.RecurringScheduleRequest) { req.WeekSchedule = map[string]model.DayScheduleConfig{} },
			code:   apperrors.CodeValidation,
		},
		{
			name:   "missing weekday key",
			mutate: func(req *model.RecurringScheduleRequest) { delete(req.WeekSchedule, "6") },
			code:   apperrors.CodeValidation,
		},
		{
			name: "open day without times",
			mutate: func(req *model.RecurringScheduleRequest) {
				req.WeekSchedule["1"] = model.DayScheduleConfig{Open: true}
			},
			code: apperrors.CodeValidation,
		},
		{
			name: "inverted day window",
			mutate: func(req *model.RecurringScheduleRequest) {
				req.WeekSchedule["1"] = model.DayScheduleConfig{Open: true, OpenTime: "18:00", CloseTime: "08:00"}
			},
			code: apperrors.CodeValidation,
		},
		{
			name:   "missing resource id",
			mutate: func(req *model.RecurringScheduleRequest) { req.ResourceID = "" },
			code:   apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockScheduleEntryRepository{})
			req := businessWeekRequest(false)
			tt.mutate(req)

			_, err := svc.ApplyRecurring(context.Background(), req)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := appErrorCode(t, err); code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, code)
			}
		})
	}
}

func TestApplyRecurringRangeTooLarge(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	cfg := &config.Config{
		Log:                  log,
		ReadTimeout:          5 * time.Second,
		WriteTimeout:         5 * time.Second,
		MaxScheduleRangeDays: 5,
	}
	svc := NewScheduleService(&mockScheduleEntryRepository{}, validator.NewScheduleValidator(log), events.NewNoop(), cfg)

	_, err := svc.ApplyRecurring(context.Background(), businessWeekRequest(false))
	if err == nil {
		t.Fatal("expected error for oversized range")
	}
	if code := appErrorCode(t, err); code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, code)
	}
}

func TestApplyRecurringConcurrentWriteConflict(t *testing.T) {
	repo := &mockScheduleEntryRepository{
		replaceRangeFunc: func(ctx context.Context, resourceID, startDate, endDate string, keepCustomized bool, entries []*model.ScheduleEntry) (int, error) {
			return 0, schederrors.ErrEntryExists
		},
	}

	svc := newTestService(repo)
	_, err := svc.ApplyRecurring(context.Background(), businessWeekRequest(false))
	if err == nil {
		t.Fatal("expected error when a concurrent writer wins the unique index race")
	}
	if code := appErrorCode(t, err); code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, code)
	}
}

func TestCheckConflictsIncludeCustomizedModes(t *testing.T) {
	existing := []*model.ScheduleEntry{
		{ResourceID: testResourceID, Date: "2024-06-04", DayOfWeek: 2, OpenTime: "08:00", CloseTime: "18:00", Customized: false},
		{ResourceID: testResourceID, Date: "2024-06-05", DayOfWeek: 3, OpenTime: "10:00", CloseTime: "14:00", Customized: true},
	}

	repo := &mockScheduleEntryRepository{
		findInRangeFunc: func(ctx context.Context, resourceID, startDate, endDate string) ([]*model.ScheduleEntry, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo)

	req := &model.ConflictCheckRequest{
		ResourceID: testResourceID,
		StartDate:  "2024-06-03",
		EndDate:    "2024-06-09",
	}

	// Default: only customized entries count.
	report, err := svc.CheckConflicts(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.ConflictingDates) != 1 || report.ConflictingDates[0] != "2024-06-05" {
		t.Errorf("expected [2024-06-05], got %v", report.ConflictingDates)
	}

	// Explicit false: any existing entry counts.
	includeAll := false
	req.IncludeCustomized = &includeAll
	report, err = svc.CheckConflicts(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.ConflictingDates) != 2 {
		t.Errorf("expected both dates to conflict, got %v", report.ConflictingDates)
	}
}

func TestCheckConflictsDaysOfWeekFilter(t *testing.T) {
	existing := []*model.ScheduleEntry{
		{ResourceID: testResourceID, Date: "2024-06-05", DayOfWeek: 3, Customized: true},
		{ResourceID: testResourceID, Date: "2024-06-08", DayOfWeek: 6, Customized: true},
	}

	repo := &mockScheduleEntryRepository{
		findInRangeFunc: func(ctx context.Context, resourceID, startDate, endDate string) ([]*model.ScheduleEntry, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo)

	// Only weekdays Monday through Friday proposed: the Saturday exception
	// is outside the proposal and must not be reported.
	report, err := svc.CheckConflicts(context.Background(), &model.ConflictCheckRequest{
		ResourceID: testResourceID,
		StartDate:  "2024-06-03",
		EndDate:    "2024-06-09",
		DaysOfWeek: []int{1, 2, 3, 4, 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.ConflictingDates) != 1 || report.ConflictingDates[0] != "2024-06-05" {
		t.Errorf("expected [2024-06-05], got %v", report.ConflictingDates)
	}
}

func TestCheckConflictsExplicitDates(t *testing.T) {
	existing := []*model.ScheduleEntry{
		{ResourceID: testResourceID, Date: "2024-06-05", DayOfWeek: 3, Customized: true},
		{ResourceID: testResourceID, Date: "2024-06-12", DayOfWeek: 3, Customized: true},
	}

	var gotStart, gotEnd string
	repo := &mockScheduleEntryRepository{
		findInRangeFunc: func(ctx context.Context, resourceID, startDate, endDate string) ([]*model.ScheduleEntry, error) {
			gotStart, gotEnd = startDate, endDate
			return existing, nil
		},
	}
	svc := newTestService(repo)

	// No range at all: the dates list alone drives the check.
	report, err := svc.CheckConflicts(context.Background(), &model.ConflictCheckRequest{
		ResourceID: testResourceID,
		Dates:      []string{"2024-06-12", "2024-06-05", "2024-06-20"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.ConflictingDates) != 2 ||
		report.ConflictingDates[0] != "2024-06-05" ||
		report.ConflictingDates[1] != "2024-06-12" {
		t.Errorf("expected [2024-06-05 2024-06-12], got %v", report.ConflictingDates)
	}
	if gotStart != "2024-06-05" || gotEnd != "2024-06-20" {
		t.Errorf("lookup range = %s..%s, want 2024-06-05..2024-06-20", gotStart, gotEnd)
	}
}

func TestCheckConflictsDatesUnionedWithRange(t *testing.T) {
	existing := []*model.ScheduleEntry{
		{ResourceID: testResourceID, Date: "2024-06-04", DayOfWeek: 2, Customized: true},
		{ResourceID: testResourceID, Date: "2024-06-20", DayOfWeek: 4, Customized: true},
	}

	repo := &mockScheduleEntryRepository{
		findInRangeFunc: func(ctx context.Context, resourceID, startDate, endDate string) ([]*model.ScheduleEntry, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo)

	// 2024-06-20 sits outside the range but is listed explicitly; both
	// sources contribute to the proposal.
	report, err := svc.CheckConflicts(context.Background(), &model.ConflictCheckRequest{
		ResourceID: testResourceID,
		StartDate:  "2024-06-03",
		EndDate:    "2024-06-09",
		Dates:      []string{"2024-06-20", "2024-06-04"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.ConflictingDates) != 2 ||
		report.ConflictingDates[0] != "2024-06-04" ||
		report.ConflictingDates[1] != "2024-06-20" {
		t.Errorf("expected [2024-06-04 2024-06-20], got %v", report.ConflictingDates)
	}
}

func TestCheckConflictsRequiresDatesOrRange(t *testing.T) {
	svc := newTestService(&mockScheduleEntryRepository{})

	_, err := svc.CheckConflicts(context.Background(), &model.ConflictCheckRequest{
		ResourceID: testResourceID,
	})
	if err == nil {
		t.Fatal("expected error when neither a range nor dates are given")
	}
	if code := appErrorCode(t, err); code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, code)
	}
}

func TestCheckConflictsDoesNotWrite(t *testing.T) {
	repo := &mockScheduleEntryRepository{
		replaceRangeFunc: func(ctx context.Context, resourceID, startDate, endDate string, keepCustomized bool, entries []*model.ScheduleEntry) (int, error) {
			t.Error("conflict check must not write")
			return 0, nil
		},
		upsertFunc: func(ctx context.Context, entry *model.ScheduleEntry) error {
			t.Error("conflict check must not write")
			return nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.CheckConflicts(context.Background(), &model.ConflictCheckRequest{
		ResourceID: testResourceID,
		StartDate:  "2024-06-03",
		EndDate:    "2024-06-09",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyExceptionOverExistingCustomized(t *testing.T) {
	existing := &model.ScheduleEntry{
		ResourceID: testResourceID,
		Date:       "2024-06-05",
		DayOfWeek:  3,
		OpenTime:   "10:00",
		CloseTime:  "14:00",
		Customized: true,
	}

	upserts := 0
	repo := &mockScheduleEntryRepository{
		findByResourceAndDateFunc: func(ctx context.Context, resourceID, date string) (*model.ScheduleEntry, error) {
			return existing, nil
		},
		upsertFunc: func(ctx context.Context, entry *model.ScheduleEntry) error {
			upserts++
			return nil
		},
	}
	svc := newTestService(repo)

	req := &model.ExceptionScheduleRequest{
		ResourceID: testResourceID,
		Date:       "2024-06-05",
		OpenTime:   "09:00",
		CloseTime:  "12:00",
	}

	// Without replace_existing the prior exception wins.
	_, err := svc.ApplyException(context.Background(), req)
	if err == nil {
		t.Fatal("expected conflict")
	}
	if code := appErrorCode(t, err); code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, code)
	}
	if upserts != 0 {
		t.Errorf("expected no writes, got %d", upserts)
	}

	// With replace_existing the new exception is written.
	req.ReplaceExisting = true
	entry, err := svc.ApplyException(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upserts != 1 {
		t.Errorf("expected 1 upsert, got %d", upserts)
	}
	if !entry.Customized {
		t.Error("exception entry must be customized")
	}
	if entry.OpenTime != "09:00" || entry.CloseTime != "12:00" {
		t.Errorf("entry window %s-%s, want 09:00-12:00", entry.OpenTime, entry.CloseTime)
	}
}

func TestApplyExceptionClosedDay(t *testing.T) {
	var written *model.ScheduleEntry
	repo := &mockScheduleEntryRepository{
		upsertFunc: func(ctx context.Context, entry *model.ScheduleEntry) error {
			written = entry
			return nil
		},
	}
	svc := newTestService(repo)

	entry, err := svc.ApplyException(context.Background(), &model.ExceptionScheduleRequest{
		ResourceID: testResourceID,
		Date:       "2024-06-08",
		Closed:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written == nil {
		t.Fatal("expected an upsert")
	}
	if !entry.Closed || !entry.Customized {
		t.Errorf("expected closed customized entry, got closed=%v customized=%v", entry.Closed, entry.Customized)
	}
	if entry.OpenTime != "" || entry.CloseTime != "" {
		t.Errorf("closed entry must carry no window, got %s-%s", entry.OpenTime, entry.CloseTime)
	}
	if entry.DayOfWeek != 6 {
		t.Errorf("2024-06-08 is a Saturday, got day_of_week=%d", entry.DayOfWeek)
	}
}

func TestApplyExceptionValidation(t *testing.T) {
	svc := newTestService(&mockScheduleEntryRepository{})

	tests := []struct {
		name string
		req  *model.ExceptionScheduleRequest
	}{
		{
			name: "open exception without times",
			req:  &model.ExceptionScheduleRequest{ResourceID: testResourceID, Date: "2024-06-05"},
		},
		{
			name: "inverted window",
			req:  &model.ExceptionScheduleRequest{ResourceID: testResourceID, Date: "2024-06-05", OpenTime: "14:00", CloseTime: "10:00"},
		},
		{
			name: "bad date",
			req:  &model.ExceptionScheduleRequest{ResourceID: testResourceID, Date: "05/06/2024", OpenTime: "09:00", CloseTime: "12:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ApplyException(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := appErrorCode(t, err); code != apperrors.CodeValidation {
				t.Errorf("expected code %s, got %s", apperrors.CodeValidation, code)
			}
		})
	}
}

func TestGetAvailability(t *testing.T) {
	open := &model.ScheduleEntry{
		ResourceID: testResourceID,
		Date:       "2024-06-05",
		DayOfWeek:  3,
		OpenTime:   "08:00",
		CloseTime:  "18:00",
	}
	closed := &model.ScheduleEntry{
		ResourceID: testResourceID,
		Date:       "2024-06-08",
		DayOfWeek:  6,
		Closed:     true,
		Customized: true,
	}

	repo := &mockScheduleEntryRepository{
		findByResourceAndDateFunc: func(ctx context.Context, resourceID, date string) (*model.ScheduleEntry, error) {
			switch date {
			case "2024-06-05":
				return open, nil
			case "2024-06-08":
				return closed, nil
			}
			return nil, schederrors.ErrEntryNotFound
		},
	}
	svc := newTestService(repo)

	tests := []struct {
		name         string
		date         string
		clock        string
		wantBookable bool
		wantError    bool
	}{
		{name: "open day no clock", date: "2024-06-05", wantBookable: true},
		{name: "inside window", date: "2024-06-05", clock: "09:00", wantBookable: true},
		{name: "exactly at close", date: "2024-06-05", clock: "18:00", wantBookable: false},
		{name: "before open", date: "2024-06-05", clock: "07:59", wantBookable: false},
		{name: "closed day", date: "2024-06-08", wantBookable: false},
		{name: "no entry", date: "2024-06-10", wantError: true},
		{name: "bad clock", date: "2024-06-05", clock: "9am", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bookable, err := svc.GetAvailability(context.Background(), testResourceID, tt.date, tt.clock)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bookable != tt.wantBookable {
				t.Errorf("bookable = %v, want %v", bookable, tt.wantBookable)
			}
		})
	}
}

func TestGetForResourcePaginates(t *testing.T) {
	repo := &mockScheduleEntryRepository{
		countFunc: func(ctx context.Context, resourceID string) (int64, error) {
			time.Sleep(5 * time.Millisecond)
			return 42, nil
		},
		findByResourceFunc: func(ctx context.Context, resourceID string, limit int, offset int64) ([]*model.ScheduleEntry, error) {
			time.Sleep(5 * time.Millisecond)
			return []*model.ScheduleEntry{{ResourceID: resourceID, Date: "2024-06-03"}}, nil
		},
	}
	svc := newTestService(repo)

	// Run repeatedly to give -race a chance to catch unsynchronized access.
	for i := 0; i < 10; i++ {
		entries, count, err := svc.GetForResource(context.Background(), testResourceID, 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 42 {
			t.Errorf("iteration %d: expected count 42, got %d", i, count)
		}
		if len(entries) != 1 {
			t.Errorf("iteration %d: expected 1 entry, got %d", i, len(entries))
		}
	}
}

func TestDeleteForResource(t *testing.T) {
	var rangeCalls, fullCalls int
	repo := &mockScheduleEntryRepository{
		deleteByResourceFunc: func(ctx context.Context, resourceID string) (int64, error) {
			fullCalls++
			return 7, nil
		},
		deleteInRangeFunc: func(ctx context.Context, resourceID, startDate, endDate string) (int64, error) {
			rangeCalls++
			return 3, nil
		},
	}
	svc := newTestService(repo)

	deleted, err := svc.DeleteForResource(context.Background(), testResourceID, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 7 || fullCalls != 1 {
		t.Errorf("expected full delete of 7, got %d (calls=%d)", deleted, fullCalls)
	}

	deleted, err = svc.DeleteForResource(context.Background(), testResourceID, "2024-06-03", "2024-06-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 3 || rangeCalls != 1 {
		t.Errorf("expected range delete of 3, got %d (calls=%d)", deleted, rangeCalls)
	}

	if _, err := svc.DeleteForResource(context.Background(), testResourceID, "2024-06-03", ""); err == nil {
		t.Error("expected error for half-open range parameters")
	}
}

func TestGetEntryByID(t *testing.T) {
	const entryID = "507f1f77bcf86cd799439099"
	repo := &mockScheduleEntryRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.ScheduleEntry, error) {
			if id != entryID {
				t.Errorf("expected lookup for %s, got %s", entryID, id)
			}
			return &model.ScheduleEntry{
				ID:         entryID,
				ResourceID: testResourceID,
				Date:       "2024-06-05",
				OpenTime:   "09:00",
				CloseTime:  "18:00",
			}, nil
		},
	}
	svc := newTestService(repo)

	entry, err := svc.GetEntry(context.Background(), entryID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Date != "2024-06-05" {
		t.Errorf("expected entry for 2024-06-05, got %s", entry.Date)
	}
}

func TestGetEntryNotFound(t *testing.T) {
	svc := newTestService(&mockScheduleEntryRepository{})

	_, err := svc.GetEntry(context.Background(), "507f1f77bcf86cd799439099")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	const entryID = "507f1f77bcf86cd799439099"
	deleted := false
	repo := &mockScheduleEntryRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.ScheduleEntry, error) {
			return &model.ScheduleEntry{ID: entryID, ResourceID: testResourceID, Date: "2024-06-05"}, nil
		},
		deleteByIDFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := newTestService(repo)

	if err := svc.DeleteEntry(context.Background(), entryID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected the entry to be deleted")
	}
}

func TestDeleteEntryNotFound(t *testing.T) {
	svc := newTestService(&mockScheduleEntryRepository{})

	err := svc.DeleteEntry(context.Background(), "507f1f77bcf86cd799439099")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
