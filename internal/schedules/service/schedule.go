package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	schederrors "agenda/internal/schedules/errors"
	"agenda/internal/schedules/repository"
	"agenda/internal/schedules/validator"
	"agenda/pkg/config"
	apperrors "agenda/pkg/errors"
	"agenda/pkg/events"
	"agenda/pkg/model"
	"agenda/pkg/scheduling"

	"go.mongodb.org/mongo-driver/mongo"
)

type ScheduleService interface {
	ApplyRecurring(ctx context.Context, req *model.RecurringScheduleRequest) (*model.RecurringScheduleResult, error)
	CheckConflicts(ctx context.Context, req *model.ConflictCheckRequest) (*model.ConflictReport, error)
	ApplyException(ctx context.Context, req *model.ExceptionScheduleRequest) (*model.ScheduleEntry, error)
	GetEntry(ctx context.Context, id string) (*model.ScheduleEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	GetForResource(ctx context.Context, resourceID string, limit int, offset int64) ([]*model.ScheduleEntry, int64, error)
	GetForResourceInRange(ctx context.Context, resourceID string, startDate string, endDate string) ([]*model.ScheduleEntry, error)
	GetAvailability(ctx context.Context, resourceID string, date string, clock string) (*model.ScheduleEntry, bool, error)
	DeleteForResource(ctx context.Context, resourceID string, startDate string, endDate string) (int64, error)
}

type scheduleService struct {
	repo      repository.ScheduleEntryRepository
	validator *validator.ScheduleValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewScheduleService(
	repo repository.ScheduleEntryRepository,
	validator *validator.ScheduleValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ScheduleService {
	if publisher == nil {
		publisher = events.NewNoop()
	}
	return &scheduleService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// ApplyRecurring expands the weekly pattern over the date range and swaps the
// stored entries atomically. Without replace_existing, dates holding
// customized entries are left untouched and reported back as preserved.
func (s *scheduleService) ApplyRecurring(ctx context.Context, req *model.RecurringScheduleRequest) (*model.RecurringScheduleResult, error) {
	if err := s.validator.ValidateRecurring(req); err != nil {
		s.cfg.Log.Warn("Recurring schedule validation failed",
			"resource_id", req.ResourceID,
			"error", err,
		)
		return nil, apperrors.Validation("Recurring schedule validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	pattern, err := scheduling.NewWeeklyPattern(req.WeekSchedule)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	dateRange := scheduling.DateRange{Start: req.StartDate, End: req.EndDate}
	if err := s.checkRangeSize(dateRange); err != nil {
		return nil, err
	}

	policy := scheduling.PolicyFromReplaceExisting(req.ReplaceExisting)

	var result *model.RecurringScheduleResult
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByResourceInRange(sessCtx, req.ResourceID, req.StartDate, req.EndDate)
		if err != nil {
			return apperrors.Internal("Failed to load existing schedule entries", err)
		}

		kept, report, err := scheduling.ApplyRecurring(req.ResourceID, pattern, dateRange, derefEntries(existing), policy)
		if err != nil {
			return apperrors.InvalidInput(err.Error())
		}

		keepCustomized := policy == scheduling.Preserve
		written, err := s.repo.ReplaceRange(sessCtx, req.ResourceID, req.StartDate, req.EndDate, keepCustomized, refEntries(kept))
		if err != nil {
			if errors.Is(err, schederrors.ErrEntryExists) {
				return apperrors.Conflict("Schedule was modified concurrently, retry the operation")
			}
			return apperrors.Internal("Failed to write schedule entries", err)
		}

		result = &model.RecurringScheduleResult{
			ResourceID:     req.ResourceID,
			EntriesWritten: written,
		}
		if policy == scheduling.Preserve {
			result.DatesPreserved = report.ConflictingDates
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to apply recurring schedule",
			"resource_id", req.ResourceID,
			"start_date", req.StartDate,
			"end_date", req.EndDate,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Recurring schedule applied",
		"resource_id", req.ResourceID,
		"start_date", req.StartDate,
		"end_date", req.EndDate,
		"policy", policy.String(),
		"entries_written", result.EntriesWritten,
		"dates_preserved", len(result.DatesPreserved),
	)

	if err := s.publisher.Publish(ctx, events.TypeRecurringApplied, req.ResourceID, result); err != nil {
		s.cfg.Log.Warn("Failed to publish recurring schedule event",
			"resource_id", req.ResourceID,
			"error", err,
		)
	}

	return result, nil
}

// CheckConflicts is a read-only dry run: it reports which dates in the range
// would collide with existing entries, without writing anything.
func (s *scheduleService) CheckConflicts(ctx context.Context, req *model.ConflictCheckRequest) (*model.ConflictReport, error) {
	if err := s.validator.ValidateConflictCheck(req); err != nil {
		return nil, apperrors.Validation("Conflict check validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	proposed, err := s.proposedDates(req)
	if err != nil {
		return nil, err
	}
	if len(proposed) == 0 {
		report := scheduling.CheckConflicts(req.ResourceID, nil, nil, true)
		return &report, nil
	}

	// Dates are stored as YYYY-MM-DD strings, so the first and last proposed
	// dates bound the lookup range.
	existing, err := s.repo.FindByResourceInRange(ctx, req.ResourceID, proposed[0], proposed[len(proposed)-1])
	if err != nil {
		s.cfg.Log.Error("Failed to load schedule entries for conflict check",
			"resource_id", req.ResourceID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to check conflicts", err)
	}

	includeCustomized := true
	if req.IncludeCustomized != nil {
		includeCustomized = *req.IncludeCustomized
	}

	report := scheduling.CheckConflicts(req.ResourceID, proposed, derefEntries(existing), includeCustomized)
	return &report, nil
}

// ApplyException writes a customized entry for a single date. An existing
// customized entry on that date is only replaced when replace_existing is set.
func (s *scheduleService) ApplyException(ctx context.Context, req *model.ExceptionScheduleRequest) (*model.ScheduleEntry, error) {
	if err := s.validator.ValidateException(req); err != nil {
		s.cfg.Log.Warn("Exception schedule validation failed",
			"resource_id", req.ResourceID,
			"date", req.Date,
			"error", err,
		)
		return nil, apperrors.Validation("Exception schedule validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	entry, err := scheduling.BuildException(req.ResourceID, req.Date, req.OpenTime, req.CloseTime, req.Closed)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByResourceAndDate(sessCtx, req.ResourceID, req.Date)
		if err != nil && !errors.Is(err, schederrors.ErrEntryNotFound) {
			return apperrors.Internal("Failed to check for existing schedule entry", err)
		}

		if existing != nil && existing.Customized && !req.ReplaceExisting {
			return apperrors.Conflict("A customized entry already exists for this date")
		}

		return s.repo.Upsert(sessCtx, &entry)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to apply schedule exception",
			"resource_id", req.ResourceID,
			"date", req.Date,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Schedule exception applied",
		"resource_id", req.ResourceID,
		"date", req.Date,
		"closed", req.Closed,
	)

	if err := s.publisher.Publish(ctx, events.TypeExceptionSet, req.ResourceID, &entry); err != nil {
		s.cfg.Log.Warn("Failed to publish schedule exception event",
			"resource_id", req.ResourceID,
			"error", err,
		)
	}

	return &entry, nil
}

func (s *scheduleService) GetEntry(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Entry ID cannot be empty")
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, schederrors.ErrEntryNotFound) {
			return nil, apperrors.NotFoundWithID("Schedule entry", id)
		}
		if errors.Is(err, schederrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid entry ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve schedule entry", err)
	}

	return entry, nil
}

func (s *scheduleService) DeleteEntry(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Entry ID cannot be empty")
	}

	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, schederrors.ErrEntryNotFound) {
			return apperrors.NotFoundWithID("Schedule entry", id)
		}
		s.cfg.Log.Error("Failed to delete schedule entry", "id", id, "error", err)
		return apperrors.Internal("Failed to delete schedule entry", err)
	}

	s.cfg.Log.Info("Schedule entry deleted", "id", id, "resource_id", entry.ResourceID, "date", entry.Date)

	if err := s.publisher.Publish(ctx, events.TypeScheduleDeleted, entry.ResourceID, map[string]any{
		"resource_id": entry.ResourceID,
		"date":        entry.Date,
		"deleted":     int64(1),
	}); err != nil {
		s.cfg.Log.Warn("Failed to publish schedule deletion event",
			"resource_id", entry.ResourceID,
			"error", err,
		)
	}

	return nil
}

func (s *scheduleService) GetForResource(ctx context.Context, resourceID string, limit int, offset int64) ([]*model.ScheduleEntry, int64, error) {
	if resourceID == "" {
		return nil, 0, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	// Shared context so a timeout in one lookup cancels the other.
	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var entries []*model.ScheduleEntry
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx, resourceID)
		if err != nil {
			s.cfg.Log.Error("Failed to count schedule entries", "resource_id", resourceID, "error", err)
			errCount = apperrors.Internal("Failed to count schedule entries", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		entries, err = s.repo.FindByResource(sharedCtx, resourceID, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get schedule entries",
				"resource_id", resourceID,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve schedule entries", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return entries, count, nil
}

func (s *scheduleService) GetForResourceInRange(ctx context.Context, resourceID string, startDate string, endDate string) ([]*model.ScheduleEntry, error) {
	if resourceID == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	dateRange := scheduling.DateRange{Start: startDate, End: endDate}
	if err := s.checkRangeSize(dateRange); err != nil {
		return nil, err
	}

	entries, err := s.repo.FindByResourceInRange(ctx, resourceID, startDate, endDate)
	if err != nil {
		s.cfg.Log.Error("Failed to get schedule entries in range",
			"resource_id", resourceID,
			"start_date", startDate,
			"end_date", endDate,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve schedule entries", err)
	}
	return entries, nil
}

// GetAvailability returns the entry for a date plus whether the resource is
// bookable, either for the whole day or at the given HH:MM clock.
func (s *scheduleService) GetAvailability(ctx context.Context, resourceID string, date string, clock string) (*model.ScheduleEntry, bool, error) {
	if resourceID == "" {
		return nil, false, apperrors.InvalidInput("Resource ID cannot be empty")
	}
	if _, err := scheduling.ParseDate(date); err != nil {
		return nil, false, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}
	if clock != "" && !scheduling.ValidClock(clock) {
		return nil, false, apperrors.InvalidInput("Time must be in HH:MM 24-hour format")
	}

	entry, err := s.repo.FindByResourceAndDate(ctx, resourceID, date)
	if err != nil {
		if errors.Is(err, schederrors.ErrEntryNotFound) {
			return nil, false, apperrors.NotFoundWithID("Schedule entry", resourceID+" "+date)
		}
		s.cfg.Log.Error("Failed to get schedule availability",
			"resource_id", resourceID,
			"date", date,
			"error", err,
		)
		return nil, false, apperrors.Internal("Failed to retrieve schedule availability", err)
	}

	bookable := !entry.Closed
	if clock != "" {
		bookable = scheduling.IsBookableAt(*entry, clock)
	}
	return entry, bookable, nil
}

// DeleteForResource removes a resource's entries, either across the whole
// collection or restricted to a date range when both bounds are given.
func (s *scheduleService) DeleteForResource(ctx context.Context, resourceID string, startDate string, endDate string) (int64, error) {
	if resourceID == "" {
		return 0, apperrors.InvalidInput("Resource ID cannot be empty")
	}
	if (startDate == "") != (endDate == "") {
		return 0, apperrors.InvalidInput("start_date and end_date must be provided together")
	}

	var deleted int64
	var err error
	if startDate != "" {
		if _, err := scheduling.ParseDate(startDate); err != nil {
			return 0, apperrors.InvalidInput("start_date must be in YYYY-MM-DD format")
		}
		if _, err := scheduling.ParseDate(endDate); err != nil {
			return 0, apperrors.InvalidInput("end_date must be in YYYY-MM-DD format")
		}
		deleted, err = s.repo.DeleteByResourceInRange(ctx, resourceID, startDate, endDate)
	} else {
		deleted, err = s.repo.DeleteByResource(ctx, resourceID)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to delete schedule entries",
			"resource_id", resourceID,
			"error", err,
		)
		return 0, apperrors.Internal("Failed to delete schedule entries", err)
	}
	if deleted == 0 {
		return 0, apperrors.NotFoundWithID("Schedule entries", resourceID)
	}

	s.cfg.Log.Info("Schedule entries deleted", "resource_id", resourceID, "count", deleted)

	if err := s.publisher.Publish(ctx, events.TypeScheduleDeleted, resourceID, map[string]any{
		"resource_id": resourceID,
		"deleted":     deleted,
	}); err != nil {
		s.cfg.Log.Warn("Failed to publish schedule deletion event",
			"resource_id", resourceID,
			"error", err,
		)
	}

	return deleted, nil
}

func (s *scheduleService) checkRangeSize(r scheduling.DateRange) error {
	days, err := r.Days()
	if err != nil {
		return apperrors.InvalidInput(err.Error())
	}
	if days > s.cfg.MaxScheduleRangeDays {
		return apperrors.InvalidInput("Date range exceeds the maximum allowed number of days")
	}
	return nil
}

// proposedDates builds the candidate dates for a conflict check: the
// start_date/end_date expansion, optionally restricted to days_of_week
// (0=Sunday through 6=Saturday), unioned with the explicit dates list.
// The result is deduplicated and sorted.
func (s *scheduleService) proposedDates(req *model.ConflictCheckRequest) ([]string, error) {
	var candidates []string

	if req.StartDate != "" {
		dateRange := scheduling.DateRange{Start: req.StartDate, End: req.EndDate}
		if err := s.checkRangeSize(dateRange); err != nil {
			return nil, err
		}
		expanded, err := dateRange.Dates()
		if err != nil {
			return nil, apperrors.InvalidInput(err.Error())
		}
		if len(req.DaysOfWeek) == 0 {
			candidates = expanded
		} else {
			wanted := make(map[int]struct{}, len(req.DaysOfWeek))
			for _, d := range req.DaysOfWeek {
				wanted[d] = struct{}{}
			}
			for _, date := range expanded {
				day, err := time.Parse(scheduling.DateLayout, date)
				if err != nil {
					return nil, apperrors.InvalidInput(err.Error())
				}
				if _, ok := wanted[int(day.Weekday())]; ok {
					candidates = append(candidates, date)
				}
			}
		}
	}

	// Explicit dates are checked as given; days_of_week narrows only the
	// range expansion.
	candidates = append(candidates, req.Dates...)

	seen := make(map[string]struct{}, len(candidates))
	proposed := make([]string, 0, len(candidates))
	for _, date := range candidates {
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		proposed = append(proposed, date)
	}
	sort.Strings(proposed)
	return proposed, nil
}

func derefEntries(entries []*model.ScheduleEntry) []model.ScheduleEntry {
	out := make([]model.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, *e)
	}
	return out
}

func refEntries(entries []model.ScheduleEntry) []*model.ScheduleEntry {
	out := make([]*model.ScheduleEntry, 0, len(entries))
	for i := range entries {
		out = append(out, &entries[i])
	}
	return out
}
