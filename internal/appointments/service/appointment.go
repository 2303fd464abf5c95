package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appterrors "agenda/internal/appointments/errors"
	"agenda/internal/appointments/repository"
	"agenda/internal/appointments/validator"
	"agenda/pkg/config"
	apperrors "agenda/pkg/errors"
	"agenda/pkg/events"
	"agenda/pkg/model"
	"agenda/pkg/sanitizer"
	"agenda/pkg/scheduling"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityChecker reports whether a resource's schedule admits the given
// window. Implementations typically call the schedules service.
type AvailabilityChecker interface {
	Bookable(ctx context.Context, resourceID string, startTime, endTime time.Time) (bool, error)
}

type AppointmentService interface {
	Create(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error)
	Update(ctx context.Context, id string, updates *model.AppointmentUpdate) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status string) (*model.Appointment, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, resourceID string, professionalID string, customerID string, startTime, endTime *time.Time, limit int, offset int64) ([]*model.Appointment, int64, error)
}

type appointmentService struct {
	repo         repository.AppointmentRepository
	lockRepo     repository.SlotLockRepository
	validator    *validator.AppointmentValidator
	availability AvailabilityChecker
	publisher    events.Publisher
	cfg          *config.Config
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	lockRepo repository.SlotLockRepository,
	validator *validator.AppointmentValidator,
	availability AvailabilityChecker,
	publisher events.Publisher,
	cfg *config.Config,
) AppointmentService {
	if publisher == nil {
		publisher = events.NewNoop()
	}
	return &appointmentService{
		repo:         repo,
		lockRepo:     lockRepo,
		validator:    validator,
		availability: availability,
		publisher:    publisher,
		cfg:          cfg,
	}
}

func (s *appointmentService) Create(ctx context.Context, appt *model.Appointment) error {
	s.applyDefaults(appt)
	s.sanitize(appt)
	if err := s.validate(appt); err != nil {
		return err
	}

	if s.availability != nil {
		ok, err := s.availability.Bookable(ctx, appt.ResourceID, appt.StartTime, appt.EndTime)
		if err != nil {
			s.cfg.Log.Warn("Availability check failed, refusing to book blind",
				"resource_id", appt.ResourceID,
				"error", err,
			)
			return apperrors.Unavailable("schedules")
		}
		if !ok {
			return apperrors.Conflict("The resource is not open for the requested time window")
		}
	}

	// Advisory lock narrows the race window; the overlap check inside the
	// transaction is the actual authority.
	lockID, err := s.acquireSlotLock(ctx, appt.ResourceID, appt.StartTime)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, appt); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, appt); err != nil {
			return apperrors.Internal("Failed to create appointment", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create appointment",
			"resource_id", appt.ResourceID,
			"start_time", appt.StartTime,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Appointment created successfully",
		"id", appt.ID,
		"resource_id", appt.ResourceID,
		"customer_id", appt.CustomerID,
		"start_time", appt.StartTime,
	)

	if err := s.publisher.Publish(ctx, events.TypeAppointmentCreated, appt.ID, appt); err != nil {
		s.cfg.Log.Warn("Failed to publish appointment created event", "id", appt.ID, "error", err)
	}

	return nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, appterrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, appterrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid appointment ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve appointment", err)
	}

	return appt, nil
}

func (s *appointmentService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var appts []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count appointments", "error", err)
			errCount = apperrors.Internal("Failed to count appointments", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		appts, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list appointments", "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve appointments", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appts, count, nil
}

func (s *appointmentService) Update(ctx context.Context, id string, updates *model.AppointmentUpdate) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.IsTerminal() {
		return nil, apperrors.Conflict("Appointment is in a terminal status and cannot change")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Appointment update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	timesChanged := !merged.StartTime.Equal(existing.StartTime) || !merged.EndTime.Equal(existing.EndTime)
	statusChanged := merged.Status != existing.Status

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if timesChanged && !merged.IsTerminal() {
			if err := s.verifyNoOverlap(sessCtx, merged); err != nil {
				return err
			}
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			if errors.Is(err, appterrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Appointment", id)
			}
			return apperrors.Internal("Failed to update appointment", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update appointment", "id", id, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Appointment updated successfully", "id", id, "status", merged.Status)

	if statusChanged {
		if err := s.publisher.Publish(ctx, events.TypeAppointmentStatusChanged, id, map[string]any{
			"id":         id,
			"old_status": existing.Status,
			"new_status": merged.Status,
		}); err != nil {
			s.cfg.Log.Warn("Failed to publish status change event", "id", id, "error", err)
		}
	}

	return merged, nil
}

// UpdateStatus transitions only the status field. Terminal statuses are
// frozen by the same guard as full updates.
func (s *appointmentService) UpdateStatus(ctx context.Context, id string, status string) (*model.Appointment, error) {
	if status == "" {
		return nil, apperrors.InvalidInput("Status cannot be empty")
	}
	return s.Update(ctx, id, &model.AppointmentUpdate{Status: &status})
}

func (s *appointmentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, appterrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Appointment", id)
			}
			if errors.Is(err, appterrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid appointment ID format")
			}
			return apperrors.Internal("Failed to delete appointment", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Appointment deleted successfully", "id", id)
	return nil
}

func (s *appointmentService) Search(ctx context.Context, resourceID string, professionalID string, customerID string, startTime, endTime *time.Time, limit int, offset int64) ([]*model.Appointment, int64, error) {
	if resourceID == "" && professionalID == "" && customerID == "" {
		return nil, 0, apperrors.InvalidInput("At least one of resource_id, professional_id or customer_id must be provided")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var appts []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountBySearch(sharedCtx, resourceID, professionalID, customerID, startTime, endTime)
		if err != nil {
			s.cfg.Log.Error("Failed to count appointments by search",
				"resource_id", resourceID,
				"professional_id", professionalID,
				"customer_id", customerID,
				"error", err,
			)
			errCount = apperrors.Internal("Failed to count appointments", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		appts, err = s.repo.Search(sharedCtx, resourceID, professionalID, customerID, startTime, endTime, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search appointments",
				"resource_id", resourceID,
				"professional_id", professionalID,
				"customer_id", customerID,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search appointments", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appts, count, nil
}

func (s *appointmentService) sanitize(appt *model.Appointment) {
	appt.Notes = sanitizer.TrimAndNormalize(appt.Notes)
}

func (s *appointmentService) applyDefaults(appt *model.Appointment) {
	if appt.Status == "" {
		appt.Status = model.AppointmentStatusScheduled
	}
	if appt.EndTime.IsZero() && !appt.StartTime.IsZero() {
		appt.EndTime = appt.StartTime.Add(time.Duration(s.cfg.DefaultApptDuration) * time.Minute)
	}
}

func (s *appointmentService) mergeUpdates(existing *model.Appointment, updates *model.AppointmentUpdate) *model.Appointment {
	merged := *existing

	if updates.StartTime != nil {
		merged.StartTime = *updates.StartTime
	}
	if updates.EndTime != nil {
		merged.EndTime = *updates.EndTime
	}
	if updates.Status != nil {
		merged.Status = *updates.Status
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}

	return &merged
}

func (s *appointmentService) validate(appt *model.Appointment) error {
	if err := s.validator.Validate(appt); err != nil {
		s.cfg.Log.Warn("Appointment validation failed", "error", err)
		return apperrors.Validation("Appointment validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifyNoOverlap is the check half of the check-then-insert; it must run
// inside the same transaction as the write.
func (s *appointmentService) verifyNoOverlap(ctx context.Context, appt *model.Appointment) error {
	candidates, err := s.repo.FindActiveCandidates(ctx, appt.ResourceID, appt.ProfessionalID, appt.StartTime, appt.EndTime)
	if err != nil {
		return apperrors.Internal("Failed to check existing appointments", err)
	}

	if conflicting := scheduling.HasConflict(appt, candidates); conflicting != nil {
		return apperrors.Conflict(fmt.Sprintf(
			"Appointment overlaps with an existing appointment (%s - %s)",
			conflicting.StartTime.Format(time.RFC3339),
			conflicting.EndTime.Format(time.RFC3339),
		))
	}
	return nil
}

// acquireSlotLock creates an advisory lock for the slot. Returns the lock ID,
// or a conflict error when another request is booking the same slot.
func (s *appointmentService) acquireSlotLock(ctx context.Context, resourceID string, startTime time.Time) (string, error) {
	lockID := model.SlotLockKey(resourceID, startTime)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	if err := s.lockRepo.Acquire(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *appointmentService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Release(ctx, lockID)
}
