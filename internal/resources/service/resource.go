package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	resourceerrors "agenda/internal/resources/errors"
	"agenda/internal/resources/repository"
	"agenda/internal/resources/validator"
	"agenda/pkg/config"
	apperrors "agenda/pkg/errors"
	"agenda/pkg/events"
	"agenda/pkg/locale"
	"agenda/pkg/model"
	"agenda/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type ResourceService interface {
	Create(ctx context.Context, res *model.Resource) error
	GetByID(ctx context.Context, id string) (*model.Resource, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Resource, int64, error)
	Update(ctx context.Context, id string, updates *model.ResourceUpdate) (*model.Resource, error)
	Delete(ctx context.Context, id string) error

	Search(ctx context.Context, companyID string, subsidiaryID string, kind string, labels []string, limit int, offset int64) ([]*model.Resource, int64, error)
}

type resourceService struct {
	repo      repository.ResourceRepository
	validator *validator.ResourceValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewResourceService(
	repo repository.ResourceRepository,
	validator *validator.ResourceValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ResourceService {
	if publisher == nil {
		publisher = events.NewNoop()
	}
	return &resourceService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *resourceService) Create(ctx context.Context, res *model.Resource) error {
	s.sanitize(res)
	s.applyDefaults(res)

	if err := s.validator.Validate(res); err != nil {
		s.cfg.Log.Warn("Resource validation failed",
			"name", res.Name,
			"subsidiary_id", res.SubsidiaryID,
			"error", err,
		)
		return apperrors.Validation("Resource validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindBySubsidiaryAndName(sessCtx, res.CompanyID, res.SubsidiaryID, res.Name)
		if err != nil {
			return fmt.Errorf("failed to check for duplicates: %w", err)
		}

		for _, other := range existing {
			if s.isDuplicate(res, other) {
				return apperrors.Conflict(fmt.Sprintf(
					"Resource with the same name already exists in this subsidiary (id: %s)",
					other.ID,
				))
			}
		}

		if err := s.repo.Create(sessCtx, res); err != nil {
			if errors.Is(err, resourceerrors.ErrDuplicate) {
				return apperrors.Conflict("Resource was created concurrently with the same name")
			}
			return fmt.Errorf("failed to create resource: %w", err)
		}

		return nil
	})

	if err != nil {
		s.cfg.Log.Error("Failed to create resource",
			"name", res.Name,
			"subsidiary_id", res.SubsidiaryID,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Resource created successfully",
		"id", res.ID,
		"name", res.Name,
		"kind", res.Kind,
		"timezone", res.TimeZone,
	)

	if err := s.publisher.Publish(ctx, events.TypeResourceCreated, res.ID, res); err != nil {
		s.cfg.Log.Warn("Failed to publish resource created event", "id", res.ID, "error", err)
	}

	return nil
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Resource", id)
		}
		if errors.Is(err, resourceerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid resource ID format")
		}
		s.cfg.Log.Error("Failed to get resource by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve resource", err)
	}

	return res, nil
}

func (s *resourceService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Resource, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var resources []*model.Resource
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count resources", "error", err)
			errCount = apperrors.Internal("Failed to count resources", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		resources, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list resources", "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve resources", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return resources, count, nil
}

func (s *resourceService) Update(ctx context.Context, id string, updates *model.ResourceUpdate) (*model.Resource, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Resource update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{
			"error": err.Error(),
		})
	}

	s.sanitizeUpdate(updates)
	merged := s.mergeUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Resource validation failed",
			"name", merged.Name,
			"id", id,
			"error", err,
		)
		return nil, apperrors.Validation("Resource validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, resourceerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Resource", id)
		}
		s.cfg.Log.Error("Failed to update resource", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update resource", err)
	}

	s.cfg.Log.Info("Resource updated successfully", "id", id, "name", merged.Name)

	if err := s.publisher.Publish(ctx, events.TypeResourceUpdated, id, merged); err != nil {
		s.cfg.Log.Warn("Failed to publish resource updated event", "id", id, "error", err)
	}

	return merged, nil
}

func (s *resourceService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Resource ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, resourceerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Resource", id)
		}
		if errors.Is(err, resourceerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid resource ID format")
		}
		s.cfg.Log.Error("Failed to delete resource", "id", id, "error", err)
		return apperrors.Internal("Failed to delete resource", err)
	}

	s.cfg.Log.Info("Resource deleted successfully", "id", id)

	return nil
}

func (s *resourceService) Search(ctx context.Context, companyID string, subsidiaryID string, kind string, labels []string, limit int, offset int64) ([]*model.Resource, int64, error) {
	if subsidiaryID == "" {
		return nil, 0, apperrors.InvalidInput("subsidiary_id must be provided")
	}
	if kind != "" && kind != model.ResourceKindChair && kind != model.ResourceKindRoom {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("Unknown resource kind %q", kind))
	}

	labels = sanitizer.NormalizeLabels(labels)

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var resources []*model.Resource
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountBySearch(sharedCtx, companyID, subsidiaryID, kind, labels)
		if err != nil {
			s.cfg.Log.Error("Failed to count resources by search",
				"subsidiary_id", subsidiaryID,
				"kind", kind,
				"error", err,
			)
			errCount = apperrors.Internal("Failed to count resources", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		resources, err = s.repo.Search(sharedCtx, companyID, subsidiaryID, kind, labels, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search resources",
				"subsidiary_id", subsidiaryID,
				"kind", kind,
				"labels", labels,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search resources", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return resources, count, nil
}

func (s *resourceService) sanitize(res *model.Resource) {
	res.Name = sanitizer.NormalizeName(res.Name)
	res.Labels = sanitizer.NormalizeLabels(res.Labels)
	res.AdminPhone = sanitizer.NormalizePhone(res.AdminPhone)
	res.TimeZone = sanitizer.TrimAndNormalize(res.TimeZone)
}

func (s *resourceService) sanitizeUpdate(updates *model.ResourceUpdate) {
	if updates.Name != nil {
		normalized := sanitizer.NormalizeName(*updates.Name)
		updates.Name = &normalized
	}
	if updates.Labels != nil {
		normalized := sanitizer.NormalizeLabels(*updates.Labels)
		updates.Labels = &normalized
	}
	if updates.AdminPhone != nil {
		normalized := sanitizer.NormalizePhone(*updates.AdminPhone)
		updates.AdminPhone = &normalized
	}
	if updates.TimeZone != nil {
		normalized := sanitizer.TrimAndNormalize(*updates.TimeZone)
		updates.TimeZone = &normalized
	}
}

func (s *resourceService) applyDefaults(res *model.Resource) {
	if res.TimeZone == "" && res.AdminPhone != "" {
		res.TimeZone = locale.InferTimezoneFromPhone(res.AdminPhone)
	}
	if res.Capacity == 0 {
		res.Capacity = 1
	}
	res.Active = true
}

func (s *resourceService) mergeUpdates(existing *model.Resource, updates *model.ResourceUpdate) *model.Resource {
	merged := *existing

	if updates.Name != nil {
		merged.Name = *updates.Name
	}
	if updates.Labels != nil {
		merged.Labels = *updates.Labels
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.AdminPhone != nil {
		merged.AdminPhone = *updates.AdminPhone
	}
	if updates.TimeZone != nil {
		merged.TimeZone = *updates.TimeZone
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt

	return &merged
}

func (s *resourceService) isDuplicate(newRes, existingRes *model.Resource) bool {
	return sanitizer.NormalizeNameForComparison(newRes.Name) ==
		sanitizer.NormalizeNameForComparison(existingRes.Name)
}
