package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	schedeerrors "agenda/internal/schedules/errors"
	"agenda/pkg/config"
	mongotx "agenda/pkg/db/mongo"
	"agenda/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "ScheduleEntries"
)

type mongoScheduleEntryRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type ScheduleEntryRepository interface {
	Insert(ctx context.Context, entry *model.ScheduleEntry) error
	Upsert(ctx context.Context, entry *model.ScheduleEntry) error
	FindByID(ctx context.Context, id string) (*model.ScheduleEntry, error)
	FindByResourceAndDate(ctx context.Context, resourceID string, date string) (*model.ScheduleEntry, error)
	FindByResource(ctx context.Context, resourceID string, limit int, offset int64) ([]*model.ScheduleEntry, error)
	FindByResourceInRange(ctx context.Context, resourceID string, startDate string, endDate string) ([]*model.ScheduleEntry, error)
	ReplaceRange(ctx context.Context, resourceID string, startDate string, endDate string, keepCustomized bool, entries []*model.ScheduleEntry) (int, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByResource(ctx context.Context, resourceID string) (int64, error)
	DeleteByResourceInRange(ctx context.Context, resourceID string, startDate string, endDate string) (int64, error)
	Count(ctx context.Context, resourceID string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoScheduleEntryRepository(cfg *config.Config) ScheduleEntryRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoScheduleEntryRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context unchanged
// with a no-op cancel function, as we cannot wrap SessionContext without breaking
// transaction semantics.
func (r *mongoScheduleEntryRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining > timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoScheduleEntryRepository) Insert(ctx context.Context, entry *model.ScheduleEntry) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	entry.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		// The unique index on (resource_id, date) is the storage authority for
		// one entry per resource per day.
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s %s", schedeerrors.ErrEntryExists, entry.ResourceID, entry.Date)
		}
		return fmt.Errorf("failed to insert schedule entry: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

func (r *mongoScheduleEntryRepository) Upsert(ctx context.Context, entry *model.ScheduleEntry) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	entry.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	filter := bson.M{"resource_id": entry.ResourceID, "date": entry.Date}
	update := bson.M{
		"$set": bson.M{
			"resource_id": entry.ResourceID,
			"date":        entry.Date,
			"day_of_week": entry.DayOfWeek,
			"open_time":   entry.OpenTime,
			"close_time":  entry.CloseTime,
			"closed":      entry.Closed,
			"customized":  entry.Customized,
			"created_at":  entry.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule entry: %w", err)
	}

	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

func (r *mongoScheduleEntryRepository) FindByID(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", schedeerrors.ErrInvalidID, id)
	}

	var entry model.ScheduleEntry
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", schedeerrors.ErrEntryNotFound, id)
		}
		return nil, fmt.Errorf("failed to find schedule entry: %w", err)
	}

	return &entry, nil
}

func (r *mongoScheduleEntryRepository) FindByResourceAndDate(ctx context.Context, resourceID string, date string) (*model.ScheduleEntry, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"resource_id": resourceID, "date": date}

	var entry model.ScheduleEntry
	err := r.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s %s", schedeerrors.ErrEntryNotFound, resourceID, date)
		}
		return nil, fmt.Errorf("failed to find schedule entry: %w", err)
	}

	return &entry, nil
}

func (r *mongoScheduleEntryRepository) FindByResource(ctx context.Context, resourceID string, limit int, offset int64) ([]*model.ScheduleEntry, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"resource_id": resourceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*model.ScheduleEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode schedule entries: %w", err)
	}
	return entries, nil
}

func (r *mongoScheduleEntryRepository) FindByResourceInRange(ctx context.Context, resourceID string, startDate string, endDate string) ([]*model.ScheduleEntry, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	// Dates are stored as YYYY-MM-DD strings, so lexicographic range
	// comparison matches chronological order.
	filter := bson.M{
		"resource_id": resourceID,
		"date":        bson.M{"$gte": startDate, "$lte": endDate},
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*model.ScheduleEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode schedule entries: %w", err)
	}
	return entries, nil
}

// ReplaceRange atomically swaps the stored entries for a resource within a
// date range. With keepCustomized, customized entries survive the delete and
// the caller is expected to have excluded their dates from the new batch.
func (r *mongoScheduleEntryRepository) ReplaceRange(ctx context.Context, resourceID string, startDate string, endDate string, keepCustomized bool, entries []*model.ScheduleEntry) (int, error) {
	inserted := 0

	err := r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		deleteFilter := bson.M{
			"resource_id": resourceID,
			"date":        bson.M{"$gte": startDate, "$lte": endDate},
		}
		if keepCustomized {
			deleteFilter["customized"] = false
		}

		if _, err := r.collection.DeleteMany(sessCtx, deleteFilter); err != nil {
			return fmt.Errorf("failed to clear schedule range: %w", err)
		}

		if len(entries) == 0 {
			return nil
		}

		now := time.Now().UTC().Truncate(time.Millisecond)
		docs := make([]interface{}, 0, len(entries))
		for _, entry := range entries {
			entry.CreatedAt = now
			docs = append(docs, entry)
		}

		result, err := r.collection.InsertMany(sessCtx, docs)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("%w: concurrent write on %s", schedeerrors.ErrEntryExists, resourceID)
			}
			return fmt.Errorf("failed to insert schedule entries: %w", err)
		}

		inserted = len(result.InsertedIDs)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func (r *mongoScheduleEntryRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", schedeerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete schedule entry: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", schedeerrors.ErrEntryNotFound, id)
	}
	return nil
}

func (r *mongoScheduleEntryRepository) DeleteByResource(ctx context.Context, resourceID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"resource_id": resourceID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete schedule entries: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoScheduleEntryRepository) DeleteByResourceInRange(ctx context.Context, resourceID string, startDate string, endDate string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"resource_id": resourceID,
		"date":        bson.M{"$gte": startDate, "$lte": endDate},
	}

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete schedule entries in range: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoScheduleEntryRepository) Count(ctx context.Context, resourceID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"resource_id": resourceID})
	if err != nil {
		return 0, fmt.Errorf("failed to count schedule entries: %w", err)
	}
	return count, nil
}

func (r *mongoScheduleEntryRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
