// Package mongo provides the MongoDB implementation of the audit read
// model. The relational status history remains authoritative; this store
// only serves cross-event audit queries.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fincore-approval-engine/internal/domain/audit"
)

const (
	// AuditCollectionName is the name of the status audit collection in MongoDB
	AuditCollectionName = "status_audit"
)

// AuditRepository implements the audit.Repository interface for MongoDB
type AuditRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewAuditRepository creates a new MongoDB status audit repository
func NewAuditRepository(logger *slog.Logger, db *mongo.Database) audit.Repository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert stores a projected status change. The filter on event ID and
// occurrence time makes redelivered Kafka messages idempotent: the same
// change lands as the same document.
func (r *AuditRepository) Upsert(ctx context.Context, record *audit.Record) error {
	collection := r.db.Collection(AuditCollectionName)

	filter := bson.M{
		"business_event_id": record.BusinessEventID,
		"occurred_at":       record.OccurredAt,
	}
	update := bson.M{"$set": record}
	opts := options.Update().SetUpsert(true)

	_, err := collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		r.logger.Error("Failed to upsert audit record",
			"business_event_id", record.BusinessEventID.String(),
			"status", string(record.Status),
			"error", err)
		return fmt.Errorf("failed to upsert audit record: %w", err)
	}

	return nil
}

// GetByEventID retrieves the projected status trail of one event, oldest first
func (r *AuditRepository) GetByEventID(ctx context.Context, businessEventID uuid.UUID) ([]*audit.Record, error) {
	collection := r.db.Collection(AuditCollectionName)

	filter := bson.M{"business_event_id": businessEventID}
	opts := options.Find().SetSort(bson.M{"occurred_at": 1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get audit records",
			"business_event_id", businessEventID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get audit records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*audit.Record
	if err := cursor.All(ctx, &records); err != nil {
		r.logger.Error("Failed to decode audit records",
			"business_event_id", businessEventID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode audit records: %w", err)
	}

	return records, nil
}

// GetByTimeRange retrieves paginated audit records within the specified
// window, newest first.
func (r *AuditRepository) GetByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*audit.Record, error) {
	collection := r.db.Collection(AuditCollectionName)

	filter := bson.M{
		"occurred_at": bson.M{
			"$gte": startTime,
			"$lte": endTime,
		},
	}
	opts := options.Find().
		SetSort(bson.M{"occurred_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get audit records by time range",
			"start_time", startTime,
			"end_time", endTime,
			"error", err)
		return nil, fmt.Errorf("failed to get audit records by time range: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*audit.Record
	if err := cursor.All(ctx, &records); err != nil {
		r.logger.Error("Failed to decode audit records",
			"start_time", startTime,
			"end_time", endTime,
			"error", err)
		return nil, fmt.Errorf("failed to decode audit records: %w", err)
	}

	return records, nil
}
