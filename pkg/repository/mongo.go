package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/example/shopadmin/pkg/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditLog is one write against a collection. Service holds the resource
// name, e.g. "categories".
type AuditLog struct {
	ID        string    `bson:"_id,omitempty" json:"-"`
	Service   string    `bson:"service" json:"resource"`
	Action    string    `bson:"action" json:"action"`
	EntityID  string    `bson:"entity_id" json:"entityId"`
	Data      bson.M    `bson:"data,omitempty" json:"data,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Auditor stores and replays the write history of records.
type Auditor interface {
	Record(ctx context.Context, log *AuditLog) error
	History(ctx context.Context, resource, entityID string, limit int64) ([]*AuditLog, error)
}

// NopAuditor is used when no audit store is configured.
type NopAuditor struct{}

func (NopAuditor) Record(context.Context, *AuditLog) error { return nil }

func (NopAuditor) History(context.Context, string, string, int64) ([]*AuditLog, error) {
	return []*AuditLog{}, nil
}

type MongoRepository struct {
	client   *mongo.Client
	database *mongo.Database
	config   *config.MongoDBConfig
}

func NewMongoRepository(cfg *config.MongoDBConfig) (*MongoRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	return &MongoRepository{
		client:   client,
		database: client.Database(cfg.Database),
		config:   cfg,
	}, nil
}

func (m *MongoRepository) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoRepository) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoRepository) Record(ctx context.Context, log *AuditLog) error {
	collection := m.database.Collection(m.config.Collection)
	log.CreatedAt = time.Now()
	if _, err := collection.InsertOne(ctx, log); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

// History returns the newest entries first.
func (m *MongoRepository) History(ctx context.Context, resource, entityID string, limit int64) ([]*AuditLog, error) {
	collection := m.database.Collection(m.config.Collection)

	filter := bson.M{"service": resource, "entity_id": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []*AuditLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode audit logs: %w", err)
	}

	return logs, nil
}
