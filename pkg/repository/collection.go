package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/example/shopadmin/pkg/admin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Collection is the gorm backed admin.Store for one entity. Writes go
// through the schema, so server-side records get the same defaults as
// offline ones.
type Collection[T any, F any] struct {
	db     *gorm.DB
	schema *admin.Schema[T, F]
	audit  Auditor
	logger *zap.Logger
}

func NewCollection[T any, F any](db *gorm.DB, schema *admin.Schema[T, F], audit Auditor, logger *zap.Logger) *Collection[T, F] {
	if audit == nil {
		audit = NopAuditor{}
	}
	return &Collection[T, F]{
		db:     db,
		schema: schema,
		audit:  audit,
		logger: logger.With(zap.String("resource", schema.Resource)),
	}
}

func (c *Collection[T, F]) Schema() *admin.Schema[T, F] {
	return c.schema
}

func (c *Collection[T, F]) List(ctx context.Context) ([]T, error) {
	records := []T{}
	if err := c.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.schema.Resource, err)
	}
	return records, nil
}

func (c *Collection[T, F]) Get(ctx context.Context, id int64) (T, error) {
	var rec T
	if err := c.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return rec, fmt.Errorf("failed to get %s %d: %w", c.schema.Singular, id, err)
	}
	return rec, nil
}

func (c *Collection[T, F]) Create(ctx context.Context, form F) (T, error) {
	rec, err := c.schema.Build(form)
	if err != nil {
		return rec, err
	}
	if err := c.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return rec, fmt.Errorf("failed to create %s: %w", c.schema.Singular, err)
	}
	c.record(ctx, "create", c.schema.ID(rec), form)
	return rec, nil
}

// Update returns gorm.ErrRecordNotFound (wrapped) for an unknown id.
func (c *Collection[T, F]) Update(ctx context.Context, id int64, form F) (T, error) {
	rec, err := c.Get(ctx, id)
	if err != nil {
		return rec, err
	}
	rec, err = c.schema.Merge(rec, form)
	if err != nil {
		return rec, err
	}
	if err := c.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return rec, fmt.Errorf("failed to update %s %d: %w", c.schema.Singular, id, err)
	}
	c.record(ctx, "update", id, form)
	return rec, nil
}

// Delete returns gorm.ErrRecordNotFound (wrapped) when nothing was removed.
func (c *Collection[T, F]) Delete(ctx context.Context, id int64) error {
	res := c.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s %d: %w", c.schema.Singular, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to delete %s %d: %w", c.schema.Singular, id, gorm.ErrRecordNotFound)
	}
	c.record(ctx, "delete", id, nil)
	return nil
}

// An audit failure never fails the write.
func (c *Collection[T, F]) record(ctx context.Context, action string, id int64, form any) {
	entry := &AuditLog{
		Service:  c.schema.Resource,
		Action:   action,
		EntityID: strconv.FormatInt(id, 10),
	}
	if form != nil {
		entry.Data = auditData(form)
	}
	if err := c.audit.Record(ctx, entry); err != nil {
		c.logger.Warn("Failed to write audit log", zap.String("action", action), zap.Int64("id", id), zap.Error(err))
	}
}

// auditData keeps the form under its wire names, without secrets.
func auditData(form any) bson.M {
	data, err := json.Marshal(form)
	if err != nil {
		return nil
	}
	var doc bson.M
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil
	}
	delete(doc, "password")
	return doc
}
