package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDatabase is the gorm-backed Database implementation. Identifiers are
// UUID strings assigned at creation; a string that does not parse as a UUID
// is treated as matching no record.
type GormDatabase[T any, PT Entity[T]] struct {
	db *gorm.DB
}

// NewGormDatabase creates a GormDatabase over the given connection.
func NewGormDatabase[T any, PT Entity[T]](db *gorm.DB) *GormDatabase[T, PT] {
	return &GormDatabase[T, PT]{db: db}
}

func (g *GormDatabase[T, PT]) FindByID(ctx context.Context, id string) (PT, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	record := PT(new(T))
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func (g *GormDatabase[T, PT]) Find(ctx context.Context, filter Filter) ([]PT, error) {
	var rows []T
	query := g.db.WithContext(ctx).Model(PT(new(T)))
	if len(filter) > 0 {
		query = query.Where(map[string]any(filter))
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]PT, len(rows))
	for i := range rows {
		records[i] = &rows[i]
	}
	return records, nil
}

func (g *GormDatabase[T, PT]) Create(ctx context.Context, record PT) (PT, error) {
	record.SetID(uuid.NewString())
	if err := g.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (g *GormDatabase[T, PT]) Update(ctx context.Context, id string, fields Fields) (PT, error) {
	record, err := g.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// id is immutable after creation
	merged := make(Fields, len(fields))
	for k, v := range fields {
		if k != "id" {
			merged[k] = v
		}
	}

	record.Merge(merged)
	if err := g.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (g *GormDatabase[T, PT]) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, ErrNotFound
	}
	result := g.db.WithContext(ctx).Where("id = ?", id).Delete(PT(new(T)))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
