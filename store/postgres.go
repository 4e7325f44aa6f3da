package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lossdesk/models"
)

// Postgres keeps reports in a relational table with a unique index on
// request_identity. The conditional insert is a single ON CONFLICT DO
// NOTHING statement, so two racing creates with the same identity cannot
// both insert a row; the loser reads the winner's row back. No in-process
// locking is needed.
type Postgres struct {
	db   *gorm.DB
	hook InsertHook
}

// NewPostgres wraps an open gorm connection. hook may be nil; when set it is
// called once per genuine insertion, after the row is durable.
func NewPostgres(db *gorm.DB, hook InsertHook) *Postgres {
	return &Postgres{db: db, hook: hook}
}

func (s *Postgres) Create(ctx context.Context, in Input) (models.Report, error) {
	sub, identity, err := resolveIdentity(in)
	if err != nil {
		return models.Report{}, err
	}
	row := models.Report{
		RequestIdentity: identity,
		Manager:         sub.Manager,
		Restaurant:      sub.Restaurant,
		Reason:          sub.Reason,
		Amount:          sub.Amount,
		StartsAt:        sub.Start,
		EndsAt:          sub.End,
		Comment:         sub.Comment,
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "request_identity"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return models.Report{}, storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		// Duplicate identity, possibly a lost race: the first writer wins.
		var existing models.Report
		if err := s.db.WithContext(ctx).
			Where("request_identity = ?", identity).
			First(&existing).Error; err != nil {
			return models.Report{}, storageErr(err)
		}
		return existing, nil
	}
	if s.hook != nil {
		s.hook(row)
	}
	return row, nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Report, error) {
	var rows []models.Report
	if err := s.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&rows).Error; err != nil {
		return nil, storageErr(err)
	}
	return rows, nil
}

func (s *Postgres) Update(ctx context.Context, id uint, in Input) (models.Report, error) {
	// identity is re-derived but deliberately unused: update never alters it
	sub, _, err := resolveIdentity(in)
	if err != nil {
		return models.Report{}, err
	}
	var row models.Report
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Report{}, ErrNotFound
		}
		return models.Report{}, storageErr(err)
	}
	updates := map[string]any{
		"manager":    sub.Manager,
		"restaurant": sub.Restaurant,
		"reason":     sub.Reason,
		"amount":     sub.Amount,
		"starts_at":  sub.Start,
		"ends_at":    sub.End,
		"comment":    sub.Comment,
	}
	if err := s.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		return models.Report{}, storageErr(err)
	}
	row.Manager = sub.Manager
	row.Restaurant = sub.Restaurant
	row.Reason = sub.Reason
	row.Amount = sub.Amount
	row.StartsAt = sub.Start
	row.EndsAt = sub.End
	row.Comment = sub.Comment
	return row, nil
}

func (s *Postgres) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Report{}, id).Error; err != nil {
		return storageErr(err)
	}
	return nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
