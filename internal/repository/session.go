package repository

import (
	"context"
	"errors"
	"storefront-client/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	KeyToken = "token"
	KeyUser  = "user"
)

// SessionRepository is the durable store for the session's two string
// entries. It survives client restarts.
type SessionRepository interface {
	// Load returns the raw entries; a missing entry comes back as "".
	Load(ctx context.Context) (token, user string, err error)
	Save(ctx context.Context, token, user string) error
	Clear(ctx context.Context) error
}

type sessionRepoImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepoImpl{
		db: db,
	}
}

func (r *sessionRepoImpl) Load(ctx context.Context) (string, string, error) {
	var entries []*model.SessionEntry
	err := r.db.WithContext(ctx).
		Where("entry_key IN ?", []string{KeyToken, KeyUser}).
		Find(&entries).Error
	if err != nil {
		return "", "", err
	}

	var token, user string
	for _, e := range entries {
		switch e.Key {
		case KeyToken:
			token = e.Value
		case KeyUser:
			user = e.Value
		}
	}
	return token, user, nil
}

func (r *sessionRepoImpl) Save(ctx context.Context, token, user string) error {
	if token == "" || user == "" {
		return errors.New("session token and user must both be set")
	}

	now := time.Now()
	entries := []*model.SessionEntry{
		{Key: KeyToken, Value: token, UpdatedAt: now},
		{Key: KeyUser, Value: user, UpdatedAt: now},
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&entries).Error
	})
}

func (r *sessionRepoImpl) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("entry_key IN ?", []string{KeyToken, KeyUser}).
		Delete(&model.SessionEntry{}).Error
}
