package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"payroll-backend/internal/database"
	"payroll-backend/internal/models"

	"gorm.io/gorm"
)

// Actor is the authenticated user behind a mutation.
type Actor struct {
	UserID   uint
	Username string
}

type Entry struct {
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Data        any
}

// Recorder writes audit entries. Recording is best effort: a failure is
// logged and never fails the request that caused it.
type Recorder interface {
	Record(ctx context.Context, actor Actor, e Entry)
}

type Filter struct {
	EntityType string
	EntityID   uint
	UserID     uint
	Limit      int
}

type Store interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, f Filter) ([]models.AuditLog, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, log *models.AuditLog) error {
	return database.Translate(s.db.WithContext(ctx).Create(log).Error)
}

func (s *gormStore) List(ctx context.Context, f Filter) ([]models.AuditLog, error) {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID > 0 {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Order("id DESC").Find(&logs).Error; err != nil {
		return nil, database.Translate(err)
	}
	return logs, nil
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Record(ctx context.Context, actor Actor, e Entry) {
	data := "null"
	if e.Data != nil {
		if b, err := json.Marshal(e.Data); err == nil {
			data = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		Description: e.Description,
		Data:        data,
	}

	// The request context may already be near its deadline; the write
	// should still land.
	if err := s.store.Create(context.WithoutCancel(ctx), &log); err != nil {
		slog.Error("audit log not written",
			"entity_type", e.EntityType,
			"entity_id", e.EntityID,
			"action", e.Action,
			"err", err,
		)
	}
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Record(context.Context, Actor, Entry) {}
