package eventrepo

import (
	"context"
	"errors"

	domain "larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/infrastructure/database/dbschema"

	"gorm.io/gorm"
)

type EventGormRepository struct {
	db *gorm.DB
}

func NewEventGormRepository(db *gorm.DB) *EventGormRepository {
	return &EventGormRepository{db: db}
}

func (r *EventGormRepository) FindByID(ctx context.Context, id uint) (*domain.Event, error) {
	var model dbschema.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *EventGormRepository) FindBySlug(ctx context.Context, assocID uint, slug string) (*domain.Event, error) {
	var model dbschema.Event
	err := r.db.WithContext(ctx).Where("assoc_id = ? AND slug = ?", assocID, slug).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *EventGormRepository) ListByAssociation(ctx context.Context, assocID uint) ([]*domain.Event, error) {
	var models []dbschema.Event
	if err := r.db.WithContext(ctx).Where("assoc_id = ?", assocID).Find(&models).Error; err != nil {
		return nil, err
	}
	return toEvents(models), nil
}

func (r *EventGormRepository) ListChildren(ctx context.Context, parentID uint) ([]*domain.Event, error) {
	var models []dbschema.Event
	if err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Find(&models).Error; err != nil {
		return nil, err
	}
	return toEvents(models), nil
}

// ListAll backs the cron dirty sweep.
func (r *EventGormRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	var models []dbschema.Event
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return toEvents(models), nil
}

func (r *EventGormRepository) ListButtons(ctx context.Context, eventID uint) ([]*domain.Button, error) {
	var models []dbschema.EventButton
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("number asc").Find(&models).Error; err != nil {
		return nil, err
	}
	buttons := make([]*domain.Button, 0, len(models))
	for i := range models {
		buttons = append(buttons, models[i].EtoD())
	}
	return buttons, nil
}

func (r *EventGormRepository) FindText(ctx context.Context, eventID uint, typ, language string) (*domain.Text, error) {
	var model dbschema.EventText
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND typ = ? AND language = ?", eventID, typ, language).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *EventGormRepository) FindDefaultText(ctx context.Context, eventID uint, typ string) (*domain.Text, error) {
	var model dbschema.EventText
	err := r.db.WithContext(ctx).
		Where(`event_id = ? AND typ = ? AND "default" = ?`, eventID, typ, true).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func toEvents(models []dbschema.Event) []*domain.Event {
	events := make([]*domain.Event, 0, len(models))
	for i := range models {
		events = append(events, models[i].EtoD())
	}
	return events
}
