package runrepo

import (
	"context"
	"errors"

	domain "larpmanager.app/larp-gateway/app/domain/run"
	"larpmanager.app/larp-gateway/app/infrastructure/database/dbschema"

	"gorm.io/gorm"
)

type RunGormRepository struct {
	db *gorm.DB
}

func NewRunGormRepository(db *gorm.DB) domain.Repository {
	return &RunGormRepository{db: db}
}

func (r *RunGormRepository) FindByID(ctx context.Context, id uint) (*domain.Run, error) {
	var model dbschema.Run
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *RunGormRepository) FindByEventAndNumber(ctx context.Context, eventID uint, number int) (*domain.Run, error) {
	var model dbschema.Run
	err := r.db.WithContext(ctx).Where("event_id = ? AND number = ?", eventID, number).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *RunGormRepository) ListByEvent(ctx context.Context, eventID uint) ([]*domain.Run, error) {
	var models []dbschema.Run
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("number asc").Find(&models).Error; err != nil {
		return nil, err
	}
	runs := make([]*domain.Run, 0, len(models))
	for i := range models {
		runs = append(runs, models[i].EtoD())
	}
	return runs, nil
}
