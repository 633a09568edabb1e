package associationrepo

import (
	"context"
	"errors"

	domain "larpmanager.app/larp-gateway/app/domain/association"
	"larpmanager.app/larp-gateway/app/infrastructure/database/dbschema"

	"gorm.io/gorm"
)

type AssociationGormRepository struct {
	db *gorm.DB
}

func NewAssociationGormRepository(db *gorm.DB) domain.Repository {
	return &AssociationGormRepository{db: db}
}

func (r *AssociationGormRepository) FindByID(ctx context.Context, id uint) (*domain.Association, error) {
	var model dbschema.Association
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *AssociationGormRepository) FindBySlug(ctx context.Context, slug string) (*domain.Association, error) {
	var model dbschema.Association
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *AssociationGormRepository) ListConfigs(ctx context.Context, assocID uint) ([]*domain.Config, error) {
	var models []dbschema.AssociationConfig
	if err := r.db.WithContext(ctx).Where("assoc_id = ?", assocID).Find(&models).Error; err != nil {
		return nil, err
	}
	configs := make([]*domain.Config, 0, len(models))
	for i := range models {
		configs = append(configs, models[i].EtoD())
	}
	return configs, nil
}

func (r *AssociationGormRepository) FindText(ctx context.Context, assocID uint, typ, language string) (*domain.Text, error) {
	var model dbschema.AssociationText
	err := r.db.WithContext(ctx).
		Where("assoc_id = ? AND typ = ? AND language = ?", assocID, typ, language).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *AssociationGormRepository) FindDefaultText(ctx context.Context, assocID uint, typ string) (*domain.Text, error) {
	var model dbschema.AssociationText
	err := r.db.WithContext(ctx).
		Where(`assoc_id = ? AND typ = ? AND "default" = ?`, assocID, typ, true).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}
