package featurerepo

import (
	"context"

	domain "larpmanager.app/larp-gateway/app/domain/feature"
	"larpmanager.app/larp-gateway/app/infrastructure/database/dbschema"

	"gorm.io/gorm"
)

type FeatureGormRepository struct {
	db *gorm.DB
}

func NewFeatureGormRepository(db *gorm.DB) domain.Repository {
	return &FeatureGormRepository{db: db}
}

// ListByAssociation returns the overall features activated for an
// association.
func (r *FeatureGormRepository) ListByAssociation(ctx context.Context, assocID uint) ([]*domain.Feature, error) {
	var models []dbschema.Feature
	err := r.db.WithContext(ctx).
		Joins("JOIN association_feature af ON af.feature_id = feature.id").
		Where("af.assoc_id = ? AND feature.overall = ?", assocID, true).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toFeatures(models), nil
}

func (r *FeatureGormRepository) ListByEvent(ctx context.Context, eventID uint) ([]*domain.Feature, error) {
	var models []dbschema.Feature
	err := r.db.WithContext(ctx).
		Joins("JOIN event_feature ef ON ef.feature_id = feature.id").
		Where("ef.event_id = ?", eventID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toFeatures(models), nil
}

func toFeatures(models []dbschema.Feature) []*domain.Feature {
	features := make([]*domain.Feature, 0, len(models))
	for i := range models {
		features = append(features, models[i].EtoD())
	}
	return features
}
