package dbschema

import (
	"larpmanager.app/larp-gateway/app/domain/feature"
	"larpmanager.app/larp-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Feature{}, AssociationFeature{}, EventFeature{})
}

// Feature is a global feature definition; activation rows below toggle it
// per association (overall features) or per event.
type Feature struct {
	BaseModel
	Slug        string `gorm:"uniqueIndex"`
	Name        string
	Module      string
	Overall     bool
	Placeholder bool
}

type AssociationFeature struct {
	BaseModel
	AssocID   uint `gorm:"index:idx_assoc_feature,unique"`
	FeatureID uint `gorm:"index:idx_assoc_feature,unique"`
}

type EventFeature struct {
	BaseModel
	EventID   uint `gorm:"index:idx_event_feature,unique"`
	FeatureID uint `gorm:"index:idx_event_feature,unique"`
}

func NewSchemaFeature(f *feature.Feature) *Feature {
	return &Feature{
		BaseModel: BaseModel{
			ID: f.ID,
		},
		Slug:        f.Slug,
		Name:        f.Name,
		Module:      f.Module,
		Overall:     f.Overall,
		Placeholder: f.Placeholder,
	}
}

func (f *Feature) EtoD() *feature.Feature {
	return &feature.Feature{
		ID:          f.ID,
		Slug:        f.Slug,
		Name:        f.Name,
		Module:      f.Module,
		Overall:     f.Overall,
		Placeholder: f.Placeholder,
	}
}
