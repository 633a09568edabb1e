package dbschema

import (
	"larpmanager.app/larp-gateway/app/domain/permission"
	"larpmanager.app/larp-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Permission{})
}

type Permission struct {
	BaseModel
	Slug      string `gorm:"index:idx_perm_scope_slug,unique"`
	Scope     string `gorm:"index:idx_perm_scope_slug,unique"`
	Name      string
	FeatureID uint `gorm:"index"`
	Tutorial  string
	Hidden    bool
	Number    int
}

func NewSchemaPermission(p *permission.Permission) *Permission {
	return &Permission{
		BaseModel: BaseModel{
			ID: p.ID,
		},
		Slug:      p.Slug,
		Scope:     string(p.Scope),
		Name:      p.Name,
		FeatureID: p.FeatureID,
		Tutorial:  p.Tutorial,
		Hidden:    p.Hidden,
		Number:    p.Number,
	}
}

// EtoD converts a row; the feature slug comes from the joined feature.
func (p *Permission) EtoD(featureSlug string) *permission.Permission {
	return &permission.Permission{
		ID:          p.ID,
		Slug:        p.Slug,
		Scope:       permission.Scope(p.Scope),
		Name:        p.Name,
		FeatureID:   p.FeatureID,
		FeatureSlug: featureSlug,
		Tutorial:    p.Tutorial,
		Hidden:      p.Hidden,
		Number:      p.Number,
	}
}
