package dbschema

import (
	"larpmanager.app/larp-gateway/app/domain/association"
	"larpmanager.app/larp-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Association{}, AssociationConfig{}, AssociationText{})
}

type Association struct {
	BaseModel
	Slug    string `gorm:"uniqueIndex"`
	Name    string
	Skin    string
	Configs []AssociationConfig `gorm:"foreignKey:AssocID"`
	Texts   []AssociationText   `gorm:"foreignKey:AssocID"`
}

type AssociationConfig struct {
	BaseModel
	AssocID uint   `gorm:"index:idx_assoc_config,unique"`
	Name    string `gorm:"index:idx_assoc_config,unique"`
	Value   string
}

type AssociationText struct {
	BaseModel
	AssocID  uint   `gorm:"index"`
	Typ      string `gorm:"index"`
	Language string
	Default  bool
	Text     string
}

func NewSchemaAssociation(a *association.Association) *Association {
	return &Association{
		BaseModel: BaseModel{
			ID: a.ID,
		},
		Slug: a.Slug,
		Name: a.Name,
		Skin: a.Skin,
	}
}

func (a *Association) EtoD() *association.Association {
	return &association.Association{
		ID:        a.ID,
		Slug:      a.Slug,
		Name:      a.Name,
		Skin:      a.Skin,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (c *AssociationConfig) EtoD() *association.Config {
	return &association.Config{
		ID:      c.ID,
		AssocID: c.AssocID,
		Name:    c.Name,
		Value:   c.Value,
	}
}

func (t *AssociationText) EtoD() *association.Text {
	return &association.Text{
		ID:       t.ID,
		AssocID:  t.AssocID,
		Typ:      t.Typ,
		Language: t.Language,
		Default:  t.Default,
		Text:     t.Text,
	}
}
