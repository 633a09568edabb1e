package dbschema

import (
	"larpmanager.app/larp-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Writing{}, WritingRelation{})
}

// Writing is one writing element of an event: a character, faction, plot,
// speedlarp or prologue, discriminated by Kind.
type Writing struct {
	BaseModel
	EventID uint   `gorm:"index"`
	Kind    string `gorm:"index"`
	Name    string
	Text    string
}

// WritingRelation is one many-to-many row between a non-character element
// and a character.
type WritingRelation struct {
	BaseModel
	EventID     uint `gorm:"index"`
	ElementID   uint `gorm:"index"`
	CharacterID uint `gorm:"index"`
}
