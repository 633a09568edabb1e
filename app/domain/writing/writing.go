package writing

import "context"

// Kind identifies a writing element type. Characters are the hub of the
// relationship graph; the remaining kinds relate to characters via
// many-to-many rows.
type Kind string

const (
	KindCharacter Kind = "character"
	KindFaction   Kind = "faction"
	KindPlot      Kind = "plot"
	KindSpeedLarp Kind = "speedlarp"
	KindPrologue  Kind = "prologue"
)

// RelationKinds are the character-related kinds, in aggregate section order.
func RelationKinds() []Kind {
	return []Kind{KindFaction, KindPlot, KindSpeedLarp, KindPrologue}
}

// Ref is a minimal id/name reference used inside relationship summaries.
type Ref struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CharacterRelations is a character with the resolved references of every
// relation it participates in.
type CharacterRelations struct {
	ID         uint
	Name       string
	Factions   []Ref
	Plots      []Ref
	SpeedLarps []Ref
	Prologues  []Ref
}

// ElementRelations is a non-character writing element with the characters
// assigned to it.
type ElementRelations struct {
	ID         uint
	Name       string
	Characters []Ref
}

// Repository loads writing elements with their relation rows resolved.
// A nil ids slice selects every element of the event.
type Repository interface {
	CharacterRelations(ctx context.Context, eventID uint, ids []uint) ([]CharacterRelations, error)
	ElementRelations(ctx context.Context, eventID uint, kind Kind, ids []uint) ([]ElementRelations, error)
	FieldTexts(ctx context.Context, eventID uint, kind Kind) (map[uint]string, error)
}
