package relationship

import (
	"larpmanager.app/larp-gateway/app/domain/writing"
)

// Namespace is the dirty-flag namespace of the relationship aggregate.
const Namespace = "rels"

// Aggregate section names, one per writing kind. A section exists in the
// aggregate only when the matching feature is enabled for the event.
const (
	SectionCharacters = "characters"
	SectionFactions   = "factions"
	SectionPlots      = "plots"
	SectionSpeedLarps = "speedlarps"
	SectionPrologues  = "prologues"
)

// Sections lists every section in resolution order.
func Sections() []string {
	return []string{SectionCharacters, SectionFactions, SectionPlots, SectionSpeedLarps, SectionPrologues}
}

// SectionForKind maps a writing kind to its aggregate section.
func SectionForKind(kind writing.Kind) string {
	switch kind {
	case writing.KindCharacter:
		return SectionCharacters
	case writing.KindFaction:
		return SectionFactions
	case writing.KindPlot:
		return SectionPlots
	case writing.KindSpeedLarp:
		return SectionSpeedLarps
	case writing.KindPrologue:
		return SectionPrologues
	}
	return ""
}

// KindForSection is the inverse of SectionForKind.
func KindForSection(section string) writing.Kind {
	switch section {
	case SectionCharacters:
		return writing.KindCharacter
	case SectionFactions:
		return writing.KindFaction
	case SectionPlots:
		return writing.KindPlot
	case SectionSpeedLarps:
		return writing.KindSpeedLarp
	case SectionPrologues:
		return writing.KindPrologue
	}
	return ""
}

// CharacterRels summarizes every relation one character participates in.
type CharacterRels struct {
	Name       string        `json:"name"`
	Factions   []writing.Ref `json:"factions"`
	Plots      []writing.Ref `json:"plots"`
	SpeedLarps []writing.Ref `json:"speedlarps"`
	Prologues  []writing.Ref `json:"prologues"`
}

// ElementRels summarizes the characters assigned to one writing element.
type ElementRels struct {
	Name       string        `json:"name"`
	Characters []writing.Ref `json:"characters"`
	Count      int           `json:"count"`
}

// EventRels is the composite aggregate cached per event: named sections, each
// mapping item id to its relationship summary. Nil sections mean the feature
// is disabled for the event.
type EventRels struct {
	Characters map[uint]CharacterRels `json:"characters"`
	Factions   map[uint]ElementRels   `json:"factions,omitempty"`
	Plots      map[uint]ElementRels   `json:"plots,omitempty"`
	SpeedLarps map[uint]ElementRels   `json:"speedlarps,omitempty"`
	Prologues  map[uint]ElementRels   `json:"prologues,omitempty"`
}

func NewEventRels() *EventRels {
	return &EventRels{Characters: make(map[uint]CharacterRels)}
}

// HasSection reports whether a section was built for this event.
func (r *EventRels) HasSection(section string) bool {
	if section == SectionCharacters {
		return r.Characters != nil
	}
	return r.elementSection(section) != nil
}

// SetElement stores an element summary, materializing the section if needed.
func (r *EventRels) SetElement(section string, itemID uint, rels ElementRels) {
	switch section {
	case SectionFactions:
		if r.Factions == nil {
			r.Factions = make(map[uint]ElementRels)
		}
		r.Factions[itemID] = rels
	case SectionPlots:
		if r.Plots == nil {
			r.Plots = make(map[uint]ElementRels)
		}
		r.Plots[itemID] = rels
	case SectionSpeedLarps:
		if r.SpeedLarps == nil {
			r.SpeedLarps = make(map[uint]ElementRels)
		}
		r.SpeedLarps[itemID] = rels
	case SectionPrologues:
		if r.Prologues == nil {
			r.Prologues = make(map[uint]ElementRels)
		}
		r.Prologues[itemID] = rels
	}
}

// SetCharacter stores a character summary.
func (r *EventRels) SetCharacter(itemID uint, rels CharacterRels) {
	if r.Characters == nil {
		r.Characters = make(map[uint]CharacterRels)
	}
	r.Characters[itemID] = rels
}

// Remove deletes one item from a section.
func (r *EventRels) Remove(section string, itemID uint) {
	if section == SectionCharacters {
		delete(r.Characters, itemID)
		return
	}
	delete(r.elementSection(section), itemID)
}

func (r *EventRels) elementSection(section string) map[uint]ElementRels {
	switch section {
	case SectionFactions:
		return r.Factions
	case SectionPlots:
		return r.Plots
	case SectionSpeedLarps:
		return r.SpeedLarps
	case SectionPrologues:
		return r.Prologues
	}
	return nil
}

// CharacterSummary derives the cached summary of one character. Pure and
// deterministic: repeated calls over the same data yield identical output.
func CharacterSummary(c writing.CharacterRelations) CharacterRels {
	return CharacterRels{
		Name:       c.Name,
		Factions:   c.Factions,
		Plots:      c.Plots,
		SpeedLarps: c.SpeedLarps,
		Prologues:  c.Prologues,
	}
}

// ElementSummary derives the cached summary of one writing element.
func ElementSummary(e writing.ElementRelations) ElementRels {
	return ElementRels{
		Name:       e.Name,
		Characters: e.Characters,
		Count:      len(e.Characters),
	}
}
