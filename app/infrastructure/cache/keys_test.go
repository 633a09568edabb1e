package cache

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysAreDeterministic(t *testing.T) {
	assert.Equal(t, AssocKey("acme"), AssocKey("acme"))
	assert.Equal(t, EventRelsKey(7), EventRelsKey(7))
	assert.Equal(t, DirtyFlagKey("rels", 9, "characters", 3), DirtyFlagKey("rels", 9, "characters", 3))
}

func TestKeysDoNotCollideAcrossNamespaces(t *testing.T) {
	// Same numeric id under different artifact types must map to distinct keys.
	keys := []string{
		AssocFeaturesKey(5),
		EventFeaturesKey(5),
		EventButtonsKey(5),
		EventRelsKey(5),
		RunLinksKey(5),
		FieldPreviewKey(5, "character"),
		DirtyHintKey("rels", 5),
		DirtyFlagKey("rels", 5, "characters", 5),
		DirtyFlagKey("rels", 5, "factions", 5),
		DirtyFlagKey("links", 5, "characters", 5),
	}
	seen := map[string]bool{}
	for _, key := range keys {
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestDirtyHintNeverCollidesWithFlags(t *testing.T) {
	// The hint prefix is disjoint from the flag prefix, so no choice of
	// section or item id can produce a flag key equal to a hint key, and the
	// flag pattern never matches the hint.
	hint := DirtyHintKey("rels", 5)
	assert.NotEqual(t, hint, DirtyFlagKey("rels", 5, "has", 5))

	matched, err := path.Match(DirtyFlagPattern("rels", 5), hint)
	assert.NoError(t, err)
	assert.False(t, matched, "flag pattern must not capture the hint")
}

func TestKeysDoNotCollideAcrossPositions(t *testing.T) {
	// Shifting a digit between positions must change the key.
	assert.NotEqual(t, AssocTextKey(12, "1", "en"), AssocTextKey(1, "21", "en"))
	assert.NotEqual(t, RunLookupKey(1, "camelot-2", 1), RunLookupKey(1, "camelot", 21))
}

func TestKeyPartsWithSeparatorsDoNotAlias(t *testing.T) {
	// A separator inside a caller-supplied part must not shift the boundary
	// between adjacent parts.
	assert.NotEqual(t, AssocTextKey(1, "a:b", "c"), AssocTextKey(1, "a", "b:c"))
	assert.NotEqual(t, EventTextKey(1, "a:b", "c"), EventTextKey(1, "a", "b:c"))
	assert.NotEqual(t, AssocTextDefaultKey(1, "intro:en"), AssocTextKey(1, "intro", "en"))
	assert.NotEqual(t, RunLookupKey(1, "camelot:2", 1), RunLookupKey(1, "camelot", 21))
	assert.Equal(t, AssocKey("a_b"), AssocKey("a:b"))
}

func TestTextPatternsCoverDefaultAndSpecificKeys(t *testing.T) {
	assert.Contains(t, AssocTextDefaultKey(3, "signup"), "assoc_text_default")
	assert.NotEqual(t, AssocTextKey(3, "signup", "en"), AssocTextDefaultKey(3, "signup"))
	assert.NotEqual(t, EventTextKey(3, "signup", "en"), EventTextDefaultKey(3, "signup"))
}

func TestDirtyPatternsMatchTheirFlags(t *testing.T) {
	flag := DirtyFlagKey("rels", 9, "characters", 3)

	matched, err := path.Match(DirtyFlagSectionPattern("rels", 9, "characters"), flag)
	assert.NoError(t, err)
	assert.True(t, matched)

	matched, err = path.Match(DirtyFlagPattern("rels", 9), flag)
	assert.NoError(t, err)
	assert.True(t, matched)

	// Scoped to the parent: another event's flags stay out.
	matched, err = path.Match(DirtyFlagPattern("rels", 9), DirtyFlagKey("rels", 10, "characters", 3))
	assert.NoError(t, err)
	assert.False(t, matched)
}

func TestSanitizeKeyPart(t *testing.T) {
	assert.Equal(t, "a_b", SanitizeKeyPart("a:b"))
}
