package cache

import (
	"fmt"
	"strings"
)

// Every cached artifact type owns a namespace prefix so numeric ids of
// different entities can never collide. Key builders are pure functions;
// every caller-supplied string passes through SanitizeKeyPart so a slug or
// language tag containing the separator cannot alias another key.
const (
	CacheVersion = "v1"

	assocKeyPattern            = CacheVersion + ":assoc:%s"
	assocTextKeyPattern        = CacheVersion + ":assoc_text:%d:%s:%s"
	assocTextDefaultKeyPattern = CacheVersion + ":assoc_text_default:%d:%s"
	eventTextKeyPattern        = CacheVersion + ":event_text:%d:%s:%s"
	eventTextDefaultKeyPattern = CacheVersion + ":event_text_default:%d:%s"
	assocFeaturesKeyPattern    = CacheVersion + ":features:assoc:%d"
	eventFeaturesKeyPattern    = CacheVersion + ":features:event:%d"
	eventButtonsKeyPattern     = CacheVersion + ":buttons:%d"
	runLookupKeyPattern        = CacheVersion + ":run:%d:%s:%d"
	runCharacterKeyPattern     = CacheVersion + ":run_char:%d:%d"
	fieldPreviewKeyPattern     = CacheVersion + ":fields:%d:%s"
	eventRelsKeyPattern        = CacheVersion + ":rels:%d"
	runLinksKeyPattern         = CacheVersion + ":links:%d"
	dirtyFlagKeyPattern        = CacheVersion + ":dirty:%s:%d:%s:%d"
	dirtyHintKeyPattern        = CacheVersion + ":dirty_hint:%s:%d"

	// Permission indexes are association-wide singletons.
	AssocPermissionKey = CacheVersion + ":perm:assoc"
	EventPermissionKey = CacheVersion + ":perm:event"
)

func AssocKey(slug string) string {
	return fmt.Sprintf(assocKeyPattern, SanitizeKeyPart(slug))
}

func AssocTextKey(assocID uint, typ, lang string) string {
	return fmt.Sprintf(assocTextKeyPattern, assocID, SanitizeKeyPart(typ), SanitizeKeyPart(lang))
}

func AssocTextDefaultKey(assocID uint, typ string) string {
	return fmt.Sprintf(assocTextDefaultKeyPattern, assocID, SanitizeKeyPart(typ))
}

func AssocTextPattern(assocID uint) string {
	return fmt.Sprintf(CacheVersion+":assoc_text*:%d:*", assocID)
}

func EventTextKey(eventID uint, typ, lang string) string {
	return fmt.Sprintf(eventTextKeyPattern, eventID, SanitizeKeyPart(typ), SanitizeKeyPart(lang))
}

func EventTextDefaultKey(eventID uint, typ string) string {
	return fmt.Sprintf(eventTextDefaultKeyPattern, eventID, SanitizeKeyPart(typ))
}

func EventTextPattern(eventID uint) string {
	return fmt.Sprintf(CacheVersion+":event_text*:%d:*", eventID)
}

func AssocFeaturesKey(assocID uint) string {
	return fmt.Sprintf(assocFeaturesKeyPattern, assocID)
}

func EventFeaturesKey(eventID uint) string {
	return fmt.Sprintf(eventFeaturesKeyPattern, eventID)
}

func EventButtonsKey(eventID uint) string {
	return fmt.Sprintf(eventButtonsKeyPattern, eventID)
}

func RunLookupKey(assocID uint, eventSlug string, number int) string {
	return fmt.Sprintf(runLookupKeyPattern, assocID, SanitizeKeyPart(eventSlug), number)
}

func RunLookupPattern(assocID uint, eventSlug string) string {
	return fmt.Sprintf(CacheVersion+":run:%d:%s:*", assocID, SanitizeKeyPart(eventSlug))
}

func RunCharacterKey(runID, characterID uint) string {
	return fmt.Sprintf(runCharacterKeyPattern, runID, characterID)
}

func RunCharacterPattern(runID uint) string {
	return fmt.Sprintf(CacheVersion+":run_char:%d:*", runID)
}

func FieldPreviewKey(eventID uint, kind string) string {
	return fmt.Sprintf(fieldPreviewKeyPattern, eventID, SanitizeKeyPart(kind))
}

func FieldPreviewPattern(eventID uint) string {
	return fmt.Sprintf(CacheVersion+":fields:%d:*", eventID)
}

func EventRelsKey(eventID uint) string {
	return fmt.Sprintf(eventRelsKeyPattern, eventID)
}

func RunLinksKey(runID uint) string {
	return fmt.Sprintf(runLinksKeyPattern, runID)
}

// RunLinksAllPattern matches every run's navigation aggregate; used when a
// global permission definition changes.
func RunLinksAllPattern() string {
	return CacheVersion + ":links:*"
}

// DirtyFlagKey addresses the per-item staleness marker of a namespaced
// aggregate section. Flags are scoped by parent so the full set pending for
// one aggregate can be enumerated by pattern.
func DirtyFlagKey(namespace string, parentID uint, section string, itemID uint) string {
	return fmt.Sprintf(dirtyFlagKeyPattern, SanitizeKeyPart(namespace), parentID, SanitizeKeyPart(section), itemID)
}

// DirtyFlagSectionPattern matches every flag of one section of a parent.
func DirtyFlagSectionPattern(namespace string, parentID uint, section string) string {
	return fmt.Sprintf(CacheVersion+":dirty:%s:%d:%s:*", SanitizeKeyPart(namespace), parentID, SanitizeKeyPart(section))
}

// DirtyFlagPattern matches every flag of a parent across all sections.
func DirtyFlagPattern(namespace string, parentID uint) string {
	return fmt.Sprintf(CacheVersion+":dirty:%s:%d:*", SanitizeKeyPart(namespace), parentID)
}

// DirtyHintKey addresses the per-parent "has any dirty item" marker. The
// prefix is disjoint from the flag prefix so no hint can collide with a flag.
func DirtyHintKey(namespace string, parentID uint) string {
	return fmt.Sprintf(dirtyHintKeyPattern, SanitizeKeyPart(namespace), parentID)
}

// SanitizeKeyPart makes dynamic key parts safe for the key separator.
func SanitizeKeyPart(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
