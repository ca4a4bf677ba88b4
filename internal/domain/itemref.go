package domain

import (
	"fmt"
	"strings"
	"time"
)

// ItemRef is the canonical item identifier. Items migrated from numeric ids
// to strings over the game's history, and upstream payloads still arrive with
// any of the historical key spellings (item_id, itemId, id) holding either a
// string or a number. All of that tolerance lives here; the rest of the
// engine only ever sees an ItemRef.
type ItemRef string

func (r ItemRef) String() string { return string(r) }

// itemRefKeys are the payload key spellings accepted for an item identifier,
// in precedence order.
var itemRefKeys = []string{"item_id", "itemId", "id"}

// ItemRefFromPayload extracts an item identifier from a loosely shaped
// upstream payload. Returns false when no recognized key carries a usable
// value.
func ItemRefFromPayload(payload map[string]any) (ItemRef, bool) {
	for _, key := range itemRefKeys {
		v, ok := payload[key]
		if !ok {
			continue
		}
		if ref, ok := NormalizeItemRef(v); ok {
			return ref, true
		}
	}
	return "", false
}

// NormalizeItemRef converts a raw identifier value into an ItemRef. Legacy
// numeric ids become their decimal string form.
func NormalizeItemRef(v any) (ItemRef, bool) {
	switch id := v.(type) {
	case string:
		id = strings.TrimSpace(id)
		if id == "" {
			return "", false
		}
		return ItemRef(id), true
	case int:
		return ItemRef(fmt.Sprintf("%d", id)), true
	case int64:
		return ItemRef(fmt.Sprintf("%d", id)), true
	case float64:
		// JSON numbers decode as float64; legacy ids were whole numbers.
		return ItemRef(fmt.Sprintf("%d", int64(id))), true
	default:
		return "", false
	}
}

// legacyItemIDs maps pre-migration item names to their canonical string ids.
// These are the names that still appear in old admin tooling requests.
var legacyItemIDs = map[string]ItemRef{
	"spirit herb":        "herb_spirit",
	"cloudmist herb":     "herb_cloudmist",
	"qi gathering pill":  "pill_qi_gathering",
	"foundation pill":    "pill_foundation",
	"iron sword":         "sword_iron",
	"azure sword":        "sword_azure",
	"disciple robe":      "robe_disciple",
	"guardian talisman":  "talisman_guardian",
	"beast taming manual": "manual_beast_taming",
}

// legacyClasses drive the substring classification for identifiers the
// dictionary misses. First match wins.
var legacyClasses = []struct {
	substr   string
	prefix   string
	itemType string
}{
	{"herb", "herb", "material"},
	{"pill", "pill", "consumable"},
	{"elixir", "elixir", "consumable"},
	{"sword", "sword", "weapon"},
	{"blade", "blade", "weapon"},
	{"robe", "robe", "armor"},
	{"armor", "armor", "armor"},
	{"talisman", "talisman", "talisman"},
	{"manual", "manual", "technique"},
}

// ClassifyLegacyItem deterministically assigns a canonical id and item type
// to an identifier that has no inventory row: exact dictionary lookup first,
// then substring classification, finally a timestamp-based id so the admin
// operation still materializes a row. The classification is best-effort by
// contract; only determinism matters.
func ClassifyLegacyItem(raw string, now time.Time) (ItemRef, string) {
	name := strings.ToLower(strings.TrimSpace(raw))

	if id, ok := legacyItemIDs[name]; ok {
		return id, legacyItemType(id)
	}

	for _, c := range legacyClasses {
		if strings.Contains(name, c.substr) {
			return ItemRef(c.prefix + "_" + slugify(name)), c.itemType
		}
	}

	return ItemRef(fmt.Sprintf("item_%d", now.Unix())), "misc"
}

// legacyItemType infers the item type from a dictionary id's prefix.
func legacyItemType(id ItemRef) string {
	for _, c := range legacyClasses {
		if strings.HasPrefix(string(id), c.prefix+"_") {
			return c.itemType
		}
	}
	return "misc"
}

// slugify collapses a display name into an id-safe suffix.
func slugify(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
