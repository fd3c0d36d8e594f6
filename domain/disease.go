package domain

import "strings"

// DiseaseKey is the closed set of canonical disease labels shared by the
// model output, the seeded recommendations, and persisted scan records.
type DiseaseKey string

const (
	DiseaseBacterialLeafBlight DiseaseKey = "bacterial_leaf_blight"
	DiseaseBrownSpot           DiseaseKey = "brown_spot"
	DiseaseHealthy             DiseaseKey = "healthy"
	DiseaseLeafBlast           DiseaseKey = "leaf_blast"
	DiseaseLeafScald           DiseaseKey = "leaf_scald"
	DiseaseNarrowBrownSpot     DiseaseKey = "narrow_brown_spot"

	// DiseaseUncertain is the sentinel used whenever the model output cannot
	// be trusted: unknown label, low confidence, or the fallback path.
	DiseaseUncertain DiseaseKey = "uncertain"
)

// DiseaseKeyAliases maps keys emitted by older models to their canonical
// replacements.
var DiseaseKeyAliases = map[string]DiseaseKey{
	"blast":  DiseaseLeafBlast,
	"blight": DiseaseBacterialLeafBlight,
}

var canonicalDiseaseKeys = map[DiseaseKey]struct{}{
	DiseaseBacterialLeafBlight: {},
	DiseaseBrownSpot:           {},
	DiseaseHealthy:             {},
	DiseaseLeafBlast:           {},
	DiseaseLeafScald:           {},
	DiseaseNarrowBrownSpot:     {},
	DiseaseUncertain:           {},
}

// ParseDiseaseKey converts a raw label string into a canonical key. Matching
// is case-insensitive and tolerant of space/hyphen separators, and legacy
// aliases resolve to their current keys. The second return reports whether the
// input was recognized; callers decide what an unrecognized label means.
func ParseDiseaseKey(raw string) (DiseaseKey, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	if _, ok := canonicalDiseaseKeys[DiseaseKey(normalized)]; ok {
		return DiseaseKey(normalized), true
	}
	if alias, ok := DiseaseKeyAliases[normalized]; ok {
		return alias, true
	}
	return DiseaseUncertain, false
}

// IsCanonicalDiseaseKey reports whether key belongs to the closed set,
// uncertain included.
func IsCanonicalDiseaseKey(key DiseaseKey) bool {
	_, ok := canonicalDiseaseKeys[key]
	return ok
}

func (k DiseaseKey) String() string {
	return string(k)
}
