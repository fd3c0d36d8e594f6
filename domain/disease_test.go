package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"riceguard/domain"
)

func TestParseDiseaseKeyCanonical(t *testing.T) {
	for key := range map[domain.DiseaseKey]struct{}{
		domain.DiseaseBacterialLeafBlight: {},
		domain.DiseaseBrownSpot:           {},
		domain.DiseaseHealthy:             {},
		domain.DiseaseLeafBlast:           {},
		domain.DiseaseLeafScald:           {},
		domain.DiseaseNarrowBrownSpot:     {},
		domain.DiseaseUncertain:           {},
	} {
		parsed, ok := domain.ParseDiseaseKey(key.String())
		assert.True(t, ok, key.String())
		assert.Equal(t, key, parsed)
	}
}

func TestParseDiseaseKeyInsensitive(t *testing.T) {
	cases := map[string]domain.DiseaseKey{
		"Healthy":               domain.DiseaseHealthy,
		"BROWN_SPOT":            domain.DiseaseBrownSpot,
		"brown spot":            domain.DiseaseBrownSpot,
		"Leaf-Blast":            domain.DiseaseLeafBlast,
		" narrow brown spot ":   domain.DiseaseNarrowBrownSpot,
		"Bacterial Leaf Blight": domain.DiseaseBacterialLeafBlight,
	}

	for raw, want := range cases {
		parsed, ok := domain.ParseDiseaseKey(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, parsed, raw)
	}
}

func TestParseDiseaseKeyLegacyAliases(t *testing.T) {
	parsed, ok := domain.ParseDiseaseKey("blast")
	assert.True(t, ok)
	assert.Equal(t, domain.DiseaseLeafBlast, parsed)

	parsed, ok = domain.ParseDiseaseKey("blight")
	assert.True(t, ok)
	assert.Equal(t, domain.DiseaseBacterialLeafBlight, parsed)
}

func TestParseDiseaseKeyUnknown(t *testing.T) {
	parsed, ok := domain.ParseDiseaseKey("tungro")
	assert.False(t, ok)
	assert.Equal(t, domain.DiseaseUncertain, parsed)

	_, ok = domain.ParseDiseaseKey("")
	assert.False(t, ok)
}

func TestIsCanonicalDiseaseKey(t *testing.T) {
	assert.True(t, domain.IsCanonicalDiseaseKey(domain.DiseaseUncertain))
	assert.True(t, domain.IsCanonicalDiseaseKey(domain.DiseaseHealthy))
	assert.False(t, domain.IsCanonicalDiseaseKey(domain.DiseaseKey("tungro")))
}
