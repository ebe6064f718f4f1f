package coshh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(subs []Substance) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.Name
	}
	return out
}

func TestFilterSubstances(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"flux", []string{"Flux (Soldering)"}},
		{"FLUX", []string{"Flux (Soldering)"}},
		{"  spray ", []string{"Contact Cleaner Spray"}},
		{"ant", []string{"Silicone Sealant", "Cable Pulling Lubricant"}},
		{"isocyanate", []string{"Expanding Foam (Isocyanate)"}},
		{"various", []string{}}, // manufacturer is not searched
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FilterSubstances(tt.query)))
		})
	}
}

func TestFilterSubstances_EmptyQueryMatchesAll(t *testing.T) {
	assert.Len(t, FilterSubstances(""), 6)
}

func TestCommonSubstances_UseCatalogueTags(t *testing.T) {
	require.Len(t, CommonSubstances, 6)
	for _, s := range CommonSubstances {
		assert.NotEmpty(t, s.Hazards, s.Name)
		for _, h := range s.Hazards {
			_, err := ParseHazard(string(h))
			assert.NoError(t, err, "%s: %s", s.Name, h)
		}
		for _, r := range s.Routes {
			_, err := ParseRoute(string(r))
			assert.NoError(t, err, "%s: %s", s.Name, r)
		}
	}
}

func TestCatalogueSizes(t *testing.T) {
	assert.Len(t, Hazards, 8)
	assert.Len(t, Routes, 4)
	assert.Len(t, RiskRatings, 4)
}

func TestRiskRating_Severity(t *testing.T) {
	assert.Less(t, RiskLow.Severity(), RiskMedium.Severity())
	assert.Less(t, RiskMedium.Severity(), RiskHigh.Severity())
	assert.Less(t, RiskHigh.Severity(), RiskVeryHigh.Severity())
	assert.Equal(t, -1, RiskRating("catastrophic").Severity())
}
