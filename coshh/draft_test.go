package coshh

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDraft_RemoveControlKeepsOrder(t *testing.T) {
	d := NewDraft(fixedNow)
	for _, c := range []string{"a", "b", "c", "d"} {
		require.True(t, d.AddControl(c))
	}

	assert.True(t, d.RemoveControl(1))
	assert.Equal(t, []string{"a", "c", "d"}, d.Controls)

	assert.True(t, d.RemoveControl(2))
	assert.Equal(t, []string{"a", "c"}, d.Controls)
}

func TestDraft_RemovePPEKeepsOrder(t *testing.T) {
	d := NewDraft(fixedNow)
	d.AddPPE("Gloves")
	d.AddPPE("Goggles")
	d.AddPPE("FFP3 mask")

	assert.True(t, d.RemovePPE(0))
	assert.Equal(t, []string{"Goggles", "FFP3 mask"}, d.PPE)
}

func TestDraft_RemoveOutOfRange(t *testing.T) {
	d := NewDraft(fixedNow)
	d.AddControl("only")

	assert.False(t, d.RemoveControl(-1))
	assert.False(t, d.RemoveControl(1))
	assert.False(t, d.RemovePPE(0))
	assert.Equal(t, []string{"only"}, d.Controls)
}

func TestDraft_AddIgnoresBlank(t *testing.T) {
	d := NewDraft(fixedNow)

	assert.False(t, d.AddControl("   "))
	assert.False(t, d.AddPPE(""))
	assert.True(t, d.AddPPE("  Nitrile gloves "))
	assert.Empty(t, d.Controls)
	assert.Equal(t, []string{"Nitrile gloves"}, d.PPE)
}

func TestDraft_ToggleHazard(t *testing.T) {
	d := NewDraft(fixedNow)

	require.NoError(t, d.ToggleHazard("corrosive"))
	require.NoError(t, d.ToggleHazard("toxic"))
	assert.Contains(t, d.Hazards, HazardCorrosive)
	assert.Equal(t, []Hazard{HazardCorrosive, HazardToxic}, d.Hazards)

	require.NoError(t, d.ToggleHazard("corrosive"))
	assert.NotContains(t, d.Hazards, HazardCorrosive)
	assert.Equal(t, []Hazard{HazardToxic}, d.Hazards)

	assert.ErrorIs(t, d.ToggleHazard("radioactive"), ErrUnknownHazard)
}

func TestDraft_ToggleRoute(t *testing.T) {
	d := NewDraft(fixedNow)

	require.NoError(t, d.ToggleRoute("ingestion"))
	assert.Contains(t, d.Routes, RouteIngestion)
	require.NoError(t, d.ToggleRoute("ingestion"))
	assert.NotContains(t, d.Routes, RouteIngestion)

	assert.ErrorIs(t, d.ToggleRoute("injection"), ErrUnknownRoute)
}

func TestDraft_Apply(t *testing.T) {
	d := NewDraft(fixedNow)

	err := d.Apply(Patch{
		SubstanceName:      ptr("Battery acid"),
		Location:           ptr("UPS room"),
		Hazards:            ptr([]string{"corrosive", "corrosive", "toxic"}),
		Routes:             ptr([]string{"skin-contact"}),
		RiskRating:         ptr("high"),
		MonitoringRequired: ptr(true),
		AssessmentDate:     ptr("2024-02-29"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Battery acid", d.SubstanceName)
	assert.Equal(t, "UPS room", d.Location)
	assert.Equal(t, []Hazard{HazardCorrosive, HazardToxic}, d.Hazards)
	assert.Equal(t, []Route{RouteSkinContact}, d.Routes)
	assert.Equal(t, RiskHigh, d.RiskRating)
	assert.True(t, d.MonitoringRequired)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), d.AssessmentDate)
}

func TestDraft_ApplyIsAtomic(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
		want  error
	}{
		{"bad hazard", Patch{SubstanceName: ptr("x"), Hazards: ptr([]string{"flammable", "sticky"})}, ErrUnknownHazard},
		{"bad route", Patch{SubstanceName: ptr("x"), Routes: ptr([]string{"osmosis"})}, ErrUnknownRoute},
		{"bad rating", Patch{SubstanceName: ptr("x"), RiskRating: ptr("extreme")}, ErrUnknownRiskRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft(fixedNow)
			err := d.Apply(tt.patch)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, NewDraft(fixedNow), d)
		})
	}
}

func TestDraft_ApplyBadDate(t *testing.T) {
	d := NewDraft(fixedNow)
	err := d.Apply(Patch{AssessmentDate: ptr("19/10/2026")})
	assert.Error(t, err)
	assert.Equal(t, NewDraft(fixedNow), d)
}

func TestDraft_JSONDateLayout(t *testing.T) {
	d := NewDraft(fixedNow)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"assessment_date":"2026-10-19"`)

	var back Draft
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)

	got, err := ParseDate("2026-10-19T23:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), got)
	_, err = ParseDate("19/10/2026")
	assert.Error(t, err)
}

func TestDraft_CloneDoesNotAlias(t *testing.T) {
	d := NewDraft(fixedNow)
	d.AddControl("a")
	c := d.Clone()
	c.Controls[0] = "changed"

	assert.Equal(t, "a", d.Controls[0])
}
