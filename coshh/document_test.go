package coshh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDocument(t *testing.T) {
	d := NewDraft(fixedNow)
	d.SubstanceName = "PVC Solvent Cement"
	d.Hazards = []Hazard{HazardFlammable, HazardHarmful}
	d.Routes = []Route{RouteInhalation}
	d.AddControl("Ensure good ventilation")
	d.AssessorName = "J. Smith"
	d.MonitoringRequired = true
	d.MonitoringDetails = "Quarterly air sampling"

	doc := RenderDocument(Build(d, "asm-42", fixedNow))

	assert.Contains(t, doc, "# COSHH Assessment: PVC Solvent Cement")
	assert.Contains(t, doc, "Reference: asm-42")
	assert.Contains(t, doc, "Assessed: 2026-10-19 by J. Smith")
	assert.Contains(t, doc, "Review due: 2027-10-19")
	assert.Contains(t, doc, "Risk rating: MEDIUM")
	assert.Contains(t, doc, "- **GHS classification:** Flammable, Harmful / irritant")
	assert.Contains(t, doc, "- **Exposure routes:** Inhalation")
	assert.Contains(t, doc, "- Ensure good ventilation")
	assert.Contains(t, doc, "## PPE\n\n- None recorded")
	assert.Contains(t, doc, "Required. Quarterly air sampling")
	assert.NotContains(t, doc, "Manufacturer", "blank fields are omitted")
}
