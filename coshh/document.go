package coshh

import (
	"fmt"
	"strings"

	"elec-mate/models"
)

// RenderDocument formats an assessment as a Markdown record suitable for
// printing or archiving.
func RenderDocument(a models.Assessment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# COSHH Assessment: %s\n\n", a.SubstanceName)
	fmt.Fprintf(&b, "Reference: %s\n", a.ID)
	fmt.Fprintf(&b, "Assessed: %s by %s\n", a.AssessmentDate.Format(DateLayout), a.AssessorName)
	fmt.Fprintf(&b, "Review due: %s\n", a.ReviewDate.Format(DateLayout))
	fmt.Fprintf(&b, "Risk rating: %s\n", strings.ToUpper(a.RiskRating))

	section(&b, "Substance")
	field(&b, "Manufacturer", a.Manufacturer)
	field(&b, "Product code", a.ProductCode)
	field(&b, "Location", a.Location)
	field(&b, "Task", a.TaskDescription)
	field(&b, "Quantity", a.Quantity)
	field(&b, "Frequency", a.Frequency)

	section(&b, "Hazards")
	hazards := make([]string, len(a.Hazards))
	for i, h := range a.Hazards {
		hazards[i] = Hazard(h).Label()
	}
	routes := make([]string, len(a.ExposureRoutes))
	for i, r := range a.ExposureRoutes {
		routes[i] = Route(r).Label()
	}
	field(&b, "GHS classification", strings.Join(hazards, ", "))
	field(&b, "Exposure routes", strings.Join(routes, ", "))
	field(&b, "Health effects", a.HealthEffects)
	field(&b, "Exposure limit", a.ExposureLimit)

	section(&b, "Control measures")
	list(&b, a.ControlMeasures)
	section(&b, "PPE")
	list(&b, a.PPE)

	section(&b, "Emergency and storage")
	field(&b, "Storage", a.Storage)
	field(&b, "Spill procedure", a.SpillProcedure)
	field(&b, "First aid", a.FirstAid)
	field(&b, "Disposal", a.Disposal)
	if a.MonitoringRequired {
		field(&b, "Monitoring", "Required. "+a.MonitoringDetails)
	} else {
		field(&b, "Monitoring", "Not required")
	}
	return b.String()
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n## %s\n\n", title)
}

func field(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "- **%s:** %s\n", label, strings.TrimSpace(value))
}

func list(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("- None recorded\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}
