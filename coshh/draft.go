package coshh

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// DateLayout is the wire format of assessment and review dates.
const DateLayout = "2006-01-02"

// Draft holds the fields of one assessment while the wizard is open.
type Draft struct {
	SubstanceName   string `json:"substance_name"`
	Manufacturer    string `json:"manufacturer"`
	ProductCode     string `json:"product_code"`
	Location        string `json:"location"`
	TaskDescription string `json:"task_description"`
	Quantity        string `json:"quantity"`
	Frequency       string `json:"frequency"`

	Hazards       []Hazard `json:"hazards"`
	Routes        []Route  `json:"exposure_routes"`
	HealthEffects string   `json:"health_effects"`
	ExposureLimit string   `json:"exposure_limit"`

	Controls []string `json:"control_measures"`
	PPE      []string `json:"ppe"`

	Storage            string `json:"storage"`
	SpillProcedure     string `json:"spill_procedure"`
	FirstAid           string `json:"first_aid"`
	Disposal           string `json:"disposal"`
	MonitoringRequired bool   `json:"monitoring_required"`
	MonitoringDetails  string `json:"monitoring_details"`

	RiskRating     RiskRating `json:"risk_rating"`
	AssessorName   string     `json:"assessor_name"`
	AssessmentDate time.Time  `json:"assessment_date"`
}

// NewDraft returns an empty draft dated on the civil day of now.
func NewDraft(now time.Time) Draft {
	return Draft{
		Hazards:        []Hazard{},
		Routes:         []Route{},
		Controls:       []string{},
		PPE:            []string{},
		RiskRating:     RiskMedium,
		AssessmentDate: civilDate(now),
	}
}

// Clone returns a deep copy so callers cannot alias the wizard's slices.
func (d Draft) Clone() Draft {
	d.Hazards = slices.Clone(d.Hazards)
	d.Routes = slices.Clone(d.Routes)
	d.Controls = slices.Clone(d.Controls)
	d.PPE = slices.Clone(d.PPE)
	return d
}

type draftJSON Draft

// MarshalJSON writes AssessmentDate in DateLayout so a client can send the
// value it read straight back in a Patch.
func (d Draft) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		draftJSON
		AssessmentDate string `json:"assessment_date"`
	}{draftJSON(d), d.AssessmentDate.Format(DateLayout)})
}

func (d *Draft) UnmarshalJSON(b []byte) error {
	aux := struct {
		*draftJSON
		AssessmentDate string `json:"assessment_date"`
	}{draftJSON: (*draftJSON)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.AssessmentDate == "" {
		return nil
	}
	t, err := ParseDate(aux.AssessmentDate)
	if err != nil {
		return err
	}
	d.AssessmentDate = t
	return nil
}

// ParseDate accepts DateLayout or a full RFC 3339 timestamp and returns the
// civil day it names.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want %s", s, DateLayout)
	}
	return civilDate(t), nil
}

// ToggleHazard selects the hazard if absent and deselects it otherwise.
func (d *Draft) ToggleHazard(id string) error {
	h, err := ParseHazard(id)
	if err != nil {
		return err
	}
	if i := slices.Index(d.Hazards, h); i >= 0 {
		d.Hazards = slices.Delete(d.Hazards, i, i+1)
		return nil
	}
	d.Hazards = append(d.Hazards, h)
	return nil
}

// ToggleRoute selects the exposure route if absent and deselects it otherwise.
func (d *Draft) ToggleRoute(id string) error {
	r, err := ParseRoute(id)
	if err != nil {
		return err
	}
	if i := slices.Index(d.Routes, r); i >= 0 {
		d.Routes = slices.Delete(d.Routes, i, i+1)
		return nil
	}
	d.Routes = append(d.Routes, r)
	return nil
}

// AddControl appends a control measure. Blank entries are ignored.
func (d *Draft) AddControl(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	d.Controls = append(d.Controls, text)
	return true
}

// RemoveControl drops the entry at index; out-of-range indexes are a no-op.
func (d *Draft) RemoveControl(index int) bool {
	return removeAt(&d.Controls, index)
}

// AddPPE appends a PPE item. Blank entries are ignored.
func (d *Draft) AddPPE(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	d.PPE = append(d.PPE, text)
	return true
}

// RemovePPE drops the entry at index; out-of-range indexes are a no-op.
func (d *Draft) RemovePPE(index int) bool {
	return removeAt(&d.PPE, index)
}

func removeAt(list *[]string, index int) bool {
	if index < 0 || index >= len(*list) {
		return false
	}
	*list = slices.Delete(*list, index, index+1)
	return true
}

// Patch carries a partial update of the draft's scalar fields and tag sets.
// Nil fields are left unchanged.
type Patch struct {
	SubstanceName   *string `json:"substance_name"`
	Manufacturer    *string `json:"manufacturer"`
	ProductCode     *string `json:"product_code"`
	Location        *string `json:"location"`
	TaskDescription *string `json:"task_description"`
	Quantity        *string `json:"quantity"`
	Frequency       *string `json:"frequency"`

	Hazards       *[]string `json:"hazards"`
	Routes        *[]string `json:"exposure_routes"`
	HealthEffects *string   `json:"health_effects"`
	ExposureLimit *string   `json:"exposure_limit"`

	Storage            *string `json:"storage"`
	SpillProcedure     *string `json:"spill_procedure"`
	FirstAid           *string `json:"first_aid"`
	Disposal           *string `json:"disposal"`
	MonitoringRequired *bool   `json:"monitoring_required"`
	MonitoringDetails  *string `json:"monitoring_details"`

	RiskRating     *string `json:"risk_rating"`
	AssessorName   *string `json:"assessor_name"`
	AssessmentDate *string `json:"assessment_date"`
}

// Apply validates the patch as a whole and then writes it to the draft.
// On error the draft is left untouched.
func (d *Draft) Apply(p Patch) error {
	var (
		hazards []Hazard
		routes  []Route
		rating  RiskRating
		date    time.Time
	)
	if p.Hazards != nil {
		hazards = make([]Hazard, 0, len(*p.Hazards))
		for _, id := range *p.Hazards {
			h, err := ParseHazard(id)
			if err != nil {
				return fmt.Errorf("%w: %q", err, id)
			}
			if !slices.Contains(hazards, h) {
				hazards = append(hazards, h)
			}
		}
	}
	if p.Routes != nil {
		routes = make([]Route, 0, len(*p.Routes))
		for _, id := range *p.Routes {
			r, err := ParseRoute(id)
			if err != nil {
				return fmt.Errorf("%w: %q", err, id)
			}
			if !slices.Contains(routes, r) {
				routes = append(routes, r)
			}
		}
	}
	if p.RiskRating != nil {
		r, err := ParseRiskRating(*p.RiskRating)
		if err != nil {
			return fmt.Errorf("%w: %q", err, *p.RiskRating)
		}
		rating = r
	}
	if p.AssessmentDate != nil {
		t, err := ParseDate(*p.AssessmentDate)
		if err != nil {
			return fmt.Errorf("assessment date: %w", err)
		}
		date = t
	}

	setString(&d.SubstanceName, p.SubstanceName)
	setString(&d.Manufacturer, p.Manufacturer)
	setString(&d.ProductCode, p.ProductCode)
	setString(&d.Location, p.Location)
	setString(&d.TaskDescription, p.TaskDescription)
	setString(&d.Quantity, p.Quantity)
	setString(&d.Frequency, p.Frequency)
	setString(&d.HealthEffects, p.HealthEffects)
	setString(&d.ExposureLimit, p.ExposureLimit)
	setString(&d.Storage, p.Storage)
	setString(&d.SpillProcedure, p.SpillProcedure)
	setString(&d.FirstAid, p.FirstAid)
	setString(&d.Disposal, p.Disposal)
	setString(&d.MonitoringDetails, p.MonitoringDetails)
	setString(&d.AssessorName, p.AssessorName)
	if p.Hazards != nil {
		d.Hazards = hazards
	}
	if p.Routes != nil {
		d.Routes = routes
	}
	if p.MonitoringRequired != nil {
		d.MonitoringRequired = *p.MonitoringRequired
	}
	if p.RiskRating != nil {
		d.RiskRating = rating
	}
	if p.AssessmentDate != nil {
		d.AssessmentDate = date
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
