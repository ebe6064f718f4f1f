package coshh

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"elec-mate/models"
)

var (
	ErrStepIncomplete = errors.New("current step is incomplete")
	ErrFinalStep      = errors.New("already on the final step, save instead")
	ErrNotFinalStep   = errors.New("assessment can only be saved from the final step")
	ErrWizardClosed   = errors.New("wizard is closed")
)

// Step is one of the four ordered wizard pages.
type Step int

const (
	StepSubstance Step = iota
	StepHazards
	StepControls
	StepSignOff
)

// LastStep is the step that ends with Save.
const LastStep = StepSignOff

func (s Step) String() string {
	switch s {
	case StepSubstance:
		return "substance-details"
	case StepHazards:
		return "hazard-classification"
	case StepControls:
		return "controls-ppe"
	case StepSignOff:
		return "emergency-sign-off"
	default:
		return "unknown"
	}
}

// Gate reports whether the draft satisfies the completion predicate of step.
func Gate(step Step, d Draft) bool {
	switch step {
	case StepSubstance:
		return strings.TrimSpace(d.SubstanceName) != ""
	case StepHazards:
		return len(d.Hazards) > 0
	case StepControls:
		return len(d.Controls) > 0 || len(d.PPE) > 0
	case StepSignOff:
		return strings.TrimSpace(d.AssessorName) != ""
	default:
		return false
	}
}

// Wizard collects one assessment over four steps. It is not safe for
// concurrent use; callers serialise access.
type Wizard struct {
	step  Step
	draft Draft
	open  bool

	now   func() time.Time
	newID func() string
}

// NewWizard returns an open wizard on the first step. Nil now or newID fall
// back to time.Now and random UUIDs.
func NewWizard(now func() time.Time, newID func() string) *Wizard {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	w := &Wizard{now: now, newID: newID}
	w.Reopen()
	return w
}

// Reopen resets the draft to defaults and returns to the first step.
func (w *Wizard) Reopen() {
	w.step = StepSubstance
	w.draft = NewDraft(w.now())
	w.open = true
}

// Close discards the draft.
func (w *Wizard) Close() {
	w.step = StepSubstance
	w.draft = NewDraft(w.now())
	w.open = false
}

func (w *Wizard) IsOpen() bool { return w.open }

func (w *Wizard) Step() Step { return w.step }

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() Draft { return w.draft.Clone() }

// CanAdvance reports whether Continue (or Save on the last step) is enabled.
func (w *Wizard) CanAdvance() bool {
	return w.open && Gate(w.step, w.draft)
}

// Continue moves forward one step when the current step is complete.
func (w *Wizard) Continue() error {
	if !w.open {
		return ErrWizardClosed
	}
	if w.step == LastStep {
		return ErrFinalStep
	}
	if !Gate(w.step, w.draft) {
		return ErrStepIncomplete
	}
	w.step++
	return nil
}

// Back moves to the previous step; on the first step it does nothing.
func (w *Wizard) Back() error {
	if !w.open {
		return ErrWizardClosed
	}
	if w.step > StepSubstance {
		w.step--
	}
	return nil
}

// Edit runs fn against the live draft.
func (w *Wizard) Edit(fn func(d *Draft) error) error {
	if !w.open {
		return ErrWizardClosed
	}
	return fn(&w.draft)
}

// LoadSubstance prefills the draft from the common-substance catalogue and
// jumps to the hazard step. Fields the catalogue does not carry are kept.
func (w *Wizard) LoadSubstance(name string) error {
	if !w.open {
		return ErrWizardClosed
	}
	s, err := FindSubstance(name)
	if err != nil {
		return err
	}
	w.draft.SubstanceName = s.Name
	w.draft.Manufacturer = s.Manufacturer
	w.draft.Hazards = append([]Hazard{}, s.Hazards...)
	w.draft.Routes = append([]Route{}, s.Routes...)
	w.draft.HealthEffects = s.HealthEffects
	w.draft.Controls = append([]string{}, s.Controls...)
	w.draft.PPE = append([]string{}, s.PPE...)
	w.draft.Storage = s.Storage
	w.draft.SpillProcedure = s.SpillProcedure
	w.draft.FirstAid = s.FirstAid
	w.step = StepHazards
	return nil
}

// Save commits the draft on the final step, then resets and closes the wizard.
func (w *Wizard) Save() (models.Assessment, error) {
	return w.SaveWith(nil)
}

// SaveWith is Save with a commit hook. The wizard is only reset when commit
// returns nil; on error the draft and step are left untouched.
func (w *Wizard) SaveWith(commit func(*models.Assessment) error) (models.Assessment, error) {
	if !w.open {
		return models.Assessment{}, ErrWizardClosed
	}
	if w.step != LastStep {
		return models.Assessment{}, ErrNotFinalStep
	}
	if !Gate(w.step, w.draft) {
		return models.Assessment{}, ErrStepIncomplete
	}
	a := Build(w.draft, w.newID(), w.now())
	if commit != nil {
		if err := commit(&a); err != nil {
			return models.Assessment{}, err
		}
	}
	w.Close()
	return a, nil
}

// Build turns a completed draft into an assessment record.
func Build(d Draft, id string, now time.Time) models.Assessment {
	assessed := d.AssessmentDate
	if assessed.IsZero() {
		assessed = civilDate(now)
	}
	hazards := make([]string, len(d.Hazards))
	for i, h := range d.Hazards {
		hazards[i] = string(h)
	}
	routes := make([]string, len(d.Routes))
	for i, r := range d.Routes {
		routes[i] = string(r)
	}
	rating := d.RiskRating
	if rating == "" {
		rating = RiskMedium
	}
	return models.Assessment{
		ID:                 id,
		CreatedAt:          now,
		SubstanceName:      strings.TrimSpace(d.SubstanceName),
		Manufacturer:       d.Manufacturer,
		ProductCode:        d.ProductCode,
		Location:           d.Location,
		TaskDescription:    d.TaskDescription,
		Quantity:           d.Quantity,
		Frequency:          d.Frequency,
		Hazards:            hazards,
		ExposureRoutes:     routes,
		HealthEffects:      d.HealthEffects,
		ExposureLimit:      d.ExposureLimit,
		ControlMeasures:    append([]string{}, d.Controls...),
		PPE:                append([]string{}, d.PPE...),
		Storage:            d.Storage,
		SpillProcedure:     d.SpillProcedure,
		FirstAid:           d.FirstAid,
		Disposal:           d.Disposal,
		MonitoringRequired: d.MonitoringRequired,
		MonitoringDetails:  d.MonitoringDetails,
		RiskRating:         string(rating),
		AssessorName:       strings.TrimSpace(d.AssessorName),
		AssessmentDate:     civilDate(assessed),
		ReviewDate:         ReviewDate(assessed),
	}
}
