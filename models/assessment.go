package models

import "time"

// Assessment is a committed COSHH assessment. Rows are written once and never updated.
type Assessment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	// Substance
	SubstanceName string `json:"substance_name" gorm:"not null;index"`
	Manufacturer  string `json:"manufacturer,omitempty"`
	ProductCode   string `json:"product_code,omitempty"`

	// Usage
	Location        string `json:"location,omitempty"`
	TaskDescription string `json:"task_description,omitempty" gorm:"type:text"`
	Quantity        string `json:"quantity,omitempty"`
	Frequency       string `json:"frequency,omitempty"`

	// Classification
	Hazards        []string `json:"hazards" gorm:"serializer:json;type:jsonb"`
	ExposureRoutes []string `json:"exposure_routes" gorm:"serializer:json;type:jsonb"`
	HealthEffects  string   `json:"health_effects,omitempty" gorm:"type:text"`
	ExposureLimit  string   `json:"exposure_limit,omitempty"`

	// Controls
	ControlMeasures []string `json:"control_measures" gorm:"serializer:json;type:jsonb"`
	PPE             []string `json:"ppe" gorm:"column:ppe;serializer:json;type:jsonb"`

	// Emergency & storage
	Storage            string `json:"storage,omitempty" gorm:"type:text"`
	SpillProcedure     string `json:"spill_procedure,omitempty" gorm:"type:text"`
	FirstAid           string `json:"first_aid,omitempty" gorm:"type:text"`
	Disposal           string `json:"disposal,omitempty" gorm:"type:text"`
	MonitoringRequired bool   `json:"monitoring_required"`
	MonitoringDetails  string `json:"monitoring_details,omitempty" gorm:"type:text"`

	// Sign-off
	RiskRating     string    `json:"risk_rating" gorm:"index;not null"`
	AssessorName   string    `json:"assessor_name" gorm:"not null"`
	AssessmentDate time.Time `json:"assessment_date" gorm:"type:date"`
	ReviewDate     time.Time `json:"review_date" gorm:"type:date;index"`

	// Set once the rendered document has been uploaded.
	ArchiveURL string `json:"archive_url,omitempty"`
}

// TableName sets the table name explicitly.
func (Assessment) TableName() string {
	return "coshh_assessments"
}
