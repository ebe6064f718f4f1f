package coshh

import "errors"

var (
	ErrUnknownHazard     = errors.New("unknown GHS hazard")
	ErrUnknownRoute      = errors.New("unknown exposure route")
	ErrUnknownRiskRating = errors.New("unknown risk rating")
	ErrUnknownSubstance  = errors.New("unknown common substance")
)

// Hazard is a GHS hazard class id.
type Hazard string

const (
	HazardFlammable     Hazard = "flammable"
	HazardOxidising     Hazard = "oxidising"
	HazardCompressedGas Hazard = "compressed-gas"
	HazardCorrosive     Hazard = "corrosive"
	HazardToxic         Hazard = "toxic"
	HazardHarmful       Hazard = "harmful"
	HazardHealthHazard  Hazard = "health-hazard"
	HazardEnvironmental Hazard = "environmental"
)

// Route is an exposure route id.
type Route string

const (
	RouteInhalation  Route = "inhalation"
	RouteSkinContact Route = "skin-contact"
	RouteEyeContact  Route = "eye-contact"
	RouteIngestion   Route = "ingestion"
)

// RiskRating is ordered: low < medium < high < very-high.
type RiskRating string

const (
	RiskLow      RiskRating = "low"
	RiskMedium   RiskRating = "medium"
	RiskHigh     RiskRating = "high"
	RiskVeryHigh RiskRating = "very-high"
)

// Option is one selectable catalogue entry as shown to the user.
type Option struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Hazards lists the fixed GHS catalogue in display order.
var Hazards = []Option{
	{ID: string(HazardFlammable), Label: "Flammable", Description: "Flammable gases, liquids, solids and aerosols"},
	{ID: string(HazardOxidising), Label: "Oxidising", Description: "May cause or intensify fire"},
	{ID: string(HazardCompressedGas), Label: "Gas under pressure", Description: "Contains gas under pressure, may explode if heated"},
	{ID: string(HazardCorrosive), Label: "Corrosive", Description: "Causes severe skin burns and eye damage"},
	{ID: string(HazardToxic), Label: "Acute toxicity", Description: "Fatal or toxic if swallowed, inhaled or in contact with skin"},
	{ID: string(HazardHarmful), Label: "Harmful / irritant", Description: "Irritant, skin sensitiser, narcotic effects"},
	{ID: string(HazardHealthHazard), Label: "Serious health hazard", Description: "Carcinogen, respiratory sensitiser, reproductive toxicity"},
	{ID: string(HazardEnvironmental), Label: "Hazardous to the environment", Description: "Toxic to aquatic life"},
}

// Routes lists the fixed exposure-route catalogue in display order.
var Routes = []Option{
	{ID: string(RouteInhalation), Label: "Inhalation"},
	{ID: string(RouteSkinContact), Label: "Skin contact"},
	{ID: string(RouteEyeContact), Label: "Eye contact"},
	{ID: string(RouteIngestion), Label: "Ingestion"},
}

// RiskRatings lists the ratings from least to most severe.
var RiskRatings = []Option{
	{ID: string(RiskLow), Label: "Low"},
	{ID: string(RiskMedium), Label: "Medium"},
	{ID: string(RiskHigh), Label: "High"},
	{ID: string(RiskVeryHigh), Label: "Very high"},
}

func inCatalogue(catalogue []Option, id string) bool {
	for _, o := range catalogue {
		if o.ID == id {
			return true
		}
	}
	return false
}

// ParseHazard validates a hazard id against the catalogue.
func ParseHazard(id string) (Hazard, error) {
	if !inCatalogue(Hazards, id) {
		return "", ErrUnknownHazard
	}
	return Hazard(id), nil
}

// ParseRoute validates an exposure route id against the catalogue.
func ParseRoute(id string) (Route, error) {
	if !inCatalogue(Routes, id) {
		return "", ErrUnknownRoute
	}
	return Route(id), nil
}

// ParseRiskRating validates a risk rating id.
func ParseRiskRating(id string) (RiskRating, error) {
	if !inCatalogue(RiskRatings, id) {
		return "", ErrUnknownRiskRating
	}
	return RiskRating(id), nil
}

// Severity returns the ordinal of the rating, 0 for low up to 3 for very-high,
// or -1 when the rating is not in the catalogue.
func (r RiskRating) Severity() int {
	for i, o := range RiskRatings {
		if o.ID == string(r) {
			return i
		}
	}
	return -1
}

// Label returns the display label of a hazard id, or the id itself.
func (h Hazard) Label() string {
	for _, o := range Hazards {
		if o.ID == string(h) {
			return o.Label
		}
	}
	return string(h)
}

// Label returns the display label of a route id, or the id itself.
func (r Route) Label() string {
	for _, o := range Routes {
		if o.ID == string(r) {
			return o.Label
		}
	}
	return string(r)
}
