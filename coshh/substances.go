package coshh

import "strings"

// Substance is a pre-filled catalogue entry for a substance commonly met on
// electrical installation work.
type Substance struct {
	Name           string   `json:"name"`
	Manufacturer   string   `json:"manufacturer"`
	Hazards        []Hazard `json:"hazards"`
	Routes         []Route  `json:"exposure_routes"`
	HealthEffects  string   `json:"health_effects"`
	Controls       []string `json:"control_measures"`
	PPE            []string `json:"ppe"`
	Storage        string   `json:"storage"`
	SpillProcedure string   `json:"spill_procedure"`
	FirstAid       string   `json:"first_aid"`
}

// CommonSubstances is the static prefill catalogue.
var CommonSubstances = []Substance{
	{
		Name:          "Contact Cleaner Spray",
		Manufacturer:  "Various",
		Hazards:       []Hazard{HazardFlammable, HazardHarmful, HazardCompressedGas},
		Routes:        []Route{RouteInhalation, RouteSkinContact, RouteEyeContact},
		HealthEffects: "Vapour may cause drowsiness and dizziness. Irritating to eyes and skin. Repeated exposure may cause skin dryness or cracking.",
		Controls: []string{
			"Use in a well-ventilated area",
			"Isolate and allow equipment to cool before use",
			"No smoking or naked flames",
			"Use the minimum quantity needed",
		},
		PPE:            []string{"Nitrile gloves", "Safety glasses"},
		Storage:        "Store below 50°C away from heat and ignition sources. Do not pierce or burn the can, even after use.",
		SpillProcedure: "Ventilate the area, remove ignition sources, absorb liquid with inert material and dispose of as hazardous waste.",
		FirstAid:       "Inhalation: move to fresh air. Eyes: rinse with water for 15 minutes. Skin: wash with soap and water.",
	},
	{
		Name:          "Flux (Soldering)",
		Manufacturer:  "Various",
		Hazards:       []Hazard{HazardHarmful, HazardHealthHazard},
		Routes:        []Route{RouteInhalation, RouteSkinContact, RouteEyeContact},
		HealthEffects: "Rosin fume is a respiratory sensitiser and may cause occupational asthma. Irritating to skin and eyes.",
		Controls: []string{
			"Use local exhaust ventilation or a fume extractor",
			"Keep the head out of the fume plume",
			"Use lead-free, low-fume flux where possible",
		},
		PPE:            []string{"Safety glasses", "Heat-resistant gloves"},
		Storage:        "Keep container closed in a cool, dry place.",
		SpillProcedure: "Scrape up solid flux, wipe residue with a damp cloth and dispose of as hazardous waste.",
		FirstAid:       "Inhalation: move to fresh air and seek medical advice if wheezing develops. Skin: wash with soap and water.",
	},
	{
		Name:          "PVC Solvent Cement",
		Manufacturer:  "Various",
		Hazards:       []Hazard{HazardFlammable, HazardHarmful},
		Routes:        []Route{RouteInhalation, RouteSkinContact, RouteEyeContact},
		HealthEffects: "Solvent vapour may cause headaches, dizziness and drowsiness. Causes serious eye irritation.",
		Controls: []string{
			"Ensure good ventilation",
			"Replace the lid immediately after use",
			"Keep away from ignition sources",
		},
		PPE:            []string{"Nitrile gloves", "Safety glasses"},
		Storage:        "Store in a flammables cabinet away from direct sunlight.",
		SpillProcedure: "Remove ignition sources, ventilate and absorb with sand or inert absorbent.",
		FirstAid:       "Eyes: rinse with water for 15 minutes and seek medical advice. Inhalation: move to fresh air.",
	},
	{
		Name:          "Silicone Sealant",
		Manufacturer:  "Various",
		Hazards:       []Hazard{HazardHarmful},
		Routes:        []Route{RouteSkinContact, RouteEyeContact},
		HealthEffects: "Releases acetic acid vapour during curing which may irritate eyes and airways.",
		Controls: []string{
			"Ventilate the work area during curing",
			"Avoid contact with skin",
		},
		PPE:            []string{"Disposable gloves"},
		Storage:        "Store in a cool, dry place with the nozzle capped.",
		SpillProcedure: "Wipe up uncured sealant with a dry cloth before it cures.",
		FirstAid:       "Eyes: rinse with water. Skin: remove with a dry cloth then wash with soap and water.",
	},
	{
		Name:          "Cable Pulling Lubricant",
		Manufacturer:  "Various",
		Hazards:       []Hazard{HazardHarmful},
		Routes:        []Route{RouteSkinContact, RouteEyeContact},
		HealthEffects: "May cause mild skin and eye irritation on prolonged contact.",
		Controls: []string{
			"Avoid prolonged skin contact",
			"Clean up spills promptly to prevent slips",
		},
		PPE:            []string{"Disposable gloves", "Safety glasses"},
		Storage:        "Store between 5°C and 40°C. Protect from frost.",
		SpillProcedure: "Contain and absorb with inert material; surfaces may be slippery.",
		FirstAid:       "Eyes: rinse with water. Skin: wash with soap and water.",
	},
	{
		Name:          "Expanding Foam (Isocyanate)",
		Manufacturer:  "Various",
		Hazards:       []Hazard{HazardFlammable, HazardHealthHazard, HazardHarmful, HazardCompressedGas},
		Routes:        []Route{RouteInhalation, RouteSkinContact, RouteEyeContact},
		HealthEffects: "Contains diphenylmethane diisocyanate. May cause allergy or asthma symptoms if inhaled. Suspected of causing cancer.",
		Controls: []string{
			"Use in a well-ventilated area",
			"Do not use if previously sensitised to isocyanates",
			"No smoking or naked flames",
		},
		PPE:            []string{"Nitrile gloves", "Safety glasses", "FFP3 mask or RPE with A2 filter"},
		Storage:        "Store upright below 50°C away from ignition sources.",
		SpillProcedure: "Allow foam to cure, then cut away and dispose of as hazardous waste.",
		FirstAid:       "Inhalation: move to fresh air and seek medical advice. Skin: remove uncured foam with acetone-free cleaner, then wash.",
	},
}

// FilterSubstances returns the catalogue entries whose name contains query,
// ignoring case. An empty query matches everything.
func FilterSubstances(query string) []Substance {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Substance, 0, len(CommonSubstances))
	for _, s := range CommonSubstances {
		if strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
		}
	}
	return out
}

// FindSubstance looks up a catalogue entry by exact name, ignoring case.
func FindSubstance(name string) (Substance, error) {
	for _, s := range CommonSubstances {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return Substance{}, ErrUnknownSubstance
}
