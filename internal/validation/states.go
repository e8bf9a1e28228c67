package validation

// StateGazetteer returns the default US state name to postal code mapping
// used by the state auto-correction. Lookup keys are lowercase full names.
// Callers may supply their own table via Catalog.States.
func StateGazetteer() map[string]string {
	return map[string]string{
		"alabama":        "AL",
		"alaska":         "AK",
		"arizona":        "AZ",
		"arkansas":       "AR",
		"california":     "CA",
		"colorado":       "CO",
		"connecticut":    "CT",
		"delaware":       "DE",
		"florida":        "FL",
		"georgia":        "GA",
		"hawaii":         "HI",
		"idaho":          "ID",
		"illinois":       "IL",
		"indiana":        "IN",
		"iowa":           "IA",
		"kansas":         "KS",
		"kentucky":       "KY",
		"louisiana":      "LA",
		"maine":          "ME",
		"maryland":       "MD",
		"massachusetts":  "MA",
		"michigan":       "MI",
		"minnesota":      "MN",
		"mississippi":    "MS",
		"missouri":       "MO",
		"montana":        "MT",
		"nebraska":       "NE",
		"nevada":         "NV",
		"new hampshire":  "NH",
		"new jersey":     "NJ",
		"new mexico":     "NM",
		"new york":       "NY",
		"north carolina": "NC",
		"north dakota":   "ND",
		"ohio":           "OH",
		"oklahoma":       "OK",
		"oregon":         "OR",
		"pennsylvania":   "PA",
		"rhode island":   "RI",
		"south carolina": "SC",
		"south dakota":   "SD",
		"tennessee":      "TN",
		"texas":          "TX",
		"utah":           "UT",
		"vermont":        "VT",
		"virginia":       "VA",
		"washington":     "WA",
		"west virginia":  "WV",
		"wisconsin":      "WI",
		"wyoming":        "WY",
	}
}
