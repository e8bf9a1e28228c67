package validation

import "github.com/willowgate/transcriptd/internal/record"

// ApplyCorrections returns a copy of rec with each proposed correction
// substituted. The input record is never mutated; applying the same
// correction set twice yields the same result.
func ApplyCorrections(rec record.Record, corrections map[string]Correction) record.Record {
	out := rec.Clone()
	for field, c := range corrections {
		out[field] = c.Corrected
	}
	return out
}
