package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/willowgate/transcriptd/internal/record"
)

func TestApplyCorrections(t *testing.T) {
	rec := record.Record{
		"client_name": "John* Smith!!",
		"state":       "texas",
		"untouched":   "keep me",
	}
	corrections := map[string]Correction{
		"client_name": {Original: "John* Smith!!", Corrected: "John Smith", Reason: "removed invalid characters"},
		"state":       {Original: "texas", Corrected: "TX", Reason: "standardized state code"},
	}

	out := ApplyCorrections(rec, corrections)

	assert.Equal(t, "John Smith", out["client_name"])
	assert.Equal(t, "TX", out["state"])
	assert.Equal(t, "keep me", out["untouched"], "uncorrected fields carry over")

	assert.Equal(t, "John* Smith!!", rec["client_name"], "input record is never mutated")
	assert.Equal(t, "texas", rec["state"])
}

func TestApplyCorrections_Idempotent(t *testing.T) {
	rec := record.Record{"state": "texas"}
	corrections := map[string]Correction{
		"state": {Original: "texas", Corrected: "TX", Reason: "standardized state code"},
	}

	once := ApplyCorrections(rec, corrections)
	twice := ApplyCorrections(once, corrections)
	assert.Equal(t, once, twice)
}

func TestApplyCorrections_EmptyInputs(t *testing.T) {
	assert.Equal(t, record.Record{}, ApplyCorrections(nil, nil))

	rec := record.Record{"a": 1}
	out := ApplyCorrections(rec, nil)
	assert.Equal(t, rec, out)
}
