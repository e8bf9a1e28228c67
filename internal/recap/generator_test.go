package recap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowgate/transcriptd/internal/record"
)

func TestGenerator_ClosedWon(t *testing.T) {
	g := NewGenerator("Testfirm Legal")
	email, err := g.Generate(record.Record{
		"client_name":   "Sarah Chen",
		"meeting_stage": "Closed Won",
		"next_steps":    "Gather property deeds for the trust",
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome aboard - your estate plan is underway", email.Subject)
	assert.Contains(t, email.Body, "Hi Sarah Chen,")
	assert.Contains(t, email.Body, "Testfirm Legal")
	assert.Contains(t, email.Body, "Gather property deeds")
	assert.Equal(t, "meeting-recap", email.Tag)
}

func TestGenerator_FollowUp(t *testing.T) {
	g := NewGenerator("Testfirm Legal")
	email, err := g.Generate(record.Record{
		"client_name":   "Robert Miller",
		"meeting_stage": "Follow Up",
		"meeting_date":  "2026-08-20",
	})
	require.NoError(t, err)

	assert.Contains(t, email.Subject, "Following up")
	assert.Contains(t, email.Body, "2026-08-20")
	assert.NotContains(t, email.Body, "next step is:", "no next steps section without next_steps")
}

func TestGenerator_ClosedLost(t *testing.T) {
	g := NewGenerator("")
	email, err := g.Generate(record.Record{
		"client_name":   "Dana Fox",
		"meeting_stage": "Closed Lost",
	})
	require.NoError(t, err)
	assert.Contains(t, email.Body, "timing isn't right")
	assert.Contains(t, email.Body, "Willowgate Estate Planning", "default firm name applies")
}

func TestGenerator_NoTemplateForStage(t *testing.T) {
	g := NewGenerator("Testfirm Legal")

	_, err := g.Generate(record.Record{"meeting_stage": "No Show"})
	assert.Error(t, err)

	_, err = g.Generate(record.Record{})
	assert.Error(t, err)
}

func TestGenerator_MissingNameFallsBack(t *testing.T) {
	g := NewGenerator("Testfirm Legal")
	email, err := g.Generate(record.Record{"meeting_stage": "Follow Up"})
	require.NoError(t, err)
	assert.Contains(t, email.Body, "Hi there,")
}
