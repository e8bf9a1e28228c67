package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractState(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			"answer to location question",
			"Advisor: Where in the world are you joining from today?\nClient: I'm calling in from Annapolis, Maryland. Beautiful day here.",
			"Maryland",
		},
		{
			"i live in, lowercase",
			"Well, I live in south carolina with my wife.",
			"South Carolina",
		},
		{
			"from clause",
			"I'm joining the call from Austin, Texas this morning.",
			"Texas",
		},
		{
			"safe abbreviation",
			"I'm dialing in from MD, just outside Baltimore.",
			"Maryland",
		},
		{
			"ambiguous abbreviation ignored",
			"I'm OK with that, send it over.",
			"",
		},
		{
			"no state at all",
			"We mostly talked about revocable trusts and beneficiaries.",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractState(tt.content))
		})
	}
}

func TestExtractState_IgnoresLateMentions(t *testing.T) {
	// A state mentioned far past the opening window is not where the
	// client lives.
	content := "Advisor: Thanks for joining.\n" + filler(4000) + " My cousin moved to Florida last year."
	assert.Equal(t, "", ExtractState(content))
}

func TestExtractAge(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"years old", "I'm 65 years old and thinking about retirement.", 65},
		{"turned", "She just turned 72 last month.", 72},
		{"year-old compound", "As a 45-year-old business owner I worry about this.", 45},
		{"child age rejected", "My youngest is 12 years old.", 0},
		{"no age", "We never discussed ages.", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractAge(tt.content))
		})
	}
}

func TestExtractMaritalStatus(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"spouse reference", "My wife and I own the house jointly.", "Married"},
		{"late spouse outranks spouse", "My late wife handled all our finances.", "Widowed"},
		{"ex spouse", "My ex-husband still lives in the property.", "Divorced"},
		{"direct statement", "I'm single, no dependents.", "Single"},
		{"nothing", "We discussed trusts.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMaritalStatus(tt.content))
		})
	}
}

func TestExtractChildrenCount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"explicit count", "We have 3 kids, all grown.", 3},
		{"sons and daughters", "I have 2 sons and 1 daughter.", 3},
		{"mention counting", "My son runs the business. My daughter is a teacher.", 2},
		{"not mentioned", "We talked about property.", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractChildrenCount(tt.content))
		})
	}
}

func TestExtractEstateValue(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int64
	}{
		{"decimal million", "Our estate is worth about $2.5 million all told.", 2_500_000},
		{"plain dollars", "We have around $600,000 in assets.", 600_000},
		{"k suffix", "Probably 750k including the house.", 750_000},
		{"skips small numbers", "I'm 65 years old and we have about $1.3 million.", 1_300_000},
		{"nothing", "We never got to numbers.", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEstateValue(tt.content))
		})
	}
}

func TestExtractMeetingOutcome(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			"transaction completed",
			"Great, we've already processed the payment and we're building out your documents now.",
			"Closed Won",
		},
		{
			"deferral overrides payment talk",
			"I know we talked about the payment, but I won't be able to do it today. I don't have the funds until next month.",
			"Follow Up",
		},
		{
			"verbal commitment",
			"You know what, let's do it. Sign me up.",
			"Closed Won",
		},
		{
			"clear rejection",
			"I appreciate the time but I'll pass. This isn't for me.",
			"Closed Lost",
		},
		{
			"needs to consult spouse",
			"I need to think about it and talk to my wife first.",
			"Follow Up",
		},
		{
			"no signal",
			"Lovely weather we're having.",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMeetingOutcome(tt.content))
		})
	}
}

func TestExtractMeetingOutcome_OnlyReadsEnding(t *testing.T) {
	// A commitment early in a long transcript is outside the closing
	// window and must not decide the outcome.
	content := "Client: sign me up! " + filler(5000)
	assert.Equal(t, "", ExtractMeetingOutcome(content))
}

func filler(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = 'x'
	}
	return string(out)
}
