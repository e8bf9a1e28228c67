package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

const verificationWindow = 4000

// verificationPromptTemplate asks the model to fill only the fields the
// pattern pass missed, with a per-field confidence it must self-report.
const verificationPromptTemplate = `You are a data verification specialist reviewing an estate planning meeting transcript.

PATTERN MATCHING FOUND:
%s

MISSING FIELDS: %s

TRANSCRIPT EXCERPT:
%s

For MISSING fields only, search carefully and return JSON:
{
  "verified_data": {
    // only fields listed as missing
  },
  "confidence": {
    // rate confidence 1-10 for each field you found
  }
}

Field value constraints:
- state: full US state name
- age: integer
- marital_status: one of Single, Married, Divorced, Widowed
- children_count: integer
- estate_value: integer dollars
- meeting_stage: one of Closed Won, Closed Lost, No Show, Follow Up

Return ONLY valid JSON. Be conservative - only include data you are very confident about.`

func buildVerificationPrompt(found map[string]any, missing []string, transcript string) string {
	foundJSON, err := json.MarshalIndent(found, "", "  ")
	if err != nil {
		foundJSON = []byte("{}")
	}
	return fmt.Sprintf(verificationPromptTemplate,
		string(foundJSON),
		strings.Join(missing, ", "),
		head(transcript, verificationWindow))
}
