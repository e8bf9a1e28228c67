// Package recap renders and sends follow-up emails after a processed
// meeting. Template selection keys off the meeting outcome: a closed client
// gets onboarding next steps, a deferral gets a gentle check-in, a lost
// meeting gets a courteous door-open note.
package recap

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/willowgate/transcriptd/internal/record"
)

// Email is a rendered recap ready to send.
type Email struct {
	Subject string
	Body    string
	Tag     string
}

// templateData is the view model shared by all recap templates.
type templateData struct {
	ClientName  string
	FirmName    string
	MeetingDate string
	State       string
	NextSteps   string
	EstateValue string
}

var recapTemplates = map[string]*template.Template{
	"Closed Won": template.Must(template.New("closed_won").Parse(`Hi {{.ClientName}},

Thank you for meeting with us today and for the trust you've placed in {{.FirmName}}. We're already preparing your estate planning documents.

What happens next:
1. Our document team drafts your plan over the next few business days.
2. You'll receive a review copy by email before anything is finalized.
{{- if .NextSteps}}
3. {{.NextSteps}}
{{- end}}

If any questions come up in the meantime, just reply to this email.

Warm regards,
{{.FirmName}}`)),

	"Follow Up": template.Must(template.New("follow_up").Parse(`Hi {{.ClientName}},

Thank you for taking the time to speak with us on {{.MeetingDate}}. Estate planning decisions deserve careful thought, and we're glad to move at whatever pace works for you.
{{- if .NextSteps}}

As discussed, the next step is: {{.NextSteps}}
{{- end}}

We'll check in shortly, but feel free to reach out sooner with any questions.

Warm regards,
{{.FirmName}}`)),

	"Closed Lost": template.Must(template.New("closed_lost").Parse(`Hi {{.ClientName}},

Thank you for speaking with us on {{.MeetingDate}}. We understand the timing isn't right, and we appreciate you considering {{.FirmName}}.

If your circumstances change, we'd be glad to pick up where we left off. Your notes stay on file, so a future conversation can start from what we already covered.

Warm regards,
{{.FirmName}}`)),
}

var recapSubjects = map[string]string{
	"Closed Won":  "Welcome aboard - your estate plan is underway",
	"Follow Up":   "Following up on our estate planning conversation",
	"Closed Lost": "Thank you for your time",
}

// Generator renders recap emails from client records.
type Generator struct {
	firmName string
}

// NewGenerator creates a recap generator for the given firm name.
func NewGenerator(firmName string) *Generator {
	if firmName == "" {
		firmName = "Willowgate Estate Planning"
	}
	return &Generator{firmName: firmName}
}

// Generate renders the recap for a record. No Show meetings get no recap.
func (g *Generator) Generate(rec record.Record) (Email, error) {
	stage := rec.Text("meeting_stage")
	tmpl, ok := recapTemplates[stage]
	if !ok {
		return Email{}, fmt.Errorf("no recap template for meeting stage %q", stage)
	}

	data := templateData{
		ClientName:  rec.Text("client_name"),
		FirmName:    g.firmName,
		MeetingDate: rec.Text("meeting_date"),
		State:       rec.Text("state"),
		NextSteps:   rec.Text("next_steps"),
		EstateValue: rec.Text("estate_value"),
	}
	if data.ClientName == "" {
		data.ClientName = "there"
	}
	if data.MeetingDate == "" {
		data.MeetingDate = time.Now().UTC().Format("January 2, 2006")
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return Email{}, fmt.Errorf("failed to render recap: %w", err)
	}

	return Email{
		Subject: recapSubjects[stage],
		Body:    body.String(),
		Tag:     "meeting-recap",
	}, nil
}
