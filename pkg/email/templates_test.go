package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedData() TemplateData {
	return TemplateData{
		Name:               "Alice",
		Email:              "alice@example.com",
		Company:            "Acme",
		DemoDuration:       "14 days",
		AccessURL:          "https://flows.thepia.net/demo?token=abc",
		ExpiresAtFormatted: "March 15, 2024",
		CreatedAtFormatted: "March 1, 2024",
		WorkflowType:       "offboarding",
		TeamSize:           "25",
		AdminNotes:         "Welcome aboard",
		Fields:             map[string]string{"name": "Alice", "company": "Acme"},
	}
}

func TestRenderInvitationApproved(t *testing.T) {
	content, err := RenderTemplate(TemplateInvitationApproved, approvedData(), "")
	require.NoError(t, err)

	assert.Equal(t, "Your Thepia Flows Demo Access is Ready!", content.Subject)

	// the HTML and text bodies carry the same facts
	for _, body := range []string{content.HTML, content.Text} {
		assert.Contains(t, body, "Alice")
		assert.Contains(t, body, "Acme")
		assert.Contains(t, body, "14 days")
		assert.Contains(t, body, "March 15, 2024")
		assert.Contains(t, body, "offboarding")
		assert.Contains(t, body, "25")
		assert.Contains(t, body, "Welcome aboard")
		assert.Contains(t, body, "https://flows.thepia.net/demo?token=abc")
	}
}

func TestRenderInvitationApprovedOptionalLines(t *testing.T) {
	data := approvedData()
	data.WorkflowType = ""
	data.TeamSize = ""
	data.AdminNotes = ""

	content, err := RenderTemplate(TemplateInvitationApproved, data, "")
	require.NoError(t, err)

	assert.NotContains(t, content.HTML, "Workflow Type")
	assert.NotContains(t, content.HTML, "Team Size")
	assert.NotContains(t, content.HTML, "Note from our team")
	assert.NotContains(t, content.Text, "Workflow Type")
}

func TestRenderMinimalTemplates(t *testing.T) {
	data := TemplateData{Name: "Alice"}

	tests := []struct {
		template    string
		wantSubject string
		wantBody    string
	}{
		{
			template:    TemplateInvitationReminder,
			wantSubject: "Reminder: Your Thepia Flows Demo is Waiting",
			wantBody:    "Reminder email for Alice",
		},
		{
			template:    TemplateDemoExpiring,
			wantSubject: "Your Thepia Flows Demo Expires Soon",
			wantBody:    "Expiring notice for Alice",
		},
		{
			template:    TemplateInvitationRejected,
			wantSubject: "Update on Your Thepia Flows Demo Request",
			wantBody:    "Request update for Alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			content, err := RenderTemplate(tt.template, data, "")
			require.NoError(t, err)

			assert.Equal(t, tt.wantSubject, content.Subject)
			assert.Equal(t, "<p>"+tt.wantBody+"</p>", content.HTML)
			assert.Equal(t, tt.wantBody, content.Text)
		})
	}
}

func TestRenderUnknownTemplateFallsBackToDefault(t *testing.T) {
	content, err := RenderTemplate("xyz", TemplateData{Name: "Alice"}, "")
	require.NoError(t, err)

	assert.Equal(t, "Thepia Flows Notification", content.Subject)
	assert.Equal(t, "<p>Notification for Alice</p>", content.HTML)
	assert.Equal(t, "Notification for Alice", content.Text)
}

func TestRenderCustomMessageWinsOverTemplate(t *testing.T) {
	data := TemplateData{
		Name:   "Alice",
		Fields: map[string]string{"name": "Alice", "company": "Acme"},
	}

	for _, name := range []string{TemplateInvitationApproved, "xyz", ""} {
		content, err := RenderTemplate(name, data, "Hello {{name}} from {{company}}")
		require.NoError(t, err)

		assert.Equal(t, "Important Update from Thepia Flows", content.Subject)
		assert.Contains(t, content.HTML, "Hello Alice from Acme")
		assert.Equal(t, "Hello {{name}} from {{company}}", content.Text)
	}
}

func TestFormatCustomMessageNoEscaping(t *testing.T) {
	data := TemplateData{Fields: map[string]string{"note": "<b>bold</b>"}}

	// substitution is a raw string replace, by contract
	got := FormatCustomMessage("Note: {{note}}", data)
	assert.Contains(t, got, "<b>bold</b>")

	// unknown placeholders stay untouched
	got = FormatCustomMessage("Hi {{missing}}", data)
	assert.Contains(t, got, "{{missing}}")
}
