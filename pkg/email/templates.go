package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
)

// template names recognized by the selector
const (
	TemplateInvitationApproved = "invitation_approved"
	TemplateInvitationReminder = "invitation_reminder"
	TemplateDemoExpiring       = "demo_expiring"
	TemplateInvitationRejected = "invitation_rejected"
)

// subjects pinned by the notification contract
const (
	subjectApproved = "Your Thepia Flows Demo Access is Ready!"
	subjectReminder = "Reminder: Your Thepia Flows Demo is Waiting"
	subjectExpiring = "Your Thepia Flows Demo Expires Soon"
	subjectRejected = "Update on Your Thepia Flows Demo Request"
	subjectDefault  = "Thepia Flows Notification"
	subjectCustom   = "Important Update from Thepia Flows"
)

// Content is the final renderable artifact: one subject with matching
// HTML and plain-text bodies carrying the same facts.
type Content struct {
	Subject string
	HTML    string
	Text    string
}

// RenderTemplate produces the email content for a template name. A
// non-empty custom message takes absolute precedence over the named
// template. An unrecognized name falls back to the default template;
// that is intentional, never an error.
func RenderTemplate(name string, data TemplateData, customMessage string) (Content, error) {
	if customMessage != "" {
		return Content{
			Subject: subjectCustom,
			HTML:    FormatCustomMessage(customMessage, data),
			Text:    customMessage,
		}, nil
	}

	switch name {
	case TemplateInvitationApproved:
		return renderPair(subjectApproved, approvedTemplateHTML, approvedTemplateText, data)
	case TemplateInvitationReminder:
		return renderPair(subjectReminder, reminderTemplateHTML, reminderTemplateText, data)
	case TemplateDemoExpiring:
		return renderPair(subjectExpiring, expiringTemplateHTML, expiringTemplateText, data)
	case TemplateInvitationRejected:
		return renderPair(subjectRejected, rejectedTemplateHTML, rejectedTemplateText, data)
	default:
		return renderPair(subjectDefault, defaultTemplateHTML, defaultTemplateText, data)
	}
}

// FormatCustomMessage substitutes {{field}} placeholders in an
// admin-authored message from the merged template data and wraps the
// result in a minimal HTML shell. Substitution is a raw string replace
// with no HTML escaping; template_data is trusted admin input here, a
// caller feeding it user-controlled values would open an injection
// hole.
func FormatCustomMessage(message string, data TemplateData) string {
	formatted := message
	for key, value := range data.Fields {
		formatted = strings.ReplaceAll(formatted, "{{"+key+"}}", value)
	}
	return `<div style="font-family: Arial, sans-serif; padding: 20px;">` + formatted + `</div>`
}

// renderPair renders the HTML and text variants of one template
func renderPair(subject, htmlSrc, textSrc string, data TemplateData) (Content, error) {
	htmlTmpl, err := template.New("html").Parse(htmlSrc)
	if err != nil {
		return Content{}, fmt.Errorf("failed to parse HTML template: %w", err)
	}

	var htmlBuf bytes.Buffer
	err = htmlTmpl.Execute(&htmlBuf, data)
	if err != nil {
		return Content{}, fmt.Errorf("failed to execute HTML template: %w", err)
	}

	textTmpl, err := texttemplate.New("text").Parse(textSrc)
	if err != nil {
		return Content{}, fmt.Errorf("failed to parse text template: %w", err)
	}

	var textBuf bytes.Buffer
	err = textTmpl.Execute(&textBuf, data)
	if err != nil {
		return Content{}, fmt.Errorf("failed to execute text template: %w", err)
	}

	return Content{
		Subject: subject,
		HTML:    strings.TrimSpace(htmlBuf.String()),
		Text:    strings.TrimSpace(textBuf.String()),
	}, nil
}
