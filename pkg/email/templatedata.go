package email

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"flows-notify/pkg/config"
	"flows-notify/pkg/model"
	"flows-notify/pkg/token"
)

// fixed fallbacks used when neither the token payload nor the
// invitation's template_data carries a value
const (
	fallbackName         = "Guest"
	fallbackDemoDuration = "14 days"

	dateNotSpecified = "Not specified"
	dateInvalid      = "Invalid date"
)

// TemplateData is the merged view an email template is rendered from.
// The typed fields are the canonical contract; Fields carries the full
// open merged record (template_data unioned with the decoded payload,
// decoded winning on collision) for {{field}} substitution and
// pass-through. On read, canonical fields take precedence.
type TemplateData struct {
	Name               string
	Email              string
	Company            string
	DemoDuration       string
	AccessURL          string
	ExpiresAtFormatted string
	CreatedAtFormatted string
	WorkflowType       string
	TeamSize           string
	AdminNotes         string

	Fields map[string]string
}

// Field looks a value up by its template_data key, canonical fields first.
func (d TemplateData) Field(key string) (string, bool) {
	switch key {
	case "name":
		return d.Name, true
	case "email":
		return d.Email, true
	case "company":
		return d.Company, true
	case "demo_duration":
		return d.DemoDuration, true
	case "access_url":
		return d.AccessURL, true
	case "expires_at_formatted":
		return d.ExpiresAtFormatted, true
	case "created_at_formatted":
		return d.CreatedAtFormatted, true
	case "workflow_type":
		return d.WorkflowType, true
	case "team_size":
		return d.TeamSize, true
	case "admin_notes":
		return d.AdminNotes, true
	}

	v, ok := d.Fields[key]
	return v, ok
}

// MergeTemplateData builds the merged template view for one invitation.
// Inputs are never mutated; calling twice with the same inputs yields
// the same result.
func MergeTemplateData(inv *model.Invitation, payload token.Payload, cfg config.EmailTemplateConfig) TemplateData {
	data := TemplateData{
		Email:              firstNonEmpty(payload.Email, templateField(inv, "email")),
		Name:               firstNonEmpty(payload.Name, payload.FirstName, templateField(inv, "name"), fallbackName),
		Company:            firstNonEmpty(payload.Company, payload.CompanyName, templateField(inv, "company")),
		DemoDuration:       firstNonEmpty(templateField(inv, "demo_duration"), fallbackDemoDuration),
		AccessURL:          firstNonEmpty(templateField(inv, "access_url"), AccessURL(cfg.DemoBaseURL, inv.JWTToken)),
		ExpiresAtFormatted: FormatDate(inv.ExpiresAt),
		CreatedAtFormatted: FormatDate(inv.CreatedAt),
		WorkflowType:       firstNonEmpty(claimField(payload, "workflow_type"), templateField(inv, "workflow_type")),
		TeamSize:           firstNonEmpty(claimField(payload, "team_size"), templateField(inv, "team_size")),
		AdminNotes:         firstNonEmpty(claimField(payload, "admin_notes"), templateField(inv, "admin_notes")),
	}

	// shallow union of template_data and decoded claims, decoded winning
	fields := make(map[string]string, len(inv.TemplateData)+len(payload.Claims))
	for key, value := range inv.TemplateData {
		fields[key] = stringify(value)
	}
	for key, value := range payload.Claims {
		fields[key] = stringify(value)
	}

	// canonical fields shadow the union on their own keys
	fields["name"] = data.Name
	fields["email"] = data.Email
	fields["company"] = data.Company
	fields["demo_duration"] = data.DemoDuration
	fields["access_url"] = data.AccessURL
	fields["expires_at_formatted"] = data.ExpiresAtFormatted
	fields["created_at_formatted"] = data.CreatedAtFormatted

	data.Fields = fields
	return data
}

// FormatDate renders a store timestamp as a long-form US-English date,
// e.g. "January 5, 2025". Empty input maps to "Not specified"; input
// that does not parse maps to a deterministic "Invalid date".
func FormatDate(value string) string {
	if value == "" {
		return dateNotSpecified
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("January 2, 2006")
		}
	}

	return dateInvalid
}

// AccessURL builds the demo access link for a token.
func AccessURL(base, token string) string {
	return strings.TrimSuffix(base, "/") + "/demo?token=" + url.QueryEscape(token)
}

func templateField(inv *model.Invitation, key string) string {
	v, ok := inv.TemplateField(key)
	if !ok {
		return ""
	}
	return v
}

func claimField(payload token.Payload, key string) string {
	v, ok := payload.Claims[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
