package email

import (
	"testing"

	"flows-notify/pkg/config"
	"flows-notify/pkg/model"
	"flows-notify/pkg/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testTemplateCfg = config.EmailTemplateConfig{
	DemoBaseURL: "https://flows.thepia.net",
	AppName:     "Thepia Flows",
}

func TestMergeTemplateDataPrecedence(t *testing.T) {
	tests := []struct {
		name         string
		payload      token.Payload
		templateData map[string]interface{}
		wantName     string
	}{
		{
			name:         "decoded name wins over template_data",
			payload:      token.Payload{Name: "Alice"},
			templateData: map[string]interface{}{"name": "Bob"},
			wantName:     "Alice",
		},
		{
			name:         "template_data name when decoded absent",
			payload:      token.Payload{},
			templateData: map[string]interface{}{"name": "Bob"},
			wantName:     "Bob",
		},
		{
			name:         "Guest fallback when both absent",
			payload:      token.Payload{},
			templateData: map[string]interface{}{},
			wantName:     "Guest",
		},
		{
			name:         "firstName before template_data",
			payload:      token.Payload{FirstName: "Carol"},
			templateData: map[string]interface{}{"name": "Bob"},
			wantName:     "Carol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &model.Invitation{ID: uuid.New(), TemplateData: tt.templateData}
			data := MergeTemplateData(inv, tt.payload, testTemplateCfg)
			assert.Equal(t, tt.wantName, data.Name)
		})
	}
}

func TestMergeTemplateDataDefaults(t *testing.T) {
	inv := &model.Invitation{
		ID:        uuid.New(),
		JWTToken:  "aaa.bbb.ccc",
		CreatedAt: "2024-03-01T10:00:00Z",
		ExpiresAt: "2024-03-15T00:00:00Z",
	}

	data := MergeTemplateData(inv, token.Payload{Email: "alice@example.com"}, testTemplateCfg)

	assert.Equal(t, "alice@example.com", data.Email)
	assert.Equal(t, "Guest", data.Name)
	assert.Equal(t, "", data.Company)
	assert.Equal(t, "14 days", data.DemoDuration)
	assert.Equal(t, "https://flows.thepia.net/demo?token=aaa.bbb.ccc", data.AccessURL)
	assert.Equal(t, "March 1, 2024", data.CreatedAtFormatted)
	assert.Equal(t, "March 15, 2024", data.ExpiresAtFormatted)
}

func TestMergeTemplateDataOverrides(t *testing.T) {
	inv := &model.Invitation{
		ID: uuid.New(),
		TemplateData: map[string]interface{}{
			"demo_duration": "30 days",
			"access_url":    "https://demo.example.com/start",
			"admin_notes":   "Call us first",
			"color":         "blue",
		},
	}
	payload := token.Payload{
		Company: "Acme",
		Claims: map[string]interface{}{
			"company": "Acme",
			"color":   "green",
		},
	}

	data := MergeTemplateData(inv, payload, testTemplateCfg)

	assert.Equal(t, "30 days", data.DemoDuration, "demo_duration comes from template_data")
	assert.Equal(t, "https://demo.example.com/start", data.AccessURL)
	assert.Equal(t, "Acme", data.Company)
	assert.Equal(t, "Call us first", data.AdminNotes)

	// pass-through union: decoded claims win on collision
	v, ok := data.Field("color")
	assert.True(t, ok)
	assert.Equal(t, "green", v)
}

func TestMergeTemplateDataDoesNotMutateInputs(t *testing.T) {
	templateData := map[string]interface{}{"name": "Bob"}
	inv := &model.Invitation{ID: uuid.New(), TemplateData: templateData}
	payload := token.Payload{Name: "Alice", Claims: map[string]interface{}{"name": "Alice"}}

	MergeTemplateData(inv, payload, testTemplateCfg)

	assert.Equal(t, map[string]interface{}{"name": "Bob"}, inv.TemplateData)
	assert.Equal(t, map[string]interface{}{"name": "Alice"}, payload.Claims)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty input", input: "", want: "Not specified"},
		{name: "RFC3339", input: "2024-03-15T00:00:00Z", want: "March 15, 2024"},
		{name: "date only", input: "2025-01-05", want: "January 5, 2025"},
		{name: "unparseable", input: "next tuesday", want: "Invalid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.input))
		})
	}
}

func TestAccessURL(t *testing.T) {
	got := AccessURL("https://flows.thepia.net", "abc.def.ghi")
	assert.Equal(t, "https://flows.thepia.net/demo?token=abc.def.ghi", got)

	// reserved characters are query-escaped
	got = AccessURL("https://flows.thepia.net/", "a+b/c=")
	assert.Equal(t, "https://flows.thepia.net/demo?token=a%2Bb%2Fc%3D", got)
}
