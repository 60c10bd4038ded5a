package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageValidate(t *testing.T) {
	valid := Message{
		To:      "alice@example.com",
		Subject: "Hello",
		Text:    "body",
	}

	tests := []struct {
		name      string
		mutate    func(m *Message)
		wantField string
	}{
		{name: "valid", mutate: func(m *Message) {}, wantField: ""},
		{name: "html only is valid", mutate: func(m *Message) { m.Text = ""; m.HTML = "<p>hi</p>" }, wantField: ""},
		{name: "missing recipient", mutate: func(m *Message) { m.To = "" }, wantField: "to"},
		{name: "recipient without domain", mutate: func(m *Message) { m.To = "alice" }, wantField: "to"},
		{name: "recipient with spaces", mutate: func(m *Message) { m.To = "alice @example.com" }, wantField: "to"},
		{name: "recipient without tld", mutate: func(m *Message) { m.To = "alice@example" }, wantField: "to"},
		{name: "missing subject", mutate: func(m *Message) { m.Subject = "" }, wantField: "subject"},
		{name: "missing both bodies", mutate: func(m *Message) { m.Text = "" }, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := valid
			tt.mutate(&msg)

			err := msg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var validation *ValidationError
			assert.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.wantField, validation.Field)
		})
	}
}
