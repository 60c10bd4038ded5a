package invite

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		rawQuery      string
		authenticated bool
		wantAction    Action
		wantCleanURL  bool
	}{
		{
			name:          "token and authenticated",
			rawQuery:      "token=abc&email=alice%40example.com",
			authenticated: true,
			wantAction:    ActionShowDemo,
			wantCleanURL:  true,
		},
		{
			name:          "token but not authenticated",
			rawQuery:      "token=abc",
			authenticated: false,
			wantAction:    ActionShowSignIn,
			wantCleanURL:  false,
		},
		{
			name:          "no token and not authenticated",
			rawQuery:      "",
			authenticated: false,
			wantAction:    ActionShowSignIn,
			wantCleanURL:  false,
		},
		{
			name:          "no token and authenticated",
			rawQuery:      "page=2",
			authenticated: true,
			wantAction:    ActionNormalFlow,
			wantCleanURL:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.rawQuery)
			require.NoError(t, err)

			res := Resolve(query, tt.authenticated)
			assert.Equal(t, tt.wantAction, res.Action)
			assert.Equal(t, tt.wantCleanURL, res.CleanURL)
		})
	}
}

func TestResolveCarriesTokenAndEmail(t *testing.T) {
	query := url.Values{"token": {"abc"}, "email": {"alice@example.com"}}

	res := Resolve(query, true)
	assert.Equal(t, "abc", res.Token)
	assert.Equal(t, "alice@example.com", res.Email)

	res = Resolve(query, false)
	assert.Equal(t, "abc", res.Token, "token kept for the registration step")
}

func TestCleanURL(t *testing.T) {
	u, err := url.Parse("https://flows.thepia.net/?token=abc&email=a%40b.com&code=x&state=y&error=z&error_description=w&page=2")
	require.NoError(t, err)

	got := CleanURL(u)
	assert.Equal(t, "https://flows.thepia.net/?page=2", got)

	// input is untouched
	assert.Equal(t, "abc", u.Query().Get("token"))
}

func TestCleanURLNoQueryLeft(t *testing.T) {
	u, err := url.Parse("https://flows.thepia.net/demo?token=abc")
	require.NoError(t, err)

	assert.Equal(t, "https://flows.thepia.net/demo", CleanURL(u))
}
