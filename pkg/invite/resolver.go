// Package invite classifies invitation links against the viewer's
// sign-in state. Classification is a pure function; rewriting the URL
// is a separate explicit step the caller runs only when told to.
package invite

import (
	"net/url"
)

// Action is what the surrounding UI should do for a given link.
type Action string

const (
	ActionShowDemo   Action = "show-demo"
	ActionShowSignIn Action = "show-signin"
	ActionNormalFlow Action = "normal-flow"
)

// strippedParams are the invitation-specific query parameters removed
// once an authenticated viewer has been routed to the demo.
var strippedParams = []string{"token", "email", "code", "state", "error", "error_description"}

// State is the full analysis of one invitation link.
type State struct {
	HasToken        bool   `json:"hasToken"`
	Email           string `json:"email,omitempty"`
	Token           string `json:"token,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	ShowDemo        bool   `json:"shouldShowDemo"`
	ShowSignIn      bool   `json:"shouldShowSignIn"`
	CleanURL        bool   `json:"shouldCleanUrl"`
}

// Resolution is the condensed outcome handed to the UI.
type Resolution struct {
	Action   Action `json:"action"`
	Email    string `json:"email,omitempty"`
	Token    string `json:"token,omitempty"`
	CleanURL bool   `json:"clean_url"`
}

// Analyze inspects the page's query parameters and the local
// authentication signal.
func Analyze(query url.Values, authenticated bool) State {
	hasToken := query.Has("token")
	email := query.Get("email")
	token := query.Get("token")

	// no token: not an invitation link at all
	if !hasToken {
		return State{
			HasToken:        false,
			IsAuthenticated: authenticated,
			ShowSignIn:      !authenticated,
		}
	}

	if authenticated {
		return State{
			HasToken:        true,
			Email:           email,
			Token:           token,
			IsAuthenticated: true,
			ShowDemo:        true,
			CleanURL:        true,
		}
	}

	// token is kept in the URL for the registration step that follows
	return State{
		HasToken:        true,
		Email:           email,
		Token:           token,
		IsAuthenticated: false,
		ShowSignIn:      true,
	}
}

// Resolve classifies an invitation link into exactly one action.
func Resolve(query url.Values, authenticated bool) Resolution {
	state := Analyze(query, authenticated)

	switch {
	case state.ShowDemo:
		return Resolution{
			Action:   ActionShowDemo,
			Email:    state.Email,
			Token:    state.Token,
			CleanURL: state.CleanURL,
		}
	case state.ShowSignIn:
		return Resolution{
			Action:   ActionShowSignIn,
			Email:    state.Email,
			Token:    state.Token,
		}
	default:
		return Resolution{Action: ActionNormalFlow}
	}
}

// CleanURL removes invitation parameters from a URL without touching
// anything else, returning the rewritten URL. The input is not mutated.
func CleanURL(u *url.URL) string {
	query := u.Query()
	for _, param := range strippedParams {
		query.Del(param)
	}

	cleaned := *u
	cleaned.RawQuery = query.Encode()
	return cleaned.String()
}
