// Package token decodes the payload segment of dot-delimited signed
// tokens. Signature and expiry verification happen upstream (Supabase
// issues and verifies these tokens); this package only reads claims.
package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// MalformedTokenError indicates a token whose shape or encoding cannot
// be decoded. It never indicates a signature failure.
type MalformedTokenError struct {
	Reason string
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("malformed token: %s", e.Reason)
}

// Payload holds the decoded token claims. Canonical identity and
// workflow fields are extracted by name; every other claim is preserved
// verbatim in Claims.
type Payload struct {
	Email        string
	Name         string
	FirstName    string
	LastName     string
	Company      string
	CompanyName  string
	WorkflowType string
	DemoDuration string
	TeamSize     string
	Timeline     string
	Role         string
	Comment      string
	Priority     string
	RequestID    string

	// Claims is the full payload object, canonical fields included.
	Claims map[string]interface{}
}

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode splits a three-segment token and parses its payload segment.
// The result is deterministic: decoding the same token twice yields
// identical payloads.
func Decode(token string) (Payload, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Payload{}, &MalformedTokenError{Reason: fmt.Sprintf("expected 3 segments, got %d", len(parts))}
	}

	raw, err := decodeSegment(parts[1])
	if err != nil {
		return Payload{}, &MalformedTokenError{Reason: fmt.Sprintf("payload segment: %v", err)}
	}

	var claims map[string]interface{}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return Payload{}, &MalformedTokenError{Reason: fmt.Sprintf("payload JSON: %v", err)}
	}

	return Payload{
		Email:        stringClaim(claims, "email"),
		Name:         firstNonEmpty(stringClaim(claims, "name"), stringClaim(claims, "firstName")),
		FirstName:    stringClaim(claims, "firstName"),
		LastName:     stringClaim(claims, "lastName"),
		Company:      firstNonEmpty(stringClaim(claims, "company"), stringClaim(claims, "companyName")),
		CompanyName:  stringClaim(claims, "companyName"),
		WorkflowType: stringClaim(claims, "workflow_type"),
		DemoDuration: stringClaim(claims, "demo_duration"),
		TeamSize:     stringClaim(claims, "team_size"),
		Timeline:     stringClaim(claims, "timeline"),
		Role:         stringClaim(claims, "role"),
		Comment:      stringClaim(claims, "comment"),
		Priority:     stringClaim(claims, "priority"),
		RequestID:    stringClaim(claims, "request_id"),
		Claims:       claims,
	}, nil
}

// decodeSegment accepts both the raw-url alphabet JWTs use and the
// standard alphabet some older token emitters produce.
func decodeSegment(seg string) ([]byte, error) {
	raw, err := segmentParser.DecodeSegment(seg)
	if err == nil {
		return raw, nil
	}

	raw, stdErr := base64.StdEncoding.DecodeString(seg)
	if stdErr == nil {
		return raw, nil
	}

	return nil, err
}

func stringClaim(claims map[string]interface{}, key string) string {
	v, ok := claims[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
