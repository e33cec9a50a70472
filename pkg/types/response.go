package types

import "encoding/json"

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// CommerceEnvelope is the loosely-typed envelope every commerce platform
// endpoint answers with.
type CommerceEnvelope struct {
	Status  int             `json:"status,omitempty"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}
