// Package api is the single chokepoint for every network call the client
// apps make: it owns bearer token injection, JSON parsing, the uniform
// response envelope, and session-expiry handling.
package api

import "encoding/json"

// Envelope is the uniform shape every platform endpoint returns. When
// Success is false, Response is nil and Message carries the reason; callers
// must check Success before dereferencing Response.
type Envelope[T any] struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Response *T     `json:"response"`
}

// Fail builds a failure envelope with the given message.
func Fail[T any](message string) Envelope[T] {
	return Envelope[T]{Success: false, Message: message}
}

// Page is the paginated collection shape list endpoints return. HasMore is
// false only once page*limit covers Total.
type Page[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	HasMore bool `json:"hasMore"`
}

// decodeEnvelope parses raw bytes into a typed envelope.
func decodeEnvelope[T any](raw []byte) (Envelope[T], error) {
	var env Envelope[T]
	err := json.Unmarshal(raw, &env)
	return env, err
}
