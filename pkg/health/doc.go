// Package health provides liveness and readiness probe handlers.
//
// Readiness checks run in parallel under a shared timeout and aggregate into
// a single up/down report. Responses are plain text by default and JSON when
// the client asks for it via Accept header or ?format=json.
package health
