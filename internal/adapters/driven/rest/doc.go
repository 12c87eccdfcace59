// Package rest implements the translation server ports over the server's
// REST API using resty.
//
// Every request carries the X-Auth-User and X-Auth-Token headers and passes
// through a Throttle. Non-2xx responses become *APIError values that wrap
// domain.ErrNotFound (404) or domain.ErrUnauthorized (401), so callers can
// classify failures with errors.Is.
//
// Document names may contain "/" and are sent as document IDs with "/"
// replaced by ",".
package rest
