// Package api exposes the review service over HTTP. Handlers decode and
// validate requests, call the service and map its errors to status codes
// without leaking internal details.
package api
