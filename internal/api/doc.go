// Package api contains the HTTP handlers, request/response models, and
// error mapping for the REST surface. Handlers decode and validate input,
// call the service layer, and translate service errors into sanitized
// responses.
package api
