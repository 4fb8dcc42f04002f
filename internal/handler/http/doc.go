// Package http implements the mock exam platform REST API.
//
// Every endpoint answers with the platform envelope
// ({success, status, data, message, errorData, pageableResponse}). Request
// tracing, access logging, gzip and bearer authentication are handled here
// before requests reach the service layer.
package http
