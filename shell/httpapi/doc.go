// Package httpapi exposes the lending commands and queries over HTTP using fiber.
//
// Every response uses the same JSON envelope: code, status, message and, on success, data.
// Domain error categories map onto status codes, see StatusFor.
package httpapi
