// Package api carries the OpenAPI contract for the HTTP tool surface.
package api

import _ "embed"

// OpenAPISpec is the embedded OpenAPI 3 document that the request
// validation middleware enforces at runtime.
//
//go:embed openapi.yml
var OpenAPISpec []byte
