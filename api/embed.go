// Package api embeds the OpenAPI document for the session API.
package api

import _ "embed"

// OpenAPISpec is served at /api/docs/openapi.yaml and rendered by the Swagger UI at /api/docs.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
