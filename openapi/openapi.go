// Package openapi embeds the OpenAPI document for the article catalog API.
// The HTTP server serves it at /openapi.yaml and internal/handler/gen is
// generated from it.
package openapi

import _ "embed"

// Document contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var Document []byte
