// Package gen holds the server interface and models generated from
// openapi/openapi.yaml. Regenerate with `go generate ./...`.
package gen

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen --config=config.yaml ../../../openapi/openapi.yaml
