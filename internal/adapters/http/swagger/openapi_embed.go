package swagger

import _ "embed"

// OpenAPI contains the embedded OpenAPI description of the status API.
//
//go:embed openapi.yaml
var OpenAPI []byte
