package templates

import "embed"

// FS contains the artifact templates embedded in the binary.
// This allows `go install` to work without external template files.
//
//go:embed dto/*.tmpl validator/*.tmpl
var FS embed.FS
