package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// projectSchema constrains dtogen.cue. Definitions are closed, so unknown
// keys are reported with their position.
const projectSchema = `
#Project: {
	modelsDir?:       string & !=""
	dtosDir?:         string & !=""
	validatorsDir?:   string & !=""
	modelsNamespace?: string & =~"^[#@~]"
	dtosNamespace?:   string & =~"^[#@~]"
	baseDtoPackage?:  string & !=""
	templatesDir?:    string
	concurrency?:     int & >=1 & <=256
	logLevel?:        "debug" | "info" | "warn" | "error"
	logFormat?:       "text" | "json"
	httpAddr?:        string
	otlpEndpoint?:    string
	metricsFile?:     string
}
`

// loadProjectFile overlays the values set in path onto cfg. A missing file is
// not an error.
func loadProjectFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config error: read %s: %w", path, err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(projectSchema, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return fmt.Errorf("config error: schema: %w", schema.Err())
	}

	file := ctx.CompileBytes(data, cue.Filename(path))
	if file.Err() != nil {
		return fmt.Errorf("config error:\n%s", FormatCUELocationError(file.Err()))
	}

	v := schema.LookupPath(cue.ParsePath("#Project")).Unify(file)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("config error:\n%s", FormatCUELocationError(err))
	}

	var overlay Config
	if err := v.Decode(&overlay); err != nil {
		return fmt.Errorf("config error: decode %s: %w", path, err)
	}
	cfg.merge(overlay)
	return nil
}

// merge copies every non-zero field of o except AppRoot.
func (c *Config) merge(o Config) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&c.ModelsDir, o.ModelsDir)
	set(&c.DtosDir, o.DtosDir)
	set(&c.ValidatorsDir, o.ValidatorsDir)
	set(&c.ModelsNamespace, o.ModelsNamespace)
	set(&c.DtosNamespace, o.DtosNamespace)
	set(&c.BaseDtoPackage, o.BaseDtoPackage)
	set(&c.TemplatesDir, o.TemplatesDir)
	set(&c.LogLevel, o.LogLevel)
	set(&c.LogFormat, o.LogFormat)
	set(&c.HTTPAddr, o.HTTPAddr)
	set(&c.OTLPEndpoint, o.OTLPEndpoint)
	set(&c.MetricsFile, o.MetricsFile)
	if o.Concurrency != 0 {
		c.Concurrency = o.Concurrency
	}
}

// FormatCUELocationError renders CUE errors with every position involved.
func FormatCUELocationError(err error) string {
	if err == nil {
		return ""
	}

	var msg strings.Builder
	for _, e := range cueerrors.Errors(err) {
		fmt.Fprintf(&msg, "  %v\n", e)
		positions := cueerrors.Positions(e)
		if len(positions) > 1 {
			msg.WriteString("  conflicting values at:\n")
			for i, p := range positions {
				fmt.Fprintf(&msg, "    %d. %s\n", i+1, p.String())
			}
		}
	}

	if msg.Len() == 0 {
		return err.Error()
	}
	return msg.String()
}
