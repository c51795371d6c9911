package compiler

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/strogmv/dtogen/compiler/emitter"
	"github.com/strogmv/dtogen/compiler/ir"
	"github.com/strogmv/dtogen/compiler/parser"
	"github.com/strogmv/dtogen/internal/pkg/logger"
)

const Version = "0.3.0"

// ErrUnreadableModel marks a model file that is missing or cannot be read.
var ErrUnreadableModel = errors.New("unable to find or read model")

// Property kinds reported to the Recorder.
const (
	PropertyKindRelationship = "relationship"
	PropertyKindDateTime     = "datetime"
	PropertyKindPrimitive    = "primitive"
)

// Recorder receives pipeline measurements.
type Recorder interface {
	ModelIntrospected(readable bool, d time.Duration)
	PropertyClassified(kind string)
	ArtifactEmitted(kind, action string)
}

type nopRecorder struct{}

func (nopRecorder) ModelIntrospected(bool, time.Duration) {}
func (nopRecorder) PropertyClassified(string) {}
func (nopRecorder) ArtifactEmitted(string, string) {}

type PipelineOptions struct {
	AppRoot   string
	ModelsDir string // relative to AppRoot unless absolute
	// TemplatesDir optionally overrides the embedded templates.
	TemplatesDir string
	Paths        emitter.Paths
	Recorder     Recorder
	// Concurrency bounds batch synthesis; zero means 8.
	Concurrency int
}

// Pipeline runs introspection, synthesis and emission for one project.
type Pipeline struct {
	opts   PipelineOptions
	rec    Recorder
	tracer trace.Tracer
}

func NewPipeline(opts PipelineOptions) *Pipeline {
	rec := opts.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	return &Pipeline{
		opts:   opts,
		rec:    rec,
		tracer: otel.Tracer("github.com/strogmv/dtogen/compiler"),
	}
}

// ModelsDir is the absolute-or-root-relative models directory.
func (p *Pipeline) ModelsDir() string {
	if filepath.IsAbs(p.opts.ModelsDir) {
		return p.opts.ModelsDir
	}
	return filepath.Join(p.opts.AppRoot, p.opts.ModelsDir)
}

func (p *Pipeline) Paths() emitter.Paths {
	return p.opts.Paths
}

// NewEmitter returns an emitter writing under the app root.
func (p *Pipeline) NewEmitter(force, dryRun bool) *emitter.Emitter {
	em := emitter.New(p.opts.AppRoot, p.opts.Paths)
	em.ModelsDir = p.ModelsDir()
	em.TemplatesDir = p.opts.TemplatesDir
	em.Force = force
	em.DryRun = dryRun
	return em
}

// ModelResult is everything derived from one model.
type ModelResult struct {
	// Name is the requested artifact name.
	Name             string           `json:"name"`
	Model            ir.ModelInfo     `json:"model"`
	Lines            []string         `json:"-"`
	Dto              ir.DtoInfo       `json:"dto"`
	DtoImports       []string         `json:"dtoImports"`
	Validator        ir.ValidatorInfo `json:"validator"`
	ValidatorImports []string         `json:"validatorImports"`
}

// ListModels discovers the model names in the models directory.
func (p *Pipeline) ListModels() ([]string, error) {
	return DiscoverModels(p.ModelsDir())
}

// Introspect reads and classifies one model. It never fails; an unreadable
// model is reported through IsReadable.
func (p *Pipeline) Introspect(ctx context.Context, name string) parser.Introspection {
	ctx, span := p.tracer.Start(ctx, "introspect", trace.WithAttributes(attribute.String("dtogen.model", name)))
	defer span.End()

	start := time.Now()
	res := parser.Introspect(p.ModelsDir(), name)
	p.observe(ctx, span, res, time.Since(start))
	return res
}

// IntrospectFile reads a discovered model file (see DiscoverModels).
func (p *Pipeline) IntrospectFile(ctx context.Context, rel string) parser.Introspection {
	ctx, span := p.tracer.Start(ctx, "introspect", trace.WithAttributes(attribute.String("dtogen.model", rel)))
	defer span.End()

	start := time.Now()
	res := parser.IntrospectFile(p.ModelsDir(), rel)
	p.observe(ctx, span, res, time.Since(start))
	return res
}

// ResolveModel looks name up as a discovered file first ("users" -> users.ts),
// then as a model name ("users" -> user.ts).
func (p *Pipeline) ResolveModel(ctx context.Context, name string) parser.Introspection {
	if in := p.IntrospectFile(ctx, name); in.Model.IsReadable {
		return in
	}
	return p.Introspect(ctx, name)
}

// IntrospectSource classifies model source that does not live on disk.
func (p *Pipeline) IntrospectSource(ctx context.Context, name, source string) parser.Introspection {
	ctx, span := p.tracer.Start(ctx, "introspect", trace.WithAttributes(
		attribute.String("dtogen.model", name),
		attribute.Bool("dtogen.inline", true),
	))
	defer span.End()

	start := time.Now()
	res := parser.IntrospectSource(parser.NewModelInfo(p.ModelsDir(), name), source)
	p.observe(ctx, span, res, time.Since(start))
	return res
}

func (p *Pipeline) observe(ctx context.Context, span trace.Span, res parser.Introspection, d time.Duration) {
	p.rec.ModelIntrospected(res.Model.IsReadable, d)
	for _, prop := range res.Model.Properties {
		p.rec.PropertyClassified(PropertyKind(prop))
	}
	span.SetAttributes(
		attribute.Bool("dtogen.readable", res.Model.IsReadable),
		attribute.Int("dtogen.properties", len(res.Model.Properties)),
	)
	logger.From(ctx).Debug("model introspected",
		"model", res.Model.Name,
		"path", res.Model.FilePath,
		"readable", res.Model.IsReadable,
		"properties", len(res.Model.Properties),
	)
}

// PropertyKind buckets a property for metrics.
func PropertyKind(prop ir.ModelProperty) string {
	switch {
	case prop.Relation != nil:
		return PropertyKindRelationship
	case prop.HasType(ir.TypeDateTime):
		return PropertyKindDateTime
	default:
		return PropertyKindPrimitive
	}
}

// Synthesize builds both artifacts for name from the given introspection.
func (p *Pipeline) Synthesize(ctx context.Context, name string, in parser.Introspection) ModelResult {
	_, span := p.tracer.Start(ctx, "synthesize", trace.WithAttributes(attribute.String("dtogen.artifact", name)))
	defer span.End()

	dto := emitter.BuildDtoInfo(name, in.Model, p.opts.Paths)
	validator := emitter.BuildValidatorInfo(name, in.Model, p.opts.Paths)

	res := ModelResult{
		Name:             name,
		Model:            in.Model,
		Lines:            in.Lines,
		Dto:              dto,
		DtoImports:       []string{},
		Validator:        validator,
		ValidatorImports: []string{},
	}
	if in.Model.IsReadable {
		res.DtoImports = emitter.ResolveImportsIn(dto, in.Lines, p.opts.Paths.DtosNamespace)
		res.ValidatorImports = emitter.ResolveImportsIn(validator, in.Lines, p.opts.Paths.DtosNamespace)
	}
	return res
}

// Analyze introspects the model behind an artifact name and synthesizes both
// artifacts. modelName overrides the model derived from name.
func (p *Pipeline) Analyze(ctx context.Context, name, modelName string) ModelResult {
	if modelName == "" {
		modelName = emitter.ModelNameFor(name)
	}
	return p.Synthesize(ctx, name, p.Introspect(ctx, modelName))
}

// AnalyzeAll analyzes discovered model files concurrently. Artifacts are
// named after the model class. Results keep the order of files.
func (p *Pipeline) AnalyzeAll(ctx context.Context, files []string) ([]ModelResult, error) {
	results := make([]ModelResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			in := p.IntrospectFile(gctx, rel)
			results[i] = p.Synthesize(gctx, path.Join(path.Dir(rel), in.Model.Name), in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, WrapContractError(StageSynthesis, ErrCodeSynthesisCanceled, "analyze models", err)
	}
	return results, nil
}

// Emit renders and writes the requested artifacts of one result.
func (p *Pipeline) Emit(ctx context.Context, em *emitter.Emitter, res ModelResult, dto, validator bool) ([]emitter.Result, error) {
	ctx, span := p.tracer.Start(ctx, "emit", trace.WithAttributes(attribute.String("dtogen.artifact", res.Name)))
	defer span.End()

	var out []emitter.Result
	if dto {
		r, err := em.EmitDto(res.Dto, res.Model, res.DtoImports)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "emit dto")
			return out, WrapContractError(StageEmit, ErrCodeEmitWrite, "emit "+res.Dto.ExportPath, err)
		}
		out = append(out, p.emitted(ctx, r))
	}
	if validator {
		r, err := em.EmitValidator(res.Validator, res.Model, res.ValidatorImports)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "emit validator")
			return out, WrapContractError(StageEmit, ErrCodeEmitWrite, "emit "+res.Validator.ExportPath, err)
		}
		out = append(out, p.emitted(ctx, r))
	}
	return out, nil
}

func (p *Pipeline) emitted(ctx context.Context, r emitter.Result) emitter.Result {
	p.rec.ArtifactEmitted(r.Kind, string(r.Action))
	logger.From(ctx).Debug("artifact emitted", "kind", r.Kind, "path", r.Path, "action", r.Action)
	return r
}

// MakeRequest describes a single-artifact generation.
type MakeRequest struct {
	Name string
	// Model is the explicitly requested model; empty derives it from Name.
	Model     string
	Dto       bool
	Validator bool
	Force     bool
	DryRun    bool
}

// Make generates the artifacts for one name. When an explicitly requested
// model cannot be read nothing is written and ErrUnreadableModel is returned;
// otherwise an unreadable model produces plain artifacts.
func (p *Pipeline) Make(ctx context.Context, req MakeRequest) (ModelResult, []emitter.Result, error) {
	res := p.Analyze(ctx, req.Name, req.Model)
	if !res.Model.IsReadable && req.Model != "" {
		return res, nil, WrapContractError(StageSource, ErrCodeSourceUnreadable, res.Model.FileName,
			fmt.Errorf("%w %s", ErrUnreadableModel, res.Model.FileName))
	}
	out, err := p.Emit(ctx, p.NewEmitter(req.Force, req.DryRun), res, req.Dto, req.Validator)
	return res, out, err
}

// GenerateRequest describes a batch generation over every discovered model.
type GenerateRequest struct {
	Dto       bool
	Validator bool
	Force     bool
	DryRun    bool
}

// Generate analyzes every discovered model and writes the requested
// artifacts. If any model is unreadable nothing is written.
func (p *Pipeline) Generate(ctx context.Context, req GenerateRequest) ([]emitter.Result, error) {
	names, err := p.ListModels()
	if err != nil {
		return nil, err
	}

	results, err := p.AnalyzeAll(ctx, names)
	if err != nil {
		return nil, err
	}

	var unreadable []string
	for _, res := range results {
		if !res.Model.IsReadable {
			unreadable = append(unreadable, res.Model.FileName)
		}
	}
	if len(unreadable) > 0 {
		return nil, WrapContractError(StageSource, ErrCodeSourceUnreadable, "generate",
			fmt.Errorf("%w: %s", ErrUnreadableModel, strings.Join(unreadable, ", ")))
	}

	em := p.NewEmitter(req.Force, req.DryRun)
	var out []emitter.Result
	for _, res := range results {
		emitted, err := p.Emit(ctx, em, res, req.Dto, req.Validator)
		out = append(out, emitted...)
		if err != nil {
			return out, err
		}
	}
	logger.From(ctx).Info("generation finished", "models", len(results), "files", len(out), "dry_run", req.DryRun)
	return out, nil
}
