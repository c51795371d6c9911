package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/strogmv/dtogen/compiler"
	"github.com/strogmv/dtogen/compiler/emitter"
	"github.com/strogmv/dtogen/internal/pkg/paginator"
)

type artifactKind string

const (
	artifactDto       artifactKind = emitter.KindDto
	artifactValidator artifactKind = emitter.KindValidator
)

// ModelSummary is one entry of the model listing.
type ModelSummary struct {
	Name       string `json:"name"`
	Model      string `json:"model"`
	FileName   string `json:"fileName"`
	IsReadable bool   `json:"isReadable"`
	Properties int    `json:"properties"`
}

// ArtifactResponse carries a synthesized artifact and its rendered source.
type ArtifactResponse struct {
	Kind     string   `json:"kind"`
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Artifact any      `json:"artifact"`
	Imports  []string `json:"imports"`
	Source   string   `json:"source"`
}

// PreviewRequest runs the pipeline over model source that is not on disk.
type PreviewRequest struct {
	Name   string `json:"name" validate:"required,max=200"`
	Source string `json:"source" validate:"required"`
	Kind   string `json:"kind" validate:"required,oneof=dto validator"`
}

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	names, err := s.pipeline.ListModels()
	if err != nil {
		writeProblem(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	q := r.URL.Query()
	page := queryInt(q, "page", 1)
	perPage := queryInt(q, "perPage", paginator.DefaultPerPage)
	var rng *paginator.Range
	if q.Has("rangeStart") || q.Has("rangeEnd") {
		rng = &paginator.Range{Start: queryInt(q, "rangeStart", 0), End: queryInt(q, "rangeEnd", 0)}
	}

	base := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
	listed := paginator.Paginate(names, page, perPage, base.String(), rng)

	out := paginator.Page[ModelSummary]{
		Data: make([]ModelSummary, 0, len(listed.Data)),
		Meta: listed.Meta,
	}
	for _, rel := range listed.Data {
		in := s.pipeline.IntrospectFile(r.Context(), rel)
		out.Data = append(out.Data, ModelSummary{
			Name:       rel,
			Model:      in.Model.Name,
			FileName:   in.Model.FileName,
			IsReadable: in.Model.IsReadable,
			Properties: len(in.Model.Properties),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getModel(w http.ResponseWriter, r *http.Request) {
	name, ok := modelParam(w, r)
	if !ok {
		return
	}
	in := s.pipeline.ResolveModel(r.Context(), name)
	if !in.Model.IsReadable {
		writeProblem(w, r, http.StatusNotFound, fmt.Sprintf("%s %s", compiler.ErrUnreadableModel, in.Model.FileName))
		return
	}
	writeJSON(w, http.StatusOK, in.Model)
}

func (s *Server) getArtifact(kind artifactKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := modelParam(w, r)
		if !ok {
			return
		}
		in := s.pipeline.ResolveModel(r.Context(), name)
		if !in.Model.IsReadable {
			writeProblem(w, r, http.StatusNotFound, fmt.Sprintf("%s %s", compiler.ErrUnreadableModel, in.Model.FileName))
			return
		}
		res := s.pipeline.Synthesize(r.Context(), path.Join(path.Dir(name), in.Model.Name), in)
		s.writeArtifact(w, r, kind, res)
	}
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeProblem(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeProblem(w, r, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeProblem(w, r, http.StatusUnprocessableEntity, validationDetail(err))
		return
	}

	in := s.pipeline.IntrospectSource(r.Context(), emitter.ModelNameFor(req.Name), req.Source)
	res := s.pipeline.Synthesize(r.Context(), req.Name, in)
	s.writeArtifact(w, r, artifactKind(req.Kind), res)
}

func (s *Server) writeArtifact(w http.ResponseWriter, r *http.Request, kind artifactKind, res compiler.ModelResult) {
	em := s.pipeline.NewEmitter(false, true)

	var (
		resp ArtifactResponse
		src  []byte
		err  error
	)
	switch kind {
	case artifactValidator:
		src, err = em.RenderValidator(res.Validator, res.Model, res.ValidatorImports)
		resp = ArtifactResponse{Path: res.Validator.ExportPath, Artifact: res.Validator, Imports: res.ValidatorImports}
	default:
		src, err = em.RenderDto(res.Dto, res.Model, res.DtoImports)
		resp = ArtifactResponse{Path: res.Dto.ExportPath, Artifact: res.Dto, Imports: res.DtoImports}
	}
	if err != nil {
		writeProblem(w, r, http.StatusInternalServerError,
			compiler.WrapContractError(compiler.StageEmit, compiler.ErrCodeEmitRender, res.Name, err).Error())
		return
	}
	resp.Kind = string(kind)
	resp.Name = res.Name
	resp.Source = string(src)
	writeJSON(w, http.StatusOK, resp)
}

// modelParam reads the {name} segment. Nested models are passed escaped
// ("admin%2Fusers").
func modelParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || !validModelName(name) {
		writeProblem(w, r, http.StatusBadRequest, fmt.Sprintf("invalid model name %q", chi.URLParam(r, "name")))
		return "", false
	}
	return name, true
}

func validModelName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return false
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

func queryInt(q url.Values, key string, def int) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return def
	}
	return v
}

func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
