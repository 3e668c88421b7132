package server

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/permgroup/pkg/buildinfo"
	"github.com/matzehuels/permgroup/pkg/errors"
	"github.com/matzehuels/permgroup/pkg/group"
	groupio "github.com/matzehuels/permgroup/pkg/io"
	"github.com/matzehuels/permgroup/pkg/observability"
	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/pipeline"
	"github.com/matzehuels/permgroup/pkg/render"
	"github.com/matzehuels/permgroup/pkg/store"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

// GroupInfo is a stored group in list responses.
type GroupInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Degree    int       `json:"degree"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupResponse is a stored group with its current summary.
type GroupResponse struct {
	GroupInfo
	Summary *pipeline.Summary `json:"summary"`
}

// GeneratorRequest is the body of POST /groups/{id}/generators.
type GeneratorRequest struct {
	Generator string `json:"generator"`
}

// GeneratorResponse reports whether a generator extended the group.
type GeneratorResponse struct {
	Added bool   `json:"added"`
	Order string `json:"order"`
}

// MemberRequest is the body of POST /groups/{id}/member.
type MemberRequest struct {
	Permutation string `json:"permutation"`
}

// MemberResponse is the result of a membership test.
type MemberResponse struct {
	Member bool `json:"member"`
}

// OrbitResponse is the orbit of a point under the whole group.
type OrbitResponse struct {
	Point int   `json:"point"`
	Orbit []int `json:"orbit"`
}

// ChainResponse lists the chain levels from the top.
type ChainResponse struct {
	Base   []int            `json:"base"`
	Levels []pipeline.Level `json:"levels"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func info(rec *store.Record) GroupInfo {
	return GroupInfo{
		ID:        rec.ID,
		Name:      rec.Definition.Name,
		Degree:    rec.Definition.Degree,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := buildinfo.Map()
	body["status"] = "ok"
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var def groupio.Definition
	if err := decodeBody(w, r, &def); err != nil {
		s.writeError(w, r, err)
		return
	}
	if def.Degree > s.cfg.MaxDegree {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidDegree,
			"degree %d exceeds this server's maximum of %d", def.Degree, s.cfg.MaxDegree))
		return
	}
	ctx := r.Context()
	sys, err := s.runner.Build(ctx, &def, s.cfg.Build)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec := store.NewRecord(def)
	if err := s.store.Put(ctx, rec); err != nil {
		sys.Release()
		s.writeError(w, r, err)
		return
	}
	resp := GroupResponse{
		GroupInfo: info(rec),
		Summary:   pipeline.Summarize(&rec.Definition, sys, s.cfg.Build.ElementLimit),
	}
	s.live.Add(rec.ID, &liveGroup{rec: rec, sys: sys})
	w.Header().Set("Location", "/groups/"+rec.ID)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]GroupInfo, 0, len(recs))
	for _, rec := range recs {
		out = append(out, info(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	g, err := s.lookup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer g.mu.Unlock()
	writeJSON(w, http.StatusOK, GroupResponse{
		GroupInfo: info(g.rec),
		Summary:   pipeline.Summarize(&g.rec.Definition, g.sys, s.cfg.Build.ElementLimit),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.live.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddGenerator(w http.ResponseWriter, r *http.Request) {
	var req GeneratorRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	ctx := r.Context()
	g, err := s.lookup(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer g.mu.Unlock()

	p, err := perm.ParseCycles(req.Generator, g.sys.Degree())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if g.sys.IsMember(p) {
		writeJSON(w, http.StatusOK, GeneratorResponse{Added: false, Order: g.sys.Order().String()})
		return
	}

	// The live system only grows once the store holds the new generator.
	rec := *g.rec
	rec.Definition.Generators = append(slices.Clip(g.rec.Definition.Generators), perm.FormatCycles(p))
	if err := s.store.Put(ctx, &rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	g.rec = &rec
	added := g.sys.AddGenerator(p)
	writeJSON(w, http.StatusOK, GeneratorResponse{Added: added, Order: g.sys.Order().String()})
}

func (s *Server) handleMember(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	ctx := r.Context()
	g, err := s.lookup(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer g.mu.Unlock()

	p, err := perm.ParseCycles(req.Permutation, g.sys.Degree())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	start := time.Now()
	member := g.sys.IsMember(p)
	observability.Build().OnMembership(ctx, member, time.Since(start))
	writeJSON(w, http.StatusOK, MemberResponse{Member: member})
}

func (s *Server) handleOrbit(w http.ResponseWriter, r *http.Request) {
	point, err := strconv.Atoi(chi.URLParam(r, "point"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "point must be an integer"))
		return
	}
	g, err := s.lookup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer g.mu.Unlock()

	if err := errors.ValidatePoint(point, g.sys.Degree()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, OrbitResponse{Point: point, Orbit: group.OrbitOf(point, g.sys)})
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	g, err := s.lookup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer g.mu.Unlock()

	resp := ChainResponse{Base: g.sys.Base(), Levels: []pipeline.Level{}}
	for _, l := range g.sys.Levels() {
		resp.Levels = append(resp.Levels, pipeline.DescribeLevel(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	ctx := r.Context()
	g, err := s.lookup(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	def := g.rec.Definition
	g.mu.Unlock()

	data, _, err := s.runner.Render(ctx, &def, format, render.Options{
		Title:    r.URL.Query().Get("title"),
		Elements: r.URL.Query().Get("elements") == "true",
	}, s.cfg.Build)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if format == render.FormatSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body")
	}
	if def, ok := v.(*groupio.Definition); ok {
		return def.Validate()
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	code, msg := errors.GetCode(err), errors.UserMessage(err)
	if code == "" {
		code, msg = errors.ErrCodeInternal, "internal error"
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg})
}

func statusOf(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCycle, errors.ErrCodeInvalidDegree,
		errors.ErrCodeInvalidDefinition, errors.ErrCodeInvalidFormat,
		errors.ErrCodePointOutOfRange, errors.ErrCodePointReused, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeGroupNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeStorage:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
