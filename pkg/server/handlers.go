package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/dotwalk/pkg/buildinfo"
	errs "github.com/matzehuels/dotwalk/pkg/errors"
	"github.com/matzehuels/dotwalk/pkg/graph"
	dotio "github.com/matzehuels/dotwalk/pkg/io"
	"github.com/matzehuels/dotwalk/pkg/pipeline"
)

// Content types served.
const (
	contentTypeDOT  = "text/vnd.graphviz; charset=utf-8"
	contentTypeSVG  = "image/svg+xml"
	contentTypePNG  = "image/png"
	contentTypeJSON = "application/json"
)

// CacheHeader reports whether /v1/render was served from the cache.
const CacheHeader = "X-Cache"

// boolParams maps query parameters to render flags.
var boolParams = []struct {
	name string
	set  func(*pipeline.Options, bool)
}{
	{"dark", func(o *pipeline.Options, v bool) { o.Dark = v }},
	{"no_node_labels", func(o *pipeline.Options, v bool) { o.NoNodeLabels = v }},
	{"no_edge_labels", func(o *pipeline.Options, v bool) { o.NoEdgeLabels = v }},
	{"no_node_styles", func(o *pipeline.Options, v bool) { o.NoNodeStyles = v }},
	{"no_edge_styles", func(o *pipeline.Options, v bool) { o.NoEdgeStyles = v }},
	{"no_node_colors", func(o *pipeline.Options, v bool) { o.NoNodeColors = v }},
	{"no_edge_colors", func(o *pipeline.Options, v bool) { o.NoEdgeColors = v }},
	{"no_arrows", func(o *pipeline.Options, v bool) { o.NoArrows = v }},
	{"refresh", func(o *pipeline.Options, v bool) { o.Refresh = v }},
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

type errorResponse struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseOptions(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Format = pipeline.FormatDOT

	g, err := s.decodeGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypeDOT)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts, err := s.parseOptions(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Format = q.Get("format")
	if opts.Format == "" {
		opts.Format = pipeline.FormatSVG
	}
	opts.Engine = q.Get("engine")
	if opts.Format == pipeline.FormatDOT {
		writeError(w, r, errs.New(errs.ErrCodeInvalidFormat, "use /v1/dot for DOT output"))
		return
	}

	g, err := s.decodeGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	contentType := contentTypeSVG
	if res.Format == pipeline.FormatPNG {
		contentType = contentTypePNG
	}
	cacheStatus := "MISS"
	if res.CacheHit {
		cacheStatus = "HIT"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set(CacheHeader, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact)
}

// parseOptions reads render options from query parameters.
func (s *Server) parseOptions(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{TTL: s.ttl}
	for _, p := range boolParams {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidOption, "query parameter %s: %q is not a boolean", p.name, raw)
		}
		p.set(&opts, v)
	}
	if q.Has("fontname") {
		name := q.Get("fontname")
		if err := errs.ValidateFontname(name); err != nil {
			return opts, err
		}
		opts.Fontname = name
	}
	return opts, nil
}

// decodeGraph reads the request body in the format named by its Content-Type.
func (s *Server) decodeGraph(w http.ResponseWriter, r *http.Request) (*graph.Graph, error) {
	f, err := bodyFormat(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	g, err := dotio.Read(body, f)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, err
	}
	return g, nil
}

func bodyFormat(contentType string) (dotio.Format, error) {
	if contentType == "" {
		return dotio.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidFormat, err, "content type %q", contentType)
	}
	switch mt {
	case "application/json", "text/json":
		return dotio.FormatJSON, nil
	case "application/toml", "text/toml":
		return dotio.FormatTOML, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return dotio.FormatYAML, nil
	default:
		return "", errs.New(errs.ErrCodeUnsupported, "unsupported content type %q", mt)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status through its code. Errors without a code
// are internal and their text is not sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.GetCode(err)
	msg := errs.UserMessage(err)
	if code == "" {
		code = errs.ErrCodeInternal
		msg = "internal error"
		if r.Context().Err() != nil {
			msg = "request cancelled"
		}
	}
	writeErrorStatus(w, errs.HTTPStatus(code), code, msg)
}

func writeErrorStatus(w http.ResponseWriter, status int, code errs.Code, msg string) {
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
