package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	lexical2html "github.com/alnah/go-lexical2html"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) styles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = io.WriteString(w, s.conv.CSS())
}

func (s *Server) script(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	_, _ = io.WriteString(w, s.conv.Script())
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	shape := lexical2html.Shape(strings.ToLower(r.URL.Query().Get("shape")))
	title := r.URL.Query().Get("title")
	if err := shape.Validate(); err != nil {
		s.metrics.conversions.WithLabelValues(outcomeRejected).Inc()
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		s.metrics.conversions.WithLabelValues(outcomeRejected).Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, "reading request body: "+err.Error())
		return
	}

	key := cacheKey(string(shape), title, body)
	if resp, ok := s.cacheGet(key); ok {
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	res, err := s.conv.Convert(r.Context(), lexical2html.Input{JSON: body, Shape: shape, Title: title})
	if err != nil {
		switch {
		case errors.Is(err, lexical2html.ErrEmptyInput),
			errors.Is(err, lexical2html.ErrInvalidDocument),
			errors.Is(err, lexical2html.ErrInvalidShape):
			s.metrics.conversions.WithLabelValues(outcomeRejected).Inc()
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.metrics.conversions.WithLabelValues(outcomeFailed).Inc()
			s.logger.Error("conversion failed", zap.Error(err))
			s.writeError(w, http.StatusInternalServerError, "conversion failed")
		}
		return
	}

	outcome := outcomeOK
	if res.Stats.HasErrors() {
		outcome = outcomeDiagnostics
	}
	s.metrics.conversions.WithLabelValues(outcome).Inc()
	s.metrics.nodes.Observe(float64(res.Stats.NodeCount))

	resp := convertResponse{
		Shape:     string(effectiveShape(shape)),
		HTML:      res.HTML,
		Bundle:    res.Bundle,
		NodeCount: res.Stats.NodeCount,
		Errors:    res.Stats.Errors,
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if s.cache != nil {
		s.cache.Add(key, resp)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) cacheGet(key uint64) (convertResponse, bool) {
	if s.cache == nil {
		return convertResponse{}, false
	}
	resp, ok := s.cache.Get(key)
	if ok {
		s.metrics.cache.WithLabelValues("hit").Inc()
	} else {
		s.metrics.cache.WithLabelValues("miss").Inc()
	}
	return resp, ok
}

// cacheKey hashes the request parameters and body. Fields are NUL-separated
// so ("ab", "c") and ("a", "bc") differ.
func cacheKey(shape, title string, body []byte) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(shape)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(title)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(body)
	return d.Sum64()
}

func effectiveShape(s lexical2html.Shape) lexical2html.Shape {
	if s == "" {
		return lexical2html.DefaultShape
	}
	return s
}
