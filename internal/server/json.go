package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("json encode failed", zap.Error(err))
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errResponse{Error: msg})
}

// convertResponse is the body of a successful POST /v1/convert.
type convertResponse struct {
	Shape     string   `json:"shape"`
	HTML      string   `json:"html"`
	Bundle    string   `json:"bundle"`
	NodeCount int      `json:"nodeCount"`
	Errors    []string `json:"errors"`
}
