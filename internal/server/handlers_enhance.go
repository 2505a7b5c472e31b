package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/enhance"
	"github.com/jonathan/resume-builder/internal/types"
)

// handleEnhanceText handles POST /api/text-enhancer/enhance.
func (s *Server) handleEnhanceText(w http.ResponseWriter, r *http.Request) {
	s.serveEnhance(w, r, s.enhancer.EnhanceText)
}

// handleEnhanceSection handles POST /api/text-enhancer/enhance-resume-section.
func (s *Server) handleEnhanceSection(w http.ResponseWriter, r *http.Request) {
	s.serveEnhance(w, r, s.enhancer.EnhanceSection)
}

func (s *Server) serveEnhance(w http.ResponseWriter, r *http.Request, run func(context.Context, types.EnhanceRequest) (*types.EnhanceResponse, error)) {
	var req types.EnhanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, types.EnhanceResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	resp, err := run(r.Context(), req)
	if err != nil {
		var reqErr *enhance.RequestError
		if errors.As(err, &reqErr) {
			writeJSON(w, http.StatusBadRequest, types.EnhanceResponse{Success: false, Message: reqErr.Message})
			return
		}
		log.Printf("[enhance] %s failed: %v", r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, types.EnhanceResponse{Success: false, Message: enhance.MsgInternal, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
