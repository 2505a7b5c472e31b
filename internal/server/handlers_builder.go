package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
)

type sessionResponse struct {
	ID     string         `json:"id"`
	Resume *resume.Resume `json:"resume"`
}

type createSessionRequest struct {
	TemplateID string `json:"templateId"`
}

type fieldUpdateRequest struct {
	Field string `json:"field" validate:"required"`
	Value any    `json:"value"`
}

type templateRequest struct {
	TemplateID string `json:"templateId" validate:"required"`
}

type builderEnhanceRequest struct {
	Section string `json:"section" validate:"required,oneof=personal experience"`
	EntryID string `json:"entryId" validate:"required_if=Section experience"`
}

type builderEnhanceResponse struct {
	Success      bool           `json:"success"`
	EnhancedText string         `json:"enhancedText"`
	Resume       *resume.Resume `json:"resume"`
}

// session resolves the {id} path value.
func (s *Server) session(r *http.Request) (*Session, error) {
	return s.sessions.Get(r.PathValue("id"))
}

// handleCreateSession opens a builder view with the default model.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	templateID := req.TemplateID
	if templateID == "" {
		templateID = s.defaultTemplate
	}
	if !knownTemplate(templateID) {
		writeError(w, &ErrValidation{Field: "templateId", Message: fmt.Sprintf("unknown template %q", templateID)})
		return
	}

	sess := s.sessions.Create(templateID)
	writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID, Resume: sess.Builder.Snapshot()})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Resume: sess.Builder.Snapshot()})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleImportResume replaces the session model with a validated document.
func (s *Server) handleImportResume(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	imported, err := schemas.DecodeResume(data)
	if err != nil {
		writeError(w, err)
		return
	}
	if imported.TemplateID != "" && !knownTemplate(imported.TemplateID) {
		writeError(w, &ErrValidation{Field: "templateId", Message: fmt.Sprintf("unknown template %q", imported.TemplateID)})
		return
	}

	sess.Builder.Replace(imported)
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Resume: sess.Builder.Snapshot()})
}

func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req templateRequest
	if err := s.decodeValid(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !knownTemplate(req.TemplateID) {
		writeError(w, &ErrValidation{Field: "templateId", Message: fmt.Sprintf("unknown template %q", req.TemplateID)})
		return
	}
	sess.Builder.SetTemplate(req.TemplateID)
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Resume: sess.Builder.Snapshot()})
}

func (s *Server) handleUpdatePersonal(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req fieldUpdateRequest
	if err := s.decodeValid(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	value, ok := req.Value.(string)
	if !ok {
		writeError(w, &resume.ValidationError{Field: req.Field, Message: "value must be a string"})
		return
	}
	if err := sess.Builder.UpdatePersonalInfo(req.Field, value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Resume: sess.Builder.Snapshot()})
}

// handleAddEntry appends a blank entry to a list section.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	section, err := resume.ParseSection(r.PathValue("section"))
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := sess.Builder.AddEntry(section)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "resume": sess.Builder.Snapshot()})
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	section, err := resume.ParseSection(r.PathValue("section"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req fieldUpdateRequest
	if err := s.decodeValid(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := sess.Builder.UpdateField(section, r.PathValue("entryId"), req.Field, req.Value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Resume: sess.Builder.Snapshot()})
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	section, err := resume.ParseSection(r.PathValue("section"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := sess.Builder.RemoveEntry(section, r.PathValue("entryId")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Resume: sess.Builder.Snapshot()})
}

// handlePreview renders the live preview page.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := rendering.HTML(rendering.Render(sess.Builder.Snapshot()), rendering.A4Page)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(page)); err != nil {
		log.Printf("[server] preview write failed: %v", err)
	}
}

func (s *Server) handlePreviewJSON(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rendering.Render(sess.Builder.Snapshot()))
}

// handleBuilderEnhance runs the summary or an experience description through the enhancer.
func (s *Server) handleBuilderEnhance(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req builderEnhanceRequest
	if err := s.decodeValid(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	var enhanced string
	switch resume.Section(req.Section) {
	case resume.SectionPersonal:
		enhanced, err = sess.Builder.EnhanceSummary(r.Context(), s.builderEnhancer)
	default:
		enhanced, err = sess.Builder.EnhanceDescription(r.Context(), s.builderEnhancer, req.EntryID)
	}
	if err != nil {
		var enhErr *resume.EnhancementError
		if errors.As(err, &enhErr) {
			log.Printf("[enhance] session %s: %v", sess.ID, err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, builderEnhanceResponse{Success: true, EnhancedText: enhanced, Resume: sess.Builder.Snapshot()})
}

// handleExport produces the PDF download. Only one export per session runs at a time.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if !sess.TryBeginExport() {
		writeError(w, export.ErrExportInProgress)
		return
	}
	defer sess.EndExport()

	// A started export is not cancelled by the client going away.
	ctx := context.WithoutCancel(r.Context())
	result, err := s.exporter.Export(ctx, sess.Builder.Snapshot())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PDF)))
	w.Header().Set("X-Export-Pages", strconv.Itoa(result.Pages))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.PDF); err != nil {
		log.Printf("[export] session %s: write failed: %v", sess.ID, err)
	}
}

// handleTemplates lists the template catalog.
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"templates": rendering.Templates()})
}

// decodeValid decodes the body and runs struct validation.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := decodeJSON(w, r, dst); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := s.validate.Struct(dst); err != nil {
		return &ErrValidation{Field: "body", Message: validationMessage(err)}
	}
	return nil
}

func knownTemplate(id string) bool {
	return strings.TrimSpace(id) != "" && rendering.LookupTemplate(id).ID == id
}
