package enhance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Messages returned for rejected requests.
const (
	MsgTextRequired        = "Text is required and cannot be empty"
	MsgSectionTextRequired = "Section text is required and cannot be empty"
	MsgSectionRequired     = "Section type is required"
	MsgInvalidSection      = "Invalid section type. Must be one of: summary, experience, skills, education, projects"
	MsgInternal            = "Internal server error"
)

// RequestError is a request the service refuses to process.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Service validates enhancement requests and wraps results in the response envelope.
type Service struct {
	enhancer Enhancer
}

// NewService returns a service using enhancer.
func NewService(enhancer Enhancer) *Service {
	return &Service{enhancer: enhancer}
}

// EnhanceText handles general enhancement. SectionType defaults to "general".
func (s *Service) EnhanceText(ctx context.Context, req types.EnhanceRequest) (*types.EnhanceResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &RequestError{Message: MsgTextRequired}
	}
	section := SectionType(req.SectionType)
	if strings.TrimSpace(string(section)) == "" {
		section = General
	}
	return s.run(ctx, req.Text, section)
}

// EnhanceSection handles a named resume section.
func (s *Service) EnhanceSection(ctx context.Context, req types.EnhanceRequest) (*types.EnhanceResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &RequestError{Message: MsgSectionTextRequired}
	}
	if req.SectionType == "" {
		return nil, &RequestError{Message: MsgSectionRequired}
	}
	section := SectionType(req.SectionType)
	if !section.IsResumeSection() {
		return nil, &RequestError{Message: MsgInvalidSection}
	}
	return s.run(ctx, req.Text, section)
}

func (s *Service) run(ctx context.Context, text string, section SectionType) (*types.EnhanceResponse, error) {
	log.Printf("[enhance] %s request, %d chars", section, len(text))
	enhanced, err := s.enhancer.Enhance(ctx, text, section)
	if err != nil {
		return nil, fmt.Errorf("enhancement failed: %w", err)
	}
	return &types.EnhanceResponse{
		Success:      true,
		OriginalText: text,
		EnhancedText: enhanced,
		SectionType:  string(section),
	}, nil
}

// Local adapts a Service to the builder's remote-enhancer contract without a network hop.
type Local struct {
	Service *Service
}

// Enhance never returns an error; failures come back as Success=false responses.
func (l Local) Enhance(ctx context.Context, text, sectionType string) (*types.EnhanceResponse, error) {
	req := types.EnhanceRequest{Text: text, SectionType: sectionType}

	var resp *types.EnhanceResponse
	var err error
	if SectionType(sectionType).IsResumeSection() {
		resp, err = l.Service.EnhanceSection(ctx, req)
	} else {
		resp, err = l.Service.EnhanceText(ctx, req)
	}

	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		return &types.EnhanceResponse{Success: false, Message: reqErr.Message}, nil
	case err != nil:
		return &types.EnhanceResponse{Success: false, Message: MsgInternal, Error: err.Error()}, nil
	}
	return resp, nil
}
