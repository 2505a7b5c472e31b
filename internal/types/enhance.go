package types

// EnhanceRequest asks for a rewrite of a piece of resume text.
// SectionType is optional for general enhancement and defaults to "general".
type EnhanceRequest struct {
	Text        string `json:"text"`
	SectionType string `json:"sectionType,omitempty"`
}

// EnhanceResponse is the enhancement endpoint contract. When Success is false
// EnhancedText is empty and Message says why.
type EnhanceResponse struct {
	Success      bool   `json:"success"`
	OriginalText string `json:"originalText,omitempty"`
	EnhancedText string `json:"enhancedText,omitempty"`
	SectionType  string `json:"sectionType,omitempty"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
}
