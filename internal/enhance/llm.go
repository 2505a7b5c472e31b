package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
)

// LLMEnhancer rewrites text with a language model using the section prompts in prompts.EnhanceFile.
type LLMEnhancer struct {
	client llm.Client
}

// NewLLMEnhancer returns an enhancer backed by client.
func NewLLMEnhancer(client llm.Client) *LLMEnhancer {
	return &LLMEnhancer{client: client}
}

type llmAnswer struct {
	EnhancedText string `json:"enhancedText"`
}

// Enhance implements Enhancer.
func (e *LLMEnhancer) Enhance(ctx context.Context, text string, section SectionType) (string, error) {
	section = normalize(section)

	system, prompt, err := prompts.Enhancement(string(section), text)
	if err != nil {
		return "", err
	}

	raw, err := e.client.GenerateJSON(ctx, system, prompt, tierFor(section))
	if err != nil {
		return "", fmt.Errorf("failed to enhance %s text: %w", section, err)
	}

	var answer llmAnswer
	if err := json.Unmarshal([]byte(raw), &answer); err == nil {
		if out := strings.TrimSpace(answer.EnhancedText); out != "" {
			return out, nil
		}
		return "", fmt.Errorf("model returned no enhanced text")
	}

	// Some answers ignore the JSON instruction; accept them as plain text.
	if out := llm.CleanText(raw); out != "" && !strings.HasPrefix(out, "{") {
		return out, nil
	}
	return "", fmt.Errorf("failed to parse model answer")
}

func tierFor(section SectionType) llm.ModelTier {
	switch section {
	case Skills, Education:
		return llm.TierFast
	default:
		return llm.TierQuality
	}
}
