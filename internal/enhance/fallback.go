package enhance

import (
	"context"
	"log"
	"strings"
	"time"
)

// FallbackEnhancer tries Primary and answers with Secondary when Primary fails
// or returns nothing. A nil Primary goes straight to Secondary.
type FallbackEnhancer struct {
	Primary   Enhancer
	Secondary Enhancer
	Timeout   time.Duration // bounds Primary only
}

// NewFallbackEnhancer falls back to the rule enhancer.
func NewFallbackEnhancer(primary Enhancer, timeout time.Duration) *FallbackEnhancer {
	return &FallbackEnhancer{Primary: primary, Secondary: NewRuleEnhancer(), Timeout: timeout}
}

// Enhance implements Enhancer.
func (f *FallbackEnhancer) Enhance(ctx context.Context, text string, section SectionType) (string, error) {
	if f.Primary != nil {
		pctx := ctx
		if f.Timeout > 0 {
			var cancel context.CancelFunc
			pctx, cancel = context.WithTimeout(ctx, f.Timeout)
			defer cancel()
		}
		out, err := f.Primary.Enhance(pctx, text, section)
		if err == nil && strings.TrimSpace(out) != "" {
			return out, nil
		}
		if err != nil {
			log.Printf("[enhance] primary enhancer failed, using rules: %v", err)
		} else {
			log.Printf("[enhance] primary enhancer returned empty text, using rules")
		}
	}
	return f.Secondary.Enhance(ctx, text, section)
}
