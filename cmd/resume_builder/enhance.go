package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/enhance"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/spf13/cobra"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [text]",
	Short: "Rewrite resume text in a more professional register",
	Long: `Enhances text locally (Gemini when GEMINI_API_KEY is set, writing rules otherwise)
or through a running server's text-enhancer API when --url or ENHANCER_URL is set.
Text comes from the argument or from --in.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEnhance,
}

var (
	enhanceInput   string
	enhanceSection string
	enhanceURL     string
)

func init() {
	enhanceCmd.Flags().StringVarP(&enhanceInput, "in", "i", "", "Path to a text file, or - for stdin")
	enhanceCmd.Flags().StringVarP(&enhanceSection, "section", "s", "", "Section type: summary, experience, skills, education, projects (default general)")
	enhanceCmd.Flags().StringVar(&enhanceURL, "url", "", "Base URL of a text-enhancer API, e.g. http://localhost:8080")

	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := enhanceText(cmd, args)
	if err != nil {
		return err
	}

	if enhanceURL != "" {
		cfg.EnhancerURL = enhanceURL
	}
	enhancer, closeFn, err := newTextEnhancer(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := enhancer.Enhance(cmd.Context(), text, enhanceSection)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintEnhancement(resp)
	}
	if !resp.Success {
		return errors.New(resp.Message)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.EnhancedText)
	return err
}

func enhanceText(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case len(args) == 1 && enhanceInput != "":
		return "", fmt.Errorf("give the text as an argument or with --in, not both")
	case len(args) == 1:
		return args[0], nil
	case enhanceInput != "":
		data, err := readInput(cmd, enhanceInput)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	default:
		return "", fmt.Errorf("no text given: pass it as an argument or with --in")
	}
}

// newTextEnhancer picks the remote API client or an in-process service.
func newTextEnhancer(ctx context.Context, cfg config.Config) (resume.Enhancer, func(), error) {
	timeout := config.Duration(cfg.EnhanceTimeout, 20*time.Second)
	if cfg.EnhancerURL != "" {
		return enhance.NewClient(cfg.EnhancerURL, timeout), func() {}, nil
	}
	if cfg.APIKey == "" {
		return enhance.Local{Service: enhance.NewService(enhance.NewRuleEnhancer())}, func() {}, nil
	}

	client, err := llm.NewClient(ctx, llm.ConfigFromEnv(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	service := enhance.NewService(enhance.NewFallbackEnhancer(enhance.NewLLMEnhancer(client), timeout))
	return enhance.Local{Service: service}, func() { _ = client.Close() }, nil
}
