package agentcore

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// PageResult is what a navigation returns.
type PageResult struct {
	HTML       string `json:"html"`
	Screenshot string `json:"screenshot,omitempty"`
	Status     int    `json:"status"`
	URL        string `json:"url"`
}

// PageContent is the structured extraction of a page.
type PageContent struct {
	Text           string         `json:"text"`
	Links          []string       `json:"links"`
	Images         []string       `json:"images"`
	StructuredData map[string]any `json:"structured_data"`
}

// FormResult reports a form fill and optional submit.
type FormResult struct {
	Success     bool   `json:"success"`
	ResponseURL string `json:"response_url,omitempty"`
	Screenshot  string `json:"screenshot,omitempty"`
}

// ClickResult reports an element click.
type ClickResult struct {
	Success bool   `json:"success"`
	NewURL  string `json:"new_url,omitempty"`
}

// Browser drives an AgentCore-managed headless browser session.
type Browser struct {
	cfg    *Config
	logger *zap.Logger
}

func NewBrowser(cfg *Config, logger *zap.Logger) (*Browser, error) {
	if !cfg.BrowserEnabled {
		return nil, fmt.Errorf("browser: %w", ErrServiceDisabled)
	}
	if err := cfg.requireCredentials("Browser"); err != nil {
		return nil, err
	}
	logger.Info("initializing agentcore browser adapter",
		zap.String("environment", string(cfg.Environment)),
		zap.Bool("headless", cfg.BrowserHeadless))
	return &Browser{cfg: cfg, logger: logger}, nil
}

// Navigate loads a URL, optionally waiting for a selector before
// returning.
func (b *Browser) Navigate(ctx context.Context, url, waitFor string) (*PageResult, error) {
	if url == "" {
		return nil, errors.New("browser: url is required")
	}
	b.logger.Info("navigating", zap.String("url", url), zap.String("wait_for", waitFor))
	// TODO: drive via the AgentCore Browser API with the configured
	// timeout and headless mode.
	return &PageResult{
		HTML:   "<html><body>browser navigation pending AgentCore integration</body></html>",
		Status: 200,
		URL:    url,
	}, nil
}

// ExtractContent pulls structured content from a page, optionally
// limited to the given CSS selectors.
func (b *Browser) ExtractContent(ctx context.Context, url string, selectors []string) (*PageContent, error) {
	if url == "" {
		return nil, errors.New("browser: url is required")
	}
	b.logger.Info("extracting content", zap.String("url", url), zap.Int("selectors", len(selectors)))
	// TODO: extract via the AgentCore Browser API.
	return &PageContent{
		Text:           "content extraction pending AgentCore integration",
		Links:          []string{},
		Images:         []string{},
		StructuredData: map[string]any{},
	}, nil
}

// FillForm fills fields (selector to value) and optionally submits.
func (b *Browser) FillForm(ctx context.Context, formData map[string]string, submit bool) (*FormResult, error) {
	if len(formData) == 0 {
		return nil, errors.New("browser: form data is required")
	}
	b.logger.Info("filling form", zap.Int("fields", len(formData)), zap.Bool("submit", submit))
	// TODO: fill via the AgentCore Browser API.
	return &FormResult{Success: true}, nil
}

// ClickElement clicks the element matching a CSS selector.
func (b *Browser) ClickElement(ctx context.Context, selector string) (*ClickResult, error) {
	if selector == "" {
		return nil, errors.New("browser: selector is required")
	}
	b.logger.Info("clicking element", zap.String("selector", selector))
	// TODO: click via the AgentCore Browser API.
	return &ClickResult{Success: true}, nil
}

// TakeScreenshot captures the viewport, or the full page when fullPage
// is set, and returns the image base64-encoded.
func (b *Browser) TakeScreenshot(ctx context.Context, fullPage bool) (string, error) {
	b.logger.Info("taking screenshot", zap.Bool("full_page", fullPage))
	// TODO: capture via the AgentCore Browser API and store the image
	// under <prefix>/screenshots/ in the configured S3 bucket.
	return "", nil
}
