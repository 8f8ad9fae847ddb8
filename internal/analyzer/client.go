// Package analyzer is the HTTP client for the remote receipt-analysis
// service. The service accepts a receipt image and returns a structured
// read of its contents; everything it returns is advisory and passes
// through verification rules before it is trusted.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/docguard-ph/docguard/internal/common"
	"github.com/docguard-ph/docguard/internal/model"
	"github.com/docguard-ph/docguard/internal/service"
)

// Config holds the analysis service connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Retry   service.RetryOptions
}

// Client talks to the receipt-analysis service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	retry      service.RetryOptions
}

var _ service.ReceiptAnalyzer = (*Client)(nil)

// NewClient creates a receipt-analysis client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: analyzer base URL is required", common.ErrMissingConfig)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		retry:   cfg.Retry,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// envelope is the service's response wrapper. A transport-level 200 can
// still carry success=false when the image could not be read.
type envelope struct {
	Data    *model.ReceiptAnalysis `json:"data"`
	Message string                 `json:"message"`
	Error   string                 `json:"error"`
	Success bool                   `json:"success"`
}

// tinPattern matches a Philippine TIN in receipt text, with or without
// the trailing branch code.
var tinPattern = regexp.MustCompile(`(?i)TIN[:\s]*(\d{3}-\d{3}-\d{3}-\d{5}|\d{3}-\d{3}-\d{3}-\d{3})`)

// AnalyzeReceipt uploads the image at imagePath and returns the parsed
// analysis. Transient transport failures are retried; HTTP error statuses
// and service-level failures are not.
func (c *Client) AnalyzeReceipt(ctx context.Context, imagePath string) (*model.ReceiptAnalysis, error) {
	if imagePath == "" {
		return nil, fmt.Errorf("%w: image path is required", common.ErrValidation)
	}

	var analysis *model.ReceiptAnalysis
	err := common.WithRetry(ctx, func() error {
		result, err := c.analyzeOnce(ctx, imagePath)
		if err != nil {
			return err
		}
		analysis = result
		return nil
	}, c.retry)
	if err != nil {
		return nil, err
	}

	backfillTIN(analysis)
	return analysis, nil
}

func (c *Client) analyzeOnce(ctx context.Context, imagePath string) (*model.ReceiptAnalysis, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open receipt image: %w", err)
	}
	defer func() { _ = file.Close() }()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("receipt", filepath.Base(imagePath))
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze-receipt", pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network failures are worth another attempt.
		return nil, &common.RetryableError{Err: fmt.Errorf("request failed: %w", err), Retryable: true}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &common.RetryableError{Err: fmt.Errorf("failed to read response: %w", err), Retryable: true}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: analysis service returned status %d: %s",
			common.ErrAnalyzeFailed, resp.StatusCode, string(body))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", common.ErrAnalyzeFailed, err)
	}

	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = "analysis failed"
		}
		return nil, fmt.Errorf("%w: %s", common.ErrAnalyzeFailed, msg)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("%w: no data in response", common.ErrAnalyzeFailed)
	}

	return env.Data, nil
}

// backfillTIN scans the raw receipt text for a TIN when the structured
// field came back empty. OCR frequently captures the TIN line verbatim
// even when field extraction misses it.
func backfillTIN(analysis *model.ReceiptAnalysis) {
	if analysis == nil || analysis.VendorTIN != "" || analysis.RawText == "" {
		return
	}
	if match := tinPattern.FindStringSubmatch(analysis.RawText); match != nil {
		analysis.VendorTIN = match[1]
	}
}
