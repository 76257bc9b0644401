package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"gastobot/pkg/config"
)

// Client calls a remote OCR web API for images and extracts PDF text locally.
// It performs no image processing of its own.
type Client struct {
	endpoint   string
	apiKey     string
	language   string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg *config.OCRConfig, logger *zap.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

type ocrResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool     `json:"IsErroredOnProcessing"`
	ErrorMessage          []string `json:"ErrorMessage"`
}

// Recognize extracts text from a receipt payload. PDFs are read locally;
// images go to the remote OCR API. Empty results map to ErrExtractionFailed.
func (c *Client) Recognize(ctx context.Context, data []byte, mimeType string) (string, error) {
	var (
		text string
		err  error
	)

	if mimeType == "application/pdf" {
		text, err = extractPDFText(data)
	} else {
		text, err = c.recognizeImage(ctx, data, mimeType)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrExtractionFailed
	}

	c.logger.Info("Receipt text recognized",
		zap.String("mime_type", mimeType),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

func (c *Client) recognizeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("language", c.language); err != nil {
		return "", err
	}
	if err := writer.WriteField("scale", "true"); err != nil {
		return "", err
	}

	part, err := writer.CreateFormFile("file", fileNameFor(mimeType))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ocr service returned %d: %s", resp.StatusCode, payload)
	}

	var parsed ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode ocr response: %w", err)
	}

	if parsed.IsErroredOnProcessing || len(parsed.ParsedResults) == 0 {
		c.logger.Warn("OCR processing failed",
			zap.Strings("errors", parsed.ErrorMessage),
		)
		return "", ErrExtractionFailed
	}

	var b strings.Builder
	for _, result := range parsed.ParsedResults {
		b.WriteString(result.ParsedText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func fileNameFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "receipt.png"
	default:
		return "receipt.jpg"
	}
}
