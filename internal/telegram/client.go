package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"gastobot/pkg/config"
)

// Client is a thin wrapper over the Telegram Bot HTTP API: sending replies
// and fetching photo payloads. Retry and backoff are Telegram's concern, not
// ours; every call is attempted once.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg *config.TelegramConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type fileResult struct {
	FilePath string `json:"file_path"`
}

// SendMessage delivers one text reply to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendMessage request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode sendMessage response: %w", err)
	}
	if !parsed.OK {
		return fmt.Errorf("sendMessage rejected: %s", parsed.Description)
	}

	return nil
}

type setWebhookRequest struct {
	URL         string `json:"url"`
	SecretToken string `json:"secret_token,omitempty"`
}

// SetWebhook registers the webhook URL with Telegram so updates are delivered
// to this process.
func (c *Client) SetWebhook(ctx context.Context, webhookURL, secret string) error {
	payload, err := json.Marshal(setWebhookRequest{URL: webhookURL, SecretToken: secret})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/setWebhook", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("setWebhook request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode setWebhook response: %w", err)
	}
	if !parsed.OK {
		return fmt.Errorf("setWebhook rejected: %s", parsed.Description)
	}

	c.logger.Info("Webhook registered", zap.String("url", webhookURL))
	return nil
}

// DownloadFile fetches the bytes of a file previously uploaded to Telegram,
// resolving the file path first via getFile.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	filePath, err := c.resolveFilePath(ctx, fileID)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, filePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("file download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download returned %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) resolveFilePath(ctx context.Context, fileID string) (string, error) {
	url := fmt.Sprintf("%s/bot%s/getFile?file_id=%s", c.baseURL, c.token, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("getFile request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode getFile response: %w", err)
	}
	if !parsed.OK {
		return "", fmt.Errorf("getFile rejected: %s", parsed.Description)
	}

	var file fileResult
	if err := json.Unmarshal(parsed.Result, &file); err != nil {
		return "", err
	}
	if file.FilePath == "" {
		return "", fmt.Errorf("getFile returned no file path")
	}

	return file.FilePath, nil
}
