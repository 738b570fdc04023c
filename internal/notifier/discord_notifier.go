// Package notifier delivers run summaries to a Discord webhook.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/aleister1102/geoprobe/internal/httpclient"
)

// maxDiscordFileSize is Discord's attachment limit without Nitro.
const maxDiscordFileSize = 8 * 1024 * 1024

// Doer executes one HTTP request.
type Doer interface {
	Do(req *httpclient.HTTPRequest) (*httpclient.HTTPResponse, error)
}

// DiscordNotifier sends message payloads, with an optional attachment, to a webhook.
type DiscordNotifier struct {
	logger     zerolog.Logger
	httpClient Doer
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(logger zerolog.Logger, httpClient Doer) *DiscordNotifier {
	return &DiscordNotifier{
		logger:     logger.With().Str("component", "DiscordNotifier").Logger(),
		httpClient: httpClient,
	}
}

// SendNotification posts payload and the optional file at attachmentPath to webhookURL.
// An empty webhookURL is a no-op.
func (dn *DiscordNotifier) SendNotification(ctx context.Context, webhookURL string, payload DiscordMessagePayload, attachmentPath string) error {
	if webhookURL == "" {
		dn.logger.Debug().Msg("Webhook URL is empty, skipping Discord notification")
		return nil
	}

	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return fmt.Errorf("invalid discord webhook URL: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}
	if err := writer.WriteField("payload_json", string(payloadJSON)); err != nil {
		return fmt.Errorf("failed to write payload_json to multipart: %w", err)
	}

	if attachmentPath != "" {
		if err := dn.attachFile(writer, attachmentPath); err != nil {
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	resp, err := dn.httpClient.Do(&httpclient.HTTPRequest{
		URL:     webhookURL,
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": writer.FormDataContentType()},
		Body:    body,
		Context: ctx,
	})
	if err != nil {
		dn.logger.Error().Err(err).Msg("Failed to send Discord notification")
		return fmt.Errorf("failed to send discord notification: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		dn.logger.Error().Int("status_code", resp.StatusCode).Str("response_body", string(resp.Body)).Msg("Discord notification failed")
		return httpclient.NewHTTPErrorWithURL(resp.StatusCode, string(resp.Body), webhookURL)
	}

	dn.logger.Info().Int("status_code", resp.StatusCode).Msg("Discord notification sent")
	return nil
}

func (dn *DiscordNotifier) attachFile(writer *multipart.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat attachment '%s': %w", path, err)
	}
	if info.Size() > maxDiscordFileSize {
		dn.logger.Warn().Str("file_path", path).Int64("size", info.Size()).Msg("Attachment exceeds Discord limit, sending without it")
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open attachment '%s': %w", path, err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("file[0]", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy attachment to form: %w", err)
	}
	return nil
}
