package assethost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schedly/schedly/internal/config"
	"github.com/schedly/schedly/internal/utils"
	"github.com/schedly/schedly/pkg/event"
	log "github.com/sirupsen/logrus"
)

// Client talks to the external binary-asset host. Uploads are authorized by
// preset and API key; destroys additionally carry a signed timestamp.
type Client interface {
	Upload(ctx context.Context, filename string, content io.Reader) (event.Attachment, error)
	Destroy(ctx context.Context, publicID string) error
}

type ClientImpl struct {
	cfg        config.AssetHost
	httpClient *http.Client
	clock      utils.Clock
}

func NewClient(cfg config.AssetHost, clock utils.Clock) *ClientImpl {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &ClientImpl{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		clock:      clock,
	}
}

// Upload sends the file to the host and returns the descriptor it assigns.
// The public id is a random prefix plus the filename without its extension, so
// repeated uploads of the same file never collide.
func (c *ClientImpl) Upload(ctx context.Context, filename string, content io.Reader) (event.Attachment, error) {
	baseName := strings.TrimSuffix(filename, filepath.Ext(filename))
	publicID := fmt.Sprintf("%s/%s", uuid.NewString(), baseName)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return event.Attachment{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return event.Attachment{}, fmt.Errorf("failed to read file content: %w", err)
	}

	fields := map[string]string{
		"upload_preset": c.cfg.UploadPreset,
		"api_key":       c.cfg.APIKey,
		"public_id":     publicID,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return event.Attachment{}, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return event.Attachment{}, fmt.Errorf("failed to finalize form: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.cfg.BaseURL, c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		log.Errorf("Failed to create upload request: %v", err)
		return event.Attachment{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute upload request: %v", err)
		return event.Attachment{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("asset host returned non-OK status on upload: %d", resp.StatusCode)
		log.Error(err)
		return event.Attachment{}, err
	}

	var attachment event.Attachment
	if err := json.NewDecoder(resp.Body).Decode(&attachment); err != nil {
		log.Errorf("Failed to decode upload response: %v", err)
		return event.Attachment{}, err
	}

	return attachment, nil
}

// Destroy removes the asset from the host. The call is signed with the
// pre-shared secret over the public id and the current timestamp.
func (c *ClientImpl) Destroy(ctx context.Context, publicID string) error {
	timestamp := c.clock.Now().UnixMilli()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"timestamp": fmt.Sprintf("%d", timestamp),
		"api_key":   c.cfg.APIKey,
		"public_id": publicID,
		"signature": Signature(publicID, timestamp, c.cfg.APISecret),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/destroy", c.cfg.BaseURL, c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		log.Errorf("Failed to create destroy request: %v", err)
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute destroy request: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("asset host returned non-OK status on destroy: %d", resp.StatusCode)
		log.Error(err)
		return err
	}

	var response struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode destroy response: %v", err)
		return err
	}
	if response.Result != "ok" {
		err := fmt.Errorf("asset host rejected destroy of %s: %s", publicID, response.Result)
		log.Error(err)
		return err
	}

	return nil
}
