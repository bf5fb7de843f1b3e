package assethost

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/schedly/schedly/pkg/event"
)

// ClientStub is an in-memory asset host for tests. Each upload produces a
// deterministic descriptor; destroyed public ids are recorded.
type ClientStub struct {
	mu         sync.Mutex
	nextID     int
	Uploaded   []event.Attachment
	Destroyed  []string
	UploadErr  error
	DestroyErr error
}

func NewClientStub() *ClientStub {
	return &ClientStub{}
}

func (c *ClientStub) Upload(ctx context.Context, filename string, content io.Reader) (event.Attachment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.UploadErr != nil {
		return event.Attachment{}, c.UploadErr
	}
	if _, err := io.Copy(io.Discard, content); err != nil {
		return event.Attachment{}, err
	}

	c.nextID++
	baseName := strings.TrimSuffix(filename, filepath.Ext(filename))
	attachment := event.Attachment{
		AssetID:          fmt.Sprintf("asset-%d", c.nextID),
		PublicID:         fmt.Sprintf("stub-%d/%s", c.nextID, baseName),
		Version:          1,
		Format:           strings.TrimPrefix(filepath.Ext(filename), "."),
		ResourceType:     "image",
		Tags:             []string{},
		URL:              fmt.Sprintf("http://assets.local/%d/%s", c.nextID, filename),
		SecureURL:        fmt.Sprintf("https://assets.local/%d/%s", c.nextID, filename),
		OriginalFilename: baseName,
	}
	c.Uploaded = append(c.Uploaded, attachment)
	return attachment, nil
}

func (c *ClientStub) Destroy(ctx context.Context, publicID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.DestroyErr != nil {
		return c.DestroyErr
	}
	c.Destroyed = append(c.Destroyed, publicID)
	return nil
}
