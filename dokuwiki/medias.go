package dokuwiki

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wikitools/go-dokuwiki/metrics"
	"github.com/wikitools/go-dokuwiki/xmlrpc"
)

// Medias groups the media (attachment) management methods of a wiki.
type Medias struct {
	client *Client
}

// List returns all media of the given namespace.
func (m *Medias) List(ctx context.Context, namespace string, opts *MediaListOptions) ([]any, error) {
	v, err := m.client.Invoke(ctx, "wiki.getAttachments", []any{namespace, opts.values()}, nil)
	if err != nil {
		return nil, err
	}
	return toList(v)
}

// Changes returns the media changed since the given Unix timestamp.
func (m *Medias) Changes(ctx context.Context, timestamp int) ([]any, error) {
	v, err := m.client.Invoke(ctx, "wiki.getRecentMediaChanges", []any{timestamp}, nil)
	if err != nil {
		return nil, err
	}
	return toList(v)
}

// Get returns the binary content of a media file.
func (m *Medias) Get(ctx context.Context, media string) ([]byte, error) {
	v, err := m.client.Invoke(ctx, "wiki.getAttachment", []any{media}, nil)
	if err != nil {
		return nil, err
	}
	data, err := toBytes(v)
	if err != nil {
		return nil, err
	}
	metrics.RecordTransfer("download", len(data))
	return data, nil
}

// Save downloads a media file into dir. The file name defaults to the
// last component of the media id; an existing file is only replaced when
// opts.Overwrite is set.
func (m *Medias) Save(ctx context.Context, media, dir string, opts *SaveOptions) (string, error) {
	data, err := m.Get(ctx, media)
	if err != nil {
		return "", err
	}

	filename := ""
	overwrite := false
	if opts != nil {
		filename = opts.Filename
		overwrite = opts.Overwrite
	}
	if filename == "" {
		parts := strings.Split(strings.ReplaceAll(media, "/", ":"), ":")
		filename = parts[len(parts)-1]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("file already exists: %s: %w", path, os.ErrExist)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// Info returns information about a media file.
func (m *Medias) Info(ctx context.Context, media string) (map[string]any, error) {
	v, err := m.client.Invoke(ctx, "wiki.getAttachmentInfo", []any{media}, nil)
	if err != nil {
		return nil, err
	}
	return toMap(v)
}

// Add uploads the local file at path as media. overwrite replaces an
// existing remote file.
func (m *Medias) Add(ctx context.Context, media, path string, overwrite bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return m.Set(ctx, media, data, overwrite)
}

// Set uploads data as media. overwrite replaces an existing remote file.
func (m *Medias) Set(ctx context.Context, media string, data []byte, overwrite bool) error {
	_, err := m.client.Invoke(ctx, "wiki.putAttachment",
		[]any{media, xmlrpc.Binary(data)},
		map[string]any{"ow": overwrite})
	if err != nil {
		return err
	}
	metrics.RecordTransfer("upload", len(data))
	return nil
}

// Delete deletes a media file.
func (m *Medias) Delete(ctx context.Context, media string) error {
	_, err := m.client.Invoke(ctx, "wiki.deleteAttachment", []any{media}, nil)
	return err
}
