// Package input provides source adapters that fetch stylesheets.
package input

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/jmylchreest/csspalette/internal/config"
)

// Asset is a fetched stylesheet.
type Asset struct {
	Path    string // Path as configured, relative to the source root
	Version string // Short commit id or content hash
	Data    []byte
}

// SourceAdapter fetches stylesheets from a source.
type SourceAdapter interface {
	// Name returns the adapter identifier (e.g., "git", "http").
	Name() string

	// Fetch retrieves the current copy of the file at path.
	Fetch(ctx context.Context, path string) (*Asset, error)
}

// NewAdapter creates a SourceAdapter for the configured source.
func NewAdapter(cfg config.SourceConfig) (SourceAdapter, error) {
	switch cfg.Kind {
	case "git", "":
		return NewGitAdapter(cfg.RepoPath(), cfg.Dir), nil
	case "http":
		if cfg.BaseURL == "" {
			return nil, &AdapterError{
				Source:  cfg.Kind,
				Message: "http source needs base_url",
			}
		}
		return NewHTTPAdapter(cfg.BaseURL, nil), nil
	default:
		return nil, &AdapterError{
			Source:  cfg.Kind,
			Message: "unknown source kind",
		}
	}
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	msg := e.Source + ": " + e.Message
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// contentVersion returns a short content hash for sources without history.
func contentVersion(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:7]
}
