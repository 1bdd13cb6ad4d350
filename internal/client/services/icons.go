package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/otpkeeper/internal/filex"
	"github.com/dmitrijs2005/otpkeeper/internal/icons"
	"github.com/dmitrijs2005/otpkeeper/internal/logging"
	"github.com/dmitrijs2005/otpkeeper/internal/netx"
)

var ErrIconsUnavailable = errors.New("icons are unavailable without a server")

// IconSource hands out download URLs for icon slugs.
type IconSource interface {
	IconURL(ctx context.Context, slug string) (string, error)
}

// download is a seam for netx.Download.
var download = netx.Download

// IconService keeps a directory of icon PNGs named <slug>.png, downloading
// missing ones through presigned URLs.
type IconService struct {
	src    IconSource
	client *http.Client
	dir    string
	logger logging.Logger
}

// NewIconService returns a service caching into dir. A nil src makes every
// uncached fetch fail with ErrIconsUnavailable.
func NewIconService(src IconSource, client *http.Client, dir string, logger logging.Logger) *IconService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &IconService{src: src, client: client, dir: dir, logger: logger.With("module", "icons")}
}

// Fetch returns the local path of the icon for slug. Unknown slugs and
// icons that fail to download fall back to the default icon.
func (s *IconService) Fetch(ctx context.Context, slug string) (string, error) {
	if !icons.Known(slug) {
		slug = icons.DefaultSlug
	}

	path, err := s.fetch(ctx, slug)
	if err == nil || slug == icons.DefaultSlug {
		return path, err
	}

	s.logger.Warn(ctx, "icon download failed, using default", "slug", slug, "error", err)
	return s.fetch(ctx, icons.DefaultSlug)
}

func (s *IconService) fetch(ctx context.Context, slug string) (string, error) {
	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, slug+".png")

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if s.src == nil {
		return "", ErrIconsUnavailable
	}

	url, err := s.src.IconURL(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("icon url: %w", err)
	}

	data, err := download(ctx, s.client, url)
	if err != nil {
		return "", fmt.Errorf("download icon: %w", err)
	}

	if err := filex.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	s.logger.Debug(ctx, "icon cached", "slug", slug, "bytes", len(data))
	return path, nil
}
