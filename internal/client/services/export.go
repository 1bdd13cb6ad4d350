package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/dmitrijs2005/otpkeeper/internal/filex"
	"github.com/dmitrijs2005/otpkeeper/internal/totp"
)

const qrSize = 256

// encodeQR is a seam for qrcode.Encode.
var encodeQR = qrcode.Encode

// ExportService renders accounts as otpauth URIs and QR images that an
// authenticator app can scan.
type ExportService struct {
	dir string
}

func NewExportService(dir string) *ExportService {
	return &ExportService{dir: dir}
}

// QR writes the QR code of k's URI to <dir>/<name>.png and returns the
// path. The file holds the seed in the clear and is written 0600.
func (s *ExportService) QR(name string, k totp.Key) (string, error) {
	png, err := encodeQR(k.URI(), qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}

	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, safeName(name)+".png")
	if err := filex.WriteFileAtomic(path, png, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// safeName keeps letters, digits, '-' and '_' so a record id can name a file.
func safeName(s string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
	if out == "" {
		return "account"
	}
	return out
}
