package staging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"strings"

	"creative-evaluator-backend/internal/models"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

const dataURIPrefix = "data:"

// EncodeDataURI sniffs data and returns it as a base64 data URI. The sniffed
// type wins over declaredMIME unless sniffing is inconclusive.
func EncodeDataURI(data []byte, declaredMIME string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", models.ErrValidation)
	}

	mt := mimetype.Detect(data).String()
	if !strings.HasPrefix(mt, "image/") {
		if strings.HasPrefix(declaredMIME, "image/") && mt == "application/octet-stream" {
			mt = declaredMIME
		} else {
			return "", fmt.Errorf("%w: unsupported content type %s", models.ErrValidation, mt)
		}
	}

	return dataURIPrefix + mt + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURI splits a base64 data URI into its media type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return "", nil, fmt.Errorf("%w: not a data URI", models.ErrParse)
	}
	meta, payload, ok := strings.Cut(uri[len(dataURIPrefix):], ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: data URI has no payload", models.ErrParse)
	}
	mediaType, enc, _ := strings.Cut(meta, ";")
	if enc != "base64" {
		return "", nil, fmt.Errorf("%w: data URI is not base64 encoded", models.ErrParse)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid base64 payload: %v", models.ErrParse, err)
	}
	return mediaType, data, nil
}

// ValidateImage decodes the image header to reject truncated or mislabelled
// uploads. JPEG, PNG, GIF and WebP are accepted.
func ValidateImage(data []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: unreadable image: %v", models.ErrValidation, err)
	}
	return nil
}

// EncodeFile reads, validates and encodes a single uploaded file.
func EncodeFile(fh *multipart.FileHeader, maxBytes int64) (models.ImageRef, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return models.ImageRef{}, fmt.Errorf("%w: %s exceeds %d bytes", models.ErrValidation, fh.Filename, maxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return models.ImageRef{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.ImageRef{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}

	return Encode(fh.Filename, data, fh.Header.Get("Content-Type"))
}

// Encode validates raw image bytes and wraps them as a named data URI.
func Encode(name string, data []byte, declaredMIME string) (models.ImageRef, error) {
	if err := ValidateImage(data); err != nil {
		return models.ImageRef{}, fmt.Errorf("%s: %w", name, err)
	}
	uri, err := EncodeDataURI(data, declaredMIME)
	if err != nil {
		return models.ImageRef{}, fmt.Errorf("%s: %w", name, err)
	}
	return models.ImageRef{Name: name, Data: uri}, nil
}

// EncodeFiles encodes all files concurrently. The result preserves input
// order and any single failure fails the batch.
func EncodeFiles(ctx context.Context, files []*multipart.FileHeader, maxBytes int64) ([]models.ImageRef, error) {
	refs := make([]models.ImageRef, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, fh := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ref, err := EncodeFile(fh, maxBytes)
			if err != nil {
				return err
			}
			refs[i] = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}
