// Copyright (c) 2026 Warehouse 21. All rights reserved.

/*
Package media handles icon image ingestion: decoding uploads, bounding them
to display size, and persisting them as PNG files on local disk.

Two ingestion modes exist, matching two failure philosophies:

  - Store: tolerant. Used at subcategory creation; a broken upload must not
    fail the creating request, so it degrades to the generic icon.
  - Replace: strict. Used during renames where the caller explicitly asked
    for a new icon; undecodable input is reported as an error.
*/
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	// Register decoders for the upload formats accepted from operators.
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/warehouse21/stockroom/internal/platform/constants"
)

// Bounding boxes for stored icons. Creation uploads keep more detail than
// replacement thumbnails.
const (
	storeBound   = 256
	replaceBound = 128
)

// Store ingests icon uploads into a directory of PNG files.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore constructs an icon [Store] rooted at dir, creating it if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating icon directory %q: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

/*
StoreIcon saves uploaded image bytes under a random name.

Description: Decodes any registered format, bounds the image to 256x256
preserving aspect ratio, and writes a PNG named by a fresh UUID. Tolerant by
contract: any decode or write failure is logged and the generic icon
reference is returned instead.

Parameters:
  - context: context.Context (unused; disk-local operation)
  - data: []byte

Returns:
  - string: Stored filename, or the generic icon on failure
*/
func (store *Store) StoreIcon(context context.Context, data []byte) string {
	img, err := decodeBounded(data, storeBound)
	if err != nil {
		store.logger.Warn("icon upload rejected, using generic", "error", err)
		return constants.GenericIcon
	}

	filename := uuid.New().String() + ".png"
	if err := store.writePNG(filename, img); err != nil {
		store.logger.Warn("icon write failed, using generic", "error", err)
		return constants.GenericIcon
	}
	return filename
}

/*
ReplaceIcon saves replacement icon bytes under a slug-derived name.

Description: Bounds the image to 128x128 and writes sub_<slug>.png,
overwriting any previous file for that slug. Strict by contract: failures
are returned to the caller so the surrounding rename can abort.

Parameters:
  - context: context.Context (unused; disk-local operation)
  - data: []byte
  - slug: string

Returns:
  - string: Stored filename
  - error: Decode or write failures
*/
func (store *Store) ReplaceIcon(context context.Context, data []byte, slug string) (string, error) {
	img, err := decodeBounded(data, replaceBound)
	if err != nil {
		return "", fmt.Errorf("decoding replacement icon: %w", err)
	}

	filename := "sub_" + slug + ".png"
	if err := store.writePNG(filename, img); err != nil {
		return "", fmt.Errorf("writing replacement icon: %w", err)
	}
	return filename, nil
}

// writePNG encodes img into the store directory via a rename for atomic
// replacement.
func (store *Store) writePNG(filename string, img image.Image) error {
	tmp, err := os.CreateTemp(store.dir, "icon-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(store.dir, filename))
}

// decodeBounded decodes image bytes and scales them down to fit within a
// bound x bound box, preserving aspect ratio. Images already inside the box
// are kept at their native size; upscaling never happens.
func decodeBounded(data []byte, bound int) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("empty image dimensions %dx%d", size.X, size.Y)
	}
	if size.X <= bound && size.Y <= bound {
		return img, nil
	}

	width, height := size.X, size.Y
	if width >= height {
		height = height * bound / width
		width = bound
	} else {
		width = width * bound / height
		height = bound
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)
	return scaled, nil
}
