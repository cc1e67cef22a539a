package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

// CompressedExt marks documents stored zstd-compressed
const CompressedExt = ".zst"

// IsCompressed reports whether a path names a compressed document
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), CompressedExt)
}

// SaveFile writes the document of a complex, compressing it when the path
// ends in .zst
func SaveFile(path string, c *factorycomplex.Complex) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	defer f.Close()

	if !IsCompressed(path) {
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
		return nil
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush document: %w", err)
	}
	return nil
}

// LoadFile reads a document written by SaveFile or an older planner
func LoadFile(path string, registry *catalog.Registry, opts ...factorycomplex.Option) (*factorycomplex.Complex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if IsCompressed(path) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create decompressor: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Unmarshal(registry, data, opts...)
}
