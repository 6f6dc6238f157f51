package blobstore

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a resource payload is stored.
type Compression int

const (
	// None is an uncompressed payload.
	None Compression = iota
	// Zstd is a zstd frame (".zst").
	Zstd
	// LZ4 is an lz4 frame (".lz4").
	LZ4
)

func (c Compression) String() string {
	switch c {
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

// CompressionOf derives the compression of a resource from its name.
func CompressionOf(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return Zstd
	case strings.HasSuffix(name, ".lz4"):
		return LZ4
	default:
		return None
	}
}

// TrimCompression removes a compression suffix from name.
func TrimCompression(name string) string {
	switch CompressionOf(name) {
	case Zstd:
		return strings.TrimSuffix(name, ".zst")
	case LZ4:
		return strings.TrimSuffix(name, ".lz4")
	default:
		return name
	}
}

// Decompress inflates data according to the suffix of name. Uncompressed
// payloads are returned as is.
func Decompress(name string, data []byte) ([]byte, error) {
	switch CompressionOf(name) {
	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd %s: %w", name, err)
		}
		return out, nil
	case LZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 %s: %w", name, err)
		}
		return out, nil
	default:
		return data, nil
	}
}

// Compress is the inverse of Decompress. It is used to produce compressed
// resources, for example precomputed tables.
func Compress(name string, data []byte) ([]byte, error) {
	switch CompressionOf(name) {
	case Zstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return data, nil
	}
}
