package netfile

import (
	"bytes"
	"context"
	"time"

	"github.com/hupe1980/hups"
	"github.com/hupe1980/hups/blobstore"
)

// Load reads the parameter resource at location and builds the net.
//
// The resolution w is checked before the resource is opened; the header is
// validated before the generator columns are read. Argument errors are
// *hups.ArgumentError, malformed content is *hups.ParseError and fetch
// failures are *hups.ResourceError.
func Load(ctx context.Context, location string, opts ...Option) (*Net, error) {
	const op = "netfile.Load"
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkResolution(op, o.rows, o.resolution); err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := readWith(ctx, location, &o)
	if err == nil {
		var net *Net
		net, err = decode(op, location, data, &o)
		if err == nil {
			o.logger.WithSource(location).WithDimension(net.Dimension()).WithNumPoints(net.NumPoints()).
				DebugContext(ctx, "net loaded", "rows", net.NumRows(), "out_digits", net.OutDigits())
			o.metrics.RecordLoad(location, int64(len(data)), time.Since(start), nil)
			return net, nil
		}
	}
	o.logger.LogLoad(ctx, location, int64(len(data)), time.Since(start), err)
	o.metrics.RecordLoad(location, int64(len(data)), time.Since(start), err)
	return nil, err
}

func decode(op, source string, data []byte, o *options) (*Net, error) {
	d := NewDecoder(bytes.NewReader(data), source)
	h, err := d.Header()
	if err != nil {
		return nil, err
	}
	dim, rows, err := resolve(op, h, o.rows, o.dim)
	if err != nil {
		return nil, err
	}
	cols, err := d.Columns(dim * h.NumCols)
	if err != nil {
		return nil, err
	}
	return buildNet(op, source, h, cols, dim, rows, o.resolution)
}

// ReadFile returns the decompressed content of the resource at location.
func ReadFile(ctx context.Context, location string, opts ...Option) ([]byte, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()
	data, err := readWith(ctx, location, &o)
	o.logger.LogLoad(ctx, location, int64(len(data)), time.Since(start), err)
	o.metrics.RecordLoad(location, int64(len(data)), time.Since(start), err)
	return data, err
}

func readWith(ctx context.Context, location string, o *options) ([]byte, error) {
	store, name, err := resolveWith(ctx, location, o)
	if err != nil {
		return nil, err
	}
	raw, err := blobstore.Fetch(ctx, store, name)
	if err != nil {
		return nil, hups.NewResourceError(location, err)
	}
	data, err := blobstore.Decompress(name, raw)
	if err != nil {
		return nil, hups.NewParseError(location, blobstore.CompressionOf(name).String(), 0, err)
	}
	return data, nil
}

// ListDir returns the sorted names of the parameter resources directly
// under the local directory dir.
func ListDir(dir string) ([]string, error) {
	return blobstore.NewLocalStore(dir).List(context.Background(), "")
}
