package tracing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
	"github.com/rs/xid"
)

type constError string

func (errStr constError) Error() string { return string(errStr) }

// ErrUnknownCompression is wrapped by the error returned for unsupported
// compression names.
const ErrUnknownCompression = constError("unknown trace compression")

// Compression selects how a trace file is compressed.
type Compression string

// Supported compressions.
const (
	CompressionNone   Compression = "none"
	CompressionLZ4    Compression = "lz4"
	CompressionSnappy Compression = "snappy"
)

// ParseCompression converts a name into a Compression. An empty name means no
// compression.
func ParseCompression(name string) (Compression, error) {
	switch c := Compression(strings.ToLower(name)); c {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionLZ4, CompressionSnappy:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

// Extension returns the file extension used for traces with the compression.
func (c Compression) Extension() string {
	switch c {
	case CompressionLZ4:
		return ".json.lz4"
	case CompressionSnappy:
		return ".json.sz"
	default:
		return ".json"
	}
}

// traceFile closes the compressor before the file underneath.
type traceFile struct {
	io.Writer
	closers []io.Closer
}

func (f *traceFile) Close() error {
	for _, c := range f.closers {
		if err := c.Close(); err != nil {
			return err
		}
	}

	return nil
}

// CreateTraceFile creates a file for writing a trace. An empty path picks a
// unique name with the extension of the compression. The name of the created
// file is returned.
func CreateTraceFile(
	path string,
	compression Compression,
) (io.WriteCloser, string, error) {
	if path == "" {
		path = "tiersim_trace_" + xid.New().String() + compression.Extension()
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("cannot create trace file: %w", err)
	}

	switch compression {
	case CompressionNone:
		return &traceFile{Writer: f, closers: []io.Closer{f}}, path, nil
	case CompressionLZ4:
		zw := lz4.NewWriter(f)
		return &traceFile{Writer: zw, closers: []io.Closer{zw, f}}, path, nil
	case CompressionSnappy:
		zw := snappy.NewBufferedWriter(f)
		return &traceFile{Writer: zw, closers: []io.Closer{zw, f}}, path, nil
	default:
		f.Close()
		os.Remove(path)

		return nil, "", fmt.Errorf("%w: %q", ErrUnknownCompression, compression)
	}
}

type traceReader struct {
	io.Reader
	f *os.File
}

func (r *traceReader) Close() error {
	return r.f.Close()
}

// OpenTraceFile opens a trace file written by CreateTraceFile.
func OpenTraceFile(
	path string,
	compression Compression,
) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open trace file: %w", err)
	}

	switch compression {
	case CompressionNone:
		return f, nil
	case CompressionLZ4:
		return &traceReader{Reader: lz4.NewReader(f), f: f}, nil
	case CompressionSnappy:
		return &traceReader{Reader: snappy.NewReader(f), f: f}, nil
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, compression)
	}
}

// ReadTasks decodes a trace written by a JSONTracer.
func ReadTasks(r io.Reader) ([]Task, error) {
	var tasks []Task

	err := json.NewDecoder(r).Decode(&tasks)
	if err != nil {
		return nil, fmt.Errorf("cannot decode trace: %w", err)
	}

	return tasks, nil
}
