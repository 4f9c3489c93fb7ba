package keybindings

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"keymirror/internal/domain"
	"keymirror/internal/logging"
	"keymirror/internal/ports"
)

// StdioPath selects stdin for a source and stdout for a sink
const StdioPath = "-"

// FileSource loads records from a file or stdin
type FileSource struct {
	format Format
	path   string
	stdin  io.Reader
}

// NewFileSource creates a FileSource. A path of "-" reads stdin.
func NewFileSource(path string, format Format, stdin io.Reader) *FileSource {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &FileSource{
		format: format,
		path:   path,
		stdin:  stdin,
	}
}

// Describe returns the path, or "stdin"
func (s *FileSource) Describe() string {
	if s.path == StdioPath {
		return "stdin"
	}
	return s.path
}

// Load reads and decodes every record
func (s *FileSource) Load(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	var err error
	if s.path == StdioPath {
		data, err = io.ReadAll(s.stdin)
	} else {
		data, err = os.ReadFile(s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Describe(), err)
	}

	name := s.path
	if s.path == StdioPath {
		name = ""
	}
	records, err := Decode(data, s.format, name)
	if err != nil {
		return nil, err
	}

	logging.Logger.Debug("Loaded keybindings", "input", s.Describe(), "count", len(records))
	return records, nil
}

// FileSink writes records to a file or stdout
type FileSink struct {
	indent int
	path   string
	stdout io.Writer
}

// NewFileSink creates a FileSink. A path of "-" writes to stdout.
func NewFileSink(path string, indent int, stdout io.Writer) *FileSink {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &FileSink{
		indent: indent,
		path:   path,
		stdout: stdout,
	}
}

// Describe returns the path, or "stdout"
func (s *FileSink) Describe() string {
	if s.path == StdioPath {
		return "stdout"
	}
	return s.path
}

// Save encodes every record before writing anything. Files are replaced
// atomically through a temporary file in the same directory.
func (s *FileSink) Save(ctx context.Context, records []domain.Record) error {
	var buf bytes.Buffer
	if err := Encode(&buf, records, s.indent); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.path == StdioPath {
		if _, err := s.stdout.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
		return nil
	}

	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return err
	}
	logging.Logger.Debug("Saved keybindings", "output", s.path, "count", len(records), "bytes", buf.Len())
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

var (
	_ ports.BindingSource = (*FileSource)(nil)
	_ ports.BindingSink   = (*FileSink)(nil)
)
