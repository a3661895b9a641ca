package resource

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ReadOnlyMode is the file mode of generated resource files.
const ReadOnlyMode os.FileMode = 0o444

type Writer struct {
	fs     afero.Fs
	format Format
	logger *slog.Logger
}

func NewWriter(fs afero.Fs, format Format, logger *slog.Logger) *Writer {
	return &Writer{fs: fs, format: format, logger: logger}
}

// Write renders resources and replaces path with the result. The file is written
// next to its destination first, so readers never observe a partial file.
func (w *Writer) Write(path string, resources []Resource) error {
	data, err := Encode(w.format, resources)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := afero.TempFile(w.fs, dir, ".resvalue-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = w.fs.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write resources: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close resources: %w", err)
	}
	if err := w.fs.Chmod(tmpName, ReadOnlyMode); err != nil {
		return fmt.Errorf("chmod resources: %w", err)
	}
	if err := w.fs.Rename(tmpName, path); err != nil {
		return fmt.Errorf("move resources into place: %w", err)
	}

	w.logger.Info("wrote resources",
		slog.String("path", path),
		slog.String("format", string(w.format)),
		slog.Int("count", len(resources)))

	return nil
}
