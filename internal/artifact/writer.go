package artifact

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Status is the outcome of Writer.Save.
type Status int

const (
	// StatusEmpty means there was nothing to write; the file system was
	// not touched.
	StatusEmpty Status = iota
	// StatusDeclined means the target existed and overwriting was refused.
	StatusDeclined
	// StatusWritten means the content is on disk.
	StatusWritten
	// StatusFailed means the write failed; the target may be partially
	// written.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusDeclined:
		return "declined"
	case StatusWritten:
		return "written"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) bool
}

// Writer saves generated code to disk.
type Writer struct {
	confirm Confirmer
	out     io.Writer
	logger  *log.Logger
}

// NewWriter returns a Writer that asks c before overwriting and prints
// progress lines to out.
func NewWriter(c Confirmer, out io.Writer, logger *log.Logger) *Writer {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Writer{confirm: c, out: out, logger: logger}
}

// Save writes content to path. Empty content is skipped with a warning.
// An existing file is only replaced when force is set or the Confirmer
// agrees. Write errors are logged and reported as StatusFailed rather than
// returned.
func (w *Writer) Save(content, path string, force bool) Status {
	if content == "" {
		w.logger.Warn("no code to save")
		return StatusEmpty
	}

	if !force {
		exists, err := fileExists(path)
		if err != nil {
			w.logger.Error("error checking file", "path", path, "err", err)
			return StatusFailed
		}
		if exists && !w.ask(fmt.Sprintf("%s already exists. Overwrite? (y/n): ", path)) {
			fmt.Fprintln(w.out, "Code not saved.")
			return StatusDeclined
		}
	}

	if err := writeFile(path, content); err != nil {
		w.logger.Error("error saving file", "path", path, "err", err)
		return StatusFailed
	}

	fmt.Fprintf(w.out, "Terraform code saved to %s\n", path)
	return StatusWritten
}

func (w *Writer) ask(question string) bool {
	if w.confirm == nil {
		return false
	}
	return w.confirm.Confirm(question)
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
