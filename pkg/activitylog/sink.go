package activitylog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ja7ad/sysmon/pkg/types"
)

// DefaultPath is the activity log file used when none is configured.
const DefaultPath = "system_log.txt"

// Sink receives finished log lines, without the trailing newline.
type Sink interface {
	WriteLine(line string) error
}

// FileSink appends to a text file. Every call opens, writes one line and
// closes the file, so nothing is buffered between calls and the file can be
// rotated or inspected while the monitor runs.
type FileSink struct {
	Path string
}

func NewFileSink(path string) *FileSink {
	if path == "" {
		path = DefaultPath
	}
	return &FileSink{Path: path}
}

func (s *FileSink) WriteLine(line string) (err error) {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", types.ErrSinkWriteFailed, err)
		}
	}

	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrSinkWriteFailed, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", types.ErrSinkWriteFailed, cerr)
		}
	}()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("%w: %w", types.ErrSinkWriteFailed, err)
	}
	return nil
}
