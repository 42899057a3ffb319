// Package logging builds the application logger. The TUI owns the
// terminal, so logs go to a file under the state directory.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// New creates a logger writing to w. The writer defaults to os.Stderr.
func New(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{ReportTimestamp: true})
}

// OpenLogFile opens (creating if needed) the application log file and
// returns it. The caller closes it on shutdown.
func OpenLogFile() (*os.File, error) {
	path, err := xdg.StateFile(filepath.Join("crest", "crest.log"))
	if err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
