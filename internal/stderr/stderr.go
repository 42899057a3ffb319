//go:build !windows

// Package stderr captures output from C libraries (ALSA in particular)
// that write directly to file descriptor 2, bypassing Go's os.Stderr.
// Left alone, those writes corrupt the TUI layout.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
)

// Start redirects fd 2 into a pipe and passes each captured line to
// sink. Must be called early in main, before audio initialization. On
// failure the program continues with stderr untouched.
func Start(sink func(line string)) error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(origStderr)
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true

	go func() {
		scanner := bufio.NewScanner(pipeRead)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" && sink != nil {
				sink(line)
			}
		}
	}()

	return nil
}

// WriteOriginal writes directly to the original stderr, bypassing the
// capture. For fatal errors that must reach the terminal.
func WriteOriginal(msg string) {
	if origStderr > 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
	}
}

// Stop restores the original stderr. Call on program exit.
func Stop() {
	if !started {
		return
	}
	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	pipeWrite.Close()
	pipeRead.Close()
	started = false
}
