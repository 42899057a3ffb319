//go:build windows

// Windows audio output does not produce the ALSA-style stderr noise,
// so capture is a no-op there.
package stderr

import "os"

// Start is a no-op on Windows.
func Start(func(line string)) error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func Stop() {}
