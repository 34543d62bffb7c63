//go:build windows

package replline

import "os"

func setupResizeSignal() (chan os.Signal, func()) {
	// Windows has no SIGWINCH; return a channel that never fires.
	return make(chan os.Signal, 1), func() {}
}
