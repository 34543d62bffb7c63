// Package replline provides raw-mode line editing for cmd/feathersh.
//
// It is grounded in the teacher's cmd/feather-tester/editor.go: the same
// byte-at-a-time escape sequence reader, the same raw-mode enter/exit
// dance around golang.org/x/term, and the same redraw-the-whole-line
// render strategy. The completion popup is dropped (feathersh has no
// "usage complete" introspection command to drive it); history recall
// is added in its place.
package replline

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Editor is an interactive line editor with history support.
type Editor struct {
	oldState *term.State
	fd       int

	line   []rune
	cursor int

	history    []string
	historyPos int // index into history while browsing; len(history) means "not browsing"
	saved      []rune

	pendingInput []byte

	keyChan       chan keyResult
	readerRunning bool
}

type keyResult struct {
	key string
	err error
}

// New creates a line editor that reads from stdin and writes to stdout.
func New() *Editor {
	return &Editor{fd: int(os.Stdin.Fd())}
}

// History returns the accumulated line history, oldest first.
func (e *Editor) History() []string {
	return e.history
}

// SetHistory seeds the editor's history, e.g. from a previous session.
func (e *Editor) SetHistory(lines []string) {
	e.history = append([]string(nil), lines...)
}

func (e *Editor) enterRawMode() error {
	oldState, err := term.MakeRaw(e.fd)
	if err != nil {
		return err
	}
	e.oldState = oldState
	return nil
}

func (e *Editor) exitRawMode() {
	if e.oldState != nil {
		term.Restore(e.fd, e.oldState)
		e.oldState = nil
	}
}

func (e *Editor) readByte() (byte, error) {
	if len(e.pendingInput) > 0 {
		b := e.pendingInput[0]
		e.pendingInput = e.pendingInput[1:]
		return b, nil
	}
	buf := make([]byte, 32)
	n, err := os.Stdin.Read(buf)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	if n > 1 {
		e.pendingInput = append(e.pendingInput, buf[1:n]...)
	}
	return buf[0], nil
}

func (e *Editor) skipToTerminator() {
	for {
		b, err := e.readByte()
		if err != nil {
			return
		}
		if b >= 0x40 && b <= 0x7E {
			return
		}
	}
}

func (e *Editor) readKey() (string, error) {
	ch, err := e.readByte()
	if err != nil {
		return "", err
	}

	if ch == 0x1b {
		ch2, err := e.readByte()
		if err != nil {
			return "escape", nil
		}
		if ch2 == '[' {
			ch3, err := e.readByte()
			if err != nil {
				return "escape", nil
			}
			switch ch3 {
			case 'A':
				return "up", nil
			case 'B':
				return "down", nil
			case 'C':
				return "right", nil
			case 'D':
				return "left", nil
			case 'H':
				return "home", nil
			case 'F':
				return "end", nil
			case '3':
				e.readByte() // skip trailing ~
				return "delete", nil
			}
			if ch3 >= '0' && ch3 <= '9' {
				e.skipToTerminator()
				return e.readKey()
			}
			if ch3 < 0x40 || ch3 > 0x7E {
				e.skipToTerminator()
			}
			return e.readKey()
		}
		return "escape", nil
	}

	switch ch {
	case 0x01: // Ctrl-A
		return "home", nil
	case 0x03: // Ctrl-C
		return "ctrl-c", nil
	case 0x04: // Ctrl-D
		return "ctrl-d", nil
	case 0x05: // Ctrl-E
		return "end", nil
	case 0x0d, 0x0a:
		return "enter", nil
	case 0x7f, 0x08:
		return "backspace", nil
	case 0x15: // Ctrl-U
		return "ctrl-u", nil
	case 0x17: // Ctrl-W
		return "ctrl-w", nil
	}

	return string(ch), nil
}

// startKeyReader starts the persistent key-reading goroutine if it isn't
// already running, so ReadLine can select between a key arriving and a
// terminal resize without blocking on either exclusively.
func (e *Editor) startKeyReader() {
	if e.readerRunning {
		return
	}
	e.keyChan = make(chan keyResult, 16)
	e.readerRunning = true
	go func() {
		for {
			key, err := e.readKey()
			e.keyChan <- keyResult{key, err}
			if err != nil {
				e.readerRunning = false
				return
			}
		}
	}()
}

func (e *Editor) render(prompt string) {
	fmt.Print("\r\033[K")
	fmt.Print(prompt)
	fmt.Print(string(e.line))
	fmt.Printf("\r\033[%dC", len(prompt)+e.cursor)
}

// ReadLine reads one line of input, applying in-place editing, history
// recall (up/down), and the usual kill/word bindings. prompt is redrawn
// on every keystroke. Returns io.EOF on Ctrl-D with an empty line.
func (e *Editor) ReadLine(prompt string) (string, error) {
	if !term.IsTerminal(e.fd) {
		return e.readLineNoTTY()
	}

	if err := e.enterRawMode(); err != nil {
		return e.readLineNoTTY()
	}
	defer e.exitRawMode()

	sigwinch, stopResize := setupResizeSignal()
	defer stopResize()

	e.startKeyReader()

	e.line = nil
	e.cursor = 0
	e.historyPos = len(e.history)
	e.saved = nil

	e.render(prompt)

	for {
		var key string
		var err error
		select {
		case <-sigwinch:
			e.render(prompt)
			continue
		case kr := <-e.keyChan:
			key, err = kr.key, kr.err
		}
		if err != nil {
			if err == io.EOF {
				return "", io.EOF
			}
			return "", err
		}

		switch key {
		case "enter":
			fmt.Print("\r\n")
			result := string(e.line)
			if result != "" {
				e.history = append(e.history, result)
			}
			return result, nil

		case "ctrl-c":
			fmt.Print("\r\n")
			return "", fmt.Errorf("interrupted")

		case "ctrl-d":
			if len(e.line) == 0 {
				fmt.Print("\r\n")
				return "", io.EOF
			}
			if e.cursor < len(e.line) {
				e.line = append(e.line[:e.cursor], e.line[e.cursor+1:]...)
			}

		case "up":
			e.historyUp()

		case "down":
			e.historyDown()

		case "left":
			if e.cursor > 0 {
				e.cursor--
			}

		case "right":
			if e.cursor < len(e.line) {
				e.cursor++
			}

		case "home":
			e.cursor = 0

		case "end":
			e.cursor = len(e.line)

		case "backspace":
			if e.cursor > 0 {
				e.line = append(e.line[:e.cursor-1], e.line[e.cursor:]...)
				e.cursor--
			}

		case "delete":
			if e.cursor < len(e.line) {
				e.line = append(e.line[:e.cursor], e.line[e.cursor+1:]...)
			}

		case "ctrl-u":
			e.line = e.line[e.cursor:]
			e.cursor = 0

		case "ctrl-w":
			newCursor := e.cursor
			for newCursor > 0 && e.line[newCursor-1] == ' ' {
				newCursor--
			}
			for newCursor > 0 && e.line[newCursor-1] != ' ' {
				newCursor--
			}
			e.line = append(e.line[:newCursor], e.line[e.cursor:]...)
			e.cursor = newCursor

		case "escape":
			// no popup to dismiss; ignore

		default:
			if len(key) == 1 {
				ch := rune(key[0])
				if ch >= 32 && ch < 127 {
					newLine := make([]rune, len(e.line)+1)
					copy(newLine, e.line[:e.cursor])
					newLine[e.cursor] = ch
					copy(newLine[e.cursor+1:], e.line[e.cursor:])
					e.line = newLine
					e.cursor++
				}
			}
		}

		e.render(prompt)
	}
}

func (e *Editor) historyUp() {
	if e.historyPos == 0 {
		return
	}
	if e.historyPos == len(e.history) {
		e.saved = append([]rune(nil), e.line...)
	}
	e.historyPos--
	e.line = []rune(e.history[e.historyPos])
	e.cursor = len(e.line)
}

func (e *Editor) historyDown() {
	if e.historyPos >= len(e.history) {
		return
	}
	e.historyPos++
	if e.historyPos == len(e.history) {
		e.line = e.saved
	} else {
		e.line = []rune(e.history[e.historyPos])
	}
	e.cursor = len(e.line)
}

// readLineNoTTY is the fallback path for piped stdin, where raw mode is
// unavailable: plain line-buffered reads with no editing.
func (e *Editor) readLineNoTTY() (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return sb.String(), err
		}
	}
}
