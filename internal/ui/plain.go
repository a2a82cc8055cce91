package ui

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainSink prints progress as plain lines, for logs and pipes.
type PlainSink struct {
	mu   sync.Mutex
	w    io.Writer
	last int
}

// NewPlainSink writes progress lines to w.
func NewPlainSink(w io.Writer) *PlainSink {
	return &PlainSink{w: w, last: -1}
}

func (s *PlainSink) OnStatus(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, text)
}

// OnPercent prints only whole-percent changes.
func (s *PlainSink) OnPercent(value float64) {
	p := int(math.Round(value))
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == s.last {
		return
	}
	s.last = p
	fmt.Fprintf(s.w, "[%3d%%]\n", p)
}

// Confirm asks a yes/no question and reads one line from in. Anything but
// "y" or "yes" is a no.
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
