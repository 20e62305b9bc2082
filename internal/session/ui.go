package session

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	symbolStart  = "┌"
	symbolBar    = "│"
	symbolEnd    = "└"
	symbolActive = "◆"
	symbolDone   = "◇"
	symbolStep   = "◒"
	symbolWarn   = "▲"
	symbolCancel = "■"
)

// UI renders session progress as a vertical guide line.
type UI struct {
	w io.Writer
}

// NewUI returns a UI writing to w.
func NewUI(w io.Writer) *UI {
	return &UI{w: w}
}

// Writer returns the underlying writer, for streaming command output.
func (u *UI) Writer() io.Writer { return u.w }

// Intro opens the session.
func (u *UI) Intro(title string) {
	fmt.Fprintf(u.w, "%s  %s\n%s\n", symbolStart, title, symbolBar)
}

// Note prints a titled box of lines.
func (u *UI) Note(body, title string) {
	lines := strings.Split(body, "\n")
	width := utf8.RuneCountInString(title)
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > width {
			width = n
		}
	}

	fmt.Fprintf(u.w, "%s  %s %s╮\n", symbolDone, title, strings.Repeat("─", width-utf8.RuneCountInString(title)))
	for _, l := range lines {
		fmt.Fprintf(u.w, "%s  %s%s │\n", symbolBar, l, strings.Repeat(" ", width-utf8.RuneCountInString(l)))
	}
	fmt.Fprintf(u.w, "├%s╯\n%s\n", strings.Repeat("─", width+3), symbolBar)
}

// Start announces a long-running step.
func (u *UI) Start(msg string) {
	fmt.Fprintf(u.w, "%s  %s\n", symbolStep, msg)
}

// Stop reports a finished step.
func (u *UI) Stop(msg string) {
	fmt.Fprintf(u.w, "%s  %s\n%s\n", symbolDone, msg, symbolBar)
}

// Warn reports a problem that does not stop the session. Details, when
// given, are printed indented below the message.
func (u *UI) Warn(msg string, details ...string) {
	fmt.Fprintf(u.w, "%s  %s\n", symbolWarn, msg)
	for _, d := range details {
		for _, l := range strings.Split(strings.TrimRight(d, "\n"), "\n") {
			fmt.Fprintf(u.w, "%s    %s\n", symbolBar, l)
		}
	}
	fmt.Fprintf(u.w, "%s\n", symbolBar)
}

// Cancel closes the session early.
func (u *UI) Cancel(msg string) {
	fmt.Fprintf(u.w, "%s  %s\n", symbolCancel, msg)
}

// Outro closes the session.
func (u *UI) Outro(msg string) {
	fmt.Fprintf(u.w, "%s  %s\n", symbolEnd, msg)
}
