package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"
)

var labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// Console asks the user questions on a line-oriented input stream.
type Console struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
	styled      bool
}

// NewConsole returns a Console reading from in and writing prompts to out.
// It is interactive when in is a terminal, and styles prompts when out is.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: isTerminal(in),
		styled:      isTerminal(out),
	}
}

// SetInteractive overrides terminal detection.
func (c *Console) SetInteractive(v bool) {
	c.interactive = v
}

// Interactive reports whether the console has a user on the other end.
func (c *Console) Interactive() bool {
	return c.interactive
}

// AskRegion prompts for an AWS region. Blank input, EOF, or a read error
// yields def; anything else is returned trimmed and otherwise unchecked.
func (c *Console) AskRegion(def string) string {
	c.print(fmt.Sprintf("Enter the AWS region (default: %s): ", def))
	answer, err := c.readLine()
	if err != nil && answer == "" {
		return def
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return def
	}
	return answer
}

// Confirm asks a yes/no question and reports whether the answer was "y".
// Without an interactive user nothing is read and the answer is no.
func (c *Console) Confirm(question string) bool {
	if !c.interactive {
		return false
	}
	c.print(question)
	answer, _ := c.readLine()
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

func (c *Console) print(s string) {
	if c.styled {
		s = labelStyle.Render(s)
	}
	fmt.Fprint(c.out, s)
}

// readLine returns one line without its terminator. A final line with no
// newline is returned together with io.EOF.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
