package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func newTestConsole(input string, interactive bool) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(input), &out)
	c.SetInteractive(interactive)
	return c, &out
}

func TestAskRegion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty line", "\n", "us-east-1"},
		{"whitespace only", "   \t \n", "us-east-1"},
		{"eof without input", "", "us-east-1"},
		{"plain value", "eu-west-1\n", "eu-west-1"},
		{"trimmed value", "  ap-southeast-2  \n", "ap-southeast-2"},
		{"crlf line ending", "us-west-2\r\n", "us-west-2"},
		{"no trailing newline", "sa-east-1", "sa-east-1"},
		{"not validated", "mars-north-7\n", "mars-north-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestConsole(tt.input, true)
			if got := c.AskRegion("us-east-1"); got != tt.want {
				t.Errorf("AskRegion() = %q, want %q", got, tt.want)
			}
			if !strings.Contains(out.String(), "Enter the AWS region (default: us-east-1): ") {
				t.Errorf("prompt not shown, got %q", out.String())
			}
		})
	}
}

func TestAskRegion_ReadsPipedInput(t *testing.T) {
	c, _ := newTestConsole("eu-north-1\n", false)
	if got := c.AskRegion("us-east-1"); got != "eu-north-1" {
		t.Errorf("AskRegion() = %q, want piped value", got)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{" y \n", true},
		{"n\n", false},
		{"yes\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			c, out := newTestConsole(tt.input, true)
			if got := c.Confirm("main.tf already exists. Overwrite? (y/n): "); got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Overwrite? (y/n)") {
				t.Error("question not printed")
			}
		})
	}
}

func TestConfirm_NonInteractiveRefuses(t *testing.T) {
	c, out := newTestConsole("y\n", false)
	if c.Confirm("Overwrite? (y/n): ") {
		t.Error("non-interactive console must not confirm")
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed without a user, got %q", out.String())
	}
}

func TestConsole_SequentialQuestions(t *testing.T) {
	c, _ := newTestConsole("eu-west-3\ny\n", true)
	if got := c.AskRegion("us-east-1"); got != "eu-west-3" {
		t.Errorf("AskRegion() = %q", got)
	}
	if !c.Confirm("Overwrite? (y/n): ") {
		t.Error("second line should answer the confirmation")
	}
}

func TestNewConsole_BufferIsNotATerminal(t *testing.T) {
	c := NewConsole(strings.NewReader(""), &bytes.Buffer{})
	if c.Interactive() {
		t.Error("a strings.Reader is not a terminal")
	}
}
