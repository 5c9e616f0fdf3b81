package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// Result is the outcome of Runner.Run.
type Result int

const (
	ResultFormatted Result = iota
	// ResultNotFound means the formatter binary is not on PATH.
	ResultNotFound
	// ResultBuiltin means the binary was missing and the file was
	// formatted in-process instead.
	ResultBuiltin
	// ResultFailed means the formatter ran and reported an error, or the
	// built-in fallback could not rewrite the file.
	ResultFailed
)

func (r Result) String() string {
	switch r {
	case ResultFormatted:
		return "formatted"
	case ResultNotFound:
		return "not-found"
	case ResultBuiltin:
		return "builtin"
	case ResultFailed:
		return "failed"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Runner formats a file with an external command such as `terraform fmt`.
type Runner struct {
	command []string
	builtin bool
	out     io.Writer
	logger  *log.Logger
}

// NewRunner returns a Runner for command. The target path is appended to
// command's arguments.
func NewRunner(command []string, out io.Writer, logger *log.Logger) *Runner {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{command: command, out: out, logger: logger}
}

// SetBuiltinFallback makes Run format the file with hclwrite when the
// external command is missing.
func (r *Runner) SetBuiltinFallback(v bool) {
	r.builtin = v
}

// Run formats path. No outcome is fatal: problems are logged and reported
// through the Result.
func (r *Runner) Run(ctx context.Context, path string) Result {
	if len(r.command) == 0 || r.command[0] == "" {
		r.logger.Warn("no formatter configured")
		return r.notFound(path)
	}

	bin, err := exec.LookPath(r.command[0])
	if err != nil {
		r.logger.Warn("formatter not found, please ensure it is installed and in your PATH",
			"command", r.command[0])
		return r.notFound(path)
	}

	args := append(append([]string{}, r.command[1:]...), path)
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.logger.Error("error formatting Terraform code",
				"command", strings.Join(r.command, " "),
				"exit_code", exitErr.ExitCode(),
				"output", diagnostic(stdout.String(), stderr.String()))
		} else {
			r.logger.Error("error running formatter", "command", r.command[0], "err", err)
		}
		return ResultFailed
	}

	r.logger.Debug("formatter finished", "command", bin, "output", strings.TrimSpace(stdout.String()))
	fmt.Fprintf(r.out, "Terraform code formatted in %s\n", path)
	return ResultFormatted
}

func (r *Runner) notFound(path string) Result {
	if !r.builtin {
		return ResultNotFound
	}
	if err := FormatFile(path); err != nil {
		r.logger.Error("built-in formatting failed", "path", path, "err", err)
		return ResultFailed
	}
	fmt.Fprintf(r.out, "Terraform code formatted in %s (built-in formatter)\n", path)
	return ResultBuiltin
}

// FormatFile rewrites path in canonical HCL layout. The file is left alone
// when it is already formatted.
func FormatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	formatted := hclwrite.Format(src)
	if bytes.Equal(src, formatted) {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, formatted, info.Mode().Perm())
}

// diagnostic merges captured output, preferring stderr, and keeps only its
// tail.
func diagnostic(stdout, stderr string) string {
	var b strings.Builder
	if s := strings.TrimSpace(stderr); s != "" {
		b.WriteString(s)
	}
	if s := strings.TrimSpace(stdout); s != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s)
	}
	if b.Len() == 0 {
		return "(no output)"
	}
	return tailLines(b.String(), maxDiagnosticLines, maxDiagnosticBytes)
}
