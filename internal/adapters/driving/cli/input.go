package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// maxStdinBytes caps how much syllabus text is read from stdin.
const maxStdinBytes = 20 << 20

// errNoInput is returned when no file is given and stdin is a terminal.
var errNoInput = errors.New("no input: pass a file path or pipe syllabus text on stdin")

// stdinIsTerminal reports whether r is an interactive terminal.
func stdinIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readStdin reads piped syllabus text from the command's input.
func readStdin(cmd *cobra.Command) (*domain.RawSyllabus, error) {
	in := cmd.InOrStdin()
	if stdinIsTerminal(in) {
		return nil, errNoInput
	}

	data, err := io.ReadAll(io.LimitReader(in, maxStdinBytes))
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return &domain.RawSyllabus{URI: "stdin", Content: data}, nil
}

// fileArg returns the file argument, or "" when input comes from stdin.
func fileArg(args []string) string {
	if len(args) == 0 || args[0] == "-" {
		return ""
	}
	return args[0]
}
