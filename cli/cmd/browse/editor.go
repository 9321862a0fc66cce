package browse

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/openr/log"
	"github.com/ardnew/openr/prop"
)

const defaultEditor = "vi"

// editDestCommand implements [tea.ExecCommand]. It writes the unresolved
// destination to a temporary YAML file, opens the user's editor on it and
// decodes the result. On a decode error the user may edit again; declining
// returns [ErrEditDeclined].
type editDestCommand struct {
	dest    any
	ctxFunc func() context.Context
	newDest any
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *editDestCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editDestCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editDestCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-decode-retry loop.
func (c *editDestCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := prop.Write(ctx, &buf, c.dest, prop.FormatYAML, 2); err != nil {
		return err
	}

	f, err := os.CreateTemp("", "openr-browse-*.yaml")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	f.Close()

	content := buf.Bytes()

	for {
		if err := os.WriteFile(path, content, 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		tree, decodeErr := prop.ReadTree(ctx, bytes.NewReader(data))
		c.logger.TraceContext(ctx, "editor decode attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", decodeErr == nil),
		)

		if decodeErr == nil {
			c.newDest = tree

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", decodeErr)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		if !confirm(c.stdin) {
			return ErrEditDeclined
		}

		content = data
	}
}

// confirm reads one line from r and reports whether it is not a "no".
func confirm(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "n", "no":
		return false
	default:
		return true
	}
}

func runEditor(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
