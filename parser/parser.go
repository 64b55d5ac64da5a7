// Package parser obtains Stylus syntax trees for source files.
package parser

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"styl2scss/ast"
)

// Parser turns Stylus source into a syntax tree. name is only used in
// diagnostics.
type Parser interface {
	Parse(ctx context.Context, src []byte, name string) (*ast.Root, error)
}

// Func adapts an ordinary function to Parser.
type Func func(ctx context.Context, src []byte, name string) (*ast.Root, error)

func (f Func) Parse(ctx context.Context, src []byte, name string) (*ast.Root, error) {
	return f(ctx, src, name)
}

// JSON treats the source as an already parsed tree.
type JSON struct{}

func (JSON) Parse(_ context.Context, src []byte, name string) (*ast.Root, error) {
	root, err := ast.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("unable to decode tree for %s: %w", name, err)
	}
	return root, nil
}

// Script prints the tree of the Stylus source read from stdin as JSON. It
// needs the stylus package to be resolvable from the working directory.
//
//go:embed parse.js
var Script string

// ErrTimeout is returned when the parser command does not finish in time.
var ErrTimeout = errors.New("parser timed out")

// Command runs an external program for every file. The source is written to
// its stdin and the JSON tree is read from its stdout.
type Command struct {
	Path    string
	Args    []string
	Dir     string
	Env     []string
	Timeout time.Duration

	log *zap.Logger
}

// NewCommand returns a command parser. Without args the embedded script is
// passed to the program, which is expected to be node.
func NewCommand(path string, args []string, timeout time.Duration, log *zap.Logger) *Command {
	if len(args) == 0 {
		args = []string{"-e", Script}
	}
	return &Command{
		Path:    path,
		Args:    args,
		Timeout: timeout,
		log:     log.Named("parser"),
	}
}

func (c *Command) Parse(ctx context.Context, src []byte, name string) (*ast.Root, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	start := time.Now()

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}
	cmd.Stdin = bytes.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s after %s", ErrTimeout, name, c.Timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("unable to parse %s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("unable to parse %s: %w", name, err)
	}

	root, err := ast.Decode(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("unable to decode tree for %s: %w", name, err)
	}
	if c.log != nil {
		c.log.Debug("Parsed", zap.String("file", name), zap.Int("nodes", len(root.Nodes)), zap.Duration("elapsed", time.Since(start)))
	}
	return root, nil
}
