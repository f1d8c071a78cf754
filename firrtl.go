// Package firrtl is the public entry point for parsing FIRRTL source
// into a typed AST. It wires together the token, parser, ast, and
// config packages behind a small functional-options façade.
package firrtl

import (
	"context"
	"fmt"
	"os"

	"github.com/eigenform/firrtl-go/ast"
	"github.com/eigenform/firrtl-go/config"
	"github.com/eigenform/firrtl-go/parser"
)

// File is an in-memory FIRRTL source file, ready to be parsed.
type File struct {
	filename string
	source   string
	cfg      *config.Config
}

// Option configures a File.
type Option func(*File)

// WithConfig overrides the default parser/printer configuration.
func WithConfig(cfg config.Config) Option {
	return func(f *File) {
		f.cfg = &cfg
	}
}

// WithModuleContextLimit overrides the per-module cap on module-context
// set growth without requiring a full config.Config.
func WithModuleContextLimit(n int) Option {
	return func(f *File) {
		f.cfg.Parser.ModuleContextLimit = n
	}
}

// NewFile builds a File from in-memory source text. filename is used
// only for diagnostic positions; it need not exist on disk.
func NewFile(source, filename string, opts ...Option) *File {
	f := &File{filename: filename, source: source, cfg: config.DefaultConfig()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FromFile reads filename eagerly and builds a File from its contents.
func FromFile(path string, opts ...Option) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-supplied source path
	if err != nil {
		return nil, fmt.Errorf("firrtl: failed to read %s: %w", path, err)
	}
	return NewFile(string(data), path, opts...), nil
}

// FromFileContext is like FromFile but accepts a context, cancellable
// at this I/O boundary; core parsing is synchronous and accepts no
// context of its own.
func FromFileContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	type result struct {
		f   *File
		err error
	}
	ch := make(chan result, 1)
	go func() {
		f, err := FromFile(path, opts...)
		ch <- result{f, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.f, r.err
	}
}

// Parse tokenizes and parses the file's source into a Circuit.
func (f *File) Parse() (*ast.Circuit, *parser.ParseError) {
	return parser.ParseWithConfig(f.filename, f.source, f.cfg)
}
