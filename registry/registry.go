// Package registry collects names exported by the shared Stylus libraries so
// that converted files can reference them through @use.
package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"styl2scss/ast"
	"styl2scss/parser"
	"styl2scss/scss"
)

// Entry describes where a shared name lives.
type Entry struct {
	Module  string
	Alias   string
	IsMixin bool
}

// Library is a shared source file and the module path it is used under after
// conversion.
type Library struct {
	Path   string
	Module string
	Alias  string
}

// Registry maps names to their defining library. It is filled once by
// Bootstrap and only read afterwards.
type Registry struct {
	mu        sync.RWMutex
	constants map[string]Entry
	mixins    map[string]Entry
	defined   map[string]bool
	log       *zap.Logger
}

func New(log *zap.Logger) *Registry {
	return &Registry{
		constants: make(map[string]Entry),
		mixins:    make(map[string]Entry),
		defined:   make(map[string]bool),
		log:       log.Named("registry"),
	}
}

// Bootstrap parses the libraries, paths relative to root, and records their
// names. It does nothing when the registry is already populated. Libraries that
// cannot be read or parsed are skipped, the returned error lists them.
func (r *Registry) Bootstrap(ctx context.Context, p parser.Parser, root string, libs []Library, globalMixins []string) (err error) {
	if r.Len() > 0 {
		return nil
	}

	for _, lib := range libs {
		if ctx.Err() != nil {
			return multierr.Append(err, ctx.Err())
		}

		path := lib.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		src, rerr := os.ReadFile(path)
		if rerr != nil {
			r.log.Warn("Skipping library", zap.String("path", path), zap.Error(rerr))
			err = multierr.Append(err, fmt.Errorf("library %s: %w", lib.Path, rerr))
			continue
		}
		tree, perr := p.Parse(ctx, src, path)
		if perr != nil {
			r.log.Warn("Skipping library", zap.String("path", path), zap.Error(perr))
			err = multierr.Append(err, fmt.Errorf("library %s: %w", lib.Path, perr))
			continue
		}
		r.Add(tree, lib, globalMixins)
	}

	r.log.Debug("Registry ready", zap.Int("constants", len(r.constants)), zap.Int("mixins", len(r.mixins)))
	return err
}

// Add records the top level names of a parsed library. Names already known
// keep their first definition. A name called in statement position is a mixin
// wherever it is defined.
func (r *Registry) Add(tree *ast.Root, lib Library, globalMixins []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := Entry{Module: lib.Module, Alias: lib.Alias}
	for _, n := range tree.Nodes {
		var fn *ast.Function
		switch v := n.(type) {
		case *ast.Function:
			fn = v
		case *ast.Ident:
			switch val := v.Val.(type) {
			case *ast.Function:
				fn = val
			case *ast.Expression:
				if _, ok := r.constants[v.Name]; !ok {
					r.constants[v.Name] = entry
				}
			}
		}

		if fn != nil && !r.defined[fn.Name] {
			e := entry
			e.IsMixin = scss.IsMixinBody(ast.Statements(fn.Block), globalMixins) || r.mixins[fn.Name].IsMixin
			r.mixins[fn.Name] = e
			r.defined[fn.Name] = true
		}

		for _, name := range scss.MixinCalls(n, globalMixins) {
			r.markMixin(name, entry)
		}
	}
}

func (r *Registry) markMixin(name string, entry Entry) {
	e, ok := r.mixins[name]
	if !ok {
		e = entry
	}
	e.IsMixin = true
	r.mixins[name] = e
}

func (r *Registry) Constant(name string) (scss.Symbol, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.constants[name]
	return scss.Symbol(e), ok
}

func (r *Registry) Mixin(name string) (scss.Symbol, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.mixins[name]
	return scss.Symbol(e), ok
}

// MixinNames returns names registered as mixins, naturally sorted.
func (r *Registry) MixinNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for name, e := range r.mixins {
		if e.IsMixin {
			out = append(out, name)
		}
	}
	slices.SortFunc(out, compareNatural)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.constants) + len(r.mixins)
}

// Named is a registry entry with its name, used for listings.
type Named struct {
	Name     string
	Constant bool
	Entry
}

// List returns all entries, constants first, each group naturally sorted by
// name.
func (r *Registry) List() []Named {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Named, 0, len(r.constants)+len(r.mixins))
	for name, e := range r.constants {
		out = append(out, Named{Name: name, Constant: true, Entry: e})
	}
	for name, e := range r.mixins {
		out = append(out, Named{Name: name, Entry: e})
	}
	slices.SortFunc(out, func(a, b Named) int {
		if a.Constant != b.Constant {
			if a.Constant {
				return -1
			}
			return 1
		}
		return compareNatural(a.Name, b.Name)
	})
	return out
}

func compareNatural(a, b string) int {
	switch {
	case a == b:
		return 0
	case natural.Less(a, b):
		return -1
	}
	return 1
}
