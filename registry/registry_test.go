package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"go.uber.org/zap"

	"styl2scss/ast"
	"styl2scss/parser"
	"styl2scss/scss"
)

func constant(name string) *ast.Ident {
	return &ast.Ident{Name: name, Val: &ast.Expression{Nodes: []ast.Node{&ast.Unit{Val: 1, Type: "px"}}}}
}

func callable(name string, body ...ast.Node) *ast.Ident {
	return &ast.Ident{Name: name, Val: &ast.Function{Name: name, Params: &ast.Params{}, Block: &ast.Block{Nodes: body}}}
}

func property(name string) *ast.Property {
	return &ast.Property{
		Segments: []ast.Node{&ast.Ident{Name: name, Val: &ast.Null{}}},
		Expr:     &ast.Expression{Nodes: []ast.Node{&ast.Literal{Val: "0"}}},
	}
}

func statementCall(name string) *ast.Expression {
	return &ast.Expression{Nodes: []ast.Node{&ast.Call{Name: name, Args: &ast.Arguments{}, Block: &ast.Block{}}}}
}

var (
	colors = Library{Path: "colors.styl", Module: "styles/colors", Alias: "c"}
	mixins = Library{Path: "mixins.styl", Module: "styles/mixins", Alias: "m"}
)

func TestAdd(t *testing.T) {
	r := New(zap.NewNop())
	r.Add(&ast.Root{Nodes: []ast.Node{
		constant("primary"),
		callable("darken-more", &ast.Return{Expr: &ast.Expression{}}),
		callable("clearfix", property("clear")),
		callable("wrapper", statementCall("media-tablet")),
	}}, colors, nil)

	tests := []struct {
		name    string
		lookup  func(string) (scss.Symbol, bool)
		want    scss.Symbol
		present bool
	}{
		{"primary", r.Constant, scss.Symbol{Module: "styles/colors", Alias: "c"}, true},
		{"darken-more", r.Mixin, scss.Symbol{Module: "styles/colors", Alias: "c"}, true},
		{"clearfix", r.Mixin, scss.Symbol{Module: "styles/colors", Alias: "c", IsMixin: true}, true},
		{"wrapper", r.Mixin, scss.Symbol{Module: "styles/colors", Alias: "c", IsMixin: true}, true},
		{"media-tablet", r.Mixin, scss.Symbol{Module: "styles/colors", Alias: "c", IsMixin: true}, true},
		{"missing", r.Constant, scss.Symbol{}, false},
		{"primary", r.Mixin, scss.Symbol{}, false},
	}
	for _, tt := range tests {
		got, ok := tt.lookup(tt.name)
		if ok != tt.present || got != tt.want {
			t.Errorf("lookup(%q) = %+v, %v; want %+v, %v", tt.name, got, ok, tt.want, tt.present)
		}
	}
}

func TestAdd_FirstDefinitionWins(t *testing.T) {
	r := New(zap.NewNop())
	r.Add(&ast.Root{Nodes: []ast.Node{constant("gap"), callable("wrapper", statementCall("media-tablet"))}}, colors, nil)
	r.Add(&ast.Root{Nodes: []ast.Node{constant("gap"), callable("media-tablet", &ast.Return{})}}, mixins, nil)

	if s, _ := r.Constant("gap"); s.Module != colors.Module {
		t.Errorf("gap module = %q, want %q", s.Module, colors.Module)
	}
	s, ok := r.Mixin("media-tablet")
	if !ok || s.Module != mixins.Module || !s.IsMixin {
		t.Errorf("media-tablet = %+v, %v; want mixin from %q", s, ok, mixins.Module)
	}
}

func TestAdd_GlobalMixins(t *testing.T) {
	r := New(zap.NewNop())
	body := &ast.Expression{Nodes: []ast.Node{&ast.Call{Name: "size", Args: &ast.Arguments{}}}}
	r.Add(&ast.Root{Nodes: []ast.Node{callable("square", body)}}, mixins, []string{"size"})

	if s, _ := r.Mixin("square"); !s.IsMixin {
		t.Error("square should be a mixin when it calls a global mixin")
	}
	if got := r.MixinNames(); !slices.Equal(got, []string{"size", "square"}) {
		t.Errorf("MixinNames() = %q", got)
	}
}

func TestBootstrap(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"colors.styl", "mixins.styl"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	calls := 0
	p := parser.Func(func(_ context.Context, src []byte, _ string) (*ast.Root, error) {
		calls++
		switch string(src) {
		case "colors.styl":
			return &ast.Root{Nodes: []ast.Node{constant("primary"), constant("secondary")}}, nil
		case "mixins.styl":
			return &ast.Root{Nodes: []ast.Node{callable("media-tablet", property("width"))}}, nil
		}
		return nil, errors.New("unexpected source")
	})

	missing := Library{Path: "missing.styl", Module: "styles/missing", Alias: "x"}
	r := New(zap.NewNop())
	err := r.Bootstrap(context.Background(), p, dir, []Library{colors, missing, mixins}, nil)
	if err == nil {
		t.Error("Bootstrap() expected error for missing library")
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}

	// populated registry is not rebuilt
	if err := r.Bootstrap(context.Background(), p, dir, []Library{colors}, nil); err != nil {
		t.Errorf("second Bootstrap() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("parser called %d times, want 2", calls)
	}

	list := r.List()
	var names []string
	for _, n := range list {
		names = append(names, n.Name)
	}
	if want := []string{"primary", "secondary", "media-tablet"}; !slices.Equal(names, want) {
		t.Errorf("List() names = %q, want %q", names, want)
	}
	if !list[0].Constant || list[2].Constant {
		t.Error("List() should place constants first")
	}
}

func TestBootstrap_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(zap.NewNop())
	err := r.Bootstrap(ctx, parser.JSON{}, t.TempDir(), []Library{colors}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Bootstrap() error = %v, want context.Canceled", err)
	}
}

func TestNaturalOrder(t *testing.T) {
	r := New(zap.NewNop())
	r.Add(&ast.Root{Nodes: []ast.Node{constant("z-10"), constant("z-2"), constant("z-1")}}, colors, nil)

	var got []string
	for _, n := range r.List() {
		got = append(got, n.Name)
	}
	if want := []string{"z-1", "z-2", "z-10"}; !slices.Equal(got, want) {
		t.Errorf("List() = %q, want %q", got, want)
	}
}
