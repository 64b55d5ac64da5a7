package convert

import (
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"

	"styl2scss/config"
	"styl2scss/registry"
	"styl2scss/state"
)

func TestFormatSymbols(t *testing.T) {
	got := FormatSymbols([]registry.Named{
		{Name: "primary", Constant: true, Entry: registry.Entry{Module: "styles/colors", Alias: "c"}},
		{Name: "clearfix", Entry: registry.Entry{Module: "styles/mixins", Alias: "m", IsMixin: true}},
		{Name: "rem", Entry: registry.Entry{Module: "styles/mixins", Alias: "m"}},
	})
	want := "# Constants (1)\n" +
		"  $primary -> c.$primary (styles/colors)\n" +
		"\n" +
		"# Mixins and functions (2)\n" +
		"  clearfix -> m.clearfix (styles/mixins, mixin)\n" +
		"  rem -> m.rem (styles/mixins, function)\n"
	if got != want {
		t.Errorf("FormatSymbols() =\n%s\nwant\n%s", got, want)
	}
}

func TestSymbols(t *testing.T) {
	ctx := setupTestEnv(t)
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"lib/colors.styl": jsonTree})

	cfg := state.EnvFromContext(ctx).Cfg
	cfg.Libraries = []config.LibraryConfig{{Path: "lib/colors.styl", Module: "lib/colors", Alias: "c"}}

	out := filepath.Join(root, "symbols.txt")
	cmd := &cli.Command{
		Name:   "symbols",
		Flags:  []cli.Flag{&cli.StringFlag{Name: "root"}},
		Action: Symbols,
	}
	if err := cmd.Run(ctx, []string{"symbols", "--root", root, out}); err != nil {
		t.Fatalf("Symbols() error = %v", err)
	}
	if got := readFile(t, out); !strings.Contains(got, "$x -> c.$x (lib/colors)") {
		t.Errorf("symbols =\n%s", got)
	}
}
