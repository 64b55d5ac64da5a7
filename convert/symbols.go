package convert

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"styl2scss/registry"
	"styl2scss/state"
	"styl2scss/utils/debug"
)

// Symbols is the symbols subcommand: prints names known from shared libraries
// to DESTINATION or standard output.
func Symbols(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("symbols")

	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	if err := loadSymbols(ctx, env, root, log); err != nil {
		return err
	}

	out := FormatSymbols(env.Symbols.List())
	if dst := cmd.Args().Get(0); len(dst) > 0 {
		if err := os.WriteFile(dst, []byte(out), 0644); err != nil {
			return fmt.Errorf("unable to write symbols: %w", err)
		}
		log.Info("Symbols written", zap.String("destination", dst), zap.Int("count", env.Symbols.Len()))
		return nil
	}
	_, err = fmt.Fprint(os.Stdout, out)
	return err
}

// FormatSymbols lists registry entries grouped by kind.
func FormatSymbols(list []registry.Named) string {
	var constants, callables []registry.Named
	for _, n := range list {
		if n.Constant {
			constants = append(constants, n)
		} else {
			callables = append(callables, n)
		}
	}

	tw := debug.NewTreeWriter()
	tw.Header("Constants (%d)", len(constants))
	for _, n := range constants {
		tw.Line(1, "$%s -> %s.$%s (%s)", n.Name, n.Alias, n.Name, n.Module)
	}
	tw.Header("Mixins and functions (%d)", len(callables))
	for _, n := range callables {
		kind := "function"
		if n.IsMixin {
			kind = "mixin"
		}
		tw.Line(1, "%s -> %s.%s (%s, %s)", n.Name, n.Alias, n.Name, n.Module, kind)
	}
	return tw.String()
}
