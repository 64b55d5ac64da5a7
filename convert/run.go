package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"styl2scss/archive"
	"styl2scss/registry"
	"styl2scss/scss"
	"styl2scss/state"
)

// Run is the convert subcommand: converts SOURCE (file, directory or zip
// archive) into DESTINATION.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src, dst, err := arguments(cmd, log)
	if err != nil {
		return err
	}
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	c, err := prepare(ctx, env, root, log)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.String("root", root))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return Process(ctx, c, src, dst, root, log)
}

func arguments(cmd *cli.Command, log *zap.Logger) (src, dst string, err error) {
	src = cmd.Args().Get(0)
	if len(src) == 0 {
		return "", "", errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return "", "", err
	}

	dst = cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return "", "", fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return "", "", err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	return src, dst, nil
}

// projectRoot is the directory library paths and module names are relative
// to.
func projectRoot(cmd *cli.Command) (string, error) {
	root := cmd.String("root")
	if len(root) == 0 {
		return os.Getwd()
	}
	return filepath.Abs(root)
}

// prepare builds parser and symbol registry once per program run and returns
// converter using them.
func prepare(ctx context.Context, env *state.LocalEnv, root string, log *zap.Logger) (*Converter, error) {
	if err := loadSymbols(ctx, env, root, log); err != nil {
		return nil, err
	}
	return NewConverter(env.Cfg.Conversion, env.Parser, env.Symbols, env.Rpt, log)
}

func loadSymbols(ctx context.Context, env *state.LocalEnv, root string, log *zap.Logger) error {
	if env.Parser == nil {
		env.Parser = env.NewParser()
	}
	if env.Symbols == nil {
		env.Symbols = registry.New(env.Log)
	}

	libs := make([]registry.Library, 0, len(env.Cfg.Libraries))
	for _, l := range env.Cfg.Libraries {
		libs = append(libs, registry.Library{Path: l.Path, Module: l.Module, Alias: l.Alias})
	}
	start := time.Now()
	if err := env.Symbols.Bootstrap(ctx, env.Parser, root, libs, env.Cfg.Conversion.GlobalMixins); err != nil {
		if ctx.Err() != nil {
			return err
		}
		log.Warn("Some shared libraries were not loaded", zap.Error(err))
	}
	log.Debug("Shared names registered", zap.Int("count", env.Symbols.Len()), zap.Duration("elapsed", time.Since(start)))
	return nil
}

// job is a single source to convert.
type job struct {
	name   string // relative slash separated path, used in diagnostics
	path   string // file on disk, empty for archive entries
	data   []byte // content of archive entries
	module string
	out    string
}

func (j job) read() ([]byte, error) {
	if j.path == "" {
		return j.data, nil
	}
	return os.ReadFile(j.path)
}

// Process converts everything found at src. Conversion runs twice: warm-up pass
// collects names declared at the top level of every file, final pass uses them
// and writes results. Files failing to convert do not stop processing, their
// errors are returned together at the end.
func Process(ctx context.Context, c *Converter, src, dst, root string, log *zap.Logger) error {
	jobs, err := collect(ctx, src, dst, root, log)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		log.Warn("Nothing to process", zap.String("source", src))
		return nil
	}

	for _, final := range []bool{false, true} {
		start := time.Now()
		err := c.pass(ctx, jobs, final)
		log.Info("Pass completed", zap.String("pass", passName(final)), zap.Int("files", len(jobs)), zap.Duration("elapsed", time.Since(start)))
		if err != nil && (final || ctx.Err() != nil) {
			return err
		}
	}
	return nil
}

func passName(final bool) string {
	if final {
		return "final"
	}
	return "warm-up"
}

func collect(ctx context.Context, src, dst, root string, log *zap.Logger) ([]job, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("input source was not found: %w", err)
	}

	switch {
	case fi.IsDir():
		return collectDir(ctx, src, dst, root, log)
	case !fi.Mode().IsRegular():
		return nil, fmt.Errorf("unexpected path mode for %s", src)
	}

	packed, err := isArchiveFile(src)
	if err != nil {
		return nil, fmt.Errorf("unable to check archive type: %w", err)
	}
	if packed {
		return collectArchive(ctx, src, dst)
	}

	if !isSource(src) {
		log.Warn("Source does not have .styl extension, converting anyway", zap.String("file", src))
	}
	name := filepath.Base(src)
	return []job{{name: name, path: src, module: moduleName(root, src), out: outputPath(name, dst)}}, nil
}

func collectDir(ctx context.Context, dir, dst, root string, log *zap.Logger) ([]job, error) {
	var jobs []job
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() || !isSource(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		jobs = append(jobs, job{
			name:   filepath.ToSlash(rel),
			path:   path,
			module: moduleName(root, path),
			out:    outputPath(rel, dst),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(jobs, func(a, b job) int {
		switch {
		case a.name == b.name:
			return 0
		case natural.Less(a.name, b.name):
			return -1
		}
		return 1
	})
	return jobs, nil
}

func collectArchive(ctx context.Context, path, dst string) ([]job, error) {
	var jobs []job
	err := archive.Walk(ctx, path, srcExt, func(name string, data []byte) error {
		jobs = append(jobs, job{
			name:   name,
			data:   data,
			module: strings.TrimSuffix(name, filepath.Ext(name)),
			out:    outputPath(name, dst),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to process archive: %w", err)
	}
	return jobs, nil
}

// pass converts all jobs on a bounded worker pool.
func (c *Converter) pass(ctx context.Context, jobs []job, final bool) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.cfg.Workers, 1))

	var (
		mu           sync.Mutex
		errs         error
		vars, mixins []string
	)
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			declared, err := c.convertJob(gctx, j, final)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierr.Append(errs, err)
				return nil
			}
			vars = append(vars, declared.Variables...)
			mixins = append(mixins, declared.Mixins...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if !final {
		c.addGlobals(vars, mixins)
	}
	return errs
}

// convertJob converts a single source, only final pass writes the result.
func (c *Converter) convertJob(ctx context.Context, j job, final bool) (_ *scss.Result, rerr error) {
	log := c.log.With(zap.String("file", j.name))
	defer func(start time.Time) {
		// a malformed tree must not stop other files
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic in %s: %v", j.name, r)
			return
		}
		switch {
		case rerr == nil:
			log.Debug("Conversion completed", zap.String("pass", passName(final)), zap.Duration("elapsed", time.Since(start)))
		case final:
			log.Error("Unable to convert file", zap.Error(rerr))
		default:
			log.Debug("Unable to convert file during warm-up", zap.Error(rerr))
		}
	}(time.Now())

	data, err := j.read()
	if err != nil {
		return nil, err
	}
	out, err := c.ConvertSource(ctx, data, j.name, j.module)
	if err != nil {
		return nil, err
	}
	if final {
		if err := os.MkdirAll(filepath.Dir(j.out), 0755); err != nil {
			return nil, fmt.Errorf("unable to create output directory: %w", err)
		}
		if err := os.WriteFile(j.out, []byte(out.Text), 0644); err != nil {
			return nil, fmt.Errorf("unable to write %s: %w", j.out, err)
		}
		c.rpt.Store(filepath.ToSlash(filepath.Join("out", j.name)), j.out)
	}
	return out, nil
}
