// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"styl2scss/config"
	"styl2scss/parser"
	"styl2scss/registry"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// prepared by convert and watch subcommands
	Parser  parser.Parser
	Symbols *registry.Registry

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now()})
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// NewParser builds syntax tree source selected by configuration.
func (e *LocalEnv) NewParser() parser.Parser {
	pc := e.Cfg.Parser
	if pc.Kind == config.ParserKindJson {
		return parser.JSON{}
	}
	p := parser.NewCommand(pc.Path, pc.Args, pc.Timeout, e.Log)
	p.Dir = pc.Dir
	return p
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
