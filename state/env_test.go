package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"styl2scss/config"
	"styl2scss/parser"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())

	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if EnvFromContext(ctx) != env {
		t.Error("EnvFromContext() should return the same environment")
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_NewParser(t *testing.T) {
	log := zaptest.NewLogger(t)

	tests := []struct {
		name string
		pc   config.ParserConfig
		json bool
	}{
		{"json", config.ParserConfig{Kind: config.ParserKindJson}, true},
		{"command", config.ParserConfig{Kind: config.ParserKindCommand, Path: "node", Dir: "/tmp", Timeout: time.Second}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &LocalEnv{Cfg: &config.Config{Parser: tt.pc}, Log: log}
			p := env.NewParser()
			switch v := p.(type) {
			case parser.JSON:
				if !tt.json {
					t.Error("NewParser() returned JSON parser for command kind")
				}
			case *parser.Command:
				if tt.json {
					t.Fatal("NewParser() returned command for json kind")
				}
				if v.Path != "node" || v.Dir != "/tmp" || v.Timeout != time.Second {
					t.Errorf("command = %+v", v)
				}
			default:
				t.Errorf("unexpected parser %T", p)
			}
		})
	}
}

func TestLocalEnv_StdLog(t *testing.T) {
	t.Run("with logger", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}
		for i := range 3 {
			env.RedirectStdLog()
			if env.restoreStdLog == nil {
				t.Errorf("Iteration %d: restoreStdLog not set", i)
			}
			env.RestoreStdLog()
		}
	})

	t.Run("without logger", func(t *testing.T) {
		env := &LocalEnv{}
		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("Expected restoreStdLog to remain nil")
		}
		env.RestoreStdLog()
	})
}
