package convert

import (
	"context"
	"fmt"
	"path"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"styl2scss/ast"
	"styl2scss/config"
	"styl2scss/parser"
	"styl2scss/registry"
	"styl2scss/scss"
)

// Converter turns Stylus sources into SCSS. It is safe for concurrent use, the
// global name lists are only changed between passes.
type Converter struct {
	cfg     config.ConversionConfig
	parser  parser.Parser
	symbols *registry.Registry
	enc     encoding.Encoding
	rpt     *config.Report
	log     *zap.Logger

	mu           sync.Mutex
	globalVars   []string
	globalMixins []string
}

// NewConverter prepares converter. Registry may be nil when shared libraries
// are not used.
func NewConverter(cfg config.ConversionConfig, p parser.Parser, symbols *registry.Registry, rpt *config.Report, log *zap.Logger) (*Converter, error) {
	enc, err := lookupEncoding(cfg.SourceEncoding)
	if err != nil {
		return nil, err
	}
	c := &Converter{
		cfg:          cfg,
		parser:       p,
		symbols:      symbols,
		enc:          enc,
		rpt:          rpt,
		log:          log,
		globalVars:   slices.Clone(cfg.GlobalVariables),
		globalMixins: slices.Clone(cfg.GlobalMixins),
	}
	if symbols != nil {
		c.addGlobals(nil, symbols.MixinNames())
	}
	return c, nil
}

// Globals returns current global variable and mixin names.
func (c *Converter) Globals() (vars, mixins []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.globalVars), slices.Clone(c.globalMixins)
}

func (c *Converter) addGlobals(vars, mixins []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, v := range vars {
		if !slices.Contains(c.globalVars, v) {
			c.globalVars = append(c.globalVars, v)
		}
	}
	for _, m := range mixins {
		if !slices.Contains(c.globalMixins, m) {
			c.globalMixins = append(c.globalMixins, m)
		}
	}
}

func (c *Converter) options(module string) scss.Options {
	vars, mixins := c.Globals()
	opts := scss.Options{
		Quote:               c.cfg.Quote.Char(),
		Autoprefixer:        c.cfg.Autoprefixer,
		IndentVueStyleBlock: c.cfg.IndentVueStyleBlock,
		Module:              module,
		GlobalVariables:     vars,
		GlobalMixins:        mixins,
	}
	if c.symbols != nil {
		opts.Symbols = c.symbols
	}
	if c.cfg.NibAbsolute {
		opts.Rewriters = append(opts.Rewriters, scss.NibPosition)
	}
	return opts
}

// ConvertSource converts a single source. name is used in diagnostics and as
// report entry name, module is the use path of the source (may be empty).
func (c *Converter) ConvertSource(ctx context.Context, data []byte, name, module string) (*scss.Result, error) {
	text, err := decodeSource(data, c.enc)
	if err != nil {
		return nil, err
	}
	text = prepareSource(text, c.cfg.SignComments)

	tree, err := c.parser.Parse(ctx, []byte(text), name)
	if err != nil {
		return nil, err
	}
	if c.rpt != nil {
		c.rpt.StoreData(path.Join("ast", name+".txt"), []byte(ast.Dump(tree)))
	}

	res, err := scss.Render(tree, c.options(module))
	if err != nil {
		return nil, fmt.Errorf("unable to render %s: %w", name, err)
	}
	res.Text = restoreComments(res.Text)

	for _, w := range res.Warnings {
		c.log.Warn("Conversion warning", zap.String("file", name), zap.String("warning", w))
	}
	for _, p := range verifyBalance([]byte(res.Text)) {
		c.log.Warn("Suspicious output", zap.String("file", name), zap.String("problem", p))
	}
	return res, nil
}
