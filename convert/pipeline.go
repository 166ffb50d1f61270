package convert

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sketchgen/config"
	"sketchgen/layout"
	"sketchgen/mapping"
	"sketchgen/render"
	"sketchgen/sketch"
	"sketchgen/style"
	"sketchgen/tree"
)

// Options configure a pipeline. Zero values select defaults: the default
// tag table, an empty stylesheet, the built-in renderers and left to right
// layout.
type Options struct {
	Table      *mapping.Table
	Stylesheet style.Stylesheet
	Registry   *render.Registry
	Engine     layout.Engine
	Direction  layout.Direction
	Blacklist  config.BlacklistPolicy
}

// Result keeps the output of every stage for inspection.
type Result struct {
	Normalized *tree.Node
	Mapped     *tree.Node
	Styled     *tree.Node
	Merged     *tree.MergedNode
	Document   *sketch.Layer
}

// Pipeline converts component trees into output documents. It holds only
// read-only inputs and can be reused for any number of trees.
type Pipeline struct {
	opts     Options
	resolver *Resolver
	merger   *Merger
	emitter  *Emitter
	log      *zap.Logger
}

// NewPipeline returns a pipeline. An engine is required.
func NewPipeline(opts Options, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Engine == nil {
		return nil, errors.New("no layout engine")
	}
	if opts.Table == nil {
		opts.Table = mapping.Default()
	}
	if opts.Stylesheet == nil {
		opts.Stylesheet = style.Stylesheet{}
	}
	if opts.Registry == nil {
		opts.Registry = render.Default(nil, log)
	}
	if opts.Direction == layout.Inherit {
		opts.Direction = layout.LTR
	}
	return &Pipeline{
		opts:     opts,
		resolver: NewResolver(opts.Stylesheet, log),
		merger:   NewMerger(log),
		emitter:  NewEmitter(opts.Registry, opts.Table, opts.Blacklist, log),
		log:      log.Named("pipeline"),
	}, nil
}

// Convert runs all stages over root. Either the complete document is
// produced or an error is returned. The input tree is never modified.
func (p *Pipeline) Convert(root *tree.Node, seed string) (*Result, error) {
	if root == nil {
		return nil, errors.New("nothing to convert")
	}
	res := &Result{}

	res.Normalized = NormalizeText(root, p.opts.Table)
	res.Mapped = MapComponents(res.Normalized, p.opts.Table, p.log)
	res.Styled = Hydrate(res.Mapped, p.resolver, p.opts.Table)
	p.log.Debug("Component tree prepared", zap.String("root", res.Styled.Tag))

	lroot, err := p.opts.Engine.Build(res.Styled)
	if err != nil {
		return res, fmt.Errorf("unable to build layout tree: %w", err)
	}
	lroot.CalculateLayout(p.opts.Direction)

	ctx := style.NewContext()
	ctx.AddInheritableStyles(TextDefaults(p.opts.Stylesheet))
	res.Merged, err = p.merger.Merge(res.Styled, lroot, ctx)
	if err != nil {
		return res, err
	}

	res.Document, err = p.emitter.Emit(res.Merged)
	if err != nil {
		return res, err
	}
	if res.Document == nil {
		return res, errors.New("document is empty")
	}
	AssignIDs(res.Document, seed)
	p.log.Debug("Document emitted", zap.String("class", res.Document.Class), zap.Int("layers", len(res.Document.Layers)))
	return res, nil
}
