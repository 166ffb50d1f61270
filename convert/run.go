package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"sketchgen/archive"
	"sketchgen/css"
	"sketchgen/layout"
	"sketchgen/layout/flex"
	"sketchgen/markup"
	"sketchgen/render"
	"sketchgen/state"
	"sketchgen/style"
	"sketchgen/tree"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger().Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")
	env.StylesheetPath = cmd.String("stylesheet")
	if env.StylesheetPath == "" {
		env.StylesheetPath = env.Cfg.Document.StylesheetPath
	}

	c, err := newConverter(env, log)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return c.process(ctx, src, dst)
}

// converter keeps everything shared by all files of a single run. Image
// sources are resolved relative to each input file unless configured
// otherwise, so pipelines are prepared per source directory.
type converter struct {
	env       *state.LocalEnv
	opts      Options
	pipelines map[string]*Pipeline
	log       *zap.Logger
}

func newConverter(env *state.LocalEnv, log *zap.Logger) (*converter, error) {
	cfg := &env.Cfg.Document

	sheet, err := loadStylesheet(env, log)
	if err != nil {
		return nil, err
	}

	table := env.Mapping
	if len(cfg.TagMappings) > 0 {
		if table, err = table.Extend(cfg.TagMappings); err != nil {
			return nil, fmt.Errorf("bad tag mappings: %w", err)
		}
	}

	dir, err := layout.ParseDirection(cfg.Direction)
	if err != nil {
		return nil, err
	}

	return &converter{
		env: env,
		opts: Options{
			Table:      table,
			Stylesheet: sheet,
			Engine:     flex.New(cfg.Viewport.Width, cfg.Viewport.Height, log),
			Direction:  dir,
			Blacklist:  cfg.Blacklist,
		},
		pipelines: make(map[string]*Pipeline),
		log:       log,
	}, nil
}

// loadStylesheet combines built-in text styles with the user stylesheet.
// Rules the parser cannot use are reported and skipped.
func loadStylesheet(env *state.LocalEnv, log *zap.Logger) (style.Stylesheet, error) {
	parser := css.NewParser(log)

	sheet := parser.Parse(env.DefaultStylesheet, "default.css").Compile()
	if env.StylesheetPath == "" {
		return sheet, nil
	}

	data, err := os.ReadFile(env.StylesheetPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read stylesheet from %q: %w", env.StylesheetPath, err)
	}
	env.Rpt.StoreData("stylesheet.css", data)

	user := parser.Parse(data, env.StylesheetPath)
	for _, w := range user.Warnings {
		log.Warn("Stylesheet", zap.String("file", env.StylesheetPath), zap.String("warning", w))
	}
	return sheet.Extend(user.Compile()), nil
}

func (c *converter) pipelineFor(dir string) (*Pipeline, error) {
	if p, ok := c.pipelines[dir]; ok {
		return p, nil
	}
	images := c.env.Cfg.Document.Images
	if images.BaseDir == "" {
		images.BaseDir = dir
	}
	opts := c.opts
	opts.Registry = render.Default(&images, c.log)

	p, err := NewPipeline(opts, c.log)
	if err != nil {
		return nil, err
	}
	c.pipelines[dir] = p
	return p, nil
}

// source is a single description to convert.
type source struct {
	// path relative to the input (always including file name), used to
	// build output name and as a seed for object identifiers
	rel string
	// directory relative image sources are resolved against
	dir string
	// file on disk, empty for archive entries
	path string
	read func(rd *markup.Reader) (*tree.Node, error)
}

func fileSource(path, rel string) source {
	return source{
		rel:  rel,
		dir:  filepath.Dir(path),
		path: path,
		read: func(rd *markup.Reader) (*tree.Node, error) {
			return rd.ReadFile(path)
		},
	}
}

// process handles the core conversion logic independently of CLI framework.
// Source may be a single description file, a zip archive or a directory
// which is searched for them. A failure in one file does not stop the batch.
func (c *converter) process(ctx context.Context, src, dst string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	var sources []source
	switch {
	case fi.Mode().IsDir():
		if sources, err = c.collect(ctx, src); err != nil {
			return err
		}
	case !fi.Mode().IsRegular():
		return fmt.Errorf("unexpected path mode for (%s)", src)
	default:
		isArchive, err := archive.IsArchive(src)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if !isArchive {
			return c.processFile(ctx, fileSource(src, filepath.Base(src)), 0, dst)
		}
		if sources, err = c.collectArchive(src); err != nil {
			return fmt.Errorf("unable to process archive: %w", err)
		}
	}
	if len(sources) == 0 {
		c.log.Debug("Nothing to process", zap.String("source", src))
		return nil
	}

	var errs error
	for i, s := range sources {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		if err := c.processFile(ctx, s, i, dst); err != nil {
			c.log.Error("Unable to process file", zap.String("file", s.rel), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", s.rel, err))
		}
	}
	return errs
}

func isDescription(name string) bool {
	return markup.FormatFromExt(name) != markup.FormatAuto
}

// collect walks directory tree finding description files, returns them in
// natural order of their paths relative to dir.
func (c *converter) collect(ctx context.Context, dir string) ([]source, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			c.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !isDescription(path) {
			c.log.Debug("Skipping file, not recognized as description", zap.String("file", path))
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Sort(natural.StringSlice(files))

	sources := make([]source, 0, len(files))
	for _, rel := range files {
		sources = append(sources, fileSource(filepath.Join(dir, rel), rel))
	}
	return sources, nil
}

// collectArchive loads every description stored in the zip archive at
// path. Relative image sources are resolved next to the archive.
func (c *converter) collectArchive(path string) ([]source, error) {
	var sources []source
	err := archive.Walk(path, "", isDescription, func(name string, r io.Reader) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("zip entry %q: %w", name, err)
		}
		format := markup.FormatFromExt(name)
		sources = append(sources, source{
			rel: filepath.FromSlash(name),
			dir: filepath.Dir(path),
			read: func(rd *markup.Reader) (*tree.Node, error) {
				return rd.Read(bytes.NewReader(data), format)
			},
		})
		return nil
	})
	return sources, err
}

// processFile converts single description. A panic in any stage is turned
// into an error of this file only.
func (c *converter) processFile(ctx context.Context, s source, index int, dst string) (rerr error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := c.env
	log := c.log
	src := s.rel

	var outputName string

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		// NOTE: image decoders may panic on broken input, if multiple files
		// are being processed we do not want to stop.
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	if s.path != "" {
		if err := env.Rpt.StoreCopy("source-"+strings.ReplaceAll(filepath.ToSlash(src), "/", "_"), s.path); err != nil {
			log.Warn("Unable to store source in report", zap.Error(err))
		}
	}

	root, err := s.read(markup.NewReader(log))
	if err != nil {
		return fmt.Errorf("unable to read description (%s): %w", src, err)
	}

	p, err := c.pipelineFor(s.dir)
	if err != nil {
		return err
	}

	seed := filepath.ToSlash(src)
	res, err := p.Convert(root, seed)
	c.report(seed, res)
	if err != nil {
		return err
	}

	data, err := marshal(res, env.Cfg.Document.PrettyJSON)
	if err != nil {
		return fmt.Errorf("unable to serialize document: %w", err)
	}

	// Determine output file name and path based on input and configuration.
	outputName = buildOutputPath(src, dst, res.Document, index, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	// Store conversion result for debugging
	env.Rpt.Store("result-"+strings.ReplaceAll(seed, "/", "_")+outputExt, outputName)
	return nil
}

func marshal(res *Result, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(res.Document, "", "  ")
	}
	return json.Marshal(res.Document)
}

// report stores intermediate trees of every stage which has completed.
func (c *converter) report(seed string, res *Result) {
	if c.env.Rpt == nil || res == nil {
		return
	}
	name := strings.ReplaceAll(seed, "/", "_")
	store := func(stage, dump string) {
		c.env.Rpt.StoreData(fmt.Sprintf("%s.%s.txt", name, stage), []byte(dump))
	}
	for stage, n := range map[string]*tree.Node{
		"1-normalized": res.Normalized,
		"2-mapped":     res.Mapped,
		"3-styled":     res.Styled,
	} {
		if n != nil {
			store(stage, n.String())
		}
	}
	if res.Merged != nil {
		store("4-merged", res.Merged.String())
	}
}
