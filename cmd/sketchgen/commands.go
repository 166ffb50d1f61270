package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"sketchgen/config"
	"sketchgen/mapping"
	"sketchgen/state"
)

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Logger()
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") || env.Cfg == nil {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

// outputTags prints the effective tag table, configured tag mappings
// included.
func outputTags(ctx context.Context, _ *cli.Command) error {
	env := state.EnvFromContext(ctx)

	table := env.Mapping
	if env.Cfg != nil && len(env.Cfg.Document.TagMappings) > 0 {
		var err error
		if table, err = table.Extend(env.Cfg.Document.TagMappings); err != nil {
			return fmt.Errorf("bad tag mappings: %w", err)
		}
	}
	return writeTags(os.Stdout, table)
}

func writeTags(w io.Writer, table *mapping.Table) error {
	for _, target := range append(slices.Clone(mapping.Targets), mapping.Blacklist) {
		if _, err := fmt.Fprintf(w, "%-10s %s\n", target, strings.Join(table.Tags(target), " ")); err != nil {
			return err
		}
	}
	return nil
}
