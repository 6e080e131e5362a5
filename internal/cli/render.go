package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snarl/pkg/cache"
	snarlerrors "github.com/matzehuels/snarl/pkg/errors"
	"github.com/matzehuels/snarl/pkg/observability"
	"github.com/matzehuels/snarl/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"

	// artifactTTL bounds how long cached render outputs are reused.
	artifactTTL = 24 * time.Hour
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path; defaults next to the board file
	format   string // output format: "dot", "svg", "png"
	detailed bool   // annotate wires with pin indices
	noCache  bool   // bypass the artifact cache
	watch    bool   // re-render whenever the board file changes
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a board to a diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if opts.format == "" {
				opts.format = cfg.Render.Format
			}
			if err := snarlerrors.ValidateFormat(opts.format); err != nil {
				return err
			}

			path := boardArg(args)
			if opts.output == "" {
				opts.output = strings.TrimSuffix(path, ".json") + "." + opts.format
			}

			if opts.watch {
				return c.watchRender(cmd.Context(), path, &opts)
			}
			return c.renderOnce(cmd.Context(), path, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults next to the board file)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate wires with pin indices")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render whenever the board file changes")

	return cmd
}

// renderOnce renders the board file a single time.
func (c *CLI) renderOnce(ctx context.Context, path string, opts *renderOpts) error {
	p := newProgress(c.Logger)

	g, err := loadBoard(path)
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(g, nodelink.Options[json.RawMessage]{Detailed: opts.detailed})

	data, cached, err := c.renderArtifact(ctx, dot, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	p.done(fmt.Sprintf("Rendered %d nodes to %s", g.NodeCount(), opts.format))
	printFile(opts.output)
	printStats(g.NodeCount(), g.WireCount(), cached)
	return nil
}

// renderArtifact produces the output bytes for a DOT document, using
// the artifact cache keyed on the DOT text and target format.
func (c *CLI) renderArtifact(ctx context.Context, dot string, opts *renderOpts) ([]byte, bool, error) {
	if opts.format == formatDOT {
		return []byte(dot), false, nil
	}

	artifacts, err := newCache(opts.noCache)
	if err != nil {
		return nil, false, err
	}
	defer artifacts.Close()

	key := cache.ArtifactKey(dot, opts.format)
	if data, ok, err := artifacts.Get(ctx, key); err == nil && ok {
		observability.Render().OnCacheHit(ctx, opts.format)
		return data, true, nil
	}
	observability.Render().OnCacheMiss(ctx, opts.format)

	sp := startSpinner(ctx, fmt.Sprintf("Rendering %s", opts.format))
	start := time.Now()
	var data []byte
	switch opts.format {
	case formatSVG:
		data, err = nodelink.RenderSVG(dot)
	case formatPNG:
		data, err = nodelink.RenderPNG(dot)
	}
	observability.Render().OnRenderComplete(ctx, opts.format, time.Since(start), err)
	sp.Stop()
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", opts.format, err)
	}

	if err := artifacts.Set(ctx, key, data, artifactTTL); err != nil {
		c.Logger.Debug("cache artifact", "err", err)
	}
	return data, false, nil
}

// watchRender re-renders the board every time its file changes,
// until the context is cancelled.
func (c *CLI) watchRender(ctx context.Context, path string, opts *renderOpts) error {
	if err := c.renderOnce(ctx, path, opts); err != nil {
		printError("%v", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("board watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		return fmt.Errorf("board watcher add %s: %w", path, err)
	}

	printInfo("Watching %s (ctrl-c to stop)", path)

	// Editors often fire several events per save; debounce briefly.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				pending = time.After(100 * time.Millisecond)
			}
		case <-w.Errors:
			// Ignore watcher errors and keep watching.
		case <-pending:
			pending = nil
			if err := c.renderOnce(ctx, path, opts); err != nil {
				printError("%v", err)
			}
		}
	}
}
