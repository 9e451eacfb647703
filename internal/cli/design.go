package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/coder0xff/optifactory/pkg/balancer"
	pkgcache "github.com/coder0xff/optifactory/pkg/cache"
	apperrors "github.com/coder0xff/optifactory/pkg/errors"
	"github.com/coder0xff/optifactory/pkg/graph"
	"github.com/coder0xff/optifactory/pkg/graphio"
	"github.com/coder0xff/optifactory/pkg/render"
)

// artifactTTL bounds how long rendered SVG/PNG bytes stay cached.
const artifactTTL = 30 * 24 * time.Hour

// designOpts holds the command-line flags for the design command.
type designOpts struct {
	inputsStr  string // comma-separated input flows ("480,480,480" or "45x32")
	outputsStr string // comma-separated output flows
	file       string // TOML manifest path (alternative to --inputs/--outputs)
	total      int    // when > 0, flows may be fractional and are rounded to this total
	formats    []string
	output     string // output file (single format) or base path (multiple)
	noCache    bool
	explain    bool // print the assignment matrix
}

// newDesignCmd creates the design command, the CLI's main entry point.
func newDesignCmd() *cobra.Command {
	var formatsStr string
	opts := designOpts{}

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Synthesize a balancer network and render it",
		Long: `Synthesize a balancer network and render it.

Flow lists are comma-separated non-negative integers; an element may use
<flow>x<count> repetition shorthand, so --outputs 45x32 requests 32 outputs
of 45 each. Input and output totals must match.

Alternatively, --file loads a TOML manifest:

	[balancer]
	inputs  = [480, 480, 480]
	outputs = [45, 45, 45]

With --total N both flow lists may be fractional production rates; they are
proportionally rounded into integers summing to N before synthesis.

Rendered SVG/PNG artifacts are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runDesign(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.inputsStr, "inputs", "", "input flow rates, comma-separated")
	cmd.Flags().StringVar(&opts.outputsStr, "outputs", "", "output flow rates, comma-separated")
	cmd.Flags().StringVar(&opts.file, "file", "", "TOML balance manifest (alternative to --inputs/--outputs)")
	cmd.Flags().IntVar(&opts.total, "total", 0, "round fractional flows to integers summing to this total")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "print the input-to-output flow assignment")

	return cmd
}

func runDesign(ctx context.Context, opts *designOpts) error {
	logger := loggerFromContext(ctx)

	inputs, outputs, err := resolveFlows(opts)
	if err != nil {
		return err
	}
	logger.Debugf("balancing %d inputs into %d outputs", len(inputs), len(outputs))

	prog := newProgress(logger)
	g, err := balancer.Design(inputs, outputs)
	if err != nil {
		var infeasible *balancer.InfeasibleFlowError
		if errors.As(err, &infeasible) {
			return apperrors.Wrap(apperrors.ErrCodeInfeasibleFlow, err, "cannot balance these flows")
		}
		return err
	}
	splitters := g.CountKind(graph.KindSplitter)
	mergers := g.CountKind(graph.KindMerger)
	prog.done(fmt.Sprintf("Synthesized %d splitters, %d mergers", splitters, mergers))

	if opts.explain {
		printMatrix(balancer.Assign(inputs, outputs))
	}

	if err := writeArtifacts(ctx, g, opts); err != nil {
		return err
	}

	printSuccess("Balancer network designed")
	printDetail("%d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	return nil
}

// resolveFlows produces the integer flow lists from flags or manifest.
func resolveFlows(opts *designOpts) (inputs, outputs []int, err error) {
	if opts.file != "" {
		if opts.inputsStr != "" || opts.outputsStr != "" {
			return nil, nil, apperrors.New(apperrors.ErrCodeInvalidInput,
				"--file and --inputs/--outputs are mutually exclusive")
		}
		m, err := balancer.LoadManifest(opts.file)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "manifest %s", opts.file)
			}
			return nil, nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "manifest %s", opts.file)
		}
		return m.Inputs, m.Outputs, nil
	}

	if opts.inputsStr == "" || opts.outputsStr == "" {
		return nil, nil, apperrors.New(apperrors.ErrCodeInvalidInput,
			"either --file or both --inputs and --outputs are required")
	}

	if opts.total > 0 {
		inFloats, err := parseFloatFlows(opts.inputsStr)
		if err != nil {
			return nil, nil, err
		}
		outFloats, err := parseFloatFlows(opts.outputsStr)
		if err != nil {
			return nil, nil, err
		}
		return balancer.IntegerFlows(inFloats, opts.total), balancer.IntegerFlows(outFloats, opts.total), nil
	}

	if inputs, err = parseFlows(opts.inputsStr); err != nil {
		return nil, nil, err
	}
	if outputs, err = parseFlows(opts.outputsStr); err != nil {
		return nil, nil, err
	}
	return inputs, outputs, nil
}

// writeArtifacts renders the graph into every requested format and writes
// the files, going through the artifact cache for the Graphviz-backed ones.
func writeArtifacts(ctx context.Context, g *graph.Graph, opts *designOpts) error {
	logger := loggerFromContext(ctx)
	dot := render.ToDOT(g)

	artifactCache := newArtifactCache(opts.noCache, logger)
	defer artifactCache.Close()

	for _, format := range opts.formats {
		path := artifactPath(opts.output, format, len(opts.formats))

		var data []byte
		switch format {
		case "dot":
			data = []byte(dot)
		case "json":
			var buf strings.Builder
			if err := graphio.WriteJSON(g, &buf); err != nil {
				return err
			}
			data = []byte(buf.String())
		case "svg", "png":
			rendered, cached, err := renderCached(ctx, artifactCache, dot, format)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			if cached {
				logger.Debugf("%s served from cache", format)
			}
			data = rendered
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// renderCached renders DOT to the given format through the cache.
func renderCached(ctx context.Context, c pkgcache.Cache, dot, format string) ([]byte, bool, error) {
	key := pkgcache.ArtifactKey(dot, format)
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
	spinner.Start()

	var data []byte
	var err error
	switch format {
	case "svg":
		data, err = render.SVG(dot)
	case "png":
		data, err = render.PNG(dot)
	}
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return nil, false, err
	}
	spinner.Stop()

	if err := c.Set(ctx, key, data, artifactTTL); err != nil {
		// A broken cache never fails the render.
		loggerFromContext(ctx).Warnf("cache write failed: %v", err)
	}
	return data, false, nil
}

// newArtifactCache opens the file cache, falling back to a null cache when
// disabled or unavailable.
func newArtifactCache(disabled bool, logger interface{ Warnf(string, ...any) }) pkgcache.Cache {
	if disabled {
		return pkgcache.NewNullCache()
	}
	dir, err := cacheDir()
	if err == nil {
		var c pkgcache.Cache
		if c, err = pkgcache.NewFileCache(dir); err == nil {
			return c
		}
	}
	logger.Warnf("render cache unavailable: %v", err)
	return pkgcache.NewNullCache()
}

// artifactPath decides where one rendered format lands. A single format with
// an explicit --output writes exactly there; otherwise --output (default
// "balancer") is a base path that gets the format extension.
func artifactPath(output, format string, formatCount int) string {
	if output == "" {
		output = "balancer"
	}
	if formatCount == 1 && filepath.Ext(output) != "" {
		return output
	}
	return output + "." + format
}
