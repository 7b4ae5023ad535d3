package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Soheab/normalapi/normalapi"
)

// MaxConcurrency bounds the number of transforms in flight
const MaxConcurrency = 4

var transformOps []string

// transformFuncs are the text transforms the transform command can run
var transformFuncs = map[string]func(ctx context.Context, api normalapi.TextAPI, text string) (string, error){
	"encode":  func(ctx context.Context, api normalapi.TextAPI, text string) (string, error) { return api.Encode(ctx, text) },
	"decode":  func(ctx context.Context, api normalapi.TextAPI, text string) (string, error) { return api.Decode(ctx, text) },
	"reverse": func(ctx context.Context, api normalapi.TextAPI, text string) (string, error) { return api.ReverseText(ctx, text) },
	"emojify": func(ctx context.Context, api normalapi.TextAPI, text string) (string, error) {
		e, err := api.Emojify(ctx, text)
		if err != nil {
			return "", err
		}
		return e.Emojis, nil
	},
}

// TransformResult is the output of one transform
type TransformResult struct {
	Op     string `json:"op"`
	Output string `json:"output"`
}

// runTransforms runs every op against text concurrently and returns the
// results in the order the ops were given. The first failure cancels the rest.
func runTransforms(ctx context.Context, api normalapi.TextAPI, text string, ops []string) ([]TransformResult, error) {
	for _, op := range ops {
		if _, ok := transformFuncs[op]; !ok {
			return nil, fmt.Errorf("unknown transform %q (valid: %s)", op, strings.Join(validTransforms(), ", "))
		}
	}

	results := make([]TransformResult, len(ops))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrency)

	for i, op := range ops {
		g.Go(func() error {
			out, err := transformFuncs[op](ctx, api, text)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			// Each goroutine owns its index
			results[i] = TransformResult{Op: op, Output: out}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validTransforms() []string {
	names := make([]string, 0, len(transformFuncs))
	for name := range transformFuncs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var transformCmd = &cobra.Command{
	Use:   "transform TEXT...",
	Short: "Run several text transforms at once",
	Long: `Run several text endpoints against the same text in parallel and print
each result in the order given by --ops.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := joinArgs(args)
		logger.Debug().Strs("ops", transformOps).Msg("Running transforms")

		results, err := runTransforms(cmd.Context(), apiClient, text, transformOps)
		if err != nil {
			return err
		}
		return printResult(cmd, results, func(w io.Writer) {
			for _, r := range results {
				fmt.Fprintf(w, "%-8s %s\n", r.Op+":", r.Output)
			}
		})
	},
}

func init() {
	transformCmd.Flags().StringSliceVar(&transformOps, "ops", []string{"encode", "reverse", "emojify"},
		"transforms to run (encode, decode, reverse, emojify)")
	rootCmd.AddCommand(transformCmd)
}
