package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// printResult writes result to stdout. An --expr flag prints the value of
// the expression instead; JSON output encodes the result as is; otherwise
// text writes the human readable form.
func printResult(cmd *cobra.Command, result any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()

	if exprFlag != "" {
		program, err := compiler.Compile(exprFlag)
		if err != nil {
			return err
		}
		value, err := program.Eval(result)
		if err != nil {
			return err
		}
		if s, ok := value.(string); ok {
			fmt.Fprintln(w, s)
			return nil
		}
		return writeJSON(w, value)
	}

	if cfg != nil && cfg.Output.Format == "json" {
		return writeJSON(w, result)
	}

	text(w)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// printString prints a scalar endpoint result
func printString(cmd *cobra.Command, value string) error {
	return printResult(cmd, value, func(w io.Writer) {
		fmt.Fprintln(w, value)
	})
}

// joinArgs treats all positional arguments as one text value
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

// optional renders an absent value as "-"
func optional(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// saveImage writes image bytes to path
func saveImage(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	logger.Info().Str("path", path).Int("bytes", len(data)).Msg("Saved image")
	return nil
}
