package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Soheab/normalapi/normalapi"
)

var (
	pastePrivacy string
	translateTo  string
)

var pastebinCmd = &cobra.Command{
	Use:   "pastebin TEXT...",
	Short: "Create a paste",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paste, err := apiClient.Pastebin(cmd.Context(), joinArgs(args), normalapi.Privacy(pastePrivacy))
		if err != nil {
			return err
		}
		return printResult(cmd, paste, func(w io.Writer) {
			fmt.Fprintf(w, "%s (%s)\n", paste.URL, paste.Privacy)
			fmt.Fprintf(w, "  Raw: %s\n", paste.Raw)
		})
	},
}

var ordinalCmd = &cobra.Command{
	Use:   "ordinal NUMBER",
	Short: "Print the ordinal form of a number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", args[0], err)
		}
		ordinal, err := apiClient.Ordinal(cmd.Context(), n)
		if err != nil {
			return err
		}
		return printString(cmd, ordinal)
	},
}

var emojifyCmd = &cobra.Command{
	Use:   "emojify TEXT...",
	Short: "Rewrite text as emoji",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		emojified, err := apiClient.Emojify(cmd.Context(), joinArgs(args))
		if err != nil {
			return err
		}
		return printResult(cmd, emojified, func(w io.Writer) {
			fmt.Fprintln(w, emojified.Emojis)
		})
	},
}

var parsemsCmd = &cobra.Command{
	Use:   "parsems MILLISECONDS",
	Short: "Break a millisecond count into days, hours, minutes and so on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid milliseconds %q: %w", args[0], err)
		}
		parsed, err := apiClient.ParseMilliseconds(cmd.Context(), ms)
		if err != nil {
			return err
		}
		return printResult(cmd, parsed, func(w io.Writer) {
			fmt.Fprintf(w, "%dd %dh %dm %ds %dms %dµs %dns (%s)\n",
				parsed.Days, parsed.Hours, parsed.Minutes, parsed.Seconds,
				parsed.Milliseconds, parsed.Microseconds, parsed.Nanoseconds, parsed.Duration())
		})
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate TEXT...",
	Short: "Translate text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		translated, err := apiClient.Translate(cmd.Context(), joinArgs(args), translateTo)
		if err != nil {
			return err
		}
		return printResult(cmd, translated, func(w io.Writer) {
			fmt.Fprintf(w, "[%s] %s\n", translated.TranslatedTo, translated.Text)
		})
	},
}

var safenoteCmd = &cobra.Command{
	Use:   "safenote NOTE...",
	Short: "Store a self-destructing note and print its URL",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := apiClient.SafeNote(cmd.Context(), joinArgs(args))
		if err != nil {
			return err
		}
		return printString(cmd, url)
	},
}

// scalarTextCmd builds the commands that map text to a single string
func scalarTextCmd(use, short string, call func(*normalapi.Client, context.Context, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " TEXT...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := call(apiClient, cmd.Context(), joinArgs(args))
			if err != nil {
				return err
			}
			return printString(cmd, out)
		},
	}
}

func init() {
	pastebinCmd.Flags().StringVar(&pastePrivacy, "privacy", string(normalapi.PrivacyUnlisted), "paste privacy (public or unlisted)")
	translateCmd.Flags().StringVar(&translateTo, "to", "en", "target language code")

	rootCmd.AddCommand(pastebinCmd, ordinalCmd, emojifyCmd, parsemsCmd, translateCmd, safenoteCmd)
	rootCmd.AddCommand(
		scalarTextCmd("encode", "Encode text", (*normalapi.Client).Encode),
		scalarTextCmd("decode", "Decode text produced by encode", (*normalapi.Client).Decode),
		scalarTextCmd("reverse", "Reverse text", (*normalapi.Client).ReverseText),
	)
}
