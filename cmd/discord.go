package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	topggBot   int64
	topggUser  int64
	topggToken string
)

var userCmd = &cobra.Command{
	Use:   "user USER_ID",
	Short: "Show a Discord user's status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}
		user, err := apiClient.UserStatus(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printResult(cmd, user, func(w io.Writer) {
			fmt.Fprintf(w, "%s (ID: %d)\n", user.DisplayName(), user.ID)
			fmt.Fprintf(w, "  Status: %s\n", optional(user.Status))
			if user.Activity.Type != nil || user.Activity.Text != nil {
				fmt.Fprintf(w, "  Activity: %s %s %s\n",
					optional(user.Activity.Type), optional(user.Activity.Emoji), optional(user.Activity.Text))
			}
		})
	},
}

var inviteCmd = &cobra.Command{
	Use:   "invite CODE",
	Short: "Describe a Discord invite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invite, err := apiClient.InviteInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, invite, func(w io.Writer) {
			fmt.Fprintf(w, "%s -> %s (ID: %d)\n", invite.URL, invite.Guild.Name, invite.Guild.ID)
			if invite.Guild.Members != nil {
				fmt.Fprintf(w, "  Members: %d\n", *invite.Guild.Members)
			}
			fmt.Fprintf(w, "  Description: %s\n", optional(invite.Guild.Description))
			if len(invite.Guild.Features) > 0 {
				fmt.Fprintf(w, "  Features: %s\n", strings.Join(invite.Guild.Features, ", "))
			}
			fmt.Fprintf(w, "  Channel: #%s (ID: %d)\n", invite.Channel.Name, invite.Channel.ID)
			fmt.Fprintf(w, "  Inviter: %s (ID: %d)\n", invite.Inviter.DisplayName(), invite.Inviter.NumericID())
		})
	},
}

var templateCmd = &cobra.Command{
	Use:   "template CODE",
	Short: "Describe a Discord guild template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := apiClient.TemplateInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, tmpl, func(w io.Writer) {
			fmt.Fprintf(w, "%s: %s (used %d times)\n", tmpl.Code, tmpl.URL, tmpl.UsageCount)
			fmt.Fprintf(w, "  Description: %s\n", optional(tmpl.Description))
			fmt.Fprintf(w, "  Guild: %s (ID: %d, region %s, verification %d)\n",
				tmpl.Guild.Name, tmpl.Guild.ID, tmpl.Guild.Region, tmpl.Guild.VerificationLevel)
			fmt.Fprintf(w, "  Roles: %s\n", strings.Join(tmpl.Roles, ", "))
			fmt.Fprintf(w, "  Channels: %s\n", strings.Join(tmpl.Channels, ", "))
			fmt.Fprintf(w, "  Creator: %s (ID: %d)\n", tmpl.Creator.DisplayName(), tmpl.Creator.NumericID())
		})
	},
}

var topggCmd = &cobra.Command{
	Use:   "topgg",
	Short: "Check whether a user has voted for a bot on top.gg",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bot, token := topggBot, topggToken
		if !cmd.Flags().Changed("bot") {
			bot = cfg.Topgg.BotID
		}
		if token == "" {
			token = cfg.Topgg.Token
		}
		if bot == 0 {
			return fmt.Errorf("bot id is required: pass --bot or set topgg.bot_id")
		}
		if token == "" {
			return fmt.Errorf("top.gg token is required: pass --token or set topgg.token")
		}

		voted, err := apiClient.HasVotedOnTopgg(cmd.Context(), bot, topggUser, token)
		if err != nil {
			return err
		}
		return printResult(cmd, voted, func(w io.Writer) {
			if voted {
				fmt.Fprintf(w, "✓ User %d has voted for bot %d\n", topggUser, bot)
			} else {
				fmt.Fprintf(w, "✗ User %d has not voted for bot %d\n", topggUser, bot)
			}
		})
	},
}

func init() {
	topggCmd.Flags().Int64Var(&topggBot, "bot", 0, "bot id (default from topgg.bot_id)")
	topggCmd.Flags().Int64Var(&topggUser, "user", 0, "user id")
	topggCmd.Flags().StringVar(&topggToken, "token", "", "top.gg token (default from topgg.token)")
	topggCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(userCmd, inviteCmd, templateCmd, topggCmd)
}
