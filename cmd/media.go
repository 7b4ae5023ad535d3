package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Soheab/normalapi/normalapi"
)

var (
	imageOutput   string
	imgurTitle    string
	emojiCategory int
	emojiNSFW     bool
)

// handleImage saves the image when --output is set and releases it otherwise
func handleImage(image *normalapi.Image) error {
	if imageOutput == "" {
		return image.Close()
	}
	data, err := image.Bytes()
	if err != nil {
		return err
	}
	return saveImage(imageOutput, data)
}

var imgurCmd = &cobra.Command{
	Use:   "imgur URL",
	Short: "Re-host an image on imgur",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imgur, err := apiClient.Imgur(cmd.Context(), args[0], imgurTitle)
		if err != nil {
			return err
		}
		if err := handleImage(imgur.Image); err != nil {
			return err
		}
		return printResult(cmd, imgur, func(w io.Writer) {
			fmt.Fprintf(w, "%s (%s)\n", imgur.Image.URL, imgur.Type)
		})
	},
}

var imageSearchCmd = &cobra.Command{
	Use:   "image-search QUERY...",
	Short: "Fetch the first image matching a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := apiClient.ImageSearch(cmd.Context(), joinArgs(args))
		if err != nil {
			return err
		}
		if err := handleImage(image); err != nil {
			return err
		}
		return printResult(cmd, image, func(w io.Writer) {
			fmt.Fprintln(w, image.URL)
		})
	},
}

var randomEmojiCmd = &cobra.Command{
	Use:   "random-emoji",
	Short: "Fetch a random emoji",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		emoji, err := apiClient.RandomEmoji(cmd.Context(), emojiCategory, emojiNSFW)
		if err != nil {
			return err
		}
		if err := handleImage(emoji.Image); err != nil {
			return err
		}
		return printResult(cmd, emoji, func(w io.Writer) {
			fmt.Fprintf(w, "%s (category %d)\n", emoji.Name, emoji.Category)
			fmt.Fprintf(w, "  Image: %s\n", emoji.Image.URL)
		})
	},
}

var youtubeCmd = &cobra.Command{
	Use:   "youtube QUERY...",
	Short: "Find a YouTube video",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		video, err := apiClient.YoutubeVideoSearch(cmd.Context(), joinArgs(args))
		if err != nil {
			return err
		}
		return printResult(cmd, video, func(w io.Writer) {
			fmt.Fprintf(w, "%s\n  %s\n  Channel: %s\n", video.Title, video.URL, video.ChannelID)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{imgurCmd, imageSearchCmd, randomEmojiCmd} {
		c.Flags().StringVarP(&imageOutput, "output", "o", "", "save the image to this file")
	}
	imgurCmd.Flags().StringVar(&imgurTitle, "title", "", "image title")
	randomEmojiCmd.Flags().IntVar(&emojiCategory, "category", 0, "emoji category (0 for any)")
	randomEmojiCmd.Flags().BoolVar(&emojiNSFW, "nsfw", false, "mark the result as NSFW")

	rootCmd.AddCommand(imgurCmd, imageSearchCmd, randomEmojiCmd, youtubeCmd)
}
