package normalapi

import (
	"context"
)

// TextAPI groups the endpoints that take and return plain text
type TextAPI interface {
	Ordinal(ctx context.Context, number int) (string, error)
	Emojify(ctx context.Context, text string) (*Emojified, error)
	Translate(ctx context.Context, text, toLanguage string) (*Translated, error)
	ParseMilliseconds(ctx context.Context, milliseconds int64) (*ParsedMS, error)
	SafeNote(ctx context.Context, note string) (string, error)
	Encode(ctx context.Context, text string) (string, error)
	Decode(ctx context.Context, text string) (string, error)
	ReverseText(ctx context.Context, text string) (string, error)
}

// API defines the interface for every normal-api operation
type API interface {
	TextAPI

	Pastebin(ctx context.Context, text string, privacy Privacy) (*Pastebin, error)
	Imgur(ctx context.Context, imageURL, title string) (*Imgur, error)
	UserStatus(ctx context.Context, userID int64) (*User, error)
	InviteInfo(ctx context.Context, code string) (*Invite, error)
	TemplateInfo(ctx context.Context, code string) (*Template, error)
	YoutubeVideoSearch(ctx context.Context, query string) (*YoutubeVideo, error)
	ImageSearch(ctx context.Context, query string) (*Image, error)
	RandomEmoji(ctx context.Context, category int, nsfw bool) (*RandomEmoji, error)
	HasVotedOnTopgg(ctx context.Context, botID, userID int64, token string) (bool, error)

	// Close releases the pooled connections
	Close()
}

var _ API = (*Client)(nil)
