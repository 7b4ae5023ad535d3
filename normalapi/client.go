package normalapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Client represents a normal-api client
type Client struct {
	baseURL string
	session *Session
	logger  zerolog.Logger
}

// NewClient creates a new normal-api client. No connection is made until
// the first call.
func NewClient(logger zerolog.Logger, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	u, err := url.Parse(o.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", o.baseURL)
	}

	// Endpoint paths are appended directly
	baseURL := strings.TrimRight(o.baseURL, "/") + "/"

	return &Client{
		baseURL: baseURL,
		session: NewSession(o.httpClient, o.timeout, o.userAgent, logger),
		logger:  logger,
	}, nil
}

// Close releases the pooled connections. It is safe to call more than once.
func (c *Client) Close() {
	c.session.Close()
}

// endpointURL builds the request URL. Spaces are sent as %20.
func (c *Client) endpointURL(endpoint string, params url.Values) string {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + strings.ReplaceAll(params.Encode(), "+", "%20")
	}
	return u
}

// get calls an endpoint and returns the decoded body of a successful response
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (fields, error) {
	resp, err := c.session.Request(ctx, c.endpointURL(endpoint, params))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}

	data, err := classify(resp)
	if err != nil {
		c.logClassified(endpoint, err)
		return nil, err
	}
	return data, nil
}

func (c *Client) logClassified(endpoint string, err error) {
	var apiErr *APIError
	var httpErr *HTTPError
	switch {
	case errors.As(err, &apiErr):
		c.logger.Debug().Str("endpoint", endpoint).Int("status", apiErr.StatusCode).
			Str("kind", apiErr.kind.Error()).Msg("normal-api returned an error")
	case errors.As(err, &httpErr):
		c.logger.Debug().Str("endpoint", endpoint).Int("status", httpErr.StatusCode).
			Str("content_type", httpErr.ContentType).Msg("normal-api returned an unexpected response")
	}
}

// getField calls an endpoint returning a single string field
func (c *Client) getField(ctx context.Context, endpoint string, params url.Values, key string) (string, error) {
	data, err := c.get(ctx, endpoint, params)
	if err != nil {
		return "", err
	}
	value, err := data.required(key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", endpoint, err)
	}
	return value, nil
}

// fetchImage issues the secondary request for an image referenced by a
// previous response. The body is returned unread.
func (c *Client) fetchImage(ctx context.Context, data fields, key string) (*Image, error) {
	imageURL, err := data.required(key)
	if err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}

	resp, err := c.session.Request(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := resp.Text()
		return nil, &HTTPError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.ContentType,
			Body:        text,
			Response:    resp,
		}
	}
	return newImage(resp), nil
}

// Pastebin creates a paste. The privacy value is checked before any request
// is made.
func (c *Client) Pastebin(ctx context.Context, text string, privacy Privacy) (*Pastebin, error) {
	if !privacy.Valid() {
		return nil, newAPIError(http.StatusBadRequest,
			fmt.Sprintf("invalid privacy value %q, valid values: %s, %s", privacy, PrivacyPublic, PrivacyUnlisted))
	}

	data, err := c.get(ctx, "pastebin", url.Values{
		"text":    {text},
		"privacy": {string(privacy)},
	})
	if err != nil {
		return nil, err
	}
	return newPastebin(data, privacy), nil
}

// Imgur uploads an image by URL. An empty title is not sent.
func (c *Client) Imgur(ctx context.Context, imageURL, title string) (*Imgur, error) {
	params := url.Values{"url": {imageURL}}
	if title != "" {
		params.Set("title", title)
	}

	data, err := c.get(ctx, "imgur", params)
	if err != nil {
		return nil, err
	}
	image, err := c.fetchImage(ctx, data, "url")
	if err != nil {
		return nil, err
	}
	return newImgur(data, image), nil
}

// Ordinal returns the ordinal form of number, e.g. "1st"
func (c *Client) Ordinal(ctx context.Context, number int) (string, error) {
	return c.getField(ctx, "ordinal", url.Values{"num": {strconv.Itoa(number)}}, "ordinal")
}

// UserStatus looks up a Discord user's presence
func (c *Client) UserStatus(ctx context.Context, userID int64) (*User, error) {
	data, err := c.get(ctx, "userstatus", url.Values{"userid": {strconv.FormatInt(userID, 10)}})
	if err != nil {
		return nil, err
	}
	return newUser(data)
}

// InviteInfo describes a Discord invite code
func (c *Client) InviteInfo(ctx context.Context, code string) (*Invite, error) {
	data, err := c.get(ctx, "inviteinfo", url.Values{"code": {code}})
	if err != nil {
		return nil, err
	}
	return newInvite(data)
}

// TemplateInfo describes a Discord guild template
func (c *Client) TemplateInfo(ctx context.Context, code string) (*Template, error) {
	data, err := c.get(ctx, "templateinfo", url.Values{"code": {code}})
	if err != nil {
		return nil, err
	}
	return newTemplate(data)
}

// Emojify rewrites text as emoji
func (c *Client) Emojify(ctx context.Context, text string) (*Emojified, error) {
	data, err := c.get(ctx, "emojify", url.Values{"text": {text}})
	if err != nil {
		return nil, err
	}
	return newEmojified(data), nil
}

// ParseMilliseconds breaks a millisecond count into days, hours and so on
func (c *Client) ParseMilliseconds(ctx context.Context, milliseconds int64) (*ParsedMS, error) {
	data, err := c.get(ctx, "parsems", url.Values{"ms": {strconv.FormatInt(milliseconds, 10)}})
	if err != nil {
		return nil, err
	}
	return newParsedMS(data)
}

// Translate translates text into the given language code
func (c *Client) Translate(ctx context.Context, text, toLanguage string) (*Translated, error) {
	data, err := c.get(ctx, "translate", url.Values{
		"text": {text},
		"to":   {toLanguage},
	})
	if err != nil {
		return nil, err
	}
	return newTranslated(data), nil
}

// YoutubeVideoSearch returns the first video matching query
func (c *Client) YoutubeVideoSearch(ctx context.Context, query string) (*YoutubeVideo, error) {
	data, err := c.get(ctx, "youtube/searchvideo", url.Values{"query": {query}})
	if err != nil {
		return nil, err
	}
	return newYoutubeVideo(data), nil
}

// SafeNote stores a self-destructing note and returns its URL
func (c *Client) SafeNote(ctx context.Context, note string) (string, error) {
	return c.getField(ctx, "safenote", url.Values{"note": {note}}, "url")
}

// Encode encodes text
func (c *Client) Encode(ctx context.Context, text string) (string, error) {
	return c.getField(ctx, "encode", url.Values{"text": {text}}, "encoded")
}

// Decode reverses Encode
func (c *Client) Decode(ctx context.Context, text string) (string, error) {
	return c.getField(ctx, "decode", url.Values{"text": {text}}, "decoded")
}

// ReverseText reverses text
func (c *Client) ReverseText(ctx context.Context, text string) (string, error) {
	return c.getField(ctx, "reverse", url.Values{"text": {text}}, "reversed")
}

// ImageSearch fetches the first image matching query
func (c *Client) ImageSearch(ctx context.Context, query string) (*Image, error) {
	data, err := c.get(ctx, "image-search", url.Values{"query": {query}})
	if err != nil {
		return nil, err
	}
	return c.fetchImage(ctx, data, "image")
}

// RandomEmoji fetches a random emoji and its image. A category of 0 means
// any category.
//
// The API only receives nsfw=true, and only together with a category; the
// nsfw argument itself is recorded on the result and never sent.
func (c *Client) RandomEmoji(ctx context.Context, category int, nsfw bool) (*RandomEmoji, error) {
	params := url.Values{}
	if category != 0 {
		params.Set("category", strconv.Itoa(category))
		params.Set("nsfw", "true")
	}

	data, err := c.get(ctx, "randomemoji", params)
	if err != nil {
		return nil, err
	}
	image, err := c.fetchImage(ctx, data, "image")
	if err != nil {
		return nil, err
	}

	emoji, err := newRandomEmoji(data, nsfw, image)
	if err != nil {
		image.Close()
		return nil, err
	}
	return emoji, nil
}

// HasVotedOnTopgg reports whether a user has voted for a bot on top.gg.
// Only the string "true" counts; a JSON boolean does not.
func (c *Client) HasVotedOnTopgg(ctx context.Context, botID, userID int64, token string) (bool, error) {
	data, err := c.get(ctx, "topgg/hasvoted", url.Values{
		"bot":   {strconv.FormatInt(botID, 10)},
		"user":  {strconv.FormatInt(userID, 10)},
		"token": {token},
	})
	if err != nil {
		return false, err
	}
	voted, ok := data["voted"].(string)
	return ok && voted == "true", nil
}
