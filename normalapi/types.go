package normalapi

import (
	"fmt"
	"strings"
	"time"
)

// Privacy is the visibility of a pastebin entry
type Privacy string

const (
	// PrivacyPublic lists the paste publicly
	PrivacyPublic Privacy = "public"
	// PrivacyUnlisted hides the paste from listings
	PrivacyUnlisted Privacy = "unlisted"
)

// Valid reports whether p is one the API accepts
func (p Privacy) Valid() bool {
	return p == PrivacyPublic || p == PrivacyUnlisted
}

// TaggedIdentity is a Discord user parsed from a "name#discriminator" tag
// and a separate numeric id.
type TaggedIdentity struct {
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	ID            int64  `json:"id"`
}

func parseIdentity(f fields, tagKey, idKey string) (TaggedIdentity, error) {
	id, err := f.integer(idKey)
	if err != nil {
		return TaggedIdentity{}, err
	}

	tag := f.str(tagKey)
	ident := TaggedIdentity{Username: tag, ID: id}
	if i := strings.LastIndex(tag, "#"); i >= 0 {
		ident.Username = tag[:i]
		ident.Discriminator = tag[i+1:]
	}
	return ident, nil
}

// DisplayName returns the "name#discriminator" form
func (t TaggedIdentity) DisplayName() string {
	if t.Discriminator == "" {
		return t.Username
	}
	return t.Username + "#" + t.Discriminator
}

// NumericID returns the snowflake id
func (t TaggedIdentity) NumericID() int64 {
	return t.ID
}

// Pastebin is a created paste
type Pastebin struct {
	Code    string  `json:"code"`
	URL     string  `json:"url"`
	Raw     string  `json:"raw"`
	Text    string  `json:"text"`
	Privacy Privacy `json:"privacy"`
}

func newPastebin(f fields, privacy Privacy) *Pastebin {
	return &Pastebin{
		Code:    f.str("code"),
		URL:     f.str("url"),
		Raw:     f.str("raw"),
		Text:    f.str("text"),
		Privacy: privacy,
	}
}

// Imgur is an image re-hosted on imgur
type Imgur struct {
	Code  string `json:"code"`
	Type  string `json:"type"`
	Image *Image `json:"image"`
}

func newImgur(f fields, image *Image) *Imgur {
	return &Imgur{
		Code:  f.str("code"),
		Type:  f.str("type"),
		Image: image,
	}
}

// Activity is the presence block of a User
type Activity struct {
	Type  *string `json:"type"`
	Text  *string `json:"text"`
	Emoji *string `json:"emoji"`
}

// User is a Discord user's current status
type User struct {
	Username      string   `json:"username"`
	ID            int64    `json:"id"`
	Discriminator int      `json:"discriminator"`
	Tag           *string  `json:"tag"`
	Status        *string  `json:"status"`
	Activity      Activity `json:"activity"`
}

func newUser(f fields) (*User, error) {
	id, err := f.integer("id")
	if err != nil {
		return nil, err
	}
	discrim, err := f.integer("discrim")
	if err != nil {
		return nil, err
	}

	return &User{
		Username:      f.str("username"),
		ID:            id,
		Discriminator: int(discrim),
		Tag:           f.optional("tag"),
		Status:        f.optional("user_status"),
		Activity: Activity{
			Type:  f.optional("status_type"),
			Text:  f.optional("custom_status"),
			Emoji: f.optional("custom_status_emoji"),
		},
	}, nil
}

// DisplayName returns the user's tag, built from username and discriminator
// when the API did not send one.
func (u *User) DisplayName() string {
	if u.Tag != nil {
		return *u.Tag
	}
	return fmt.Sprintf("%s#%04d", u.Username, u.Discriminator)
}

// InviteGuild is the guild an invite points to
type InviteGuild struct {
	Name        string   `json:"name"`
	ID          int64    `json:"id"`
	Members     *int64   `json:"members"`
	Description *string  `json:"description"`
	Features    []string `json:"features"`
}

// InviteChannel is the channel an invite points to
type InviteChannel struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

// Invite describes a Discord invite code
type Invite struct {
	Code    string         `json:"code"`
	URL     string         `json:"url"`
	Inviter TaggedIdentity `json:"inviter"`
	Guild   InviteGuild    `json:"guild"`
	Channel InviteChannel  `json:"channel"`
}

func newInvite(f fields) (*Invite, error) {
	inviter, err := parseIdentity(f, "inviter_tag", "inviter_id")
	if err != nil {
		return nil, err
	}
	guildID, err := f.integer("guild_id")
	if err != nil {
		return nil, err
	}
	members, err := f.optionalInt("guild_members")
	if err != nil {
		return nil, err
	}
	channelID, err := f.integer("channel_id")
	if err != nil {
		return nil, err
	}

	return &Invite{
		Code:    f.str("code"),
		URL:     f.str("url"),
		Inviter: inviter,
		Guild: InviteGuild{
			Name:        f.str("guild_name"),
			ID:          guildID,
			Members:     members,
			Description: f.optional("guild_description"),
			Features:    f.list("guild_features"),
		},
		Channel: InviteChannel{
			Name: f.str("channel_name"),
			ID:   channelID,
		},
	}, nil
}

// TemplateGuild is the source guild of a template
type TemplateGuild struct {
	Name              string `json:"name"`
	ID                int64  `json:"id"`
	Region            string `json:"region"`
	VerificationLevel int    `json:"verification_level"`
}

// Template describes a Discord guild template
type Template struct {
	Code        string         `json:"code"`
	URL         string         `json:"url"`
	Description *string        `json:"description"`
	UsageCount  int64          `json:"usage_count"`
	Roles       []string       `json:"roles"`
	Channels    []string       `json:"channels"`
	Creator     TaggedIdentity `json:"creator"`
	Guild       TemplateGuild  `json:"guild"`
}

func newTemplate(f fields) (*Template, error) {
	usage, err := f.integer("usage_count")
	if err != nil {
		return nil, err
	}
	creator, err := parseIdentity(f, "creator_tag", "creator_id")
	if err != nil {
		return nil, err
	}
	guildID, err := f.integer("guild_id")
	if err != nil {
		return nil, err
	}
	level, err := f.integer("guild_verification_level")
	if err != nil {
		return nil, err
	}

	return &Template{
		Code:        f.str("code"),
		URL:         f.str("url"),
		Description: f.optional("description"),
		UsageCount:  usage,
		Roles:       f.list("roles"),
		Channels:    f.list("channels"),
		Creator:     creator,
		Guild: TemplateGuild{
			Name:              f.str("guild_name"),
			ID:                guildID,
			Region:            f.str("guild_region"),
			VerificationLevel: int(level),
		},
	}, nil
}

// Emojified is text rewritten as emoji
type Emojified struct {
	Text   string   `json:"text"`
	Emojis string   `json:"emojis"`
	Tokens []string `json:"tokens"`
}

func newEmojified(f fields) *Emojified {
	emojis := f.str("emojify")
	return &Emojified{
		Text:   f.str("text"),
		Emojis: emojis,
		Tokens: strings.Fields(emojis),
	}
}

// ParsedMS is a millisecond count broken into its components
type ParsedMS struct {
	Days         int64 `json:"days"`
	Hours        int64 `json:"hours"`
	Minutes      int64 `json:"minutes"`
	Seconds      int64 `json:"seconds"`
	Milliseconds int64 `json:"milliseconds"`
	Microseconds int64 `json:"microseconds"`
	Nanoseconds  int64 `json:"nanoseconds"`
}

func newParsedMS(f fields) (*ParsedMS, error) {
	var p ParsedMS
	for _, field := range []struct {
		key string
		dst *int64
	}{
		{"days", &p.Days},
		{"hours", &p.Hours},
		{"minutes", &p.Minutes},
		{"seconds", &p.Seconds},
		{"milliseconds", &p.Milliseconds},
		{"microseconds", &p.Microseconds},
		{"nanoseconds", &p.Nanoseconds},
	} {
		n, err := f.integer(field.key)
		if err != nil {
			return nil, err
		}
		*field.dst = n
	}
	return &p, nil
}

// Duration sums the components
func (p *ParsedMS) Duration() time.Duration {
	return time.Duration(p.Days)*24*time.Hour +
		time.Duration(p.Hours)*time.Hour +
		time.Duration(p.Minutes)*time.Minute +
		time.Duration(p.Seconds)*time.Second +
		time.Duration(p.Milliseconds)*time.Millisecond +
		time.Duration(p.Microseconds)*time.Microsecond +
		time.Duration(p.Nanoseconds)
}

// Translated is the result of a translation
type Translated struct {
	Input        string `json:"input"`
	Text         string `json:"text"`
	TranslatedTo string `json:"translated_to"`
}

func newTranslated(f fields) *Translated {
	return &Translated{
		Input:        f.str("text"),
		Text:         f.str("translated"),
		TranslatedTo: f.str("translatedTo"),
	}
}

// YoutubeVideo is the first hit of a YouTube search
type YoutubeVideo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ChannelID   string `json:"channel_id"`
}

func newYoutubeVideo(f fields) *YoutubeVideo {
	return &YoutubeVideo{
		Title:       f.str("title"),
		Description: f.str("description"),
		URL:         f.str("url"),
		ChannelID:   f.str("channel_id"),
	}
}

// RandomEmoji is an emoji picked by the API, with its image.
type RandomEmoji struct {
	Name     string `json:"name"`
	Category int    `json:"category"`
	// NSFW echoes the caller's argument; the API does not report it.
	NSFW  bool   `json:"nsfw"`
	Image *Image `json:"image"`
}

func newRandomEmoji(f fields, nsfw bool, image *Image) (*RandomEmoji, error) {
	category, err := f.integer("category")
	if err != nil {
		return nil, err
	}
	return &RandomEmoji{
		Name:     f.str("title"),
		Category: int(category),
		NSFW:     nsfw,
		Image:    image,
	}, nil
}

