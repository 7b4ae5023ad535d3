package normalapi

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "default", baseURL: DefaultBaseURL},
		{name: "no trailing slash", baseURL: "http://localhost:8080"},
		{name: "missing scheme", baseURL: "normal-api.ml", wantErr: true},
		{name: "unparseable", baseURL: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(zerolog.Nop(), WithBaseURL(tt.baseURL))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "/", client.baseURL[len(client.baseURL)-1:])
			assert.Nil(t, client.session.client)
		})
	}
}

func TestEndpointURL(t *testing.T) {
	client, err := NewClient(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "https://normal-api.ml/ordinal", client.endpointURL("ordinal", nil))
	assert.Equal(t,
		"https://normal-api.ml/translate?text=hello%20world&to=nl",
		client.endpointURL("translate", map[string][]string{"text": {"hello world"}, "to": {"nl"}}))
	assert.Equal(t,
		"https://normal-api.ml/encode?text=a%2Bb",
		client.endpointURL("encode", map[string][]string{"text": {"a+b"}}))
}

func TestTextEndpoints(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/ordinal":
			assert.Equal(t, "22", q.Get("num"))
			writeJSON(w, http.StatusOK, map[string]string{"ordinal": "22nd"})
		case "/encode":
			writeJSON(w, http.StatusOK, map[string]string{"encoded": "aGk=", "text": q.Get("text")})
		case "/decode":
			writeJSON(w, http.StatusOK, map[string]string{"decoded": "hi"})
		case "/reverse":
			assert.Equal(t, "hello world", q.Get("text"))
			writeJSON(w, http.StatusOK, map[string]string{"reversed": "dlrow olleh"})
		case "/safenote":
			assert.Equal(t, "secret", q.Get("note"))
			writeJSON(w, http.StatusOK, map[string]string{"url": "https://safenote.co/r/1"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	ordinal, err := client.Ordinal(ctx, 22)
	require.NoError(t, err)
	assert.Equal(t, "22nd", ordinal)

	encoded, err := client.Encode(ctx, "hi")
	require.NoError(t, err)
	assert.Equal(t, "aGk=", encoded)

	decoded, err := client.Decode(ctx, "aGk=")
	require.NoError(t, err)
	assert.Equal(t, "hi", decoded)

	reversed, err := client.ReverseText(ctx, "hello world")
	require.NoError(t, err)
	assert.Equal(t, "dlrow olleh", reversed)

	note, err := client.SafeNote(ctx, "secret")
	require.NoError(t, err)
	assert.Equal(t, "https://safenote.co/r/1", note)
}

func TestMissingScalarField(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"text": "hi"})
	})

	_, err := client.Encode(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Contains(t, err.Error(), "encoded")
}

func TestPastebin(t *testing.T) {
	t.Run("invalid privacy makes no request", func(t *testing.T) {
		client, transport, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		_, err := client.Pastebin(context.Background(), "text", Privacy("invalid"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadRequest))
		assert.Contains(t, err.Error(), "public, unlisted")
		assert.Equal(t, int32(0), transport.calls.Load())
	})

	t.Run("creates paste", func(t *testing.T) {
		client, transport, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/pastebin", r.URL.Path)
			assert.Equal(t, "unlisted", r.URL.Query().Get("privacy"))
			writeJSON(w, http.StatusOK, map[string]string{
				"code": "xyz",
				"url":  "https://paste.example/xyz",
				"raw":  "https://paste.example/raw/xyz",
				"text": r.URL.Query().Get("text"),
			})
		})

		paste, err := client.Pastebin(context.Background(), "package main", PrivacyUnlisted)
		require.NoError(t, err)
		assert.Equal(t, &Pastebin{
			Code:    "xyz",
			URL:     "https://paste.example/xyz",
			Raw:     "https://paste.example/raw/xyz",
			Text:    "package main",
			Privacy: PrivacyUnlisted,
		}, paste)
		assert.Equal(t, int32(1), transport.calls.Load())
	})
}

func TestEmbeddedStatus(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": 404, "error": "Unknown invite"})
	})

	_, err := client.InviteInfo(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Unknown invite", apiErr.Message)
}

func TestNonJSONResponse(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	})

	_, err := client.Emojify(context.Background(), "hi")
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, "upstream down", httpErr.Body)
}

func TestModelEndpoints(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/userstatus":
			assert.Equal(t, "55", q.Get("userid"))
			writeJSON(w, http.StatusOK, map[string]string{
				"username": "bob", "discrim": "1234", "id": "55", "user_status": "undefined",
			})
		case "/templateinfo":
			writeJSON(w, http.StatusOK, map[string]any{
				"code": q.Get("code"), "usage_count": 3, "roles": "a,b,c",
				"creator_tag": "carol#4321", "creator_id": "77",
				"guild_name": "Source", "guild_id": "300", "guild_verification_level": 1,
			})
		case "/emojify":
			writeJSON(w, http.StatusOK, map[string]string{"text": "ab", "emojify": "🇦 🇧"})
		case "/parsems":
			assert.Equal(t, "90061001", q.Get("ms"))
			writeJSON(w, http.StatusOK, map[string]int{
				"days": 1, "hours": 1, "minutes": 1, "seconds": 1, "milliseconds": 1,
				"microseconds": 0, "nanoseconds": 0,
			})
		case "/translate":
			assert.Equal(t, "nl", q.Get("to"))
			writeJSON(w, http.StatusOK, map[string]string{"text": "hello", "translated": "hallo", "translatedTo": "nl"})
		case "/youtube/searchvideo":
			writeJSON(w, http.StatusOK, map[string]string{
				"title": "Go", "description": "talk", "url": "https://youtu.be/x", "channel_id": "UC1",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	user, err := client.UserStatus(ctx, 55)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, 1234, user.Discriminator)
	assert.Nil(t, user.Status)

	tmpl, err := client.TemplateInfo(ctx, "tmpl")
	require.NoError(t, err)
	assert.Equal(t, "tmpl", tmpl.Code)
	assert.Equal(t, int64(3), tmpl.UsageCount)
	assert.Equal(t, []string{"a", "b", "c"}, tmpl.Roles)
	assert.Empty(t, tmpl.Channels)

	emojified, err := client.Emojify(ctx, "ab")
	require.NoError(t, err)
	assert.Equal(t, []string{"🇦", "🇧"}, emojified.Tokens)

	parsed, err := client.ParseMilliseconds(ctx, 90061001)
	require.NoError(t, err)
	assert.Equal(t, int64(90061001), parsed.Duration().Milliseconds())

	translated, err := client.Translate(ctx, "hello", "nl")
	require.NoError(t, err)
	assert.Equal(t, &Translated{Input: "hello", Text: "hallo", TranslatedTo: "nl"}, translated)

	video, err := client.YoutubeVideoSearch(ctx, "golang")
	require.NoError(t, err)
	assert.Equal(t, "UC1", video.ChannelID)
}

func TestImageEndpoints(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")

	var base string
	client, transport, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/imgur":
			assert.Equal(t, "https://example.com/cat.png", r.URL.Query().Get("url"))
			assert.False(t, r.URL.Query().Has("title"))
			writeJSON(w, http.StatusOK, map[string]string{"code": "abc", "type": "image/png", "url": base + "/img/cat.png"})
		case "/image-search":
			writeJSON(w, http.StatusOK, map[string]string{"image": base + "/img/search.png"})
		case "/img/cat.png", "/img/search.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(png)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	base = server.URL
	ctx := context.Background()

	imgur, err := client.Imgur(ctx, "https://example.com/cat.png", "")
	require.NoError(t, err)
	assert.Equal(t, "abc", imgur.Code)
	assert.Equal(t, "image/png", imgur.Type)
	assert.Equal(t, server.URL+"/img/cat.png", imgur.Image.URL)
	assert.Equal(t, "image/png", imgur.Image.ContentType())

	data, err := imgur.Image.Bytes()
	require.NoError(t, err)
	assert.Equal(t, png, data)
	assert.Equal(t, int32(2), transport.calls.Load())

	image, err := client.ImageSearch(ctx, "cat")
	require.NoError(t, err)
	reader, err := image.Reader()
	require.NoError(t, err)
	assert.Equal(t, int64(len(png)), reader.Size())
	assert.Equal(t, int32(4), transport.calls.Load())
}

func TestImageFetchFailure(t *testing.T) {
	var base string
	client, _, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/image-search":
			writeJSON(w, http.StatusOK, map[string]string{"image": base + "/gone.png"})
		default:
			http.NotFound(w, r)
		}
	})
	base = server.URL

	_, err := client.ImageSearch(context.Background(), "cat")
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

func TestImageMissingURL(t *testing.T) {
	client, transport, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"image": "undefined"})
	})

	_, err := client.ImageSearch(context.Background(), "cat")
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Equal(t, int32(1), transport.calls.Load())
}

func TestRandomEmoji(t *testing.T) {
	tests := []struct {
		name      string
		category  int
		nsfw      bool
		wantQuery string
	}{
		{name: "no category sends nothing", category: 0, nsfw: false, wantQuery: ""},
		{name: "nsfw alone is not sent", category: 0, nsfw: true, wantQuery: ""},
		{name: "category always sends nsfw=true", category: 3, nsfw: false, wantQuery: "category=3&nsfw=true"},
		{name: "category with nsfw", category: 3, nsfw: true, wantQuery: "category=3&nsfw=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var base string
			queries := make(chan string, 1)
			client, _, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/randomemoji":
					queries <- r.URL.RawQuery
					writeJSON(w, http.StatusOK, map[string]string{
						"title": "blobwave", "category": "3", "nsfw": "false", "image": base + "/emoji.gif",
					})
				case "/emoji.gif":
					w.Header().Set("Content-Type", "image/gif")
					w.Write([]byte("GIF89a"))
				}
			})
			base = server.URL

			emoji, err := client.RandomEmoji(context.Background(), tt.category, tt.nsfw)
			require.NoError(t, err)
			defer emoji.Image.Close()

			assert.Equal(t, tt.wantQuery, <-queries)
			assert.Equal(t, "blobwave", emoji.Name)
			assert.Equal(t, 3, emoji.Category)
			assert.Equal(t, tt.nsfw, emoji.NSFW)
			assert.Equal(t, server.URL+"/emoji.gif", emoji.Image.URL)
		})
	}
}

func TestHasVotedOnTopgg(t *testing.T) {
	tests := []struct {
		name  string
		voted any
		want  bool
	}{
		{"string true", "true", true},
		{"json true", true, false},
		{"capitalised", "False", false},
		{"title case true", "True", false},
		{"json false", false, false},
		{"absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				assert.Equal(t, "/topgg/hasvoted", r.URL.Path)
				assert.Equal(t, "10", q.Get("bot"))
				assert.Equal(t, "20", q.Get("user"))
				assert.Equal(t, "tok", q.Get("token"))

				body := map[string]any{}
				if tt.voted != nil {
					body["voted"] = tt.voted
				}
				writeJSON(w, http.StatusOK, body)
			})

			voted, err := client.HasVotedOnTopgg(context.Background(), 10, 20, "tok")
			require.NoError(t, err)
			assert.Equal(t, tt.want, voted)
		})
	}
}

func TestClientClose(t *testing.T) {
	client, transport, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"reversed": "olleh"})
	})

	client.Close()
	assert.Equal(t, int32(0), transport.closes.Load())

	_, err := client.ReverseText(context.Background(), "hello")
	require.NoError(t, err)

	client.Close()
	client.Close()
	assert.Equal(t, int32(1), transport.closes.Load())
}
