// Package normalapi provides a client for the normal-api utility service.
//
// normal-api exposes a grab bag of small endpoints: text transforms
// (encode, reverse, emojify, translate), Discord lookups (user status,
// invites, templates), top.gg vote checks and image fetches. Every call is a
// single GET with query parameters answered by a JSON object.
//
// # Architecture
//
//   - Session: the shared HTTP client, created on first use and released by Close
//   - classify: turns a Response into the decoded body or a typed error
//   - Types: read-only result models built from the decoded body
//   - Client: one method per endpoint
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := normalapi.NewClient(logger, normalapi.WithTimeout(10*time.Second))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	ordinal, err := client.Ordinal(ctx, 22) // "22nd"
//
// Image-bearing results (Imgur, ImageSearch, RandomEmoji) hold the image
// response open. Read it with Image.Bytes or Image.Reader, or release it
// with Image.Close.
//
// # Error Handling
//
// The API may report a failure inside a 200 response through a "status"
// field; that value wins over the HTTP status. Statuses 400, 403, 404 and
// 500 produce an *APIError that matches ErrBadRequest, ErrForbidden,
// ErrNotFound or ErrInternalServerError:
//
//	if errors.Is(err, normalapi.ErrNotFound) {
//		// unknown invite code
//	}
//
// Anything else, including any non-JSON response, is an *HTTPError holding
// the raw body.
//
// # Absent values
//
// The API sends the strings "undefined" and "null" for missing fields.
// Optional fields are pointers and are nil in that case; comma separated
// lists are empty slices.
package normalapi
