package normalapi

import (
	"bytes"
	"errors"
)

// Image is a fetched image resource. The body stays on the wire until Bytes
// or Reader is called; Close discards it unread.
type Image struct {
	URL string `json:"url"`

	resp *Response
}

func newImage(resp *Response) *Image {
	return &Image{URL: resp.URL, resp: resp}
}

// ContentType returns the declared content type of the image response.
func (i *Image) ContentType() string {
	if i.resp == nil {
		return ""
	}
	return i.resp.ContentType
}

// Bytes returns the raw image data. The stream is read once; later calls
// return the same data.
func (i *Image) Bytes() ([]byte, error) {
	if i.resp == nil {
		return nil, errors.New("normal-api: image has no response")
	}
	return i.resp.Bytes()
}

// Reader returns the image data as a seekable buffer.
func (i *Image) Reader() (*bytes.Reader, error) {
	data, err := i.Bytes()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Close releases the underlying connection without reading the image.
func (i *Image) Close() error {
	if i.resp == nil {
		return nil
	}
	return i.resp.Close()
}
