package qr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultEndpoint is the public QR image service; %s receives the escaped
// payload.
const DefaultEndpoint = "https://api.qrserver.com/v1/create-qr-code/?size=250x250&data=%s&bgcolor=ffffff&color=000000&margin=2"

const DefaultSize = 256

// Renderer turns a payload into an image URI for display. The result is a
// presentation of the payload, never a substitute for it.
type Renderer interface {
	Render(ctx context.Context, payload string) (string, error)
}

// RemoteRenderer points at a templated third-party image endpoint.
type RemoteRenderer struct {
	Endpoint string
}

func NewRemoteRenderer(endpoint string) *RemoteRenderer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &RemoteRenderer{Endpoint: endpoint}
}

func (r *RemoteRenderer) Render(ctx context.Context, payload string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.Count(r.Endpoint, "%s") != 1 {
		return "", errors.New("qr endpoint must contain exactly one %s placeholder")
	}
	return fmt.Sprintf(r.Endpoint, url.QueryEscape(payload)), nil
}

// LocalRenderer encodes the PNG in-process and returns it as a data URI.
type LocalRenderer struct {
	Size int
}

func NewLocalRenderer(size int) *LocalRenderer {
	if size <= 0 {
		size = DefaultSize
	}
	return &LocalRenderer{Size: size}
}

func (r *LocalRenderer) Render(ctx context.Context, payload string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	png, err := PNG(payload, r.Size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// PNG encodes payload as a QR image of size x size pixels.
func PNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr image: %w", err)
	}
	return png, nil
}
