package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"boardgame-tracker/internal/constants"

	"github.com/valyala/fasthttp"
)

// ImageClient validates game cover image URLs before they are stored, so a
// bad link is rejected at write time instead of rendering broken everywhere.
type ImageClient struct {
	client *fasthttp.Client
}

func NewImageClient() *ImageClient {
	return &ImageClient{
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         constants.ImageTimeout,
			WriteTimeout:        constants.ImageTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// Validate checks that the URL resolves to an image. An empty URL is allowed;
// a game without cover art is fine.
func (c *ImageClient) Validate(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("image url must be http(s): %s", url)
	}

	status, contentType, err := c.head(ctx, url)
	if err != nil {
		return fmt.Errorf("image request failed: %w", err)
	}
	// Some hosts reject HEAD; fall back to GET before giving up.
	if status == fasthttp.StatusMethodNotAllowed || status == fasthttp.StatusNotImplemented {
		status, contentType, err = c.get(ctx, url)
		if err != nil {
			return fmt.Errorf("image request failed: %w", err)
		}
	}

	if status != fasthttp.StatusOK {
		return fmt.Errorf("image url returned status %d", status)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("image url returned content type %q", contentType)
	}
	return nil
}

func (c *ImageClient) head(ctx context.Context, url string) (int, string, error) {
	return c.do(ctx, fasthttp.MethodHead, url)
}

func (c *ImageClient) get(ctx context.Context, url string) (int, string, error) {
	return c.do(ctx, fasthttp.MethodGet, url)
}

func (c *ImageClient) do(ctx context.Context, method, url string) (int, string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return 0, "", err
		}
	} else {
		if err := c.client.DoTimeout(req, resp, constants.ImageTimeout); err != nil {
			return 0, "", err
		}
	}

	return resp.StatusCode(), string(resp.Header.ContentType()), nil
}
