// Package subsonic is a client for Subsonic-compatible music servers.
// It is the only place that talks to the library API; responses are
// decoded here and handed to the rest of the app as typed records.
package subsonic

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	apiVersion = "1.16.1"
	clientName = "crest"
)

// Client talks to one Subsonic server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string

	// MaxBitrate caps transcoding in kbit/s; 0 asks for the original.
	MaxBitrate int
}

// New creates a client for the given server. The URL is normalized to
// have no trailing slash.
func New(baseURL, username, password string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		username:   username,
		password:   password,
	}
}

const saltChars = "abcdefghijklmnopqrstuvwxyz0123456789"

func newSalt() string {
	b := make([]byte, 10)
	for i := range b {
		b[i] = saltChars[rand.IntN(len(saltChars))]
	}
	return string(b)
}

// authParams returns the per-request auth query values: a fresh random
// salt and the md5(password+salt) token the Subsonic API expects.
func (c *Client) authParams() url.Values {
	salt := newSalt()
	sum := md5.Sum([]byte(c.password + salt))

	params := url.Values{}
	params.Set("u", c.username)
	params.Set("t", hex.EncodeToString(sum[:]))
	params.Set("s", salt)
	params.Set("v", apiVersion)
	params.Set("c", clientName)
	params.Set("f", "json")
	return params
}

// restURL builds a full REST endpoint URL with auth and extra params.
func (c *Client) restURL(endpoint string, extra url.Values) string {
	params := c.authParams()
	for key, values := range extra {
		for _, v := range values {
			params.Add(key, v)
		}
	}
	return fmt.Sprintf("%s/rest/%s?%s", c.baseURL, endpoint, params.Encode())
}

// get performs a GET against a REST endpoint and decodes the
// subsonic-response envelope, turning error status into a Go error.
func (c *Client) get(ctx context.Context, endpoint string, extra url.Values) (*responseBody, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.restURL(endpoint, extra), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %s", endpoint, resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", endpoint, err)
	}

	body := env.Response
	if body == nil {
		return nil, fmt.Errorf("%s: missing subsonic-response envelope", endpoint)
	}
	if body.Status != "ok" {
		if body.Error != nil {
			return nil, fmt.Errorf("%s: server error %d: %s", endpoint, body.Error.Code, body.Error.Message)
		}
		return nil, fmt.Errorf("%s: server status %q", endpoint, body.Status)
	}
	return body, nil
}

// Ping verifies connectivity and credentials.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "ping", nil)
	return err
}

// StreamURL returns the audio stream URL for a track, honoring the
// configured bitrate cap.
func (c *Client) StreamURL(id string) string {
	extra := url.Values{}
	extra.Set("id", id)
	if c.MaxBitrate > 0 {
		extra.Set("maxBitRate", strconv.Itoa(c.MaxBitrate))
	}
	return c.restURL("stream", extra)
}

// CoverArtURL returns the cover art URL for an art reference.
func (c *Client) CoverArtURL(id string) string {
	extra := url.Values{}
	extra.Set("id", id)
	return c.restURL("getCoverArt", extra)
}

// Scrobble reports a completed listen of the track to the server.
func (c *Client) Scrobble(ctx context.Context, id string) error {
	extra := url.Values{}
	extra.Set("id", id)
	extra.Set("submission", "true")
	_, err := c.get(ctx, "scrobble", extra)
	return err
}

// NowPlaying reports the track as currently playing without recording
// a listen (scrobble with submission=false).
func (c *Client) NowPlaying(ctx context.Context, id string) error {
	extra := url.Values{}
	extra.Set("id", id)
	extra.Set("submission", "false")
	_, err := c.get(ctx, "scrobble", extra)
	return err
}

// Star marks a track as favourite on the server.
func (c *Client) Star(ctx context.Context, id string) error {
	extra := url.Values{}
	extra.Set("id", id)
	_, err := c.get(ctx, "star", extra)
	return err
}

// Unstar removes the favourite mark.
func (c *Client) Unstar(ctx context.Context, id string) error {
	extra := url.Values{}
	extra.Set("id", id)
	_, err := c.get(ctx, "unstar", extra)
	return err
}
