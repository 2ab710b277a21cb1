// This file talks to the Bilibili live HTTP API, resolving room
// identifiers and fetching feed credentials before a socket session.

package bili

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrAPI marks a failed or malformed Bilibili API response.
var ErrAPI = errors.New("api request failed")

// DefaultBaseURL is the production live API origin.
const DefaultBaseURL = "https://api.live.bilibili.com"

// Client calls the Bilibili live API.
type Client struct {
	baseURL  string
	sessData string
	http     *http.Client
}

// New returns a client for the given API origin. An empty baseURL
// selects the production origin. sessData, when set, is sent as the
// SESSDATA session cookie so the API returns a usable feed token.
func New(baseURL, sessData string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  baseURL,
		sessData: sessData,
		http:     &http.Client{Timeout: timeout},
	}
}

// envelope is the common wrapper around every API payload.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// get fetches path, unwraps the response envelope and decodes its data
// field into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.sessData != "" {
		req.Header.Set("Cookie", "SESSDATA="+c.sessData)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %s", ErrAPI, resp.Status)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: decode envelope: %v", ErrAPI, err)
	}
	if env.Code != 0 {
		return fmt.Errorf("%w: code %d: %s", ErrAPI, env.Code, env.Message)
	}
	if env.Data == nil {
		return fmt.Errorf("%w: response carries no data", ErrAPI)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %v", ErrAPI, err)
	}
	return nil
}

// RoomInfo describes a live room as returned by room_init.
type RoomInfo struct {
	RoomID     uint64 `json:"room_id"`
	ShortID    uint64 `json:"short_id"`
	LiveStatus int    `json:"live_status"`
}

// RoomInfo resolves a room identifier, mapping short room numbers to
// the real room id the feed endpoints expect.
func (c *Client) RoomInfo(ctx context.Context, id uint64) (RoomInfo, error) {
	var info RoomInfo
	path := fmt.Sprintf("/room/v1/Room/room_init?id=%d", id)
	if err := c.get(ctx, path, &info); err != nil {
		return RoomInfo{}, err
	}
	if info.RoomID == 0 {
		return RoomInfo{}, fmt.Errorf("%w: room %d resolved to no room id", ErrAPI, id)
	}
	return info, nil
}

// Host is one feed endpoint candidate.
type Host struct {
	Host    string `json:"host"`
	WSSPort int    `json:"wss_port"`
}

// FeedURL builds the secure socket URL for this host.
func (h Host) FeedURL() string {
	return fmt.Sprintf("wss://%s:%d/sub", h.Host, h.WSSPort)
}

// FeedAuth carries the token and endpoints needed to open a feed.
type FeedAuth struct {
	Token string `json:"token"`
	Hosts []Host `json:"host_list"`
}

// FeedAuth fetches the feed token and endpoint list for a room. The
// room id must be the real id from RoomInfo, not a short number.
func (c *Client) FeedAuth(ctx context.Context, roomID uint64) (FeedAuth, error) {
	var auth FeedAuth
	path := fmt.Sprintf("/xlive/web-room/v1/index/getDanmuInfo?id=%d", roomID)
	if err := c.get(ctx, path, &auth); err != nil {
		return FeedAuth{}, err
	}
	if auth.Token == "" {
		return FeedAuth{}, fmt.Errorf("%w: response carries no feed token", ErrAPI)
	}
	if len(auth.Hosts) == 0 {
		return FeedAuth{}, fmt.Errorf("%w: response carries no feed hosts", ErrAPI)
	}
	return auth, nil
}
