// Package client talks to a Vindinium server over its HTTP API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vindinium/config"
	"vindinium/game"

	"github.com/rs/zerolog/log"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

const (
	// ConnectTimeout covers waiting in the arena queue.
	ConnectTimeout = 10 * time.Minute
	MoveTimeout    = 15 * time.Second
)

// Client implements communication.Communicator.
type Client struct {
	server string
	key    string
	mode   string
	turns  int
	mapID  string
	http   *http.Client

	connectTimeout time.Duration
	moveTimeout    time.Duration
}

func New(s config.Settings) *Client {
	return &Client{
		server:         strings.TrimSuffix(s.Server, "/"),
		key:            s.Key,
		mode:           s.Mode,
		turns:          s.Turns,
		mapID:          s.Map,
		http:           &http.Client{},
		connectTimeout: ConnectTimeout,
		moveTimeout:    MoveTimeout,
	}
}

// Connect starts a training game or joins the arena queue.
func (c *Client) Connect(ctx context.Context) (*game.State, error) {
	form := url.Values{"key": {c.key}}
	endpoint := c.server + "/api/arena"
	if c.mode != config.ModeArena {
		endpoint = c.server + "/api/training"
		form.Set("turns", strconv.Itoa(c.turns))
		if c.mapID != "" {
			form.Set("map", c.mapID)
		}
	}
	log.Info().Str("url", endpoint).Str("mode", c.mode).Msg("connecting")
	ctx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()
	return c.post(ctx, endpoint, form)
}

// Move submits cmd for the current turn.
func (c *Client) Move(ctx context.Context, playURL string, cmd game.Command) (*game.State, error) {
	ctx, cancel := context.WithTimeout(ctx, c.moveTimeout)
	defer cancel()
	return c.post(ctx, playURL, url.Values{"key": {c.key}, "dir": {string(cmd)}})
}

func (c *Client) post(ctx context.Context, endpoint string, form url.Values) (*game.State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return nil, fmt.Errorf("%w %d from %s: %s", ErrUnexpectedStatus, resp.StatusCode, endpoint, strings.TrimSpace(string(body)))
	}

	var state game.State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	return &state, nil
}
