package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/circadianhq/circadian/internal/server"
	"github.com/circadianhq/circadian/pkg/versioninfo"
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%s %s: %s", method, path, res.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) GetState(ctx context.Context) (*server.StateResponse, error) {
	var out server.StateResponse
	if err := c.do(ctx, http.MethodGet, "/state", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListAnchors(ctx context.Context) ([]server.AnchorView, error) {
	var out server.AnchorListResponse
	if err := c.do(ctx, http.MethodGet, "/anchors", nil, &out); err != nil {
		return nil, err
	}
	return out.Anchors, nil
}

func (c *Client) ToggleAnchor(ctx context.Context, anchorID string) (*server.ToggleResponse, error) {
	var out server.ToggleResponse
	if err := c.do(ctx, http.MethodPost, "/anchors/"+anchorID+"/toggle", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PutSchedule(ctx context.Context, req server.ScheduleRequest) ([]server.AnchorView, error) {
	var out []server.AnchorView
	if err := c.do(ctx, http.MethodPut, "/schedule", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ActivateDay(ctx context.Context) (*server.DayResponse, error) {
	var out server.DayResponse
	if err := c.do(ctx, http.MethodPost, "/day", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Version(ctx context.Context) (*versioninfo.VersionInfo, error) {
	var out versioninfo.VersionInfo
	if err := c.do(ctx, http.MethodGet, "/version", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
