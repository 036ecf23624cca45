package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const ngrokAttempts = 10

// ngrokTunnelsResponse matches the /api/tunnels response from the ngrok local API.
type ngrokTunnelsResponse struct {
	Tunnels []ngrokTunnel `json:"tunnels"`
}

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// detectNgrokURL queries the ngrok local API and returns the first HTTPS tunnel URL.
// It retries to handle ngrok still starting up.
func detectNgrokURL(ctx context.Context, ngrokAPIBase string, attempts int, interval time.Duration) (string, error) {
	url := ngrokAPIBase + "/api/tunnels"
	client := &http.Client{Timeout: 5 * time.Second}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(interval):
			}
		}

		tunnels, err := fetchTunnels(ctx, client, url)
		if err != nil {
			lastErr = err
			continue
		}

		// Prefer HTTPS tunnels
		for _, t := range tunnels.Tunnels {
			if t.Proto == "https" {
				return t.PublicURL, nil
			}
		}

		// Fallback: any tunnel
		if len(tunnels.Tunnels) > 0 {
			return tunnels.Tunnels[0].PublicURL, nil
		}
		lastErr = fmt.Errorf("no active tunnels")
	}

	return "", fmt.Errorf("ngrok API not ready after %d attempts: %w", attempts, lastErr)
}

func fetchTunnels(ctx context.Context, client *http.Client, url string) (ngrokTunnelsResponse, error) {
	var tunnels ngrokTunnelsResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return tunnels, fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return tunnels, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return tunnels, fmt.Errorf("failed to decode ngrok API response: %w", err)
	}
	return tunnels, nil
}
