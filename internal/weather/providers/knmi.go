package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/roadcast/roadcast/internal/weather"
	"github.com/sony/gobreaker"
)

// KNMIClient retrieves severe-weather warning bundles from the KNMI open-data
// platform. An empty API key disables the client: ActiveWarnings then returns
// an empty list without touching the network.
type KNMIClient struct {
	baseURL string
	apiKey  string
	dataset string
	version string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

func NewKNMIClient(client *http.Client, apiKey, dataset, version string) *KNMIClient {
	return &KNMIClient{
		baseURL: "https://api.dataplatform.knmi.nl/open-data/v1",
		apiKey:  apiKey,
		dataset: dataset,
		version: version,
		client:  client,
		circuit: newBreaker("knmi"),
		now:     time.Now,
	}
}

// ActiveWarnings returns the warnings currently in effect or starting before
// the end of tomorrow. Warnings are an optional enhancement: every failure
// along the way (credential rejected, network error, malformed XML) is logged
// and degrades to an empty list. This method never fails.
func (c *KNMIClient) ActiveWarnings(ctx context.Context) []weather.Warning {
	if c.apiKey == "" {
		return []weather.Warning{}
	}

	data, err := c.fetchLatestBundle(ctx)
	if err != nil {
		slog.Warn("knmi warnings fetch failed", "err", err)
		return []weather.Warning{}
	}

	warnings, err := ParseWarnings(data, c.now().UTC())
	if err != nil {
		slog.Warn("knmi warnings parse failed", "err", err)
		return []weather.Warning{}
	}

	return warnings
}

type warningFile struct {
	Filename    string `json:"filename"`
	Created     string `json:"created"`
	DownloadURL string `json:"downloadUrl"`
}

// fetchLatestBundle lists the dataset's files, picks the most recently created
// one and downloads its XML body. Equal creation timestamps are broken by the
// lexically greatest filename so the selection stays deterministic.
func (c *KNMIClient) fetchLatestBundle(ctx context.Context) ([]byte, error) {
	listURL := fmt.Sprintf("%s/datasets/%s/versions/%s/files", c.baseURL, c.dataset, c.version)
	req, err := http.NewRequest(http.MethodGet, listURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := doRequest(ctx, c.client, c.circuit, req)
	if err != nil {
		return nil, fmt.Errorf("list warning files: %w", err)
	}
	defer resp.Body.Close()

	var listing struct {
		Files []warningFile `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode file listing: %w", err)
	}
	if len(listing.Files) == 0 {
		return nil, fmt.Errorf("dataset %s has no files", c.dataset)
	}

	latest := listing.Files[0]
	for _, f := range listing.Files[1:] {
		// Created is an ISO timestamp, so lexical order is chronological.
		if f.Created > latest.Created ||
			(f.Created == latest.Created && f.Filename > latest.Filename) {
			latest = f
		}
	}

	return c.download(ctx, latest.DownloadURL)
}

func (c *KNMIClient) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := doRequest(ctx, c.client, c.circuit, req)
	if err != nil {
		return nil, fmt.Errorf("download warning bundle: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
