// Package geo fetches IP-derived location snapshots from an ipwho.is
// compatible provider. Punch processing treats every failure here as
// "no location available" and continues.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/HenryKun55/ponto/internal/clock"
	"github.com/HenryKun55/ponto/internal/config"
	"github.com/HenryKun55/ponto/internal/timeentry/domain"
)

// ErrUnavailable covers provider errors, timeouts and lookup refusals.
var ErrUnavailable = errors.New("geolocation_unavailable")

// Service resolves the caller's current location.
type Service interface {
	FetchLocation(ctx context.Context) (*domain.GeoSnapshot, error)
}

type providerResponse struct {
	IP          string  `json:"ip"`
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	RegionCode  string  `json:"region_code"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Postal      string  `json:"postal"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Connection  struct {
		Org string `json:"org"`
		ISP string `json:"isp"`
	} `json:"connection"`
	Timezone struct {
		ID string `json:"id"`
	} `json:"timezone"`
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
}

func NewClient(cfg config.Config, log *zap.Logger, genID *snowflake.Node, clk clock.Clock) *Client {
	return &Client{
		baseURL: cfg.Geo.BaseURL,
		http:    &http.Client{Timeout: cfg.Geo.Timeout},
		log:     log.Named("geo.client"),
		genID:   genID,
		clock:   clk,
	}
}

// FetchLocation queries the provider for the caller's IP location and
// returns an immutable snapshot with the raw payload preserved.
func (c *Client) FetchLocation(ctx context.Context) (*domain.GeoSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var payload providerResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !payload.Success {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, payload.Message)
	}

	var raw datatypes.JSONMap
	_ = json.Unmarshal(body, &raw)

	return &domain.GeoSnapshot{
		ID:          c.genID.Generate(),
		IP:          payload.IP,
		City:        payload.City,
		Region:      payload.Region,
		RegionCode:  payload.RegionCode,
		Country:     payload.Country,
		CountryCode: payload.CountryCode,
		Postal:      payload.Postal,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		Timezone:    payload.Timezone.ID,
		ISP:         payload.Connection.ISP,
		Org:         payload.Connection.Org,
		Raw:         raw,
		CapturedAt:  c.clock.Now().UTC(),
	}, nil
}
