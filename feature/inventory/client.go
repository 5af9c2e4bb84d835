package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-sync/core/gate"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Client talks to the inventory REST API.
// Every request holds a slot of the shared gate while in flight.
type Client struct {
	baseURL     string
	login       string
	password    string
	pageSize    int
	batchSize   int
	timeout     time.Duration
	pushTimeout time.Duration
	gate        *gate.Gate
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates an inventory client sharing g with the rest of the run.
func NewClient(cfg Config, g *gate.Gate, logger *zap.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		login:       cfg.Login,
		password:    cfg.Password,
		pageSize:    positiveOr(cfg.PageSize, 1000),
		batchSize:   positiveOr(cfg.BatchSize, 1000),
		timeout:     time.Duration(positiveOr(cfg.TimeoutSeconds, 30)) * time.Second,
		pushTimeout: time.Duration(positiveOr(cfg.PushTimeoutSeconds, 600)) * time.Second,
		gate:        g,
		// Timeouts are applied per request through the context.
		httpClient: &http.Client{},
		logger:     logger,
	}
}

type collectionPage struct {
	Meta struct {
		Size int `json:"size"`
	} `json:"meta"`
	Rows []Record `json:"rows"`
}

// FetchAll retrieves every row of an entity collection.
// A one-row probe reads the total size, then all pages are fetched concurrently.
func (c *Client) FetchAll(ctx context.Context, entity string) ([]Record, error) {
	probe, err := c.getPage(ctx, entity, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s size: %w", entity, err)
	}

	total := probe.Meta.Size
	pages := (total + c.pageSize - 1) / c.pageSize
	results := make([][]Record, pages)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < pages; i++ {
		g.Go(func() error {
			page, err := c.getPage(gctx, entity, c.pageSize, i*c.pageSize)
			if err != nil {
				return err
			}
			results[i] = page.Rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", entity, err)
	}

	rows := make([]Record, 0, total)
	for _, page := range results {
		rows = append(rows, page...)
	}

	c.logger.Debug("Collection fetched",
		zap.String("entity", entity),
		zap.Int("size", total),
		zap.Int("pages", pages),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

// FetchProducts retrieves all products.
func (c *Client) FetchProducts(ctx context.Context) ([]Record, error) {
	return c.FetchAll(ctx, EntityProduct)
}

// FetchCategories retrieves all product folders indexed by external code.
func (c *Client) FetchCategories(ctx context.Context) (map[string]Record, error) {
	rows, err := c.FetchAll(ctx, EntityProductFolder)
	if err != nil {
		return nil, err
	}
	index := make(map[string]Record, len(rows))
	for _, row := range rows {
		index[row.ExternalCode()] = row
	}
	return index, nil
}

// CreateCategory creates a product folder named and coded after code and
// returns its metadata reference.
func (c *Client) CreateCategory(ctx context.Context, code string) (Meta, error) {
	payload := map[string]string{"name": code, "externalCode": code}

	var created Record
	if err := c.doJSON(ctx, http.MethodPost, c.entityURL(EntityProductFolder, nil), payload, &created); err != nil {
		return nil, fmt.Errorf("failed to create category %s: %w", code, err)
	}

	meta := created.Meta()
	if meta == nil {
		return nil, fmt.Errorf("failed to create category %s: response has no meta", code)
	}

	c.logger.Info("Category created", zap.String("external_code", code))
	return meta, nil
}

func (c *Client) getPage(ctx context.Context, entity string, limit, offset int) (*collectionPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var page collectionPage
	if err := c.doJSON(ctx, http.MethodGet, c.entityURL(entity, query), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// doJSON performs a gated request with the default timeout and decodes a 200 response into out.
func (c *Client) doJSON(ctx context.Context, method, target string, in, out any) error {
	var body []byte
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = data
	}

	status, respBody, err := c.roundTrip(ctx, method, target, body, c.timeout)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &APIError{Method: method, URL: target, StatusCode: status, Body: string(respBody)}
	}

	dec := json.NewDecoder(bytes.NewReader(respBody))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, target, err)
	}
	return nil
}

// roundTrip sends one request while holding a gate slot and returns the status and body.
func (c *Client) roundTrip(ctx context.Context, method, target string, body []byte, timeout time.Duration) (int, []byte, error) {
	var (
		status   int
		respBody []byte
	)

	err := c.gate.Do(ctx, func() error {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(reqCtx, method, target, reader)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.SetBasicAuth(c.login, c.password)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, target, err)
		}
		defer resp.Body.Close()

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read %s %s response: %w", method, target, err)
		}
		status = resp.StatusCode
		return nil
	})

	return status, respBody, err
}

func (c *Client) entityURL(entity string, query url.Values) string {
	u := c.baseURL + "/entity/" + entity
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
