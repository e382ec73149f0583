// Package salesforce provides JWT-authenticated REST API access to Salesforce.
package salesforce

import (
	"context"
	"fmt"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/siddheshmm/leadgen-cli/internal/resilience"
)

// Client defines the Salesforce API operations used by the lead exporter.
type Client interface {
	Query(ctx context.Context, soql string, out any) error
	InsertOne(ctx context.Context, sObjectName string, record map[string]any) (string, error)
	InsertCollection(ctx context.Context, sObjectName string, records []map[string]any) ([]CollectionResult, error)
	UpdateOne(ctx context.Context, sObjectName string, id string, fields map[string]any) error
}

// CollectionResult is the outcome of a single record in a collection operation.
type CollectionResult struct {
	ID      string   `json:"id"`
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// ClientOption configures the Salesforce client.
type ClientOption func(*sfClient)

// WithRateLimit sets a per-second rate limit for SF API calls.
// A burst equal to the integer portion of rps is allowed.
func WithRateLimit(rps float64) ClientOption {
	return func(c *sfClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

// WithCircuitBreaker guards SF API calls with the given breaker.
func WithCircuitBreaker(cb *resilience.CircuitBreaker) ClientOption {
	return func(c *sfClient) {
		c.breaker = cb
	}
}

// sfClient wraps the go-salesforce/v3 Salesforce struct.
//
// NOTE: The underlying go-salesforce/v3 library does not accept context.Context,
// so all methods discard the ctx parameter for the SF call itself. However, the
// ctx is used for rate limiter waiting, so callers can still cancel that wait.
type sfClient struct {
	sf      *salesforce.Salesforce
	limiter *rate.Limiter
	breaker *resilience.CircuitBreaker
}

// NewClient creates a new Salesforce Client wrapping the given go-salesforce instance.
func NewClient(sf *salesforce.Salesforce, opts ...ClientOption) Client {
	c := &sfClient{sf: sf}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do runs one SF call through the rate limiter and circuit breaker.
func (c *sfClient) do(ctx context.Context, fn func() error) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "sf: rate limit")
		}
	}
	if c.breaker != nil {
		return c.breaker.Execute(ctx, func(context.Context) error { return fn() })
	}
	return fn()
}

func (c *sfClient) Query(ctx context.Context, soql string, out any) error {
	err := c.do(ctx, func() error {
		return c.sf.Query(soql, out)
	})
	if err != nil {
		return eris.Wrap(err, "sf: query")
	}
	return nil
}

func (c *sfClient) InsertOne(ctx context.Context, sObjectName string, record map[string]any) (string, error) {
	var id string
	err := c.do(ctx, func() error {
		result, err := c.sf.InsertOne(sObjectName, record)
		if err != nil {
			return err
		}
		if !result.Success {
			return eris.New(fmt.Sprintf("insert failed: %v", result.Errors))
		}
		id = result.Id
		return nil
	})
	if err != nil {
		return "", eris.Wrap(err, fmt.Sprintf("sf: insert %s", sObjectName))
	}
	return id, nil
}

func (c *sfClient) InsertCollection(ctx context.Context, sObjectName string, records []map[string]any) ([]CollectionResult, error) {
	var results []CollectionResult
	err := c.do(ctx, func() error {
		sfResults, err := c.sf.InsertCollection(sObjectName, records, maxBatchSize)
		if err != nil {
			return err
		}
		results = make([]CollectionResult, len(sfResults.Results))
		for i, r := range sfResults.Results {
			var errs []string
			for _, e := range r.Errors {
				errs = append(errs, e.Message)
			}
			results[i] = CollectionResult{
				ID:      r.Id,
				Success: r.Success,
				Errors:  errs,
			}
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("sf: insert collection %s", sObjectName))
	}
	return results, nil
}

func (c *sfClient) UpdateOne(ctx context.Context, sObjectName string, id string, fields map[string]any) error {
	err := c.do(ctx, func() error {
		fields["Id"] = id
		return c.sf.UpdateOne(sObjectName, fields)
	})
	if err != nil {
		return eris.Wrap(err, fmt.Sprintf("sf: update %s %s", sObjectName, id))
	}
	return nil
}
