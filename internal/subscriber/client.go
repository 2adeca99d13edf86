package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/soltixdb/forecastd/internal/config"
	"github.com/soltixdb/forecastd/internal/models"
	"github.com/soltixdb/forecastd/internal/queue"
	"github.com/soltixdb/forecastd/internal/utils"
)

// Client calls the forecast operations over the queue
type Client struct {
	requester queue.Requester
	cfg       config.QueueConfig
	timeout   time.Duration
}

// NewClient creates a client. A zero timeout uses utils.DefaultRequestTimeout.
func NewClient(r queue.Requester, cfg config.QueueConfig, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = utils.DefaultRequestTimeout
	}
	return &Client{requester: r, cfg: cfg, timeout: timeout}
}

// Forecast sends a forecast_data request. Engine failures come back as a Reply with
// OK=false; the error return covers transport and decoding failures only.
func (c *Client) Forecast(ctx context.Context, req *models.ForecastRequest) (*Reply, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return c.call(ctx, c.cfg.ForecastSubject(), data)
}

// ExplainMethods sends an explain_methods request
func (c *Client) ExplainMethods(ctx context.Context) (*Reply, error) {
	return c.call(ctx, c.cfg.ExplainSubject(), []byte("{}"))
}

func (c *Client) call(ctx context.Context, subject string, data []byte) (*Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.requester.Request(ctx, subject, data)
	if err != nil {
		return nil, err
	}

	var reply Reply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("failed to decode reply from %s: %w", subject, err)
	}
	return &reply, nil
}
