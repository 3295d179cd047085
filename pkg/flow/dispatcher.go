package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"visitor-registration/pkg/models"
)

// ErrDispatch wraps any network failure or non-2xx reply from the endpoint
var ErrDispatch = errors.New("submission failed")

// Dispatcher sends a validated submission to the registration endpoint
type Dispatcher interface {
	Dispatch(ctx context.Context, sub models.VisitorSubmission) error
}

// DispatcherFunc adapts a function to a Dispatcher
type DispatcherFunc func(ctx context.Context, sub models.VisitorSubmission) error

func (f DispatcherFunc) Dispatch(ctx context.Context, sub models.VisitorSubmission) error {
	return f(ctx, sub)
}

// HTTPDispatcher posts submissions as JSON
type HTTPDispatcher struct {
	client   *resty.Client
	endpoint string
}

// NewHTTPDispatcher creates a dispatcher for endpoint. Requests are not retried.
func NewHTTPDispatcher(endpoint string, timeout time.Duration) *HTTPDispatcher {
	return &HTTPDispatcher{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		endpoint: endpoint,
	}
}

func (d *HTTPDispatcher) Dispatch(ctx context.Context, sub models.VisitorSubmission) error {
	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(sub).
		Post(d.endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: %s", ErrDispatch, resp.Status())
	}
	return nil
}
