package feishu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	tokenPath  = "/auth/v3/tenant_access_token/internal"
	recordPath = "/bitable/v1/apps/{appToken}/tables/{tableToken}/records"
)

// Client defines the interface for interacting with the Feishu open API
type Client interface {
	// TenantAccessToken returns "" without calling out when no app credentials are set.
	TenantAccessToken(ctx context.Context) (string, error)
	CreateRecord(ctx context.Context, token string, fields any) (json.RawMessage, error)
}

// Options configures a Client
type Options struct {
	BaseURL    string
	AppID      string
	AppSecret  string
	AppToken   string
	TableToken string
	Timeout    time.Duration
}

type clientImpl struct {
	http       *resty.Client
	appID      string
	appSecret  string
	appToken   string
	tableToken string
	logger     *zap.Logger
}

// NewClient creates a new Feishu client. Requests are never retried.
func NewClient(opts Options, logger *zap.Logger) Client {
	httpClient := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &clientImpl{
		http:       httpClient,
		appID:      opts.AppID,
		appSecret:  opts.AppSecret,
		appToken:   opts.AppToken,
		tableToken: opts.TableToken,
		logger:     logger,
	}
}

type tokenRequest struct {
	AppID     string `json:"app_id"`
	AppSecret string `json:"app_secret"`
}

type tokenResponse struct {
	Code              int    `json:"code"`
	Msg               string `json:"msg"`
	TenantAccessToken string `json:"tenant_access_token"`
	Expire            int    `json:"expire"`
}

type apiStatus struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (c *clientImpl) TenantAccessToken(ctx context.Context) (string, error) {
	if c.appID == "" || c.appSecret == "" {
		return "", nil
	}

	var out tokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(tokenRequest{AppID: c.appID, AppSecret: c.appSecret}).
		SetResult(&out).
		Post(tokenPath)
	if err != nil {
		return "", fmt.Errorf("error requesting tenant access token: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("error from Feishu auth API: %s: %s", resp.Status(), resp.String())
	}
	if out.Code != 0 {
		return "", fmt.Errorf("error from Feishu auth API: code %d: %s", out.Code, out.Msg)
	}
	if out.TenantAccessToken == "" {
		return "", errors.New("error from Feishu auth API: no tenant_access_token in reply")
	}

	c.logger.Debug("obtained tenant access token", zap.Int("expire_seconds", out.Expire))
	return out.TenantAccessToken, nil
}

func (c *clientImpl) CreateRecord(ctx context.Context, token string, fields any) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetPathParams(map[string]string{
			"appToken":   c.appToken,
			"tableToken": c.tableToken,
		}).
		SetBody(map[string]any{"fields": fields}).
		Post(recordPath)
	if err != nil {
		return nil, fmt.Errorf("error creating bitable record: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("error from Feishu bitable API: %s: %s", resp.Status(), resp.String())
	}

	body := resp.Body()
	var status apiStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	if status.Code != 0 {
		return nil, fmt.Errorf("error from Feishu bitable API: code %d: %s", status.Code, status.Msg)
	}

	c.logger.Info("created bitable record", zap.String("table", c.tableToken))
	return json.RawMessage(body), nil
}

// IsTimeout reports whether err was caused by a call exceeding its deadline.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
