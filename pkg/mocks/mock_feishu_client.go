package mocks

import (
	"context"
	"encoding/json"
	"sync"
)

// MockFeishuClient implements feishu.Client for testing
type MockFeishuClient struct {
	TenantAccessTokenFunc func(ctx context.Context) (string, error)
	CreateRecordFunc      func(ctx context.Context, token string, fields any) (json.RawMessage, error)

	mu          sync.Mutex
	TokenCalls  int
	RecordCalls int
	LastToken   string
	LastFields  any
}

// NewMockFeishuClient creates a MockFeishuClient that succeeds by default
func NewMockFeishuClient() *MockFeishuClient {
	return &MockFeishuClient{}
}

// TenantAccessToken returns a fixed token unless overridden
func (m *MockFeishuClient) TenantAccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.TokenCalls++
	m.mu.Unlock()

	if m.TenantAccessTokenFunc != nil {
		return m.TenantAccessTokenFunc(ctx)
	}
	return "t-mock", nil
}

// CreateRecord records its arguments and returns a success body unless overridden
func (m *MockFeishuClient) CreateRecord(ctx context.Context, token string, fields any) (json.RawMessage, error) {
	m.mu.Lock()
	m.RecordCalls++
	m.LastToken = token
	m.LastFields = fields
	m.mu.Unlock()

	if m.CreateRecordFunc != nil {
		return m.CreateRecordFunc(ctx, token, fields)
	}
	return json.RawMessage(`{"code":0,"msg":"success","data":{"record":{"record_id":"recMock"}}}`), nil
}

// Calls returns the number of token and record calls made so far
func (m *MockFeishuClient) Calls() (token, record int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TokenCalls, m.RecordCalls
}
