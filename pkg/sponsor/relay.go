package sponsor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gratuity-box/internal/model"
)

const executePath = "/v1/sponsored/execute"

// RelayError 中继返回的错误，Message 原样保留
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	return e.Message
}

type executeRequest struct {
	Network string                `json:"network"`
	Sender  string                `json:"sender"`
	Call    model.CallDescription `json:"call"`
}

type executeResponse struct {
	Digest string `json:"digest"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// RelayExecutor 通过 HTTP 调用代付中继，中继负责赞助、签名与上链
type RelayExecutor struct {
	baseURL string
	apiKey  string
	network string
	client  *http.Client
}

func NewRelayExecutor(baseURL, apiKey, network string, timeout time.Duration) *RelayExecutor {
	return &RelayExecutor{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		network: network,
		client:  &http.Client{Timeout: timeout},
	}
}

// Execute 单次提交，不重试
func (r *RelayExecutor) Execute(ctx context.Context, call model.CallDescription, sender string) (*model.ExecutionResult, error) {
	body, err := json.Marshal(executeRequest{
		Network: r.network,
		Sender:  sender,
		Call:    call,
	})
	if err != nil {
		return nil, fmt.Errorf("encode execute request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+executePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create execute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &RelayError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &RelayError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("read relay response: %v", err)}
	}

	var out executeResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil && out.Error != "" {
			msg = out.Error
		}
		if msg == "" {
			msg = resp.Status
		}
		return nil, &RelayError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, &RelayError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("decode relay response: %v", decodeErr)}
	}
	if out.Error != "" {
		return nil, &RelayError{StatusCode: resp.StatusCode, Message: out.Error}
	}
	if out.Status != "" && out.Status != "success" {
		return nil, &RelayError{StatusCode: resp.StatusCode, Message: "transaction status: " + out.Status}
	}
	if out.Digest == "" {
		return nil, &RelayError{StatusCode: resp.StatusCode, Message: "relay returned no digest"}
	}

	return &model.ExecutionResult{Digest: out.Digest, Status: "success"}, nil
}
