package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// 通信レベルの失敗（DNS、接続断、不正な応答ボディ）。
// サーバーが理由を返した失敗はRemoteErrorで区別する。
var ErrConnectivity = errors.New("connectivity error")

// サーバーが返した拒否理由。そのまま操作者に見せる。
type RemoteError struct {
	Status int
	Reason string
}

func (e *RemoteError) Error() string {
	return e.Reason
}

func AsRemoteError(err error) (*RemoteError, bool) {
	var re *RemoteError
	ok := errors.As(err, &re)
	return re, ok
}

// Clientは管理APIへの薄いJSONクライアント。
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// Bearerトークン（外部IDプロバイダ発行）
	Token string
}

func NewClient(baseURL string, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConnectivity, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	if resp.StatusCode >= 400 {
		return &RemoteError{Status: resp.StatusCode, Reason: remoteReason(data, resp.Status)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrConnectivity, err)
		}
	}
	return nil
}

// エラーボディは{reason}（注文系）か{error}（その他）のどちらか。
func remoteReason(data []byte, fallback string) string {
	var e struct {
		Reason string `json:"reason"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &e); err == nil {
		if e.Reason != "" {
			return e.Reason
		}
		if e.Error != "" {
			return e.Error
		}
	}
	return fallback
}
