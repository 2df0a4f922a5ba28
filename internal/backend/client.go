package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Record là raw JSON object từ backend - chưa được normalize
// Backend trả về loosely-typed payloads (số có thể là string, field có thể
// absent), nên boundary này không ép kiểu. Normalization xảy ra ở view domain.
type Record = map[string]interface{}

// Client gọi HackLog REST API. Mọi persistence thuộc về backend;
// front end này chỉ đọc/ghi qua HTTP.
type Client struct {
	baseURL    string
	cookieName string
	httpClient *http.Client
}

// NewClient tạo API client với timeout cố định
// Backend không định nghĩa timeout - ta tự áp để tránh treo request
func NewClient(baseURL, cookieName string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		cookieName: cookieName,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError - non-2xx response từ backend
// Body có thể là JSON {"error": "..."} hoặc plain text; cả hai đều được
// đọc như human-readable message, không phải structured error code.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// do thực hiện request và trả về raw body
// Session cookie (nếu có) được forward nguyên vẹn tới backend
func (c *Client) do(ctx context.Context, session, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: session})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// doWithCookies giống do nhưng giữ lại Set-Cookie headers của response
// Cần cho login: session cookie phải được forward về browser
func (c *Client) doWithCookies(ctx context.Context, method, path string, body interface{}) ([]byte, []*http.Cookie, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &APIError{Status: resp.StatusCode, Message: errorMessage(respBody)}
	}
	return respBody, resp.Cookies(), nil
}

// errorMessage rút message từ failure body
// Chấp nhận cả {"error": "..."} lẫn raw text
func errorMessage(body []byte) string {
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err == nil {
		if msg, ok := obj["error"].(string); ok {
			return msg
		}
	}
	return strings.TrimSpace(string(body))
}

// list fetch một collection endpoint
// Payload không phải array → degrade về empty list, không error
// (ValidationGap policy: ưu tiên availability)
func (c *Client) list(ctx context.Context, session, path string) ([]Record, error) {
	data, err := c.do(ctx, session, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return []Record{}, nil
	}
	return records, nil
}

// object fetch một single-row endpoint
func (c *Client) object(ctx context.Context, session, path string) (Record, error) {
	data, err := c.do(ctx, session, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode response %s: %w", path, err)
	}
	return record, nil
}

// send thực hiện write request (POST/PUT/DELETE), body response optional
func (c *Client) send(ctx context.Context, session, method, path string, body interface{}) (Record, error) {
	data, err := c.do(ctx, session, method, path, body)
	if err != nil {
		return nil, err
	}

	var record Record
	if len(data) > 0 {
		// Một số write endpoints trả body rỗng hoặc non-object - bỏ qua
		_ = json.Unmarshal(data, &record)
	}
	if msg, ok := record["error"].(string); ok && msg != "" {
		// Backend đôi khi trả 200 kèm {"error": ...} - vẫn là failure
		return nil, &APIError{Status: http.StatusOK, Message: msg}
	}
	return record, nil
}

// InsertedID đọc id của row vừa insert
// Backend trả id dưới nhiều alias tùy endpoint: insertId, __insertId, id
func InsertedID(record Record) int64 {
	for _, key := range []string{"insertId", "__insertId", "id"} {
		switch v := record[key].(type) {
		case float64:
			return int64(v)
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return n
			}
		case string:
			var n int64
			if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
				return n
			}
		}
	}
	return 0
}
