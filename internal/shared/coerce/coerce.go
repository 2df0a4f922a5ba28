package coerce

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Package coerce chứa total conversion helpers cho loosely-typed backend
// payloads. Không bao giờ panic, không bao giờ trả error: field sai kiểu
// hoặc absent → zero value. Policy: availability over strictness.

// Int64 ép value về int64
// JSON numbers decode thành float64; backend đôi khi trả số dạng string
func Int64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return i
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return i
	case bool:
		if n {
			return 1
		}
		return 0
	}
	return 0
}

// String ép value về string, absent/null → ""
func String(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// Bool ép 0/1/bool/null về bool
// Backend lưu featured flag dạng 0/1; absent và null là false
func Bool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case json.Number:
		n, err := b.Float64()
		return err == nil && n != 0
	case string:
		s := strings.TrimSpace(strings.ToLower(b))
		return s == "1" || s == "true"
	}
	return false
}

// Time parse timestamp string theo các format backend dùng
// Parse fail → zero time (total, không error)
func Time(v interface{}) time.Time {
	s := String(v)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Tags split comma-separated tag string: trim từng entry, bỏ entry rỗng,
// dedupe theo tên (invariant: tag set không có duplicate)
func Tags(v interface{}) []string {
	raw := String(v)
	if raw == "" {
		return nil
	}

	seen := make(map[string]bool)
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, name)
	}
	return tags
}
