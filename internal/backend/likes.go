package backend

import (
	"context"
	"net/http"
)

// ListLikes - GET /likes
// Trả về aggregate rows {articleId, count?}; cùng articleId có thể
// xuất hiện nhiều lần, consumer phải cộng dồn
func (c *Client) ListLikes(ctx context.Context, session string) ([]Record, error) {
	return c.list(ctx, session, "/likes")
}

// RecordLike - POST /likes {articleId}
func (c *Client) RecordLike(ctx context.Context, session string, articleID int64) error {
	_, err := c.send(ctx, session, http.MethodPost, "/likes", Record{"articleId": articleID})
	return err
}
