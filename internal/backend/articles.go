package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ========================================
// ARTICLE ENDPOINTS
// ========================================

// ListArticles - GET /articles_with_tags
// Mỗi row kèm cột "tags": comma-separated tag names (backend join sẵn)
func (c *Client) ListArticles(ctx context.Context, session string) ([]Record, error) {
	return c.list(ctx, session, "/articles_with_tags")
}

// GetArticle - GET /articles/:id (raw row, không join)
func (c *Client) GetArticle(ctx context.Context, session string, id int64) (Record, error) {
	return c.object(ctx, session, fmt.Sprintf("/articles/%d", id))
}

// GetArticleDetails - GET /article_details/:id
// View row join sẵn authorUsername, dùng cho trang đọc bài
func (c *Client) GetArticleDetails(ctx context.Context, session string, id int64) (Record, error) {
	return c.object(ctx, session, fmt.Sprintf("/article_details/%d", id))
}

// GetArticleWithTags - GET /articles_with_tags/:id
func (c *Client) GetArticleWithTags(ctx context.Context, session string, id int64) (Record, error) {
	return c.object(ctx, session, fmt.Sprintf("/articles_with_tags/%d", id))
}

// CreateArticle - POST /articles, trả về inserted id (hoặc 0 nếu thiếu)
func (c *Client) CreateArticle(ctx context.Context, session string, fields Record) (int64, error) {
	record, err := c.send(ctx, session, http.MethodPost, "/articles", fields)
	if err != nil {
		return 0, err
	}
	return InsertedID(record), nil
}

// UpdateArticle - PUT /articles/:id
func (c *Client) UpdateArticle(ctx context.Context, session string, id int64, fields Record) error {
	_, err := c.send(ctx, session, http.MethodPut, fmt.Sprintf("/articles/%d", id), fields)
	return err
}

// DeleteArticle - DELETE /articles/:id
func (c *Client) DeleteArticle(ctx context.Context, session string, id int64) error {
	_, err := c.send(ctx, session, http.MethodDelete, fmt.Sprintf("/articles/%d", id), nil)
	return err
}

// ========================================
// TAG LINKING
// ========================================

// LinkTag - POST /article_tags {articleId, tagId}
func (c *Client) LinkTag(ctx context.Context, session string, articleID, tagID int64) error {
	_, err := c.send(ctx, session, http.MethodPost, "/article_tags", Record{
		"articleId": articleID,
		"tagId":     tagID,
	})
	return err
}

// UnlinkTags - DELETE /article_tags?where=articleId={id}
// Xóa toàn bộ tag links của một article trước khi relink
func (c *Client) UnlinkTags(ctx context.Context, session string, articleID int64) error {
	_, err := c.send(ctx, session, http.MethodDelete, fmt.Sprintf("/article_tags?where=articleId=%d", articleID), nil)
	return err
}
