package backend

import "context"

// ListTags - GET /tags
func (c *Client) ListTags(ctx context.Context, session string) ([]Record, error) {
	return c.list(ctx, session, "/tags")
}
