package view

import (
	"time"

	"hacklog-frontend/internal/domains/auth"
)

// AuthorPlaceholder hiển thị khi authorId không resolve ra user nào
// Unresolved author không bao giờ là error - chỉ là placeholder
const AuthorPlaceholder = "—"

// Article là strict internal type, chỉ được tạo qua normalization
type Article struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"authorId"`
	Title      string    `json:"title"`
	Excerpt    string    `json:"excerpt"`
	Content    string    `json:"content"`
	Featured   bool      `json:"featured"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      auth.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Row là denormalized view row: Article + author username + like count
// Chỉ sống trong memory cho một page instance, không persist,
// recompute mỗi khi source collections thay đổi.
type Row struct {
	Article
	AuthorName string `json:"authorName"`
	Likes      int    `json:"likes"`
}
