package article

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// ARTICLE FORM DTOs
// ========================================

// CreateArticleRequest - form tạo bài mới
// TagIDs link sau khi insert (best effort, lỗi tag không fail cả bài)
type CreateArticleRequest struct {
	Title   string  `json:"title" binding:"required"`
	Excerpt string  `json:"excerpt"`
	Content string  `json:"content" binding:"required"`
	TagIDs  []int64 `json:"tagIds"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Excerpt,
			validation.Length(0, 500),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
	)
}

// UpdateArticleRequest - form sửa bài
// Tags được relink toàn bộ: unlink hết rồi link lại theo TagIDs
type UpdateArticleRequest struct {
	Title   string  `json:"title" binding:"required"`
	Excerpt string  `json:"excerpt"`
	Content string  `json:"content" binding:"required"`
	TagIDs  []int64 `json:"tagIds"`
}

func (r UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Excerpt,
			validation.Length(0, 500),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
	)
}
