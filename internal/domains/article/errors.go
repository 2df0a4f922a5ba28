package article

import "errors"

var (
	// ErrNotOwner - chỉ author hoặc admin được sửa bài
	ErrNotOwner = errors.New("you can only edit your own articles")

	ErrNotFound = errors.New("article not found")
)
