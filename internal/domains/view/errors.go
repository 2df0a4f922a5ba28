package view

import "errors"

var (
	ErrPageClosed      = errors.New("page has been closed")
	ErrArticleNotFound = errors.New("article not found")
	ErrUserNotFound    = errors.New("user not found")
)
