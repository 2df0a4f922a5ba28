package view

import (
	"hacklog-frontend/internal/backend"
	"hacklog-frontend/internal/domains/auth"
	"hacklog-frontend/internal/shared/coerce"
)

// Normalization: wire payload → strict types. Total functions - record
// malformed được coerce về defaults chứ không bị drop, không bao giờ error.
// Không tin field presence hay type từ backend.

// NormalizeArticle map một raw row từ /articles hoặc /articles_with_tags
// Timestamps: backend dùng created/modified, chấp nhận cả createdAt/modifiedAt
func NormalizeArticle(record backend.Record) Article {
	created := record["created"]
	if created == nil {
		created = record["createdAt"]
	}
	modified := record["modified"]
	if modified == nil {
		modified = record["modifiedAt"]
	}
	return Article{
		ID:         coerce.Int64(record["id"]),
		AuthorID:   coerce.Int64(record["authorId"]),
		Title:      coerce.String(record["title"]),
		Excerpt:    coerce.String(record["excerpt"]),
		Content:    coerce.String(record["content"]),
		Featured:   coerce.Bool(record["featured"]),
		Tags:       coerce.Tags(record["tags"]),
		CreatedAt:  coerce.Time(created),
		ModifiedAt: coerce.Time(modified),
	}
}

func NormalizeArticles(records []backend.Record) []Article {
	articles := make([]Article, 0, len(records))
	for _, record := range records {
		articles = append(articles, NormalizeArticle(record))
	}
	return articles
}

func NormalizeUser(record backend.Record) User {
	return User{
		ID:        coerce.Int64(record["id"]),
		Username:  coerce.String(record["username"]),
		Email:     coerce.String(record["email"]),
		Role:      auth.ParseRole(coerce.String(record["role"])),
		CreatedAt: coerce.Time(record["created"]),
	}
}

func NormalizeUsers(records []backend.Record) []User {
	users := make([]User, 0, len(records))
	for _, record := range records {
		users = append(users, NormalizeUser(record))
	}
	return users
}

func NormalizeTags(records []backend.Record) []Tag {
	tags := make([]Tag, 0, len(records))
	for _, record := range records {
		tags = append(tags, Tag{
			ID:   coerce.Int64(record["id"]),
			Name: coerce.String(record["name"]),
		})
	}
	return tags
}

// NormalizeLikes gom aggregate rows thành map articleId → tổng count
// Cùng articleId xuất hiện nhiều lần thì cộng dồn; record thiếu count
// tính là 1 like.
func NormalizeLikes(records []backend.Record) map[int64]int {
	likes := make(map[int64]int, len(records))
	for _, record := range records {
		articleID := coerce.Int64(record["articleId"])
		if articleID == 0 {
			continue
		}
		count := 1
		if v, ok := record["count"]; ok && v != nil {
			count = int(coerce.Int64(v))
		}
		if count < 0 {
			count = 0
		}
		likes[articleID] += count
	}
	return likes
}
