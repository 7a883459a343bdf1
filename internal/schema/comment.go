package schema

import (
	"blogd/internal/models"
)

var CommentSchema = Schema{
	Name: "comment",
	Rules: []FieldRule{
		{Field: "id", Required: true, Format: FormatUUID},
		{Field: "postId", Required: true, Format: FormatUUID, Message: "invalid post ID"},
		{Field: "author", Required: true, MaxLen: 100, Pattern: `^[a-zA-Z\s\x{0900}-\x{097F}]+$`},
		{Field: "email", Required: true, MaxLen: 100, Format: FormatEmail},
		{Field: "content", Required: true, MaxLen: 1000},
		{Field: "createdAt", Required: true, Format: FormatTimestamp},
	},
}

func NormalizeComment(c models.Comment) models.Comment {
	c.ID = ID(c.ID)
	c.PostID = ID(c.PostID)
	c.Author = Text(c.Author)
	c.Email = Email(c.Email)
	c.Content = Text(c.Content)
	c.CreatedAt = Timestamp(c.CreatedAt)
	return c
}

func CheckComment(c models.Comment) *ValidationErrors {
	return CommentSchema.Check(map[string]any{
		"id":        c.ID,
		"postId":    c.PostID,
		"author":    c.Author,
		"email":     c.Email,
		"content":   c.Content,
		"createdAt": formatTime(c.CreatedAt),
	})
}
