package schema

import (
	"blogd/internal/models"
)

var PostSchema = Schema{
	Name: "post",
	Rules: []FieldRule{
		{Field: "id", Required: true, Format: FormatUUID},
		{Field: "title", Required: true, MaxLen: 200},
		{Field: "slug", Required: true, MaxLen: 500, Pattern: `^[a-z0-9-]+$`},
		{Field: "content", Required: true, MaxLen: 50000},
		{Field: "excerpt", MaxLen: 500},
		{Field: "author", Required: true, MaxLen: 100},
		{Field: "category", Required: true, Enum: models.Categories, Message: "please select a valid category"},
		{Field: "tags", MaxLen: 10, ItemMinLen: 1, ItemMaxLen: 50},
		{Field: "featuredImage", MaxLen: 2048},
		{Field: "status", Required: true, Enum: models.PostStatuses},
		{Field: "publishedAt", Format: FormatTimestamp},
		{Field: "createdAt", Required: true, Format: FormatTimestamp},
		{Field: "updatedAt", Required: true, Format: FormatTimestamp},
		{Field: "views", Min: Float(0)},
		{Field: "readTime", Min: Float(0)},
	},
}

func NormalizePost(p models.Post) models.Post {
	p = p.Clone()
	p.ID = ID(p.ID)
	p.Title = Text(p.Title)
	p.Slug = Slug(p.Slug)
	p.Content = Markdown(p.Content)
	p.Excerpt = Text(p.Excerpt)
	p.Author = Text(p.Author)
	p.Category = Text(p.Category)
	p.Status = models.PostStatus(Text(string(p.Status)))
	p.FeaturedImage = ImageRef(p.FeaturedImage)

	tags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		if tag = Text(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	p.Tags = tags

	p.Views = max(p.Views, 0)
	p.CreatedAt = Timestamp(p.CreatedAt)
	p.UpdatedAt = Timestamp(p.UpdatedAt)
	p.ReadTime = ReadTime(p.Content)
	p.IsDraft = p.Status == models.StatusDraft

	switch {
	case !p.IsPublished():
		p.PublishedAt = nil
	case p.PublishedAt != nil:
		t := Timestamp(*p.PublishedAt)
		p.PublishedAt = &t
	case !p.UpdatedAt.IsZero():
		t := p.UpdatedAt
		p.PublishedAt = &t
	}
	return p
}

func CheckPost(p models.Post) *ValidationErrors {
	var publishedAt string
	if p.PublishedAt != nil {
		publishedAt = formatTime(*p.PublishedAt)
	}
	errs := PostSchema.Check(map[string]any{
		"id":            p.ID,
		"title":         p.Title,
		"slug":          p.Slug,
		"content":       p.Content,
		"excerpt":       p.Excerpt,
		"author":        p.Author,
		"category":      p.Category,
		"tags":          p.Tags,
		"featuredImage": p.FeaturedImage,
		"status":        string(p.Status),
		"publishedAt":   publishedAt,
		"createdAt":     formatTime(p.CreatedAt),
		"updatedAt":     formatTime(p.UpdatedAt),
		"views":         p.Views,
		"readTime":      p.ReadTime,
	})

	if !p.CreatedAt.IsZero() && !p.UpdatedAt.IsZero() && p.UpdatedAt.Before(p.CreatedAt) {
		errs.Add("updatedAt", "must not be before createdAt")
	}
	if p.IsPublished() && p.PublishedAt == nil {
		errs.Add("publishedAt", "is required for published posts")
	}
	if !p.IsPublished() && p.PublishedAt != nil {
		errs.Add("publishedAt", "must be empty unless the post is published")
	}
	return errs
}
