package models

import (
	"slices"
	"time"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusScheduled PostStatus = "scheduled"
)

var PostStatuses = []string{string(StatusDraft), string(StatusPublished), string(StatusScheduled)}

var Categories = []string{
	"Zindagi",
	"Society",
	"Parvarish",
	"Sehat",
	"Ghar ki baat",
	"Dil se",
	"Kahani",
}

// Post field order is the on-disk order.
type Post struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	Author        string     `json:"author"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags"`
	FeaturedImage string     `json:"featuredImage,omitempty"`
	Status        PostStatus `json:"status"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Views         int        `json:"views"`
	ReadTime      int        `json:"readTime"`
	IsDraft       bool       `json:"isDraft"`
}

func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}

func (p Post) Clone() Post {
	c := p
	c.Tags = slices.Clone(p.Tags)
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		c.PublishedAt = &t
	}
	return c
}

// PostInput carries the author-editable fields of a post.
type PostInput struct {
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	Author        string     `json:"author"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags"`
	FeaturedImage string     `json:"featuredImage"`
	Status        PostStatus `json:"status"`
}
