package models

import "time"

type Analytics struct {
	PostID          string    `json:"postId"`
	Views           int       `json:"views"`
	Reads           int       `json:"reads"`
	EngagementScore float64   `json:"engagementScore"`
	LastViewed      time.Time `json:"lastViewed"`
}

type TopPost struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Views int    `json:"views"`
}

type AnalyticsSummary struct {
	TotalViews      int       `json:"totalViews"`
	TotalPosts      int       `json:"totalPosts"`
	TotalComments   int       `json:"totalComments"`
	PendingComments int       `json:"pendingComments"`
	TopPosts        []TopPost `json:"topPosts"`
	TotalReads      int       `json:"totalReads"`
}
