package schema

import (
	"blogd/internal/models"
)

var AnalyticsSchema = Schema{
	Name: "analytics",
	Rules: []FieldRule{
		{Field: "postId", Required: true},
		{Field: "views", Min: Float(0)},
		{Field: "reads", Min: Float(0)},
		{Field: "engagementScore", Min: Float(0)},
		{Field: "lastViewed", Format: FormatTimestamp},
	},
}

func NormalizeAnalytics(a models.Analytics) models.Analytics {
	a.PostID = ID(a.PostID)
	a.LastViewed = Timestamp(a.LastViewed)
	return a
}

func CheckAnalytics(a models.Analytics) *ValidationErrors {
	return AnalyticsSchema.Check(map[string]any{
		"postId":          a.PostID,
		"views":           a.Views,
		"reads":           a.Reads,
		"engagementScore": a.EngagementScore,
		"lastViewed":      formatTime(a.LastViewed),
	})
}
