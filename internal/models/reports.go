package models

const (
	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
	IssuesFound    = "issues_found"
)

type IntegrityReport struct {
	Status string   `json:"status"`
	Issues []string `json:"issues"`
}

type CleanupResult struct {
	Removed   int `json:"removed"`
	Remaining int `json:"remaining"`
}

// DeleteResult reports each side effect of a post deletion separately so a
// failed cascade or image removal never hides the primary outcome.
type DeleteResult struct {
	PostTitle       string   `json:"postTitle"`
	CommentsDeleted int      `json:"commentsDeleted"`
	ImageDeleted    bool     `json:"imageDeleted"`
	Details         []string `json:"details"`
	Errors          []string `json:"errors"`
}

type FileHealth struct {
	Posts     bool `json:"posts"`
	Comments  bool `json:"comments"`
	Settings  bool `json:"settings"`
	Analytics bool `json:"analytics"`
}

type HealthReport struct {
	Status string     `json:"status"`
	Files  FileHealth `json:"files"`
}
