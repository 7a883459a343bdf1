package controllers

import (
	"context"

	"blogd/internal/models"
)

// mockService records calls and returns canned results. Unset hooks return
// zero values.
type mockService struct {
	calls map[string]int

	posts    []models.Post
	post     models.Post
	postErr  error
	comment  models.Comment
	err      error
	settings models.SiteSettings
	health   models.HealthReport
	backups  []models.BackupInfo
	path     string
	lastView [2]string
	lastName string
}

func newMockService() *mockService {
	return &mockService{calls: map[string]int{}}
}

func (m *mockService) hit(name string) { m.calls[name]++ }

func (m *mockService) ListPosts() []models.Post { m.hit("ListPosts"); return m.posts }
func (m *mockService) ListPublishedPosts() []models.Post {
	m.hit("ListPublishedPosts")
	return m.posts
}
func (m *mockService) GetPost(_ string) (models.Post, error) {
	m.hit("GetPost")
	return m.post, m.postErr
}
func (m *mockService) GetPublishedPost(_ string) (models.Post, error) {
	m.hit("GetPublishedPost")
	return m.post, m.postErr
}
func (m *mockService) CreatePost(_ models.PostInput) (models.Post, error) {
	m.hit("CreatePost")
	return m.post, m.err
}
func (m *mockService) UpdatePost(_ string, _ models.PostInput) (models.Post, error) {
	m.hit("UpdatePost")
	return m.post, m.err
}
func (m *mockService) SetPostStatus(_ string, status models.PostStatus) (models.Post, error) {
	m.hit("SetPostStatus")
	p := m.post
	p.Status = status
	return p, m.err
}
func (m *mockService) DeletePost(_ string) (models.DeleteResult, error) {
	m.hit("DeletePost")
	return models.DeleteResult{PostTitle: m.post.Title, CommentsDeleted: 3}, m.err
}
func (m *mockService) ListComments() []models.Comment { m.hit("ListComments"); return nil }
func (m *mockService) ListApprovedComments(_ string) []models.Comment {
	m.hit("ListApprovedComments")
	return []models.Comment{m.comment}
}
func (m *mockService) CreateComment(_ models.CommentInput) (models.Comment, error) {
	m.hit("CreateComment")
	return m.comment, m.err
}
func (m *mockService) ApproveComment(_ string, approved bool) (models.Comment, error) {
	m.hit("ApproveComment")
	c := m.comment
	c.Approved = approved
	return c, m.err
}
func (m *mockService) DeleteComment(_ string) error { m.hit("DeleteComment"); return m.err }
func (m *mockService) CleanupOrphanedComments() (models.CleanupResult, error) {
	m.hit("CleanupOrphanedComments")
	return models.CleanupResult{Removed: 2}, m.err
}
func (m *mockService) GetSettings() models.SiteSettings { m.hit("GetSettings"); return m.settings }
func (m *mockService) UpdateSettings(s models.SiteSettings) (models.SiteSettings, error) {
	m.hit("UpdateSettings")
	return s, m.err
}
func (m *mockService) RecordPostView(id, visitor string) (models.Analytics, error) {
	m.hit("RecordPostView")
	m.lastView = [2]string{id, visitor}
	return models.Analytics{PostID: id, Views: 1}, m.postErr
}
func (m *mockService) AnalyticsSummary() models.AnalyticsSummary {
	m.hit("AnalyticsSummary")
	return models.AnalyticsSummary{TotalViews: 42, TopPosts: []models.TopPost{}}
}
func (m *mockService) IntegrityCheck() models.IntegrityReport {
	m.hit("IntegrityCheck")
	return models.IntegrityReport{Status: models.HealthHealthy, Issues: []string{}}
}
func (m *mockService) Health() models.HealthReport { m.hit("Health"); return m.health }
func (m *mockService) CreateBackup(_ context.Context) (string, error) {
	m.hit("CreateBackup")
	return m.path, m.err
}
func (m *mockService) ListBackups() ([]models.BackupInfo, error) {
	m.hit("ListBackups")
	return m.backups, m.err
}
func (m *mockService) DeleteBackup(name string) error {
	m.hit("DeleteBackup")
	m.lastName = name
	return m.err
}
func (m *mockService) RestoreFromBackup(_ context.Context, name string) error {
	m.hit("RestoreFromBackup")
	m.lastName = name
	return m.err
}
func (m *mockService) ExportData(_ context.Context) (string, error) {
	m.hit("ExportData")
	return m.path, m.err
}

type mockUploads struct {
	name, contentType string
	size              int
	err               error
}

func (m *mockUploads) SaveImage(name, contentType string, data []byte) (models.Upload, error) {
	m.name, m.contentType, m.size = name, contentType, len(data)
	if m.err != nil {
		return models.Upload{}, m.err
	}
	return models.Upload{URL: "/uploads/" + name, FileName: name, Size: int64(len(data)), Type: contentType}, nil
}
