package services

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogd/internal/backup"
	"blogd/internal/models"
	"blogd/internal/providers"
	"blogd/internal/schema"
	"blogd/internal/storage"
)

const topPostsLimit = 5

var slugSeparators = regexp.MustCompile(`[\s_]+`)

type BlogServiceInterface interface {
	ListPosts() []models.Post
	ListPublishedPosts() []models.Post
	GetPost(id string) (models.Post, error)
	GetPublishedPost(slug string) (models.Post, error)
	CreatePost(input models.PostInput) (models.Post, error)
	UpdatePost(id string, input models.PostInput) (models.Post, error)
	SetPostStatus(id string, status models.PostStatus) (models.Post, error)
	DeletePost(id string) (models.DeleteResult, error)

	ListComments() []models.Comment
	ListApprovedComments(postID string) []models.Comment
	CreateComment(input models.CommentInput) (models.Comment, error)
	ApproveComment(id string, approved bool) (models.Comment, error)
	DeleteComment(id string) error
	CleanupOrphanedComments() (models.CleanupResult, error)

	GetSettings() models.SiteSettings
	UpdateSettings(settings models.SiteSettings) (models.SiteSettings, error)

	RecordPostView(id, visitor string) (models.Analytics, error)
	AnalyticsSummary() models.AnalyticsSummary

	IntegrityCheck() models.IntegrityReport
	Health() models.HealthReport

	CreateBackup(ctx context.Context) (string, error)
	ListBackups() ([]models.BackupInfo, error)
	DeleteBackup(name string) error
	RestoreFromBackup(ctx context.Context, name string) error
	ExportData(ctx context.Context) (string, error)
}

type BlogService struct {
	store   storage.StoreInterface
	backups backup.ManagerInterface
	readers *ReaderTracker
	logger  providers.Logger
	now     func() time.Time
}

// slugify derives a slug from a title: whitespace becomes '-', everything
// outside [a-z0-9-] is dropped.
func slugify(title string) string {
	s := slugSeparators.ReplaceAllString(strings.ToLower(schema.Text(title)), "-")
	return strings.Trim(schema.Slug(s), "-")
}

func newestFirst(a, b time.Time) int {
	return b.Compare(a)
}

func (bs *BlogService) ListPosts() []models.Post {
	posts := bs.store.GetPosts()
	slices.SortStableFunc(posts, func(a, b models.Post) int { return newestFirst(a.CreatedAt, b.CreatedAt) })
	return posts
}

func (bs *BlogService) ListPublishedPosts() []models.Post {
	posts := bs.store.GetPublishedPosts()
	slices.SortStableFunc(posts, func(a, b models.Post) int {
		return newestFirst(publishedOrCreated(a), publishedOrCreated(b))
	})
	return posts
}

func publishedOrCreated(p models.Post) time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

func (bs *BlogService) GetPost(id string) (models.Post, error) {
	post, ok := bs.store.GetPostByID(id)
	if !ok {
		return models.Post{}, storage.ErrPostNotFound
	}
	return post, nil
}

func (bs *BlogService) GetPublishedPost(slug string) (models.Post, error) {
	post, ok := bs.store.GetPostBySlug(slug)
	if !ok {
		return models.Post{}, storage.ErrPostNotFound
	}
	return post, nil
}

// CreatePost assigns the id and timestamps. A missing slug is derived from
// the title, or from the id when the title has no ASCII letters.
func (bs *BlogService) CreatePost(input models.PostInput) (models.Post, error) {
	now := schema.Timestamp(bs.now())
	post := models.Post{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyPostInput(&post, input)
	if post.IsPublished() {
		post.PublishedAt = &now
	}

	created, err := bs.store.InsertPost(post)
	if err != nil {
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}
	bs.logger.Infof(providers.TypeApp, "post %s created (%s)", created.ID, created.Status)
	return created, nil
}

// UpdatePost replaces the editable fields. The first transition into
// published stamps publishedAt.
func (bs *BlogService) UpdatePost(id string, input models.PostInput) (models.Post, error) {
	now := schema.Timestamp(bs.now())
	updated, err := bs.store.UpdatePost(id, func(p *models.Post) error {
		applyPostInput(p, input)
		p.UpdatedAt = now
		if p.IsPublished() && p.PublishedAt == nil {
			p.PublishedAt = &now
		}
		return nil
	})
	if err != nil {
		return models.Post{}, fmt.Errorf("update post %s: %w", id, err)
	}
	return updated, nil
}

// SetPostStatus publishes or unpublishes a post. Publishing keeps an existing
// publishedAt; moving away from published clears it.
func (bs *BlogService) SetPostStatus(id string, status models.PostStatus) (models.Post, error) {
	now := schema.Timestamp(bs.now())
	updated, err := bs.store.UpdatePost(id, func(p *models.Post) error {
		p.Status = status
		p.IsDraft = status == models.StatusDraft
		p.UpdatedAt = now
		switch {
		case !p.IsPublished():
			p.PublishedAt = nil
		case p.PublishedAt == nil:
			p.PublishedAt = &now
		}
		return nil
	})
	if err != nil {
		return models.Post{}, fmt.Errorf("set status of post %s: %w", id, err)
	}
	bs.logger.Infof(providers.TypeApp, "post %s is now %s", id, updated.Status)
	return updated, nil
}

func applyPostInput(p *models.Post, in models.PostInput) {
	p.Title = in.Title
	p.Slug = in.Slug
	if strings.TrimSpace(p.Slug) == "" {
		p.Slug = slugify(in.Title)
	}
	if p.Slug == "" && len(p.ID) >= 8 {
		p.Slug = "post-" + p.ID[:8]
	}
	p.Content = in.Content
	p.Excerpt = in.Excerpt
	p.Author = in.Author
	p.Category = in.Category
	p.Tags = slices.Clone(in.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.FeaturedImage = in.FeaturedImage
	p.Status = in.Status
	p.IsDraft = in.Status == models.StatusDraft
}

// DeletePost removes the post with its comments and image, then drops the
// post's analytics. A failed analytics cleanup is logged only.
func (bs *BlogService) DeletePost(id string) (models.DeleteResult, error) {
	res, err := bs.store.DeletePost(id)
	if err != nil {
		return res, err
	}
	bs.readers.Forget(id)
	err = bs.store.UpdateAnalytics(func(all []models.Analytics) ([]models.Analytics, error) {
		return slices.DeleteFunc(all, func(a models.Analytics) bool { return a.PostID == id }), nil
	})
	if err != nil {
		bs.logger.Warnf(providers.TypeApp, "post %s: analytics not removed: %v", id, err)
	}
	return res, nil
}

func (bs *BlogService) ListComments() []models.Comment {
	comments := bs.store.GetComments()
	slices.SortStableFunc(comments, func(a, b models.Comment) int { return newestFirst(a.CreatedAt, b.CreatedAt) })
	return comments
}

func (bs *BlogService) ListApprovedComments(postID string) []models.Comment {
	comments := bs.store.GetApprovedCommentsByPostID(postID)
	slices.SortStableFunc(comments, func(a, b models.Comment) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return comments
}

// CreateComment stores a new comment awaiting moderation. The post must exist.
func (bs *BlogService) CreateComment(input models.CommentInput) (models.Comment, error) {
	postID := schema.ID(input.PostID)
	if _, ok := bs.store.GetPostByID(postID); !ok {
		return models.Comment{}, fmt.Errorf("create comment: %w", storage.ErrPostNotFound)
	}
	comment := models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Author:    input.Author,
		Email:     input.Email,
		Content:   input.Content,
		CreatedAt: schema.Timestamp(bs.now()),
	}
	created, err := bs.store.InsertComment(comment)
	if err != nil {
		return models.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	bs.logger.Infof(providers.TypeApp, "comment %s awaiting moderation on post %s", created.ID, postID)
	return created, nil
}

func (bs *BlogService) ApproveComment(id string, approved bool) (models.Comment, error) {
	updated, err := bs.store.UpdateComment(id, func(c *models.Comment) error {
		c.Approved = approved
		return nil
	})
	if err != nil {
		return models.Comment{}, fmt.Errorf("moderate comment %s: %w", id, err)
	}
	return updated, nil
}

func (bs *BlogService) DeleteComment(id string) error {
	if err := bs.store.DeleteComment(id); err != nil {
		return fmt.Errorf("delete comment %s: %w", id, err)
	}
	return nil
}

func (bs *BlogService) CleanupOrphanedComments() (models.CleanupResult, error) {
	return bs.store.CleanupOrphanedComments()
}

func (bs *BlogService) GetSettings() models.SiteSettings {
	return bs.store.GetSettings()
}

func (bs *BlogService) UpdateSettings(settings models.SiteSettings) (models.SiteSettings, error) {
	if err := bs.store.SaveSettings(settings); err != nil {
		return models.SiteSettings{}, err
	}
	return bs.store.GetSettings(), nil
}

// RecordPostView counts one view of the post and folds it into the post's
// analytics record. Reads grow by one for each visitor not yet seen for the
// post by this process.
func (bs *BlogService) RecordPostView(id, visitor string) (models.Analytics, error) {
	if _, err := bs.store.IncrementPostViews(id); err != nil {
		return models.Analytics{}, fmt.Errorf("record view of %s: %w", id, err)
	}
	firstRead := bs.readers.Track(id, visitor)
	now := schema.Timestamp(bs.now())

	var rec models.Analytics
	err := bs.store.UpdateAnalytics(func(all []models.Analytics) ([]models.Analytics, error) {
		i := slices.IndexFunc(all, func(a models.Analytics) bool { return a.PostID == id })
		if i < 0 {
			all = append(all, models.Analytics{PostID: id})
			i = len(all) - 1
		}
		all[i].Views++
		if firstRead {
			all[i].Reads++
		}
		all[i].EngagementScore = engagementScore(all[i])
		all[i].LastViewed = now
		rec = all[i]
		return all, nil
	})
	if err != nil {
		return models.Analytics{}, fmt.Errorf("record view of %s: %w", id, err)
	}
	return rec, nil
}

func engagementScore(a models.Analytics) float64 {
	return float64(a.Views + 2*a.Reads)
}

// AnalyticsSummary covers published posts only: their total views, their
// count and the five most viewed. Comment counts cover every post.
func (bs *BlogService) AnalyticsSummary() models.AnalyticsSummary {
	published := bs.store.GetPublishedPosts()
	summary := models.AnalyticsSummary{
		TotalPosts: len(published),
		TopPosts:   []models.TopPost{},
	}

	isPublished := make(map[string]bool, len(published))
	for _, p := range published {
		summary.TotalViews += p.Views
		isPublished[p.ID] = true
	}

	slices.SortStableFunc(published, func(a, b models.Post) int { return cmp.Compare(b.Views, a.Views) })
	for _, p := range published[:min(len(published), topPostsLimit)] {
		summary.TopPosts = append(summary.TopPosts, models.TopPost{ID: p.ID, Title: p.Title, Slug: p.Slug, Views: p.Views})
	}

	for _, c := range bs.store.GetComments() {
		if c.Approved {
			summary.TotalComments++
		} else {
			summary.PendingComments++
		}
	}
	for _, a := range bs.store.GetAnalytics() {
		if isPublished[a.PostID] {
			summary.TotalReads += a.Reads
		}
	}
	return summary
}

func (bs *BlogService) IntegrityCheck() models.IntegrityReport {
	return bs.store.PerformIntegrityCheck()
}

func (bs *BlogService) Health() models.HealthReport {
	return bs.store.HealthCheck()
}

func (bs *BlogService) CreateBackup(ctx context.Context) (string, error) {
	return bs.backups.CreateBackup(ctx)
}

func (bs *BlogService) ListBackups() ([]models.BackupInfo, error) {
	return bs.backups.ListBackups()
}

func (bs *BlogService) DeleteBackup(name string) error {
	return bs.backups.DeleteBackup(name)
}

// RestoreFromBackup also resets reader tracking, which no longer matches the
// restored analytics.
func (bs *BlogService) RestoreFromBackup(ctx context.Context, name string) error {
	if err := bs.backups.RestoreFromBackup(ctx, name); err != nil {
		return err
	}
	bs.readers.Reset()
	return nil
}

func (bs *BlogService) ExportData(ctx context.Context) (string, error) {
	return bs.backups.ExportData(ctx)
}

func NewBlogService(store storage.StoreInterface, backups backup.ManagerInterface, readers *ReaderTracker, logger providers.Logger) BlogServiceInterface {
	return &BlogService{
		store:   store,
		backups: backups,
		readers: readers,
		logger:  logger,
		now:     time.Now,
	}
}
