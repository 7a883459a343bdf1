package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"blogd/internal/models"
	"blogd/internal/providers"
	"blogd/internal/schema"
	"blogd/internal/structures"
)

const (
	PostsFile     = "posts.json"
	CommentsFile  = "comments.json"
	SettingsFile  = "settings.json"
	AnalyticsFile = "analytics.json"

	filePerm = 0o644
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
)

type StoreInterface interface {
	GetPosts() []models.Post
	SavePosts(posts []models.Post) error
	GetComments() []models.Comment
	SaveComments(comments []models.Comment) error
	GetSettings() models.SiteSettings
	SaveSettings(settings models.SiteSettings) error
	GetAnalytics() []models.Analytics
	SaveAnalytics(analytics []models.Analytics) error

	GetPostByID(id string) (models.Post, bool)
	GetPostBySlug(slug string) (models.Post, bool)
	GetPublishedPosts() []models.Post
	GetCommentsByPostID(postID string) []models.Comment
	GetApprovedCommentsByPostID(postID string) []models.Comment
	IncrementPostViews(id string) (int, error)

	InsertPost(post models.Post) (models.Post, error)
	UpdatePost(id string, fn func(*models.Post) error) (models.Post, error)
	DeletePost(id string) (models.DeleteResult, error)
	ReplaceFeaturedImage(oldRef, newRef string) (bool, error)

	InsertComment(comment models.Comment) (models.Comment, error)
	UpdateComment(id string, fn func(*models.Comment) error) (models.Comment, error)
	DeleteComment(id string) error
	UpdateAnalytics(fn func([]models.Analytics) ([]models.Analytics, error)) error

	PerformIntegrityCheck() models.IntegrityReport
	CleanupOrphanedComments() (models.CleanupResult, error)
	HealthCheck() models.HealthReport

	DataDir() string
	DefaultSettings() models.SiteSettings
}

type Store struct {
	dataDir   string
	publicDir string
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface

	posts     *collection[models.Post]
	comments  *collection[models.Comment]
	analytics *collection[models.Analytics]
	settings  *settingsDocument
}

func NewStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (*Store, error) {
	dataDir := conf.Storage.DataDir
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{
		dataDir:   dataDir,
		publicDir: conf.Storage.PublicDir,
		logger:    logger,
		metrics:   metrics,
		posts:     newCollection("posts", filepath.Join(dataDir, PostsFile), schema.Posts),
		comments:  newCollection("comments", filepath.Join(dataDir, CommentsFile), schema.Comments),
		analytics: newCollection("analytics", filepath.Join(dataDir, AnalyticsFile), schema.Analytics),
		settings: &settingsDocument{
			path:     filepath.Join(dataDir, SettingsFile),
			defaults: defaultSettings(conf.Site),
		},
	}

	// Reading every collection once creates missing files up front.
	s.GetPosts()
	s.GetComments()
	s.GetAnalytics()
	s.GetSettings()

	return s, nil
}

func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) writeDocument(name, path string, v any) error {
	start := time.Now()
	data, err := MarshalDocument(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := WriteFileAtomic(path, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	s.metrics.ObserveStoreWriteDuration(name, time.Since(start))
	return nil
}

func (s *Store) GetPosts() []models.Post {
	return s.posts.get(s)
}

func (s *Store) SavePosts(posts []models.Post) error {
	return s.posts.save(s, posts)
}

func (s *Store) GetComments() []models.Comment {
	return s.comments.get(s)
}

func (s *Store) SaveComments(comments []models.Comment) error {
	return s.comments.save(s, comments)
}

func (s *Store) GetAnalytics() []models.Analytics {
	return s.analytics.get(s)
}

func (s *Store) SaveAnalytics(analytics []models.Analytics) error {
	return s.analytics.save(s, analytics)
}

func (s *Store) UpdateAnalytics(fn func([]models.Analytics) ([]models.Analytics, error)) error {
	_, err := s.analytics.update(s, fn)
	return err
}
