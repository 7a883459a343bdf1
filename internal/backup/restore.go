package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"blogd/internal/models"
	"blogd/internal/providers"
	"blogd/internal/schema"
)

type restorePlan struct {
	posts     []models.Post
	comments  []models.Comment
	settings  models.SiteSettings
	analytics []models.Analytics
	hasStats  bool
}

// RestoreFromBackup replaces live data with the named backup. The backup is
// fully decoded and checked before anything is touched, then a safety backup
// of the current state is taken, then the collections are written in order:
// posts, comments, settings, analytics.
func (m *Manager) RestoreFromBackup(ctx context.Context, name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	plan, err := m.loadPlan(name)
	if err != nil {
		m.logger.Errorf(providers.TypeBackup, "restore %s rejected: %v", name, err)
		return err
	}

	safety, err := m.create(ctx)
	if err != nil {
		return fmt.Errorf("safety backup: %w", err)
	}
	m.logger.Infof(providers.TypeBackup, "safety backup %s taken before restoring %s", filepath.Base(safety), name)

	if err := m.store.SavePosts(plan.posts); err != nil {
		return fmt.Errorf("restore posts: %w", err)
	}
	if err := m.store.SaveComments(plan.comments); err != nil {
		return fmt.Errorf("restore comments: %w", err)
	}
	if err := m.store.SaveSettings(plan.settings); err != nil {
		return fmt.Errorf("restore settings: %w", err)
	}
	if plan.hasStats {
		if err := m.store.SaveAnalytics(plan.analytics); err != nil {
			return fmt.Errorf("restore analytics: %w", err)
		}
	}

	m.logger.Infof(providers.TypeBackup, "restored %s: %d posts, %d comments", name, len(plan.posts), len(plan.comments))
	return nil
}

func (m *Manager) loadPlan(name string) (*restorePlan, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	if isCompressed(name) {
		if data, err = m.compressor.Decompress(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
		}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	for _, key := range []string{"posts", "comments", "settings"} {
		if raw, ok := doc[key]; !ok || string(raw) == "null" {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidBackup, key)
		}
	}

	plan := &restorePlan{}
	if err := decodeKey(doc, "posts", &plan.posts); err != nil {
		return nil, err
	}
	if err := decodeKey(doc, "comments", &plan.comments); err != nil {
		return nil, err
	}
	if err := decodeKey(doc, "settings", &plan.settings); err != nil {
		return nil, err
	}
	if raw, ok := doc["analytics"]; ok && string(raw) != "null" {
		if err := decodeKey(doc, "analytics", &plan.analytics); err != nil {
			return nil, err
		}
		plan.hasStats = true
	}

	problems := &schema.ValidationErrors{}
	if _, errs := schema.CheckAll(schema.Posts, "posts", plan.posts); errs != nil {
		problems.Merge("", errs)
	}
	if _, errs := schema.CheckAll(schema.Comments, "comments", plan.comments); errs != nil {
		problems.Merge("", errs)
	}
	problems.Merge("settings", schema.Settings.Check(schema.Settings.Normalize(plan.settings)))
	if plan.hasStats {
		if _, errs := schema.CheckAll(schema.Analytics, "analytics", plan.analytics); errs != nil {
			problems.Merge("", errs)
		}
	}
	if !problems.Empty() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBackup, problems)
	}

	if plan.posts == nil {
		plan.posts = []models.Post{}
	}
	if plan.comments == nil {
		plan.comments = []models.Comment{}
	}
	return plan, nil
}

func decodeKey(doc map[string]json.RawMessage, key string, v any) error {
	if err := json.Unmarshal(doc[key], v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidBackup, key, err)
	}
	return nil
}
