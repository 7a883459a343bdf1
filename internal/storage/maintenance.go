package storage

import (
	"fmt"
	"os"
	"slices"
	"strings"

	json "github.com/goccy/go-json"

	"blogd/internal/models"
	"blogd/internal/providers"
)

// scan reports problems in the raw file without repairing anything: records
// missing any of the required keys, and records a read would drop.
func (c *collection[T]) scan(required []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	var raws []json.RawMessage
	if err == nil {
		raws, err = decodeArray(data)
	}
	if err != nil {
		return []string{fmt.Sprintf("%s file is missing or unreadable", c.name)}
	}

	var issues []string
	for i, raw := range raws {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			issues = append(issues, fmt.Sprintf("%s[%d] is not an object", c.name, i))
			continue
		}
		if missing := missingKeys(fields, required); len(missing) > 0 {
			issues = append(issues, fmt.Sprintf("%s[%d] is missing %s", c.name, i, strings.Join(missing, ", ")))
			continue
		}
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			issues = append(issues, fmt.Sprintf("%s[%d] cannot be decoded: %v", c.name, i, err))
			continue
		}
		if errs := c.pipe.Check(c.pipe.Normalize(rec)); !errs.Empty() {
			issues = append(issues, fmt.Sprintf("%s[%d] is invalid: %v", c.name, i, errs))
		}
	}
	return issues
}

func (c *collection[T]) healthy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := os.ReadFile(c.path)
	if err != nil {
		return false
	}
	_, err = decodeArray(data)
	return err == nil
}

func missingKeys(fields map[string]any, keys []string) []string {
	var missing []string
	for _, k := range keys {
		v, ok := fields[k]
		if s, isString := v.(string); !ok || v == nil || (isString && strings.TrimSpace(s) == "") {
			missing = append(missing, k)
		}
	}
	return missing
}

func (s *Store) PerformIntegrityCheck() models.IntegrityReport {
	issues := []string{}
	issues = append(issues, s.posts.scan([]string{"id", "title", "slug"})...)
	issues = append(issues, s.comments.scan([]string{"id", "postId", "author"})...)
	issues = append(issues, s.scanSettings()...)

	postIDs := map[string]bool{}
	for _, p := range s.GetPosts() {
		postIDs[p.ID] = true
	}
	for _, c := range s.GetComments() {
		if !postIDs[c.PostID] {
			issues = append(issues, fmt.Sprintf("comment %s references missing post %s", c.ID, c.PostID))
		}
	}

	status := models.HealthHealthy
	if len(issues) > 0 {
		status = models.IssuesFound
	}
	return models.IntegrityReport{Status: status, Issues: issues}
}

func (s *Store) scanSettings() []string {
	doc := s.settings
	doc.mu.Lock()
	defer doc.mu.Unlock()

	var fields map[string]any
	data, err := os.ReadFile(doc.path)
	if err == nil {
		err = checkObject(data)
	}
	if err == nil {
		err = json.Unmarshal(data, &fields)
	}
	if err != nil {
		return []string{"settings file is missing or unreadable"}
	}
	if missing := missingKeys(fields, []string{"siteName", "authorName"}); len(missing) > 0 {
		return []string{"settings is missing " + strings.Join(missing, ", ")}
	}
	return nil
}

// CleanupOrphanedComments drops comments whose post no longer exists.
func (s *Store) CleanupOrphanedComments() (models.CleanupResult, error) {
	s.posts.mu.Lock()
	defer s.posts.mu.Unlock()
	postIDs := map[string]bool{}
	for _, p := range s.posts.read(s) {
		postIDs[p.ID] = true
	}

	s.comments.mu.Lock()
	defer s.comments.mu.Unlock()
	comments := s.comments.read(s)
	kept := slices.DeleteFunc(slices.Clone(comments), func(c models.Comment) bool { return !postIDs[c.PostID] })

	res := models.CleanupResult{Removed: len(comments) - len(kept), Remaining: len(kept)}
	if res.Removed == 0 {
		return res, nil
	}
	if _, err := s.comments.write(s, kept); err != nil {
		return models.CleanupResult{}, fmt.Errorf("cleanup orphaned comments: %w", err)
	}
	s.logger.Infof(providers.TypeStore, "removed %d orphaned comments", res.Removed)
	return res, nil
}

func (s *Store) HealthCheck() models.HealthReport {
	files := models.FileHealth{
		Posts:     s.posts.healthy(),
		Comments:  s.comments.healthy(),
		Analytics: s.analytics.healthy(),
		Settings:  s.settingsHealthy(),
	}
	status := models.HealthHealthy
	if !(files.Posts && files.Comments && files.Analytics && files.Settings) {
		status = models.HealthDegraded
	}
	return models.HealthReport{Status: status, Files: files}
}

func (s *Store) settingsHealthy() bool {
	doc := s.settings
	doc.mu.Lock()
	defer doc.mu.Unlock()
	data, err := os.ReadFile(doc.path)
	if err != nil {
		return false
	}
	return checkObject(data) == nil
}
