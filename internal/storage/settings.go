package storage

import (
	"fmt"
	"os"
	"sync"

	json "github.com/goccy/go-json"

	"blogd/internal/models"
	"blogd/internal/providers"
	"blogd/internal/schema"
	"blogd/internal/structures"
)

type settingsDocument struct {
	mu       sync.Mutex
	path     string
	defaults models.SiteSettings
}

func defaultSettings(site structures.SiteConfig) models.SiteSettings {
	s := models.SiteSettings{
		SiteName:       "Ghar nari",
		Tagline:        "जहाँ कहानियाँ जिंदगी बन जाती हैं",
		WelcomeMessage: "Welcome to my literary sanctuary - a space where life's stories unfold",
		AboutSection:   "I'm a passionate writer exploring the depths of human experience through words, capturing the essence of life, society, and the stories that connect us all.",
		AuthorName:     "Author Name",
		AuthorBio:      "A storyteller at heart, weaving narratives from life's beautiful moments - from home to heart, from society to soul.",
		SocialLinks:    map[string]string{},
	}
	if site.Name != "" {
		s.SiteName = site.Name
	}
	if site.Author != "" {
		s.AuthorName = site.Author
	}
	return s
}

func (s *Store) DefaultSettings() models.SiteSettings {
	return s.settings.defaults.Clone()
}

// GetSettings falls back to the defaults when the stored document is
// unreadable or fails the pipeline. Only an unreadable file is rewritten.
func (s *Store) GetSettings() models.SiteSettings {
	doc := s.settings
	doc.mu.Lock()
	defer doc.mu.Unlock()

	data, err := os.ReadFile(doc.path)
	if err == nil {
		err = checkObject(data)
	}
	if err != nil {
		s.heal("settings", doc.path, doc.defaults, err)
		return doc.defaults.Clone()
	}

	var stored models.SiteSettings
	if err := json.Unmarshal(data, &stored); err != nil {
		return s.invalidSettings(err)
	}
	stored = schema.Settings.Normalize(stored)
	if errs := schema.Settings.Check(stored); !errs.Empty() {
		return s.invalidSettings(errs)
	}
	return stored
}

// invalidSettings leaves a well-formed but invalid document on disk for the
// author to repair and serves the defaults meanwhile.
func (s *Store) invalidSettings(cause error) models.SiteSettings {
	s.logger.Warnf(providers.TypeStore, "settings invalid, using defaults: %v", cause)
	s.metrics.IncRecordsDropped("settings")
	return s.settings.defaults.Clone()
}

func (s *Store) SaveSettings(settings models.SiteSettings) error {
	doc := s.settings
	doc.mu.Lock()
	defer doc.mu.Unlock()

	settings = schema.Settings.Normalize(settings)
	if errs := schema.Settings.Check(settings); !errs.Empty() {
		wrapped := &schema.ValidationErrors{}
		wrapped.Merge("settings", errs)
		return fmt.Errorf("save settings: %w", wrapped)
	}
	return s.writeDocument("settings", doc.path, settings)
}
