package models

import "maps"

type SiteSettings struct {
	SiteName       string            `json:"siteName"`
	Tagline        string            `json:"tagline"`
	WelcomeMessage string            `json:"welcomeMessage"`
	AboutSection   string            `json:"aboutSection"`
	AuthorName     string            `json:"authorName"`
	AuthorBio      string            `json:"authorBio"`
	SocialLinks    map[string]string `json:"socialLinks"`
}

func (s SiteSettings) Clone() SiteSettings {
	c := s
	c.SocialLinks = maps.Clone(s.SocialLinks)
	return c
}
