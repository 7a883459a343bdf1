package schema

import (
	"blogd/internal/models"
)

var SettingsSchema = Schema{
	Name: "settings",
	Rules: []FieldRule{
		{Field: "siteName", Required: true, MaxLen: 100},
		{Field: "tagline", Required: true, MaxLen: 200},
		{Field: "welcomeMessage", Required: true, MaxLen: 500},
		{Field: "aboutSection", Required: true, MaxLen: 2000},
		{Field: "authorName", Required: true, MaxLen: 100},
		{Field: "authorBio", Required: true, MaxLen: 500},
	},
}

func NormalizeSettings(s models.SiteSettings) models.SiteSettings {
	s = s.Clone()
	s.SiteName = Text(s.SiteName)
	s.Tagline = Text(s.Tagline)
	s.WelcomeMessage = Text(s.WelcomeMessage)
	s.AboutSection = Markdown(s.AboutSection)
	s.AuthorName = Text(s.AuthorName)
	s.AuthorBio = Text(s.AuthorBio)

	links := make(map[string]string, len(s.SocialLinks))
	for name, link := range s.SocialLinks {
		if name = Text(name); name != "" {
			links[name] = URL(link)
		}
	}
	s.SocialLinks = links
	return s
}

func CheckSettings(s models.SiteSettings) *ValidationErrors {
	errs := SettingsSchema.Check(map[string]any{
		"siteName":       s.SiteName,
		"tagline":        s.Tagline,
		"welcomeMessage": s.WelcomeMessage,
		"aboutSection":   s.AboutSection,
		"authorName":     s.AuthorName,
		"authorBio":      s.AuthorBio,
	})
	for name, link := range s.SocialLinks {
		if link != "" && !isAllowedURL(link) {
			errs.Add("socialLinks."+name, "must be an http, https or mailto URL")
		}
	}
	return errs
}
