package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"blogd/internal/models"
)

func validSettings() models.SiteSettings {
	return models.SiteSettings{
		SiteName:       "Ghar nari",
		Tagline:        "जहाँ कहानियाँ जिंदगी बन जाती हैं",
		WelcomeMessage: "Welcome",
		AboutSection:   "About **me**",
		AuthorName:     "Author Name",
		AuthorBio:      "A storyteller.",
		SocialLinks:    map[string]string{"twitter": "https://twitter.com/x"},
	}
}

func TestCheckSettings_Valid(t *testing.T) {
	assert.True(t, CheckSettings(NormalizeSettings(validSettings())).Empty())
}

func TestCheckSettings_MissingSiteName(t *testing.T) {
	s := validSettings()
	s.SiteName = "<b></b>"

	errs := CheckSettings(NormalizeSettings(s))
	assert.Equal(t, []string{"siteName"}, paths(errs))
}

func TestCheckSettings_AboutTooLong(t *testing.T) {
	s := validSettings()
	s.AboutSection = strings.Repeat("a", 2001)

	errs := CheckSettings(NormalizeSettings(s))
	assert.Equal(t, []string{"aboutSection"}, paths(errs))
}

func TestNormalizeSettings_DropsUnsafeLinks(t *testing.T) {
	s := validSettings()
	s.SocialLinks = map[string]string{"github": "javascript:alert(1)", "linkedin": ""}

	n := NormalizeSettings(s)
	assert.Equal(t, map[string]string{"github": "", "linkedin": ""}, n.SocialLinks)
	assert.True(t, CheckSettings(n).Empty())
}

func TestCheckSettings_RejectsRawUnsafeLink(t *testing.T) {
	s := NormalizeSettings(validSettings())
	s.SocialLinks["github"] = "javascript:alert(1)"

	errs := CheckSettings(s)
	assert.Equal(t, []string{"socialLinks.github"}, paths(errs))
}

func TestNormalizeSettings_NilLinksBecomeEmpty(t *testing.T) {
	s := validSettings()
	s.SocialLinks = nil

	assert.NotNil(t, NormalizeSettings(s).SocialLinks)
}
