package storage

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogd/internal/schema"
)

func TestStore_SettingsRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	s := env.store.GetSettings()
	s.Tagline = "<i>New</i> tagline"
	s.SocialLinks = map[string]string{"github": "https://github.com/someone"}

	require.NoError(t, env.store.SaveSettings(s))

	got := env.store.GetSettings()
	assert.Equal(t, "New tagline", got.Tagline)
	assert.Equal(t, "https://github.com/someone", got.SocialLinks["github"])
}

func TestStore_SaveSettingsRejectsInvalid(t *testing.T) {
	env := newTestEnv(t)
	s := env.store.GetSettings()
	s.AuthorName = ""

	err := env.store.SaveSettings(s)

	var verrs *schema.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "settings.authorName", verrs.Issues[0].Path)
}

func TestStore_CorruptSettingsFallBackToDefaults(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.path(SettingsFile), []byte("[1,2"), 0o644))

	got := env.store.GetSettings()

	assert.Equal(t, env.store.DefaultSettings(), got)
	assert.Equal(t, 2, env.metrics.SelfHeals["settings"])
}

func TestStore_InvalidSettingsAreNotRewritten(t *testing.T) {
	env := newTestEnv(t)
	raw := []byte(`{"siteName": "", "tagline": "t"}`)
	require.NoError(t, os.WriteFile(env.path(SettingsFile), raw, 0o644))

	got := env.store.GetSettings()

	assert.Equal(t, env.store.DefaultSettings(), got)
	data, err := os.ReadFile(env.path(SettingsFile))
	require.NoError(t, err)
	assert.Equal(t, raw, data)
}

func TestStore_MistypedSettingsAreNotRewritten(t *testing.T) {
	env := newTestEnv(t)
	raw := []byte(`{"siteName": "My Real Blog", "tagline": "t", "authorName": "Meera", "socialLinks": {"twitter": 5}}`)
	require.NoError(t, os.WriteFile(env.path(SettingsFile), raw, 0o644))
	heals := env.metrics.SelfHeals["settings"]

	got := env.store.GetSettings()

	assert.Equal(t, env.store.DefaultSettings(), got)
	data, err := os.ReadFile(env.path(SettingsFile))
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Equal(t, heals, env.metrics.SelfHeals["settings"])
	assert.Equal(t, 1, env.metrics.RecordsDropped["settings"])
}
