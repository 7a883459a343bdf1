package services

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogd/internal/schema"
	"blogd/internal/structures"
	"blogd/internal/testutil"
)

func newUploadService(t *testing.T) (*UploadService, string) {
	t.Helper()
	public := t.TempDir()
	conf := &structures.Config{Storage: structures.StorageConfig{PublicDir: public}}
	return NewUploadService(conf, &testutil.MockLogger{}).(*UploadService), public
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestSaveImage(t *testing.T) {
	us, public := newUploadService(t)
	data := tinyPNG(t)

	up, err := us.SaveImage("My Photo.PNG", "image/png", data)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(up.FileName, "my_photo-"))
	assert.True(t, strings.HasSuffix(up.FileName, ".png"))
	assert.Equal(t, "/uploads/"+up.FileName, up.URL)
	assert.Equal(t, int64(len(data)), up.Size)
	assert.Equal(t, "image/png", up.Type)

	stored, err := os.ReadFile(filepath.Join(public, "uploads", up.FileName))
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	ref, ok := schema.LocalUploadPath(up.URL)
	assert.True(t, ok)
	assert.Equal(t, up.URL, ref)
}

func TestSaveImage_RejectsNonImage(t *testing.T) {
	us, public := newUploadService(t)

	_, err := us.SaveImage("evil.png", "image/png", []byte("<?php echo 1; ?>"))

	var verrs *schema.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	_, statErr := os.Stat(filepath.Join(public, "uploads"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveImage_UniqueNames(t *testing.T) {
	us, _ := newUploadService(t)
	data := tinyPNG(t)

	a, err := us.SaveImage("same.png", "image/png", data)
	require.NoError(t, err)
	b, err := us.SaveImage("same.png", "image/png", data)
	require.NoError(t, err)
	assert.NotEqual(t, a.FileName, b.FileName)
}
