package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogd/internal/models"
)

func writeUpload(t *testing.T, env *testEnv, name string) string {
	t.Helper()
	dir := filepath.Join(env.public, "uploads")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))
	return path
}

func TestStore_DeletePostCascades(t *testing.T) {
	env := newTestEnv(t)
	imgPath := writeUpload(t, env, "cover.png")

	post := newPost("Doomed", "doomed", models.StatusPublished)
	post.FeaturedImage = "/uploads/cover.png"
	other := newPost("Other", "other", models.StatusPublished)
	require.NoError(t, env.store.SavePosts([]models.Post{post, other}))
	require.NoError(t, env.store.SaveComments([]models.Comment{
		newComment(post.ID, true),
		newComment(post.ID, false),
		newComment(other.ID, true),
		newComment(post.ID, true),
	}))

	res, err := env.store.DeletePost(post.ID)
	require.NoError(t, err)

	assert.Equal(t, "Doomed", res.PostTitle)
	assert.Equal(t, 3, res.CommentsDeleted)
	assert.True(t, res.ImageDeleted)
	assert.Empty(t, res.Errors)
	assert.Empty(t, env.store.GetCommentsByPostID(post.ID))
	assert.Len(t, env.store.GetComments(), 1)
	_, ok := env.store.GetPostByID(post.ID)
	assert.False(t, ok)
	_, err = os.Stat(imgPath)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_DeletePostWithoutCommentsOrImage(t *testing.T) {
	env := newTestEnv(t)
	post := newPost("Lonely", "lonely", models.StatusDraft)
	require.NoError(t, env.store.SavePosts([]models.Post{post}))

	res, err := env.store.DeletePost(post.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, res.CommentsDeleted)
	assert.False(t, res.ImageDeleted)
	assert.Contains(t, res.Details, "no comments to delete")
	assert.Contains(t, res.Details, "post deleted")
}

func TestStore_DeletePostLeavesExternalImage(t *testing.T) {
	env := newTestEnv(t)
	post := newPost("Ext", "ext", models.StatusDraft)
	post.FeaturedImage = "https://cdn.example.com/a.jpg"
	require.NoError(t, env.store.SavePosts([]models.Post{post}))

	res, err := env.store.DeletePost(post.ID)
	require.NoError(t, err)

	assert.False(t, res.ImageDeleted)
	assert.Contains(t, res.Details, "external image left in place")
}

func TestStore_DeletePostMissingImageFile(t *testing.T) {
	env := newTestEnv(t)
	post := newPost("Gone", "gone", models.StatusDraft)
	post.FeaturedImage = "/uploads/missing.png"
	require.NoError(t, env.store.SavePosts([]models.Post{post}))

	res, err := env.store.DeletePost(post.ID)
	require.NoError(t, err)

	assert.False(t, res.ImageDeleted)
	assert.Empty(t, res.Errors)
	assert.Contains(t, res.Details, "featured image file not found")
}

func TestStore_DeletePostNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.store.DeletePost(uuid.NewString())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestStore_UpdatePostRemovesReplacedImage(t *testing.T) {
	env := newTestEnv(t)
	oldPath := writeUpload(t, env, "old.png")
	newPath := writeUpload(t, env, "new.png")

	post := newPost("P", "p", models.StatusDraft)
	post.FeaturedImage = "/uploads/old.png"
	_, err := env.store.InsertPost(post)
	require.NoError(t, err)

	_, err = env.store.UpdatePost(post.ID, func(p *models.Post) error {
		p.FeaturedImage = "/uploads/new.png"
		return nil
	})
	require.NoError(t, err)

	_, err = os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(newPath)
	assert.NoError(t, err)
}

func TestStore_ReplaceFeaturedImageSameRefIsNoop(t *testing.T) {
	env := newTestEnv(t)
	path := writeUpload(t, env, "keep.png")

	deleted, err := env.store.ReplaceFeaturedImage("/uploads/keep.png", "/uploads/keep.png")
	require.NoError(t, err)
	assert.False(t, deleted)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_RemoveLocalImageRefusesTraversal(t *testing.T) {
	env := newTestEnv(t)
	outside := filepath.Join(filepath.Dir(env.public), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	deleted, err := env.store.removeLocalImage("/uploads/../../secret.txt")
	assert.NoError(t, err)
	assert.False(t, deleted)
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}
