package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogd/internal/models"
)

func TestCheckAll_AllValid(t *testing.T) {
	posts := []models.Post{validPost(), validPost()}
	posts[1].Title = " <b>Second</b> "

	out, errs := CheckAll(Posts, "posts", posts)
	require.True(t, errs.Empty())
	require.Len(t, out, 2)
	assert.Equal(t, "Second", out[1].Title)
}

func TestCheckAll_PrefixesPaths(t *testing.T) {
	posts := []models.Post{validPost(), validPost(), validPost()}
	posts[2].Title = ""

	out, errs := CheckAll(Posts, "posts", posts)
	assert.Nil(t, out)
	require.False(t, errs.Empty())
	assert.Equal(t, []Issue{{Path: "posts[2].title", Message: "is required"}}, errs.Issues)
}

func TestValidationErrors_Error(t *testing.T) {
	errs := &ValidationErrors{}
	errs.Add("posts[0].title", "is required")
	errs.Add("posts[0].slug", "is too long")

	assert.Equal(t, "validation failed: posts[0].title: is required; posts[0].slug: is too long", errs.Error())
	assert.Error(t, errs.Err())
	assert.NoError(t, (&ValidationErrors{}).Err())
}
