package schema

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"blogd/internal/models"
)

func validComment() models.Comment {
	return models.Comment{
		ID:        uuid.NewString(),
		PostID:    uuid.NewString(),
		Author:    "Meera Devi",
		Email:     "meera@example.com",
		Content:   "Beautiful story.",
		CreatedAt: time.Now(),
	}
}

func TestCheckComment_Valid(t *testing.T) {
	assert.True(t, CheckComment(NormalizeComment(validComment())).Empty())
}

func TestCheckComment_DevanagariAuthor(t *testing.T) {
	c := validComment()
	c.Author = "मीरा देवी"

	assert.True(t, CheckComment(NormalizeComment(c)).Empty())
}

func TestCheckComment_AuthorWithDigits(t *testing.T) {
	c := validComment()
	c.Author = "bot9000"

	errs := CheckComment(NormalizeComment(c))
	assert.Equal(t, []string{"author"}, paths(errs))
}

func TestCheckComment_InvalidEmail(t *testing.T) {
	c := validComment()
	c.Email = "not-an-email"

	errs := CheckComment(NormalizeComment(c))
	assert.Equal(t, []string{"email"}, paths(errs))
}

func TestCheckComment_ContentTooLong(t *testing.T) {
	c := validComment()
	c.Content = strings.Repeat("x", 1001)

	errs := CheckComment(NormalizeComment(c))
	assert.Equal(t, []string{"content"}, paths(errs))
}

func TestCheckComment_BadPostID(t *testing.T) {
	c := validComment()
	c.PostID = "123"

	errs := CheckComment(NormalizeComment(c))
	assert.Contains(t, errs.Issues, Issue{Path: "postId", Message: "invalid post ID"})
}

func TestCheckComment_ReportsEveryField(t *testing.T) {
	errs := CheckComment(NormalizeComment(models.Comment{}))
	assert.Equal(t, []string{"id", "postId", "author", "email", "content", "createdAt"}, paths(errs))
}

func TestNormalizeComment_LowercasesEmail(t *testing.T) {
	c := validComment()
	c.Email = "Meera@Example.COM"

	assert.Equal(t, "meera@example.com", NormalizeComment(c).Email)
}
