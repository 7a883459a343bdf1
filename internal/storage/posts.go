package storage

import (
	"fmt"
	"slices"

	"blogd/internal/models"
	"blogd/internal/providers"
)

func (s *Store) GetPostByID(id string) (models.Post, bool) {
	posts := s.GetPosts()
	i := slices.IndexFunc(posts, func(p models.Post) bool { return p.ID == id })
	if i < 0 {
		return models.Post{}, false
	}
	return posts[i], true
}

// GetPostBySlug only matches published posts.
func (s *Store) GetPostBySlug(slug string) (models.Post, bool) {
	posts := s.GetPosts()
	i := slices.IndexFunc(posts, func(p models.Post) bool { return p.Slug == slug && p.IsPublished() })
	if i < 0 {
		return models.Post{}, false
	}
	return posts[i], true
}

func (s *Store) GetPublishedPosts() []models.Post {
	return slices.DeleteFunc(s.GetPosts(), func(p models.Post) bool { return !p.IsPublished() })
}

func (s *Store) IncrementPostViews(id string) (int, error) {
	views := 0
	_, err := s.posts.update(s, func(posts []models.Post) ([]models.Post, error) {
		i := slices.IndexFunc(posts, func(p models.Post) bool { return p.ID == id })
		if i < 0 {
			return nil, ErrPostNotFound
		}
		posts[i].Views++
		views = posts[i].Views
		return posts, nil
	})
	if err != nil {
		return 0, err
	}
	return views, nil
}

func (s *Store) InsertPost(post models.Post) (models.Post, error) {
	stored, err := s.posts.update(s, func(posts []models.Post) ([]models.Post, error) {
		if slices.ContainsFunc(posts, func(p models.Post) bool { return p.ID == post.ID }) {
			return nil, fmt.Errorf("post %s already exists", post.ID)
		}
		return append(posts, post), nil
	})
	if err != nil {
		return models.Post{}, err
	}
	return stored[len(stored)-1], nil
}

// UpdatePost applies fn to the stored post under the collection lock. The id
// cannot be changed. A replaced local featured image is removed afterwards.
func (s *Store) UpdatePost(id string, fn func(*models.Post) error) (models.Post, error) {
	var (
		index    int
		oldImage string
	)
	stored, err := s.posts.update(s, func(posts []models.Post) ([]models.Post, error) {
		index = slices.IndexFunc(posts, func(p models.Post) bool { return p.ID == id })
		if index < 0 {
			return nil, ErrPostNotFound
		}
		p := posts[index].Clone()
		oldImage = p.FeaturedImage
		if err := fn(&p); err != nil {
			return nil, err
		}
		p.ID = id
		posts[index] = p
		return posts, nil
	})
	if err != nil {
		return models.Post{}, err
	}

	updated := stored[index]
	if _, err := s.ReplaceFeaturedImage(oldImage, updated.FeaturedImage); err != nil {
		s.logger.Warnf(providers.TypeStore, "post %s: old image not removed: %v", id, err)
	}
	return updated, nil
}

// DeletePost removes the post together with its comments and local image.
// The cascade and the image removal are attempted independently and their
// failures are reported in the result rather than returned.
func (s *Store) DeletePost(id string) (models.DeleteResult, error) {
	s.posts.mu.Lock()
	defer s.posts.mu.Unlock()

	posts := s.posts.read(s)
	i := slices.IndexFunc(posts, func(p models.Post) bool { return p.ID == id })
	if i < 0 {
		return models.DeleteResult{}, ErrPostNotFound
	}
	post := posts[i]
	res := models.DeleteResult{PostTitle: post.Title, Details: []string{}, Errors: []string{}}

	s.cascadeComments(id, &res)
	s.deletePostImage(post, &res)

	if _, err := s.posts.write(s, slices.Delete(posts, i, i+1)); err != nil {
		return res, fmt.Errorf("delete post %s: %w", id, err)
	}
	res.Details = append(res.Details, "post deleted")
	s.logger.Infof(providers.TypeStore, "post %s deleted: %d comments, image deleted=%t", id, res.CommentsDeleted, res.ImageDeleted)
	return res, nil
}

func (s *Store) cascadeComments(postID string, res *models.DeleteResult) {
	s.comments.mu.Lock()
	defer s.comments.mu.Unlock()

	comments := s.comments.read(s)
	kept := slices.DeleteFunc(slices.Clone(comments), func(c models.Comment) bool { return c.PostID == postID })
	removed := len(comments) - len(kept)
	if removed == 0 {
		res.Details = append(res.Details, "no comments to delete")
		return
	}
	if _, err := s.comments.write(s, kept); err != nil {
		s.logger.Errorf(providers.TypeStore, "post %s: comment cascade failed: %v", postID, err)
		res.Errors = append(res.Errors, "failed to delete comments")
		return
	}
	res.CommentsDeleted = removed
	res.Details = append(res.Details, fmt.Sprintf("deleted %d comments", removed))
}

func (s *Store) deletePostImage(post models.Post, res *models.DeleteResult) {
	if post.FeaturedImage == "" {
		return
	}
	deleted, err := s.removeLocalImage(post.FeaturedImage)
	switch {
	case err != nil:
		s.logger.Errorf(providers.TypeStore, "post %s: image removal failed: %v", post.ID, err)
		res.Errors = append(res.Errors, "failed to delete featured image")
	case deleted:
		res.ImageDeleted = true
		res.Details = append(res.Details, "deleted featured image")
	case !isLocalImage(post.FeaturedImage):
		res.Details = append(res.Details, "external image left in place")
	default:
		res.Details = append(res.Details, "featured image file not found")
	}
}
