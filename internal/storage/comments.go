package storage

import (
	"fmt"
	"slices"

	"blogd/internal/models"
)

func (s *Store) GetCommentsByPostID(postID string) []models.Comment {
	return slices.DeleteFunc(s.GetComments(), func(c models.Comment) bool { return c.PostID != postID })
}

// GetApprovedCommentsByPostID is the only comment view that may be shown publicly.
func (s *Store) GetApprovedCommentsByPostID(postID string) []models.Comment {
	return slices.DeleteFunc(s.GetComments(), func(c models.Comment) bool {
		return c.PostID != postID || !c.Approved
	})
}

func (s *Store) InsertComment(comment models.Comment) (models.Comment, error) {
	stored, err := s.comments.update(s, func(comments []models.Comment) ([]models.Comment, error) {
		if slices.ContainsFunc(comments, func(c models.Comment) bool { return c.ID == comment.ID }) {
			return nil, fmt.Errorf("comment %s already exists", comment.ID)
		}
		return append(comments, comment), nil
	})
	if err != nil {
		return models.Comment{}, err
	}
	return stored[len(stored)-1], nil
}

func (s *Store) UpdateComment(id string, fn func(*models.Comment) error) (models.Comment, error) {
	index := -1
	stored, err := s.comments.update(s, func(comments []models.Comment) ([]models.Comment, error) {
		index = slices.IndexFunc(comments, func(c models.Comment) bool { return c.ID == id })
		if index < 0 {
			return nil, ErrCommentNotFound
		}
		c := comments[index]
		if err := fn(&c); err != nil {
			return nil, err
		}
		c.ID = id
		comments[index] = c
		return comments, nil
	})
	if err != nil {
		return models.Comment{}, err
	}
	return stored[index], nil
}

func (s *Store) DeleteComment(id string) error {
	_, err := s.comments.update(s, func(comments []models.Comment) ([]models.Comment, error) {
		i := slices.IndexFunc(comments, func(c models.Comment) bool { return c.ID == id })
		if i < 0 {
			return nil, ErrCommentNotFound
		}
		return slices.Delete(comments, i, i+1), nil
	})
	return err
}
