package models

import "time"

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Approved  bool      `json:"approved"`
}

type CommentInput struct {
	PostID  string `json:"postId"`
	Author  string `json:"author"`
	Email   string `json:"email"`
	Content string `json:"content"`
}
