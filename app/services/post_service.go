package services

import (
	"fmt"

	"plume/app/models"
	"plume/app/repositories"
)

// CommentItem is one comment decorated with its author for rendering.
type CommentItem struct {
	Comment *models.Comment
	Author  *models.User
}

// PostService handles business logic for posts and their comments
type PostService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	users    repositories.UserRepository
	groups   repositories.GroupRepository
}

// NewPostService creates a new PostService
func NewPostService(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	users repositories.UserRepository,
	groups repositories.GroupRepository,
) *PostService {
	return &PostService{posts: posts, comments: comments, users: users, groups: groups}
}

// Create creates a new post with validation. A non-zero GroupID must refer
// to an existing group.
func (s *PostService) Create(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	if post.GroupID != 0 {
		if _, err := s.groups.GetByID(post.GroupID); err != nil {
			return fmt.Errorf("invalid post group: %w", err)
		}
	}
	return s.posts.Create(post)
}

// Update rewrites a post's mutable fields, preserving identity, author and
// creation time.
func (s *PostService) Update(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	if post.GroupID != 0 {
		if _, err := s.groups.GetByID(post.GroupID); err != nil {
			return fmt.Errorf("invalid post group: %w", err)
		}
	}

	existing, err := s.posts.GetByID(post.ID)
	if err != nil {
		return err
	}
	post.AuthorID = existing.AuthorID
	post.CreatedAt = existing.CreatedAt

	return s.posts.Update(post)
}

// Get retrieves a post by ID
func (s *PostService) Get(id int) (*models.Post, error) {
	return s.posts.GetByID(id)
}

// Detail retrieves a post with its author, group and comments
func (s *PostService) Detail(id int) (*FeedItem, []*CommentItem, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, nil, err
	}

	author, err := s.users.GetByID(post.AuthorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve post author: %w", err)
	}

	var group *models.Group
	if post.GroupID != 0 {
		group, err = s.groups.GetByID(post.GroupID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve post group: %w", err)
		}
	}

	comments, err := s.comments.ListByPost(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get comments: %w", err)
	}

	items := make([]*CommentItem, 0, len(comments))
	commenters := make(map[int]*models.User)
	for _, comment := range comments {
		commenter, ok := commenters[comment.AuthorID]
		if !ok {
			commenter, err = s.users.GetByID(comment.AuthorID)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to resolve comment author: %w", err)
			}
			commenters[comment.AuthorID] = commenter
		}
		items = append(items, &CommentItem{Comment: comment, Author: commenter})
	}

	return &FeedItem{Post: post, Author: author, Group: group}, items, nil
}

// AddComment creates a comment on an existing post
func (s *PostService) AddComment(comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}
	if _, err := s.posts.GetByID(comment.PostID); err != nil {
		return err
	}
	return s.comments.Create(comment)
}
