package services

import (
	"fmt"

	"plume/app/models"
	"plume/app/repositories"
)

// FeedItem is one post decorated with its author and group for rendering.
// Joins are performed here, explicitly, rather than lazily per field.
type FeedItem struct {
	Post   *models.Post
	Author *models.User
	Group  *models.Group
}

// FeedService composes the ordered candidate set of posts for a viewing
// context, before pagination. All projections are read-only.
type FeedService struct {
	posts   repositories.PostRepository
	users   repositories.UserRepository
	groups  repositories.GroupRepository
	follows repositories.FollowRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	groups repositories.GroupRepository,
	follows repositories.FollowRepository,
) *FeedService {
	return &FeedService{posts: posts, users: users, groups: groups, follows: follows}
}

// Global returns all posts, newest first.
func (s *FeedService) Global() ([]*FeedItem, error) {
	posts, err := s.posts.ListAll()
	if err != nil {
		return nil, err
	}
	return s.decorate(posts)
}

// Group returns the group resolved by slug and its posts, newest first.
// An unknown slug yields repositories.ErrNotFound, never an empty feed.
func (s *FeedService) Group(slug string) (*models.Group, []*FeedItem, error) {
	group, err := s.groups.GetBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.posts.ListByGroup(group.ID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.decorate(posts)
	if err != nil {
		return nil, nil, err
	}
	return group, items, nil
}

// Author returns the author resolved by username and their posts, newest
// first. An unknown username yields repositories.ErrNotFound.
func (s *FeedService) Author(username string) (*models.User, []*FeedItem, error) {
	author, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.posts.ListByAuthor(author.ID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.decorate(posts)
	if err != nil {
		return nil, nil, err
	}
	return author, items, nil
}

// Followed returns posts by the authors the viewer follows, newest first.
func (s *FeedService) Followed(viewerID int) ([]*FeedItem, error) {
	authorIDs, err := s.follows.ListAuthors(viewerID)
	if err != nil {
		return nil, err
	}
	if len(authorIDs) == 0 {
		return nil, nil
	}
	posts, err := s.posts.ListByAuthors(authorIDs)
	if err != nil {
		return nil, err
	}
	return s.decorate(posts)
}

// IsFollowing reports whether the viewer follows the author.
func (s *FeedService) IsFollowing(viewerID, authorID int) (bool, error) {
	if viewerID == 0 {
		return false, nil
	}
	return s.follows.Exists(viewerID, authorID)
}

// decorate joins authors and groups onto posts, memoizing lookups so a
// page of posts by one author costs one user fetch.
func (s *FeedService) decorate(posts []*models.Post) ([]*FeedItem, error) {
	authors := make(map[int]*models.User)
	groups := make(map[int]*models.Group)

	items := make([]*FeedItem, 0, len(posts))
	for _, post := range posts {
		author, ok := authors[post.AuthorID]
		if !ok {
			var err error
			author, err = s.users.GetByID(post.AuthorID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve author of post %d: %w", post.ID, err)
			}
			authors[post.AuthorID] = author
		}

		var group *models.Group
		if post.GroupID != 0 {
			group, ok = groups[post.GroupID]
			if !ok {
				var err error
				group, err = s.groups.GetByID(post.GroupID)
				if err != nil {
					return nil, fmt.Errorf("failed to resolve group of post %d: %w", post.ID, err)
				}
				groups[post.GroupID] = group
			}
		}

		items = append(items, &FeedItem{Post: post, Author: author, Group: group})
	}
	return items, nil
}
