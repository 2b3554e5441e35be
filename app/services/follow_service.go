package services

import (
	"errors"

	"plume/app/models"
	"plume/app/repositories"
)

// FollowService handles the follow/unfollow relation between users.
type FollowService struct {
	follows repositories.FollowRepository
	users   repositories.UserRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(follows repositories.FollowRepository, users repositories.UserRepository) *FollowService {
	return &FollowService{follows: follows, users: users}
}

// Follow makes the viewer follow the author named by username. Following
// yourself or an already-followed author is a no-op, not an error. An
// unknown username yields repositories.ErrNotFound.
func (s *FollowService) Follow(viewerID int, username string) error {
	author, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}
	if author.ID == viewerID {
		return nil
	}

	follow := &models.Follow{FollowerID: viewerID, AuthorID: author.ID}
	if err := follow.Validate(); err != nil {
		return err
	}
	return s.follows.Create(follow)
}

// Unfollow removes the viewer's follow of the author named by username.
// Unfollowing an author who was never followed is a no-op. An unknown
// username yields repositories.ErrNotFound.
func (s *FollowService) Unfollow(viewerID int, username string) error {
	author, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}

	err = s.follows.Delete(viewerID, author.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	return err
}
