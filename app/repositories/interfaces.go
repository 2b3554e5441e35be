package repositories

import "plume/app/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}

// PostRepository defines the interface for post data access.
// All list methods return posts newest first.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	Update(post *models.Post) error
	ListAll() ([]*models.Post, error)
	ListByGroup(groupID int) ([]*models.Post, error)
	ListByAuthor(authorID int) ([]*models.Post, error)
	ListByAuthors(authorIDs []int) ([]*models.Post, error)
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	Create(group *models.Group) error
	GetByID(id int) (*models.Group, error)
	GetBySlug(slug string) (*models.Group, error)
	List() ([]*models.Group, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	ListByPost(postID int) ([]*models.Comment, error)
}

// FollowRepository defines the interface for follow data access.
// The (follower, author) pair is unique by key construction, so Create
// of an existing pair overwrites in place.
type FollowRepository interface {
	Create(follow *models.Follow) error
	Delete(followerID, authorID int) error
	Exists(followerID, authorID int) (bool, error)
	ListAuthors(followerID int) ([]int, error)
}
