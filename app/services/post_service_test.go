package services

import (
	"testing"
	"time"

	"plume/app/models"
	"plume/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) postService() *PostService {
	return NewPostService(e.posts, e.comments, e.users, e.groups)
}

func TestCreatePostValidates(t *testing.T) {
	env := setupTestEnv(t)
	svc := env.postService()
	ada := env.addUser(t, "ada")

	err := svc.Create(&models.Post{AuthorID: ada.ID})
	assert.Error(t, err)

	err = svc.Create(&models.Post{AuthorID: ada.ID, Text: "hello"})
	assert.NoError(t, err)
}

func TestCreatePostRejectsUnknownGroup(t *testing.T) {
	env := setupTestEnv(t)
	svc := env.postService()
	ada := env.addUser(t, "ada")

	err := svc.Create(&models.Post{AuthorID: ada.ID, Text: "hello", GroupID: 42})
	assert.Error(t, err)
}

func TestUpdatePreservesAuthorAndCreationTime(t *testing.T) {
	env := setupTestEnv(t)
	svc := env.postService()
	ada := env.addUser(t, "ada")
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	post := env.addPost(t, ada, 0, "before", at)

	edited := &models.Post{ID: post.ID, AuthorID: 999, Text: "after", CreatedAt: time.Now()}
	require.NoError(t, svc.Update(edited))

	got, err := svc.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Text)
	assert.Equal(t, ada.ID, got.AuthorID)
	assert.True(t, got.CreatedAt.Equal(at))
}

func TestDetail(t *testing.T) {
	env := setupTestEnv(t)
	svc := env.postService()
	ada := env.addUser(t, "ada")
	bob := env.addUser(t, "bob")
	tech := env.addGroup(t, "Tech", "tech")
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	post := env.addPost(t, ada, tech.ID, "the post", at)
	require.NoError(t, env.comments.Create(&models.Comment{PostID: post.ID, AuthorID: bob.ID, Text: "nice"}))

	item, comments, err := svc.Detail(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "the post", item.Post.Text)
	assert.Equal(t, "ada", item.Author.Username)
	assert.Equal(t, "tech", item.Group.Slug)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Comment.Text)
	assert.Equal(t, "bob", comments[0].Author.Username)

	_, _, err = svc.Detail(999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestAddCommentRequiresExistingPost(t *testing.T) {
	env := setupTestEnv(t)
	svc := env.postService()
	ada := env.addUser(t, "ada")

	err := svc.AddComment(&models.Comment{PostID: 999, AuthorID: ada.ID, Text: "into the void"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
