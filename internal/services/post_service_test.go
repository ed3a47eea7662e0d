package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fatemaakther1/Social-Media-App/internal/apperror"
	"github.com/fatemaakther1/Social-Media-App/internal/events"
	"github.com/fatemaakther1/Social-Media-App/internal/models"
	"github.com/fatemaakther1/Social-Media-App/internal/repositories"
	"github.com/fatemaakther1/Social-Media-App/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func postNotFound(id uint) error {
	return fmt.Errorf("failed to get post by ID %d: %w", id, repositories.ErrNotFound)
}

func TestPostService_List(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := services.NewPostService(mockRepo, nil, discardLogger())

	expectedPosts := []models.Post{
		{ID: 2, UserID: 1, WrittenText: "newer"},
		{ID: 1, UserID: 1, WrittenText: "older"},
	}
	mockRepo.On("GetAll").Return(expectedPosts, nil).Once()

	posts, err := service.List()
	assert.NoError(t, err)
	assert.Equal(t, expectedPosts, posts)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetAll").Return(nil, errors.New("db down")).Once()
	_, err = service.List()
	assert.Equal(t, apperror.CodeInternal, apperror.CodeOf(err))
}

func TestPostService_Get(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := services.NewPostService(mockRepo, nil, discardLogger())

	mockRepo.On("GetByID", uint(1)).Return(&models.Post{ID: 1}, nil).Once()
	mockRepo.On("GetByID", uint(99)).Return(nil, postNotFound(99)).Once()

	post, err := service.Get(1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)

	_, err = service.Get(99)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.CodePostNotFound, appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestPostService_Create(t *testing.T) {
	mockRepo := new(MockPostRepository)
	pub := new(MockPublisher)
	service := services.NewPostService(mockRepo, pub, discardLogger())

	mockRepo.On("Create", mock.MatchedBy(func(p *models.Post) bool {
		return p.UserID == 3 && p.WrittenText == "hello" && p.MediaLocation == ""
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Post).ID = 10
	}).Return(nil).Once()
	pub.On("Publish", events.TypePostCreated, mock.Anything).Return(nil).Once()

	post, err := service.Create(3, services.PostInput{WrittenText: "  hello  "})
	require.NoError(t, err)
	assert.Equal(t, uint(10), post.ID)
	mockRepo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestPostService_Create_RequiresContent(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := services.NewPostService(mockRepo, nil, discardLogger())

	_, err := service.Create(3, services.PostInput{WrittenText: "   "})
	assert.Equal(t, apperror.CodeValidationFailed, apperror.CodeOf(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)

	mockRepo.On("Create", mock.Anything).Return(nil).Once()
	_, err = service.Create(3, services.PostInput{MediaLocation: "https://cdn.example/cat.png"})
	assert.NoError(t, err)
}

func TestPostService_Update(t *testing.T) {
	owned := func() *models.Post { return &models.Post{ID: 5, UserID: 1, WrittenText: "old"} }

	t.Run("owner", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := services.NewPostService(mockRepo, nil, discardLogger())

		mockRepo.On("GetByID", uint(5)).Return(owned(), nil).Once()
		mockRepo.On("Update", mock.MatchedBy(func(p *models.Post) bool {
			return p.ID == 5 && p.WrittenText == "new" && p.MediaLocation == "img.png"
		})).Return(nil).Once()
		mockRepo.On("GetByID", uint(5)).Return(&models.Post{ID: 5, UserID: 1, WrittenText: "new", MediaLocation: "img.png"}, nil).Once()

		post, err := service.Update(1, 5, services.PostInput{WrittenText: "new", MediaLocation: "img.png"})
		require.NoError(t, err)
		assert.Equal(t, "new", post.WrittenText)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not owner", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := services.NewPostService(mockRepo, nil, discardLogger())
		mockRepo.On("GetByID", uint(5)).Return(owned(), nil).Once()

		_, err := service.Update(2, 5, services.PostInput{WrittenText: "hijack"})
		appErr := apperror.From(err)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)
		assert.Equal(t, 403, appErr.Status)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("missing", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := services.NewPostService(mockRepo, nil, discardLogger())
		mockRepo.On("GetByID", uint(6)).Return(nil, postNotFound(6)).Once()

		_, err := service.Update(1, 6, services.PostInput{WrittenText: "x"})
		assert.Equal(t, apperror.CodePostNotFound, apperror.CodeOf(err))
	})

	t.Run("empty content", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := services.NewPostService(mockRepo, nil, discardLogger())
		mockRepo.On("GetByID", uint(5)).Return(owned(), nil).Once()

		_, err := service.Update(1, 5, services.PostInput{})
		assert.Equal(t, apperror.CodeValidationFailed, apperror.CodeOf(err))
	})
}

func TestPostService_Delete(t *testing.T) {
	mockRepo := new(MockPostRepository)
	pub := new(MockPublisher)
	service := services.NewPostService(mockRepo, pub, discardLogger())

	mockRepo.On("GetByID", uint(5)).Return(&models.Post{ID: 5, UserID: 1}, nil).Twice()
	mockRepo.On("Delete", uint(5)).Return(nil).Once()
	pub.On("Publish", events.TypePostDeleted, mock.Anything).Return(errors.New("broker down")).Once()

	err := service.Delete(2, 5)
	assert.Equal(t, apperror.CodeForbidden, apperror.CodeOf(err))

	// A failing broker does not fail the delete.
	assert.NoError(t, service.Delete(1, 5))
	mockRepo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestPostService_ListByUser(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := services.NewPostService(mockRepo, nil, discardLogger())

	mockRepo.On("GetByUser", uint(4)).Return([]models.Post{{ID: 1, UserID: 4}}, nil).Once()

	posts, err := service.ListByUser(4)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
