package services_test

import (
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

func likeNotFound() error {
	return fmt.Errorf("failed to find like: %w", repositories.ErrNotFound)
}

func TestLikeService_Toggle(t *testing.T) {
	likeRepo := new(MockLikeRepository)
	postRepo := new(MockPostRepository)
	pub := new(MockPublisher)
	service := services.NewLikeService(likeRepo, postRepo, pub, discardLogger())

	postRepo.On("GetByID", uint(5)).Return(&models.Post{ID: 5}, nil)

	// First toggle likes the post.
	likeRepo.On("Find", uint(5), uint(1)).Return(nil, likeNotFound()).Once()
	likeRepo.On("Create", mock.MatchedBy(func(l *models.Like) bool {
		return l.PostID == 5 && l.UserID == 1
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Like).ID = 30
	}).Return(nil).Once()
	pub.On("Publish", events.TypePostLiked, mock.Anything).Return(nil).Once()

	res, err := service.Toggle(1, 5)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	require.NotNil(t, res.Like)
	assert.Equal(t, uint(30), res.Like.ID)

	// Second toggle returns to the unliked state.
	likeRepo.On("Find", uint(5), uint(1)).Return(&models.Like{ID: 30, PostID: 5, UserID: 1}, nil).Once()
	likeRepo.On("Delete", uint(30)).Return(nil).Once()
	pub.On("Publish", events.TypePostUnliked, mock.Anything).Return(nil).Once()

	res, err = service.Toggle(1, 5)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Nil(t, res.Like)

	likeRepo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestLikeService_Toggle_ConcurrentDuplicate(t *testing.T) {
	likeRepo := new(MockLikeRepository)
	postRepo := new(MockPostRepository)
	service := services.NewLikeService(likeRepo, postRepo, nil, discardLogger())

	postRepo.On("GetByID", uint(5)).Return(&models.Post{ID: 5}, nil)
	likeRepo.On("Find", uint(5), uint(1)).Return(nil, likeNotFound()).Once()
	likeRepo.On("Create", mock.Anything).Return(fmt.Errorf("failed to create like: %w", repositories.ErrDuplicate)).Once()

	_, err := service.Toggle(1, 5)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.CodeLikeExists, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestLikeService_Toggle_MissingPost(t *testing.T) {
	likeRepo := new(MockLikeRepository)
	postRepo := new(MockPostRepository)
	service := services.NewLikeService(likeRepo, postRepo, nil, discardLogger())

	postRepo.On("GetByID", uint(9)).Return(nil, postNotFound(9)).Once()

	_, err := service.Toggle(1, 9)
	assert.Equal(t, apperror.CodePostNotFound, apperror.CodeOf(err))
	likeRepo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestLikeService_StatusAndLists(t *testing.T) {
	likeRepo := new(MockLikeRepository)
	postRepo := new(MockPostRepository)
	service := services.NewLikeService(likeRepo, postRepo, nil, discardLogger())

	likeRepo.On("Find", uint(5), uint(1)).Return(&models.Like{ID: 1}, nil).Once()
	likeRepo.On("Find", uint(5), uint(2)).Return(nil, likeNotFound()).Once()

	liked, err := service.Status(1, 5)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = service.Status(2, 5)
	require.NoError(t, err)
	assert.False(t, liked)

	postRepo.On("GetByID", uint(5)).Return(&models.Post{ID: 5}, nil).Once()
	likeRepo.On("GetByPost", uint(5)).Return([]models.Like{{ID: 1}, {ID: 2}}, nil).Once()
	likes, err := service.ListByPost(5)
	require.NoError(t, err)
	assert.Len(t, likes, 2)

	likeRepo.On("GetByUser", uint(1)).Return([]models.Like{{ID: 1}}, nil).Once()
	likes, err = service.ListByUser(1)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}
