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

func TestCommentService_Create(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	pub := new(MockPublisher)
	service := services.NewCommentService(commentRepo, postRepo, pub, discardLogger())

	postRepo.On("GetByID", uint(5)).Return(&models.Post{ID: 5}, nil).Once()
	commentRepo.On("Create", mock.MatchedBy(func(c *models.Comment) bool {
		return c.PostID == 5 && c.UserID == 1 && c.CommentText == "nice"
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Comment).ID = 11
	}).Return(nil).Once()
	pub.On("Publish", events.TypeCommentCreated, mock.Anything).Return(nil).Once()

	comment, err := service.Create(1, 5, "  nice ")
	require.NoError(t, err)
	assert.Equal(t, uint(11), comment.ID)
	commentRepo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCommentService_Create_Rejections(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	service := services.NewCommentService(commentRepo, postRepo, nil, discardLogger())

	_, err := service.Create(1, 5, "   ")
	assert.Equal(t, apperror.CodeValidationFailed, apperror.CodeOf(err))

	postRepo.On("GetByID", uint(9)).Return(nil, postNotFound(9)).Once()
	_, err = service.Create(1, 9, "hello")
	assert.Equal(t, apperror.CodePostNotFound, apperror.CodeOf(err))

	commentRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCommentService_UpdateAndDelete_Ownership(t *testing.T) {
	owned := func() *models.Comment { return &models.Comment{ID: 11, PostID: 5, UserID: 1, CommentText: "old"} }

	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	service := services.NewCommentService(commentRepo, postRepo, nil, discardLogger())

	commentRepo.On("GetByID", uint(11)).Return(owned(), nil).Twice()
	_, err := service.Update(2, 11, "hijack")
	assert.Equal(t, apperror.CodeForbidden, apperror.CodeOf(err))
	assert.Equal(t, apperror.CodeForbidden, apperror.CodeOf(service.Delete(2, 11)))
	commentRepo.AssertNotCalled(t, "Update", mock.Anything)
	commentRepo.AssertNotCalled(t, "Delete", mock.Anything)

	commentRepo.On("GetByID", uint(11)).Return(owned(), nil).Once()
	commentRepo.On("Update", mock.MatchedBy(func(c *models.Comment) bool {
		return c.ID == 11 && c.CommentText == "edited"
	})).Return(nil).Once()
	commentRepo.On("GetByID", uint(11)).Return(&models.Comment{ID: 11, UserID: 1, CommentText: "edited"}, nil).Once()

	comment, err := service.Update(1, 11, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", comment.CommentText)

	commentRepo.On("GetByID", uint(11)).Return(owned(), nil).Once()
	commentRepo.On("Delete", uint(11)).Return(nil).Once()
	assert.NoError(t, service.Delete(1, 11))

	commentRepo.On("GetByID", uint(12)).Return(nil, fmt.Errorf("gone: %w", repositories.ErrNotFound)).Once()
	assert.Equal(t, apperror.CodeCommentNotFound, apperror.CodeOf(service.Delete(1, 12)))
	commentRepo.AssertExpectations(t)
}

func TestCommentService_Lists(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	service := services.NewCommentService(commentRepo, postRepo, nil, discardLogger())

	postRepo.On("GetByID", uint(5)).Return(&models.Post{ID: 5}, nil).Once()
	commentRepo.On("GetByPost", uint(5)).Return([]models.Comment{{ID: 1}, {ID: 2}}, nil).Once()
	comments, err := service.ListByPost(5)
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	postRepo.On("GetByID", uint(6)).Return(nil, postNotFound(6)).Once()
	_, err = service.ListByPost(6)
	assert.Equal(t, apperror.CodePostNotFound, apperror.CodeOf(err))

	commentRepo.On("GetByUser", uint(1)).Return([]models.Comment{{ID: 1}}, nil).Once()
	comments, err = service.ListByUser(1)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}
