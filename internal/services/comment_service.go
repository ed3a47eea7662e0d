package services

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/fatemaakther1/Social-Media-App/internal/apperror"
	"github.com/fatemaakther1/Social-Media-App/internal/events"
	"github.com/fatemaakther1/Social-Media-App/internal/models"
	"github.com/fatemaakther1/Social-Media-App/internal/repositories"
)

// CommentService handles business logic related to comments.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	publisher   events.Publisher
	logger      *slog.Logger
}

// NewCommentService creates a new CommentService. publisher may be nil.
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, publisher events.Publisher, logger *slog.Logger) *CommentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func commentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperror.ValidationFailed("Comment text is required", map[string]string{
			"commentText": "Comment text is required",
		})
	}
	return text, nil
}

// ListByPost returns a post's comments, oldest first.
func (s *CommentService) ListByPost(postID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, postLookupError(err)
	}
	comments, err := s.commentRepo.GetByPost(postID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return comments, nil
}

// Get returns a single comment.
func (s *CommentService) Get(id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, commentLookupError(err)
	}
	return comment, nil
}

// ListByUser returns the comments written by userID, newest first.
func (s *CommentService) ListByUser(userID uint) ([]models.Comment, error) {
	comments, err := s.commentRepo.GetByUser(userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return comments, nil
}

// Create adds a comment by userID to postID.
func (s *CommentService) Create(userID, postID uint, text string) (*models.Comment, error) {
	text, err := commentText(text)
	if err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, postLookupError(err)
	}

	comment := &models.Comment{
		PostID:      postID,
		UserID:      userID,
		CommentText: text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, apperror.Internal(err)
	}

	ev := events.New(events.TypeCommentCreated, userID)
	ev.PostID = postID
	ev.CommentID = comment.ID
	events.Emit(s.publisher, s.logger, ev)
	return comment, nil
}

// Update replaces the text of a comment owned by userID.
func (s *CommentService) Update(userID, commentID uint, text string) (*models.Comment, error) {
	comment, err := s.owned(userID, commentID, "You can only update your own comments")
	if err != nil {
		return nil, err
	}
	text, err = commentText(text)
	if err != nil {
		return nil, err
	}

	comment.CommentText = text
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, commentLookupError(err)
	}
	return s.Get(commentID)
}

// Delete removes a comment owned by userID.
func (s *CommentService) Delete(userID, commentID uint) error {
	if _, err := s.owned(userID, commentID, "You can only delete your own comments"); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(commentID); err != nil {
		return commentLookupError(err)
	}
	return nil
}

func (s *CommentService) owned(userID, commentID uint, denied string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, commentLookupError(err)
	}
	if comment.UserID != userID {
		return nil, apperror.Forbidden(denied)
	}
	return comment, nil
}

func commentLookupError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.CommentNotFound()
	}
	return apperror.Internal(err)
}
