package services

import (
	"errors"
	"log/slog"

	"github.com/fatemaakther1/Social-Media-App/internal/apperror"
	"github.com/fatemaakther1/Social-Media-App/internal/events"
	"github.com/fatemaakther1/Social-Media-App/internal/metrics"
	"github.com/fatemaakther1/Social-Media-App/internal/models"
	"github.com/fatemaakther1/Social-Media-App/internal/repositories"
)

// ToggleResult is the state of a (post, user) pair after a toggle.
type ToggleResult struct {
	Liked bool
	// Like is the created like when Liked is true.
	Like *models.Like
}

// LikeService handles business logic related to likes.
type LikeService struct {
	likeRepo  repositories.LikeRepository
	postRepo  repositories.PostRepository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewLikeService creates a new LikeService. publisher may be nil.
func NewLikeService(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository, publisher events.Publisher, logger *slog.Logger) *LikeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LikeService{
		likeRepo:  likeRepo,
		postRepo:  postRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Toggle likes the post when userID has not liked it yet and unlikes it otherwise.
// Two concurrent likes of the same pair are settled by the unique index: the loser
// gets LikeExists.
func (s *LikeService) Toggle(userID, postID uint) (*ToggleResult, error) {
	if err := s.ensurePost(postID); err != nil {
		return nil, err
	}

	existing, err := s.likeRepo.Find(postID, userID)
	switch {
	case err == nil:
		if err := s.likeRepo.Delete(existing.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		s.record(events.TypePostUnliked, userID, postID, false)
		return &ToggleResult{Liked: false}, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, apperror.Internal(err)
	}

	like := &models.Like{PostID: postID, UserID: userID}
	if err := s.likeRepo.Create(like); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperror.LikeExists()
		}
		return nil, apperror.Internal(err)
	}
	s.record(events.TypePostLiked, userID, postID, true)
	return &ToggleResult{Liked: true, Like: like}, nil
}

// ListByPost returns the likes on a post, newest first.
func (s *LikeService) ListByPost(postID uint) ([]models.Like, error) {
	if err := s.ensurePost(postID); err != nil {
		return nil, err
	}
	likes, err := s.likeRepo.GetByPost(postID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return likes, nil
}

// Status reports whether userID likes postID.
func (s *LikeService) Status(userID, postID uint) (bool, error) {
	_, err := s.likeRepo.Find(postID, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repositories.ErrNotFound):
		return false, nil
	default:
		return false, apperror.Internal(err)
	}
}

// ListByUser returns the likes left by userID with the liked posts.
func (s *LikeService) ListByUser(userID uint) ([]models.Like, error) {
	likes, err := s.likeRepo.GetByUser(userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return likes, nil
}

func (s *LikeService) ensurePost(postID uint) error {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return postLookupError(err)
	}
	return nil
}

func (s *LikeService) record(eventType string, userID, postID uint, liked bool) {
	metrics.RecordLikeToggled(liked)
	ev := events.New(eventType, userID)
	ev.PostID = postID
	events.Emit(s.publisher, s.logger, ev)
}
