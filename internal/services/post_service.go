package services

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/fatemaakther1/Social-Media-App/internal/apperror"
	"github.com/fatemaakther1/Social-Media-App/internal/events"
	"github.com/fatemaakther1/Social-Media-App/internal/metrics"
	"github.com/fatemaakther1/Social-Media-App/internal/models"
	"github.com/fatemaakther1/Social-Media-App/internal/repositories"
)

// PostInput is the content of a post.
type PostInput struct {
	WrittenText   string
	MediaLocation string
}

func (in PostInput) normalized() (PostInput, error) {
	out := PostInput{
		WrittenText:   strings.TrimSpace(in.WrittenText),
		MediaLocation: strings.TrimSpace(in.MediaLocation),
	}
	if out.WrittenText == "" && out.MediaLocation == "" {
		return out, apperror.ValidationFailed("Post must contain either text or media", map[string]string{
			"writtenText": "Post must contain either text or media",
		})
	}
	return out, nil
}

// PostService handles business logic related to posts.
type PostService struct {
	postRepo  repositories.PostRepository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewPostService creates a new PostService. publisher may be nil.
func NewPostService(postRepo repositories.PostRepository, publisher events.Publisher, logger *slog.Logger) *PostService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostService{
		postRepo:  postRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns the feed, newest first.
func (s *PostService) List() ([]models.Post, error) {
	posts, err := s.postRepo.GetAll()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return posts, nil
}

// Get returns a single post.
func (s *PostService) Get(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, postLookupError(err)
	}
	return post, nil
}

// ListByUser returns the posts written by userID, newest first.
func (s *PostService) ListByUser(userID uint) ([]models.Post, error) {
	posts, err := s.postRepo.GetByUser(userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return posts, nil
}

// Create publishes a new post for userID.
func (s *PostService) Create(userID uint, in PostInput) (*models.Post, error) {
	in, err := in.normalized()
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:        userID,
		WrittenText:   in.WrittenText,
		MediaLocation: in.MediaLocation,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, apperror.Internal(err)
	}

	metrics.RecordPostCreated()
	ev := events.New(events.TypePostCreated, userID)
	ev.PostID = post.ID
	events.Emit(s.publisher, s.logger, ev)
	return post, nil
}

// Update replaces the content of a post owned by userID.
func (s *PostService) Update(userID, postID uint, in PostInput) (*models.Post, error) {
	post, err := s.owned(userID, postID, "You can only update your own posts")
	if err != nil {
		return nil, err
	}
	in, err = in.normalized()
	if err != nil {
		return nil, err
	}

	post.WrittenText = in.WrittenText
	post.MediaLocation = in.MediaLocation
	if err := s.postRepo.Update(post); err != nil {
		return nil, postLookupError(err)
	}
	return s.Get(postID)
}

// Delete removes a post owned by userID together with its likes and comments.
func (s *PostService) Delete(userID, postID uint) error {
	if _, err := s.owned(userID, postID, "You can only delete your own posts"); err != nil {
		return err
	}
	if err := s.postRepo.Delete(postID); err != nil {
		return postLookupError(err)
	}

	ev := events.New(events.TypePostDeleted, userID)
	ev.PostID = postID
	events.Emit(s.publisher, s.logger, ev)
	return nil
}

func (s *PostService) owned(userID, postID uint, denied string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, postLookupError(err)
	}
	if post.UserID != userID {
		return nil, apperror.Forbidden(denied)
	}
	return post, nil
}

func postLookupError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.PostNotFound()
	}
	return apperror.Internal(err)
}
