package repositories

import (
	"fmt"

	"github.com/fatemaakther1/Social-Media-App/internal/models"

	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// GetByID retrieves a comment with its author and post.
func (r *GORMCommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("User").Preload("Post").First(&comment, "id = ?", id).Error; err != nil {
		return nil, translate(err, "failed to get comment by ID %d", id)
	}
	return &comment, nil
}

// GetByPost lists a post's comments, oldest first.
func (r *GORMCommentRepository) GetByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get comments for post %d: %w", postID, err)
	}
	return comments, nil
}

// GetByUser lists a user's comments, newest first, with the commented posts.
func (r *GORMCommentRepository) GetByUser(userID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Preload("Post").
		Preload("Post.User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get comments for user %d: %w", userID, err)
	}
	return comments, nil
}

// Create inserts a comment and loads its author.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return translate(err, "failed to create comment")
	}
	if err := r.db.Preload("User").First(comment, "id = ?", comment.ID).Error; err != nil {
		return translate(err, "failed to reload comment %d", comment.ID)
	}
	return nil
}

// Update stores a comment's text.
func (r *GORMCommentRepository) Update(comment *models.Comment) error {
	res := r.db.Model(&models.Comment{}).Where("id = ?", comment.ID).Update("comment_text", comment.CommentText)
	if res.Error != nil {
		return fmt.Errorf("failed to update comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment with ID %d not found for update: %w", comment.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a comment by its ID.
func (r *GORMCommentRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
