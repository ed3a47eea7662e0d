package repositories

import (
	"fmt"

	"github.com/fatemaakther1/Social-Media-App/internal/models"

	"gorm.io/gorm"
)

// GORMLikeRepository is a GORM implementation of LikeRepository.
type GORMLikeRepository struct {
	db *gorm.DB
}

// NewGORMLikeRepository creates a new instance of GORMLikeRepository.
func NewGORMLikeRepository(db *gorm.DB) *GORMLikeRepository {
	return &GORMLikeRepository{
		db: db,
	}
}

// Find returns the like userID left on postID.
func (r *GORMLikeRepository) Find(postID, userID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if err != nil {
		return nil, translate(err, "failed to find like on post %d by user %d", postID, userID)
	}
	return &like, nil
}

// GetByPost lists the likes on a post with the liking users, newest first.
func (r *GORMLikeRepository) GetByPost(postID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get likes for post %d: %w", postID, err)
	}
	return likes, nil
}

// GetByUser lists the likes left by a user together with the liked posts.
func (r *GORMLikeRepository) GetByUser(userID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.Preload("Post").
		Preload("Post.User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get likes for user %d: %w", userID, err)
	}
	return likes, nil
}

// Create inserts a like. A second like on the same (post, user) pair fails with ErrDuplicate.
func (r *GORMLikeRepository) Create(like *models.Like) error {
	if err := r.db.Create(like).Error; err != nil {
		return translate(err, "failed to create like")
	}
	if err := r.db.Preload("User").First(like, "id = ?", like.ID).Error; err != nil {
		return translate(err, "failed to reload like %d", like.ID)
	}
	return nil
}

// Delete removes a like by its ID.
func (r *GORMLikeRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Like{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete like: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
