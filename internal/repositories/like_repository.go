package repositories

import "github.com/fatemaakther1/Social-Media-App/internal/models"

// LikeRepository defines the interface for like data access.
type LikeRepository interface {
	Find(postID, userID uint) (*models.Like, error)
	GetByPost(postID uint) ([]models.Like, error)
	GetByUser(userID uint) ([]models.Like, error)
	Create(like *models.Like) error
	Delete(id uint) error
}
