package repositories

import "github.com/fatemaakther1/Social-Media-App/internal/models"

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	GetByID(id uint) (*models.Comment, error)
	GetByPost(postID uint) ([]models.Comment, error)
	GetByUser(userID uint) ([]models.Comment, error)
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(id uint) error
}
