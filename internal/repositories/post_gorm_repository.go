package repositories

import (
	"fmt"

	"github.com/fatemaakther1/Social-Media-App/internal/models"

	"gorm.io/gorm"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

func commentsOldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("comments.created_at ASC, comments.id ASC")
}

// feed preloads everything the feed renders for a post.
func (r *GORMPostRepository) feed() *gorm.DB {
	return r.db.
		Preload("User").
		Preload("Likes").
		Preload("Comments", commentsOldestFirst).
		Preload("Comments.User").
		Order("posts.created_at DESC, posts.id DESC")
}

// GetAll retrieves every post, newest first, with author, likes and comments.
func (r *GORMPostRepository) GetAll() ([]models.Post, error) {
	var posts []models.Post
	if err := r.feed().Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to get all posts: %w", err)
	}
	return posts, nil
}

// GetByID retrieves a single post with likers and commenters loaded.
func (r *GORMPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Preload("User").
		Preload("Likes.User").
		Preload("Comments", commentsOldestFirst).
		Preload("Comments.User").
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		return nil, translate(err, "failed to get post by ID %d", id)
	}
	return &post, nil
}

// GetByUser retrieves the posts written by userID, newest first.
func (r *GORMPostRepository) GetByUser(userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.feed().Where("posts.user_id = ?", userID).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to get posts for user %d: %w", userID, err)
	}
	return posts, nil
}

// Create inserts a post and loads its author.
func (r *GORMPostRepository) Create(post *models.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return translate(err, "failed to create post")
	}
	if err := r.db.Preload("User").First(post, "posts.id = ?", post.ID).Error; err != nil {
		return translate(err, "failed to reload post %d", post.ID)
	}
	return nil
}

// Update stores the post's content columns.
func (r *GORMPostRepository) Update(post *models.Post) error {
	res := r.db.Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"written_text":   post.WrittenText,
		"media_location": post.MediaLocation,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %d not found for update: %w", post.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a post by its ID. Likes and comments cascade.
func (r *GORMPostRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
