package models

import "time"

// Like marks a post as liked by a user. At most one row exists per (post, user).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"postId" gorm:"not null;uniqueIndex:idx_likes_post_user"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_likes_post_user;index"`
	Post      *Post     `json:"post,omitempty" gorm:"foreignKey:PostID"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt"`
}
