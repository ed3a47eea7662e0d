package models

import "time"

// Comment is a user's reply on a post.
type Comment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PostID      uint      `json:"postId" gorm:"not null;index"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	CommentText string    `json:"commentText" gorm:"type:text;not null"`
	Post        *Post     `json:"post,omitempty" gorm:"foreignKey:PostID"`
	User        *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
