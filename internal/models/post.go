package models

import "time"

// Post is a feed entry owned by a single user. It carries text, media or both.
type Post struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"userId" gorm:"not null;index"`
	User          *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	WrittenText   string    `json:"writtenText" gorm:"type:text"`
	MediaLocation string    `json:"mediaLocation" gorm:"type:varchar(500)"`
	Likes         []Like    `json:"likes,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comments      []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
