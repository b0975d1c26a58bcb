package model

import "time"

type Blog struct {
	Base
	Title       string     `gorm:"type:varchar(250);not null" json:"title"`
	Slug        string     `gorm:"type:varchar(250);not null;uniqueIndex:uq_blogs_slug" json:"slug"`
	Excerpt     *string    `gorm:"type:varchar(500)" json:"excerpt"`
	Body        string     `gorm:"type:text" json:"body"`
	CoverImage  *string    `gorm:"type:varchar(500)" json:"coverImage"`
	Published   bool       `gorm:"not null" json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
}
