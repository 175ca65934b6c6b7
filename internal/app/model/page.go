package model

import "time"

// Page is a static content page (info, contact) editable from the admin.
type Page struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Slug      string    `gorm:"not null;uniqueIndex" json:"slug"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `json:"content"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Page) TableName() string {
	return "pages"
}
