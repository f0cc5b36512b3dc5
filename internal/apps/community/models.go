package community

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	KindPrayerRequest = "prayer_request"
	KindTestimony     = "testimony"
)

// Post is a prayer request or testimony on the church mural.
type Post struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Kind         string         `gorm:"size:20;not null;index" json:"kind"`
	Content      string         `gorm:"type:text;not null" json:"content"`
	PrayerCount  int            `gorm:"default:0" json:"prayer_count"`
	CommentCount int            `gorm:"default:0" json:"comment_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Post) TableName() string { return "mural_posts" }

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PostComment is a reply on a post.
type PostComment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"post_id"`
	AuthorID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PostComment) TableName() string { return "mural_comments" }

func (c *PostComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// PostPrayer records that a user is praying for a post. One row per user
// and post.
type PostPrayer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_mural_prayer_post_user" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_mural_prayer_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostPrayer) TableName() string { return "mural_prayers" }

func (p *PostPrayer) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FeedPost is a post as shown to one viewer.
type FeedPost struct {
	Post
	AuthorName string `json:"author_name"`
	PrayedByMe bool   `json:"prayed_by_me"`
}

// FeedComment is a comment with its author's name.
type FeedComment struct {
	PostComment
	AuthorName string `json:"author_name"`
}
