package community

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/access"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/services"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("post not found")
	ErrInvalidKind = errors.New("kind must be prayer_request or testimony")
	ErrForbidden   = errors.New("only the author or an admin can delete this post")
)

const (
	minPostLength    = 3
	maxPostLength    = 2000
	maxCommentLength = 500
)

// RejectedError is returned when the moderation filter refuses content.
type RejectedError struct {
	Reason  string
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

type FeedService struct {
	db         *gorm.DB
	moderation *services.ModerationService
	policy     *bluemonday.Policy
}

func NewFeedService(db *gorm.DB, moderation *services.ModerationService) *FeedService {
	return &FeedService{
		db:         db,
		moderation: moderation,
		policy:     bluemonday.StrictPolicy(),
	}
}

// Clean strips all markup. The feed stores plain text, so entities
// bluemonday escapes are decoded again.
func (s *FeedService) Clean(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

func (s *FeedService) screen(text string, minLen, maxLen int) (string, error) {
	text = s.Clean(text)
	n := utf8.RuneCountInString(text)
	if n < minLen || n > maxLen {
		return "", &RejectedError{Reason: "length", Message: lengthMessage(minLen, maxLen)}
	}
	if ok, reason := s.moderation.FilterContent(text); !ok {
		return "", &RejectedError{Reason: reason, Message: s.moderation.GetRejectionMessage(reason)}
	}
	return text, nil
}

func lengthMessage(minLen, maxLen int) string {
	return fmt.Sprintf("O texto deve ter entre %d e %d caracteres.", minLen, maxLen)
}

func (s *FeedService) Create(authorID uuid.UUID, kind, content string) (*Post, error) {
	if kind != KindPrayerRequest && kind != KindTestimony {
		return nil, ErrInvalidKind
	}
	text, err := s.screen(content, minPostLength, maxPostLength)
	if err != nil {
		return nil, err
	}

	post := &Post{AuthorID: authorID, Kind: kind, Content: text}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Feed lists posts newest first, hiding authors the viewer blocked.
func (s *FeedService) Feed(v access.Viewer, kind string, page, limit int) ([]FeedPost, int64, error) {
	blocked, err := s.moderation.GetBlockedIDs(v.UserID)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&Post{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if len(blocked) > 0 {
		query = query.Where("author_id NOT IN ?", blocked)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []Post
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	postIDs := make([]uuid.UUID, len(posts))
	authorIDs := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		authorIDs[i] = p.AuthorID
	}

	names, err := s.authorNames(authorIDs)
	if err != nil {
		return nil, 0, err
	}

	prayed := map[uuid.UUID]bool{}
	if len(postIDs) > 0 {
		var ids []uuid.UUID
		if err := s.db.Model(&PostPrayer{}).
			Where("user_id = ? AND post_id IN ?", v.UserID, postIDs).
			Pluck("post_id", &ids).Error; err != nil {
			return nil, 0, err
		}
		for _, id := range ids {
			prayed[id] = true
		}
	}

	feed := make([]FeedPost, len(posts))
	for i, p := range posts {
		feed[i] = FeedPost{Post: p, AuthorName: names[p.AuthorID], PrayedByMe: prayed[p.ID]}
	}
	return feed, total, nil
}

// TogglePrayer marks or unmarks the viewer as praying for a post and
// returns the new state and count.
func (s *FeedService) TogglePrayer(userID, postID uuid.UUID) (bool, int, error) {
	var praying bool
	var post Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&PostPrayer{})
		if result.Error != nil {
			return result.Error
		}
		delta := -1
		if result.RowsAffected == 0 {
			if err := tx.Create(&PostPrayer{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
			delta = 1
			praying = true
		}

		if err := tx.Model(&Post{}).Where("id = ?", postID).
			Update("prayer_count", gorm.Expr("prayer_count + ?", delta)).Error; err != nil {
			return err
		}
		return tx.First(&post, "id = ?", postID).Error
	})
	if err != nil {
		return false, 0, err
	}
	return praying, post.PrayerCount, nil
}

func (s *FeedService) AddComment(authorID, postID uuid.UUID, content string) (*PostComment, error) {
	text, err := s.screen(content, 1, maxCommentLength)
	if err != nil {
		return nil, err
	}

	comment := &PostComment{PostID: postID, AuthorID: authorID, Content: text}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&Post{}).Where("id = ?", postID).
			Update("comment_count", gorm.Expr("comment_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *FeedService) Comments(v access.Viewer, postID uuid.UUID, page, limit int) ([]FeedComment, error) {
	blocked, err := s.moderation.GetBlockedIDs(v.UserID)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("post_id = ?", postID)
	if len(blocked) > 0 {
		query = query.Where("author_id NOT IN ?", blocked)
	}

	var comments []PostComment
	if err := query.Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, err
	}

	authorIDs := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		authorIDs[i] = c.AuthorID
	}
	names, err := s.authorNames(authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]FeedComment, len(comments))
	for i, c := range comments {
		out[i] = FeedComment{PostComment: c, AuthorName: names[c.AuthorID]}
	}
	return out, nil
}

// Delete soft-deletes a post. Authors delete their own; admins any.
func (s *FeedService) Delete(v access.Viewer, postID uuid.UUID) error {
	var post Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.AuthorID != v.UserID && v.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return s.db.Delete(&post).Error
}

func (s *FeedService) authorNames(ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := map[uuid.UUID]string{}
	if len(ids) == 0 {
		return names, nil
	}
	var users []models.User
	if err := s.db.Select("id", "name").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}
