package domain

import "time"

// Community groups posts under a topic.
type Community struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
}

// OwnerUserID implements ownership checks.
func (c *Community) OwnerUserID() string { return c.OwnerID }

// CommunityPost is a user-authored post inside a community.
type CommunityPost struct {
	ID          string
	CommunityID string
	UserID      string
	Title       string
	Content     string
	Link        string
	Image       string
	Video       string
	Audio       string
	LikeCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnerUserID implements ownership checks.
func (p *CommunityPost) OwnerUserID() string { return p.UserID }

// PostLike joins a post and the user who liked it. (PostID, UserID) is unique.
type PostLike struct {
	ID        string
	PostID    string
	UserID    string
	CreatedAt time.Time
}

// OwnerUserID implements ownership checks.
func (l *PostLike) OwnerUserID() string { return l.UserID }
