package feed

import "time"

// Request statuses used by the friend request endpoints.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Post is one feed entry, flattened from the backend's enriched post shape.
type Post struct {
	ID           int64
	AuthorID     int64
	Username     string
	Content      string
	LikeCount    int
	LikedByMe    bool
	CommentCount int
	ProfilePhoto string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ItemID implements pager.Item.
func (p Post) ItemID() int64 { return p.ID }

// Comment is one comment or reply on a post. ParentCommentID is nil for
// top-level comments.
type Comment struct {
	ID              int64     `json:"id"`
	PostID          int64     `json:"postId"`
	AuthorID        int64     `json:"userId"`
	Username        string    `json:"username"`
	Content         string    `json:"content"`
	ParentCommentID *int64    `json:"parentCommentId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ItemID implements pager.Item.
func (c Comment) ItemID() int64 { return c.ID }

// FriendRequest is one received friend request.
type FriendRequest struct {
	ID                    int64  `json:"id"`
	RequesterID           int64  `json:"requesterId"`
	RequesterUsername     string `json:"requesterUsername"`
	RequesterProfilePhoto string `json:"requesterProfilePhoto"`
	Status                string `json:"status"`
}

// ItemID implements pager.Item.
func (r FriendRequest) ItemID() int64 { return r.ID }

// UserSummary is one row in search results and friendship lists.
type UserSummary struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	ProfilePhoto string `json:"profilePhoto"`
}

// ItemID implements pager.Item.
func (u UserSummary) ItemID() int64 { return u.ID }

// Profile is another user's profile page data.
type Profile struct {
	Username       string `json:"username"`
	ProfilePhoto   string `json:"profilePhoto"`
	IsFriend       bool   `json:"isFriend"`
	PendingRequest bool   `json:"pendingRequest"`
}

// postEnvelope is the wire shape of an enriched post: the bare post object
// plus the author and aggregate fields the backend joins in.
type postEnvelope struct {
	Post         postPayload `json:"post"`
	Username     string      `json:"username"`
	LikeCount    int         `json:"likeCount"`
	LikedByMe    bool        `json:"likedByMe"`
	CommentCount int         `json:"commentCount"`
	ProfilePhoto string      `json:"profilePhoto"`
}

// postPayload is the bare post object inside an envelope.
type postPayload struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// flatten converts the wire envelope into the Post model.
func (e postEnvelope) flatten() Post {
	return Post{
		ID:           e.Post.ID,
		AuthorID:     e.Post.UserID,
		Username:     e.Username,
		Content:      e.Post.Content,
		LikeCount:    e.LikeCount,
		LikedByMe:    e.LikedByMe,
		CommentCount: e.CommentCount,
		ProfilePhoto: e.ProfilePhoto,
		CreatedAt:    e.Post.CreatedAt,
		UpdatedAt:    e.Post.UpdatedAt,
	}
}
