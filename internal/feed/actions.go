package feed

import (
	"context"
	"errors"

	"github.com/minglehq/mingle/internal/mutation"
	"github.com/minglehq/mingle/internal/pager"
)

var ErrItemNotFound = errors.New("item is not in the list")

// ToggleLike flips the like state of a post. Likes are the one optimistic
// mutation: the flag and count change locally before the request, and the
// retained snapshot is restored if the backend rejects it.
func ToggleLike(
	ctx context.Context, coord *mutation.Coordinator, svc *Service,
	posts *pager.Controller[Post], postID int64,
) mutation.Result {
	snapshot, ok := posts.Item(postID)
	if !ok {
		return mutation.Result{State: mutation.StateRolledBack, Err: ErrItemNotFound}
	}

	kind := mutation.KindLike
	if snapshot.LikedByMe {
		kind = mutation.KindUnlike
	}

	intent := mutation.NewIntent(kind, postID)

	effect := mutation.Effect{
		Apply: func() {
			posts.UpdateItem(postID, func(p Post) Post {
				if p.LikedByMe {
					p.LikedByMe = false
					p.LikeCount--
				} else {
					p.LikedByMe = true
					p.LikeCount++
				}

				return p
			})
		},
		Revert: func() {
			posts.UpdateItem(postID, func(Post) Post { return snapshot })
		},
		Send: func(ctx context.Context) error {
			if kind == mutation.KindUnlike {
				return svc.Unlike(ctx, postID)
			}

			return svc.Like(ctx, postID)
		},
	}

	return coord.Dispatch(ctx, intent, effect)
}

// CreatePost publishes a post and appends the server-created entity to the
// list. Creation is confirm-first: the identity and timestamps are
// server-assigned, so nothing is shown until the backend responds.
func CreatePost(
	ctx context.Context, coord *mutation.Coordinator, svc *Service,
	posts *pager.Controller[Post], content string,
) mutation.Result {
	intent := mutation.NewIntent(mutation.KindCreatePost, 0)

	var created Post

	effect := mutation.Effect{
		Send: func(ctx context.Context) error {
			var err error
			created, err = svc.CreatePost(ctx, content)

			return err
		},
		Commit: func() {
			posts.AppendItem(created)
		},
	}

	return coord.Dispatch(ctx, intent, effect)
}

// EditPost replaces a post's content. Confirm-first: the displayed content is
// untouched until the backend returns the updated entity.
func EditPost(
	ctx context.Context, coord *mutation.Coordinator, svc *Service,
	posts *pager.Controller[Post], postID int64, content string,
) mutation.Result {
	intent := mutation.NewIntent(mutation.KindEditPost, postID)

	var updated Post

	effect := mutation.Effect{
		Send: func(ctx context.Context) error {
			var err error
			updated, err = svc.EditPost(ctx, postID, content)

			return err
		},
		Commit: func() {
			posts.UpdateItem(postID, func(p Post) Post {
				p.Content = updated.Content
				p.UpdatedAt = updated.UpdatedAt

				return p
			})
		},
	}

	return coord.Dispatch(ctx, intent, effect)
}

// DeletePost removes a post. Confirm-first: the item stays visible until the
// backend confirms the deletion.
func DeletePost(
	ctx context.Context, coord *mutation.Coordinator, svc *Service,
	posts *pager.Controller[Post], postID int64,
) mutation.Result {
	intent := mutation.NewIntent(mutation.KindDeletePost, postID)

	effect := mutation.Effect{
		Send: func(ctx context.Context) error {
			return svc.DeletePost(ctx, postID)
		},
		Commit: func() {
			posts.RemoveItem(postID)
		},
	}

	return coord.Dispatch(ctx, intent, effect)
}

// AddComment creates a comment or reply and appends the server-created entity
// to the thread.
func AddComment(
	ctx context.Context, coord *mutation.Coordinator, svc *Service,
	comments *pager.Controller[Comment], postID int64, content string, parentCommentID *int64,
) mutation.Result {
	intent := mutation.NewIntent(mutation.KindCreateComment, postID)

	var created Comment

	effect := mutation.Effect{
		Send: func(ctx context.Context) error {
			var err error
			created, err = svc.CreateComment(ctx, postID, content, parentCommentID)

			return err
		},
		Commit: func() {
			comments.AppendItem(created)
		},
	}

	return coord.Dispatch(ctx, intent, effect)
}

// RespondFriendRequest accepts or rejects a received request and removes it
// from the pending list once the backend confirms.
func RespondFriendRequest(
	ctx context.Context, coord *mutation.Coordinator, svc *Service,
	requests *pager.Controller[FriendRequest], requestID int64, status string,
) mutation.Result {
	intent := mutation.NewIntent(mutation.KindRespondFriendRequest, requestID)

	effect := mutation.Effect{
		Send: func(ctx context.Context) error {
			return svc.RespondFriendRequest(ctx, requestID, status)
		},
		Commit: func() {
			requests.RemoveItem(requestID)
		},
	}

	return coord.Dispatch(ctx, intent, effect)
}

// SendFriendRequest sends a request toward a user. The caller flips any
// pending-request indicator only on a committed result.
func SendFriendRequest(
	ctx context.Context, coord *mutation.Coordinator, svc *Service, receiverID int64,
) mutation.Result {
	intent := mutation.NewIntent(mutation.KindSendFriendRequest, receiverID)

	effect := mutation.Effect{
		Send: func(ctx context.Context) error {
			return svc.SendFriendRequest(ctx, receiverID)
		},
	}

	return coord.Dispatch(ctx, intent, effect)
}

// CancelFriendRequest withdraws the current user's request toward a user.
func CancelFriendRequest(
	ctx context.Context, coord *mutation.Coordinator, svc *Service, userID int64,
) mutation.Result {
	intent := mutation.NewIntent(mutation.KindCancelFriendRequest, userID)

	effect := mutation.Effect{
		Send: func(ctx context.Context) error {
			return svc.CancelFriendRequest(ctx, userID)
		},
	}

	return coord.Dispatch(ctx, intent, effect)
}

// RemoveFriend ends a friendship and removes the entry from the friends list
// once the backend confirms. The controller is nil when the action fires from
// a view that does not own the friends list.
func RemoveFriend(
	ctx context.Context, coord *mutation.Coordinator, svc *Service,
	friends *pager.Controller[UserSummary], userID int64,
) mutation.Result {
	intent := mutation.NewIntent(mutation.KindRemoveFriend, userID)

	effect := mutation.Effect{
		Send: func(ctx context.Context) error {
			return svc.RemoveFriend(ctx, userID)
		},
		Commit: func() {
			if friends != nil {
				friends.RemoveItem(userID)
			}
		},
	}

	return coord.Dispatch(ctx, intent, effect)
}
