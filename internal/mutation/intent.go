package mutation

import "github.com/google/uuid"

// Kind identifies a user-initiated mutation.
type Kind int

const (
	KindLike Kind = iota
	KindUnlike
	KindCreateComment
	KindCreatePost
	KindEditPost
	KindDeletePost
	KindRespondFriendRequest
	KindSendFriendRequest
	KindCancelFriendRequest
	KindRemoveFriend
)

// String returns the mutation name for logging.
func (k Kind) String() string {
	switch k {
	case KindLike:
		return "like"
	case KindUnlike:
		return "unlike"
	case KindCreateComment:
		return "createComment"
	case KindCreatePost:
		return "createPost"
	case KindEditPost:
		return "editPost"
	case KindDeletePost:
		return "deletePost"
	case KindRespondFriendRequest:
		return "respondFriendRequest"
	case KindSendFriendRequest:
		return "sendFriendRequest"
	case KindCancelFriendRequest:
		return "cancelFriendRequest"
	case KindRemoveFriend:
		return "removeFriend"
	default:
		return "unknown"
	}
}

// Policy decides when a mutation's local effect becomes visible.
type Policy int

const (
	// PolicyOptimistic applies the local change before the request and rolls
	// it back on failure.
	PolicyOptimistic Policy = iota
	// PolicyConfirmFirst withholds any visible change until the backend
	// confirms success.
	PolicyConfirmFirst
)

// Policy is the single declared policy table: likes are optimistic because
// they are low stakes and instantly reversible; everything whose effect is
// visible to other users or irreversible confirms first.
func (k Kind) Policy() Policy {
	switch k {
	case KindLike, KindUnlike:
		return PolicyOptimistic
	default:
		return PolicyConfirmFirst
	}
}

// space groups kinds that mutate the same class of item, so that pending
// detection treats "like post 7" and "unlike post 7" as the same target while
// leaving "remove friend 7" independent.
func (k Kind) space() string {
	switch k {
	case KindLike, KindUnlike, KindEditPost, KindDeletePost:
		return "post"
	case KindCreateComment:
		return "commentCreate"
	case KindCreatePost:
		return "postCreate"
	case KindRespondFriendRequest:
		return "friendRequest"
	case KindSendFriendRequest, KindCancelFriendRequest:
		return "friendRequestUser"
	case KindRemoveFriend:
		return "friendship"
	default:
		return "unknown"
	}
}

// Intent is one user action. It is created when the action fires, consumed by
// the coordinator, and discarded after reconciliation.
type Intent struct {
	ID       uuid.UUID
	Kind     Kind
	TargetID int64
}

// NewIntent creates an intent against the given target.
func NewIntent(kind Kind, targetID int64) Intent {
	return Intent{
		ID:       uuid.New(),
		Kind:     kind,
		TargetID: targetID,
	}
}
