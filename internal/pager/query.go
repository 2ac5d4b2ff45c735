package pager

// Kind identifies which paginated resource a controller is scoped to.
type Kind int

const (
	KindFriendsFeed Kind = iota
	KindUserPosts
	KindFriendRequests
	KindUserSearch
	KindComments
	KindFriendships
)

// String returns the resource name for logging.
func (k Kind) String() string {
	switch k {
	case KindFriendsFeed:
		return "friendsFeed"
	case KindUserPosts:
		return "userPosts"
	case KindFriendRequests:
		return "friendRequests"
	case KindUserSearch:
		return "userSearch"
	case KindComments:
		return "comments"
	case KindFriendships:
		return "friendships"
	default:
		return "unknown"
	}
}

// Query scopes a controller to one resource and filter set. A query is
// immutable once a controller is running; changing any field requires a
// Reset, which also invalidates responses still in flight.
type Query struct {
	Kind     Kind
	Params   map[string]string
	PageSize int
}

// Param returns a filter parameter, or the empty string when unset.
func (q Query) Param(key string) string {
	return q.Params[key]
}
