package tui

import (
	"github.com/minglehq/mingle/internal/feed"
	"github.com/minglehq/mingle/internal/mutation"
)

// ViewType represents the different TUI views.
type ViewType int

const (
	FeedView ViewType = iota
	SearchView
	RequestsView
	FriendsView
	ProfileView
	DetailView
	HelpView
)

// String returns the tab label.
func (v ViewType) String() string {
	switch v {
	case FeedView:
		return "Feed"
	case SearchView:
		return "Search"
	case RequestsView:
		return "Requests"
	case FriendsView:
		return "Friends"
	case ProfileView:
		return "Profile"
	case DetailView:
		return "Post"
	case HelpView:
		return "Help"
	default:
		return "Unknown"
	}
}

// pageLoadedMsg reports that a controller finished a page load. The result is
// read from the controller's snapshot, not carried in the message.
type pageLoadedMsg struct {
	view ViewType
}

// mutationMsg reports a finished mutation instance.
type mutationMsg struct {
	view   ViewType
	result mutation.Result
}

// detailLoadedMsg carries a freshly fetched post for the detail view.
type detailLoadedMsg struct {
	post feed.Post
	err  error
}

// profileLoadedMsg carries a freshly fetched profile.
type profileLoadedMsg struct {
	userID  int64
	profile feed.Profile
	err     error
}

// openDetailMsg asks the root model to switch to the detail view.
type openDetailMsg struct {
	postID int64
}

// openProfileMsg asks the root model to switch to the profile view.
type openProfileMsg struct {
	userID int64
}
