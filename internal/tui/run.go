package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/minglehq/mingle/internal/feed"
	"github.com/minglehq/mingle/internal/pager"
	"github.com/minglehq/mingle/internal/setup"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Run starts the interactive client. It requires an authenticated session.
func Run(ctx context.Context, app *setup.App) error {
	if !app.Session.IsAuthenticated() {
		return fmt.Errorf("%w: log in first", ErrNotAuthenticated)
	}

	identity, err := app.Session.Identity()
	if err != nil {
		return fmt.Errorf("failed to read session identity: %w", err)
	}

	svc := app.Feed
	coord := app.Mutations
	logger := app.Logger.Named("tui")
	pageSize := app.Config.Feed.PageSize
	threshold := app.Config.Feed.ScrollThreshold

	feedPosts := pager.NewController(feed.FriendsFeedQuery(pageSize), svc.PostsFetcher(), logger)
	profilePosts := pager.NewController(feed.UserPostsQuery(0, pageSize), svc.PostsFetcher(), logger)
	comments := pager.NewController(feed.CommentsQuery(0, pageSize), svc.CommentsFetcher(), logger)
	requests := pager.NewController(feed.FriendRequestsQuery(pageSize), svc.FriendRequestsFetcher(), logger)
	searchUsers := pager.NewController(feed.SearchQuery("", pageSize), svc.UsersFetcher(), logger)
	friends := pager.NewController(feed.FriendshipsQuery(pageSize), svc.UsersFetcher(), logger)

	model := newModel(
		ctx, logger,
		newFeedView(ctx, svc, coord, identity, feedPosts, threshold),
		newSearchView(ctx, svc, coord, searchUsers, pageSize, threshold),
		newRequestsView(ctx, svc, coord, requests, threshold),
		newFriendsView(ctx, svc, coord, friends, threshold),
		newProfileView(ctx, svc, coord, profilePosts, pageSize, threshold),
		newDetailView(ctx, svc, coord, identity, comments, pageSize, threshold),
	)

	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	return nil
}
