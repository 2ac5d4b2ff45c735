package feed_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/minglehq/mingle/internal/api"
	"github.com/minglehq/mingle/internal/feed"
	"github.com/minglehq/mingle/internal/mutation"
	"github.com/minglehq/mingle/internal/pager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// seededPosts builds a controller holding the given posts without paging.
func seededPosts(posts ...feed.Post) *pager.Controller[feed.Post] {
	fetch := func(context.Context, pager.Query, int) ([]feed.Post, error) { return nil, nil }
	c := pager.NewController(feed.FriendsFeedQuery(10), fetch, zap.NewNop())

	for _, post := range posts {
		c.AppendItem(post)
	}

	return c
}

func TestToggleLikeCommitsOptimisticChange(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/7/like", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	coord := mutation.NewCoordinator(zap.NewNop())
	posts := seededPosts(feed.Post{ID: 7, LikeCount: 3})

	result := feed.ToggleLike(context.Background(), coord, svc, posts, 7)
	require.NoError(t, result.Err)
	assert.Equal(t, mutation.StateCommitted, result.State)

	post, ok := posts.Item(7)
	require.True(t, ok)
	assert.True(t, post.LikedByMe)
	assert.Equal(t, 4, post.LikeCount)
}

func TestToggleLikeRollsBackOnRejection(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "already liked"}`))
	}))

	coord := mutation.NewCoordinator(zap.NewNop())
	posts := seededPosts(feed.Post{ID: 7, LikeCount: 3})

	result := feed.ToggleLike(context.Background(), coord, svc, posts, 7)
	assert.Equal(t, mutation.StateRolledBack, result.State)
	assert.True(t, api.IsStatus(result.Err, http.StatusConflict))

	post, ok := posts.Item(7)
	require.True(t, ok)
	assert.False(t, post.LikedByMe, "the optimistic flip is rolled back")
	assert.Equal(t, 3, post.LikeCount, "the count snapshot is restored")
}

func TestToggleLikeUnlikesLikedPost(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/posts/7/unlike", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	coord := mutation.NewCoordinator(zap.NewNop())
	posts := seededPosts(feed.Post{ID: 7, LikeCount: 4, LikedByMe: true})

	result := feed.ToggleLike(context.Background(), coord, svc, posts, 7)
	require.NoError(t, result.Err)

	post, _ := posts.Item(7)
	assert.False(t, post.LikedByMe)
	assert.Equal(t, 3, post.LikeCount)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected for a post that is not listed")
	}))

	coord := mutation.NewCoordinator(zap.NewNop())
	posts := seededPosts()

	result := feed.ToggleLike(context.Background(), coord, svc, posts, 99)
	assert.ErrorIs(t, result.Err, feed.ErrItemNotFound)
}

func TestCreatePostAppendsOnlyAfterConfirmation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(enrichedPost(9, 11, "alice", "fresh", 0, false)))
	}))

	coord := mutation.NewCoordinator(zap.NewNop())
	posts := seededPosts(feed.Post{ID: 1})

	result := feed.CreatePost(context.Background(), coord, svc, posts, "fresh")
	require.NoError(t, result.Err)
	assert.Equal(t, mutation.StateCommitted, result.State)

	snap := posts.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, int64(9), snap.Items[1].ID, "the server-created entity is appended")
	assert.Equal(t, "alice", snap.Items[1].Username)
}

func TestCreatePostFailureLeavesListUntouched(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "content too long"}`))
	}))

	coord := mutation.NewCoordinator(zap.NewNop())
	posts := seededPosts(feed.Post{ID: 1})

	result := feed.CreatePost(context.Background(), coord, svc, posts, "way too long")
	assert.Equal(t, mutation.StateRolledBack, result.State)
	assert.Len(t, posts.Snapshot().Items, 1, "nothing is shown for a rejected creation")
}

func TestEditPostUpdatesInPlaceAfterConfirmation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.Write([]byte(enrichedPost(7, 11, "alice", "edited", 3, true)))
	}))

	coord := mutation.NewCoordinator(zap.NewNop())
	posts := seededPosts(feed.Post{ID: 7, Content: "original", LikeCount: 3, LikedByMe: true})

	result := feed.EditPost(context.Background(), coord, svc, posts, 7, "edited")
	require.NoError(t, result.Err)

	post, _ := posts.Item(7)
	assert.Equal(t, "edited", post.Content)
	assert.Equal(t, 3, post.LikeCount, "aggregates are untouched by an edit")
}

func TestDeletePostRemovesAfterConfirmation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/posts/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	coord := mutation.NewCoordinator(zap.NewNop())
	posts := seededPosts(feed.Post{ID: 7}, feed.Post{ID: 8})

	result := feed.DeletePost(context.Background(), coord, svc, posts, 7)
	require.NoError(t, result.Err)

	snap := posts.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(8), snap.Items[0].ID)
}

func TestRespondFriendRequestRemovesRowOnCommit(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	coord := mutation.NewCoordinator(zap.NewNop())

	fetch := func(context.Context, pager.Query, int) ([]feed.FriendRequest, error) { return nil, nil }
	requests := pager.NewController(feed.FriendRequestsQuery(10), fetch, zap.NewNop())
	requests.AppendItem(feed.FriendRequest{ID: 3, RequesterID: 5, Status: feed.StatusPending})

	result := feed.RespondFriendRequest(context.Background(), coord, svc, requests, 3, feed.StatusAccepted)
	require.NoError(t, result.Err)
	assert.Empty(t, requests.Snapshot().Items)
}

func TestRespondFriendRequestKeepsRowOnFailure(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "request already resolved"}`))
	}))

	coord := mutation.NewCoordinator(zap.NewNop())

	fetch := func(context.Context, pager.Query, int) ([]feed.FriendRequest, error) { return nil, nil }
	requests := pager.NewController(feed.FriendRequestsQuery(10), fetch, zap.NewNop())
	requests.AppendItem(feed.FriendRequest{ID: 3, RequesterID: 5, Status: feed.StatusPending})

	result := feed.RespondFriendRequest(context.Background(), coord, svc, requests, 3, feed.StatusRejected)
	require.Error(t, result.Err)
	assert.Len(t, requests.Snapshot().Items, 1, "the row stays until the backend confirms")
}

func TestRemoveFriendToleratesNilController(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/friendships/5", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	coord := mutation.NewCoordinator(zap.NewNop())

	result := feed.RemoveFriend(context.Background(), coord, svc, nil, 5)
	require.NoError(t, result.Err)
	assert.Equal(t, mutation.StateCommitted, result.State)
}
