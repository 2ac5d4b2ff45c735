package feed_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/minglehq/mingle/internal/api"
	"github.com/minglehq/mingle/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestService(t *testing.T, handler http.Handler) *feed.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, staticTokens("test-token"), 0, zap.NewNop())

	return feed.NewService(client, zap.NewNop())
}

func enrichedPost(id, userID int64, username, content string, likeCount int, likedByMe bool) string {
	return fmt.Sprintf(`{
		"post": {"id": %d, "userId": %d, "content": %q, "createdAt": "2026-08-30T12:00:00Z", "updatedAt": "2026-08-30T12:00:00Z"},
		"username": %q,
		"likeCount": %d,
		"likedByMe": %t,
		"commentCount": 2,
		"profilePhoto": ""
	}`, id, userID, content, username, likeCount, likedByMe)
}

func TestLoginReturnsToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		w.Write([]byte(`{"token":"jwt-abc"}`))
	}))

	token, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
}

func TestFriendsFeedFlattensEnvelopes(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/friends", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))

		fmt.Fprintf(w, "[%s,%s]",
			enrichedPost(1, 11, "alice", "hello", 3, true),
			enrichedPost(2, 12, "bob", "hi", 0, false))
	}))

	posts, err := svc.FriendsFeed(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, int64(1), posts[0].ID)
	assert.Equal(t, int64(11), posts[0].AuthorID)
	assert.Equal(t, "alice", posts[0].Username)
	assert.Equal(t, "hello", posts[0].Content)
	assert.Equal(t, 3, posts[0].LikeCount)
	assert.True(t, posts[0].LikedByMe)
	assert.Equal(t, 2, posts[0].CommentCount)
}

func TestUserPostsPath(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/user/42", r.URL.Path)
		w.Write([]byte(`[]`))
	}))

	posts, err := svc.UserPosts(context.Background(), 42, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCreatePostReturnsEnrichedEntity(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(enrichedPost(9, 11, "alice", "fresh", 0, false)))
	}))

	post, err := svc.CreatePost(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, int64(9), post.ID)
	assert.Equal(t, "fresh", post.Content)
	assert.Zero(t, post.LikeCount)
}

func TestLikeAndUnlikeUseDistinctRoutes(t *testing.T) {
	t.Parallel()

	var likeMethod, likePath, unlikeMethod, unlikePath string

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/posts/7/like":
			likeMethod, likePath = r.Method, r.URL.Path
		case r.URL.Path == "/posts/7/unlike":
			unlikeMethod, unlikePath = r.Method, r.URL.Path
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, svc.Like(context.Background(), 7))
	require.NoError(t, svc.Unlike(context.Background(), 7))

	assert.Equal(t, http.MethodPost, likeMethod)
	assert.Equal(t, "/posts/7/like", likePath)
	assert.Equal(t, http.MethodDelete, unlikeMethod)
	assert.Equal(t, "/posts/7/unlike", unlikePath)
}

func TestCreateCommentIncludesParentOnlyForReplies(t *testing.T) {
	t.Parallel()

	bodies := make([]string, 0, 2)

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/7/comments", r.URL.Path)

		buf, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		bodies = append(bodies, string(buf))

		w.Write([]byte(`{"id": 31, "postId": 7, "userId": 11, "username": "alice", "content": "ok", "createdAt": "2026-08-30T12:00:00Z"}`))
	}))

	_, err := svc.CreateComment(context.Background(), 7, "top level", nil)
	require.NoError(t, err)

	parent := int64(31)
	_, err = svc.CreateComment(context.Background(), 7, "a reply", &parent)
	require.NoError(t, err)

	require.Len(t, bodies, 2)
	assert.NotContains(t, bodies[0], "parentCommentId")
	assert.Contains(t, bodies[1], `"parentCommentId":31`)
}

func TestReceivedPendingRequestsFiltersResolved(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/friendRequests/receivedPending", r.URL.Path)
		w.Write([]byte(`[
			{"id": 1, "requesterId": 5, "requesterUsername": "dan", "status": "pending"},
			{"id": 2, "requesterId": 6, "requesterUsername": "eve", "status": "accepted"}
		]`))
	}))

	requests, err := svc.ReceivedPendingRequests(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "dan", requests[0].RequesterUsername)
}

func TestSendFriendRequestSurfacesDuplicateMessage(t *testing.T) {
	t.Parallel()

	const message = "A pending friend request already exists between these users"

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/friendRequests", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, `{"message": %q}`, message)
	}))

	err := svc.SendFriendRequest(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, api.IsStatus(err, http.StatusBadRequest))
	assert.Equal(t, message, api.StatusMessage(err))
}

func TestRespondFriendRequestRoute(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/friendRequests/3/respond", r.URL.Path)

		buf, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"accepted"}`, string(buf))

		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, svc.RespondFriendRequest(context.Background(), 3, feed.StatusAccepted))
}

func TestSearchUsersEscapesTerm(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/search", r.URL.Path)
		assert.Equal(t, "mr smith", r.URL.Query().Get("username"))
		w.Write([]byte(`[{"id": 4, "username": "mr smith", "profilePhoto": ""}]`))
	}))

	users, err := svc.SearchUsers(context.Background(), " mr smith ", 1, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(4), users[0].ID)
}

func TestProfileFlags(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/4", r.URL.Path)
		w.Write([]byte(`{"username": "dave", "profilePhoto": "", "isFriend": false, "pendingRequest": true}`))
	}))

	profile, err := svc.Profile(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "dave", profile.Username)
	assert.False(t, profile.IsFriend)
	assert.True(t, profile.PendingRequest)
}

func TestUpdateProfileReturnsReissuedToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/me", r.URL.Path)
		w.Write([]byte(`{"token":"jwt-new"}`))
	}))

	token, err := svc.UpdateProfile(context.Background(), "alice2")
	require.NoError(t, err)
	assert.Equal(t, "jwt-new", token)
}
