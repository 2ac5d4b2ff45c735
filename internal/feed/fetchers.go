package feed

import (
	"context"
	"strconv"

	"github.com/minglehq/mingle/internal/pager"
)

// Query parameter keys shared between fetchers and the views that build
// queries.
const (
	ParamUserID     = "userId"
	ParamPostID     = "postId"
	ParamSearchTerm = "searchTerm"
)

// FriendsFeedQuery builds the query for the home feed.
func FriendsFeedQuery(pageSize int) pager.Query {
	return pager.Query{Kind: pager.KindFriendsFeed, PageSize: pageSize}
}

// UserPostsQuery builds the query for one user's posts.
func UserPostsQuery(userID int64, pageSize int) pager.Query {
	return pager.Query{
		Kind:     pager.KindUserPosts,
		Params:   map[string]string{ParamUserID: strconv.FormatInt(userID, 10)},
		PageSize: pageSize,
	}
}

// CommentsQuery builds the query for one post's comment thread.
func CommentsQuery(postID int64, pageSize int) pager.Query {
	return pager.Query{
		Kind:     pager.KindComments,
		Params:   map[string]string{ParamPostID: strconv.FormatInt(postID, 10)},
		PageSize: pageSize,
	}
}

// FriendRequestsQuery builds the query for received pending requests.
func FriendRequestsQuery(pageSize int) pager.Query {
	return pager.Query{Kind: pager.KindFriendRequests, PageSize: pageSize}
}

// SearchQuery builds the query for a user search term.
func SearchQuery(term string, pageSize int) pager.Query {
	return pager.Query{
		Kind:     pager.KindUserSearch,
		Params:   map[string]string{ParamSearchTerm: term},
		PageSize: pageSize,
	}
}

// FriendshipsQuery builds the query for the friends list.
func FriendshipsQuery(pageSize int) pager.Query {
	return pager.Query{Kind: pager.KindFriendships, PageSize: pageSize}
}

// PostsFetcher serves both post-backed resource kinds. The query decides
// whether the home feed or a single user's posts are loaded.
func (s *Service) PostsFetcher() pager.Fetcher[Post] {
	return func(ctx context.Context, query pager.Query, page int) ([]Post, error) {
		if query.Kind == pager.KindUserPosts {
			userID, err := strconv.ParseInt(query.Param(ParamUserID), 10, 64)
			if err != nil {
				return nil, err
			}

			return s.UserPosts(ctx, userID, page, query.PageSize)
		}

		return s.FriendsFeed(ctx, page, query.PageSize)
	}
}

// CommentsFetcher loads a post's comment pages.
func (s *Service) CommentsFetcher() pager.Fetcher[Comment] {
	return func(ctx context.Context, query pager.Query, page int) ([]Comment, error) {
		postID, err := strconv.ParseInt(query.Param(ParamPostID), 10, 64)
		if err != nil {
			return nil, err
		}

		return s.Comments(ctx, postID, page, query.PageSize)
	}
}

// FriendRequestsFetcher loads received pending request pages.
func (s *Service) FriendRequestsFetcher() pager.Fetcher[FriendRequest] {
	return func(ctx context.Context, query pager.Query, page int) ([]FriendRequest, error) {
		return s.ReceivedPendingRequests(ctx, page, query.PageSize)
	}
}

// UsersFetcher serves search results and the friendships list, decided by the
// query kind.
func (s *Service) UsersFetcher() pager.Fetcher[UserSummary] {
	return func(ctx context.Context, query pager.Query, page int) ([]UserSummary, error) {
		if query.Kind == pager.KindFriendships {
			return s.Friendships(ctx, page, query.PageSize)
		}

		return s.SearchUsers(ctx, query.Param(ParamSearchTerm), page, query.PageSize)
	}
}
