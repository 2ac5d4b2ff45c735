package feed

import (
	"context"
	"net/http"
	"strconv"
)

// FriendsFeed loads one page of the home feed.
func (s *Service) FriendsFeed(ctx context.Context, page, pageSize int) ([]Post, error) {
	var envelopes []postEnvelope

	path := "/posts/friends?" + pageQuery(page, pageSize)
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &envelopes); err != nil {
		return nil, err
	}

	return flattenAll(envelopes), nil
}

// UserPosts loads one page of a user's own posts.
func (s *Service) UserPosts(ctx context.Context, userID int64, page, pageSize int) ([]Post, error) {
	var envelopes []postEnvelope

	path := "/posts/user/" + strconv.FormatInt(userID, 10) + "?" + pageQuery(page, pageSize)
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &envelopes); err != nil {
		return nil, err
	}

	return flattenAll(envelopes), nil
}

// PostDetail loads a single enriched post.
func (s *Service) PostDetail(ctx context.Context, postID int64) (Post, error) {
	var envelope postEnvelope

	path := "/posts/" + strconv.FormatInt(postID, 10)
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return Post{}, err
	}

	return envelope.flatten(), nil
}

// CreatePost publishes a new post and returns the created entity. The
// identity and timestamps are server-assigned, so creation is never applied
// locally before this call succeeds.
func (s *Service) CreatePost(ctx context.Context, content string) (Post, error) {
	payload := map[string]string{"content": content}

	var envelope postEnvelope

	if err := s.client.Do(ctx, http.MethodPost, "/posts", payload, &envelope); err != nil {
		return Post{}, err
	}

	return envelope.flatten(), nil
}

// EditPost replaces a post's content and returns the updated entity.
func (s *Service) EditPost(ctx context.Context, postID int64, content string) (Post, error) {
	payload := map[string]string{"content": content}

	var envelope postEnvelope

	path := "/posts/" + strconv.FormatInt(postID, 10)
	if err := s.client.Do(ctx, http.MethodPut, path, payload, &envelope); err != nil {
		return Post{}, err
	}

	return envelope.flatten(), nil
}

// DeletePost removes a post.
func (s *Service) DeletePost(ctx context.Context, postID int64) error {
	path := "/posts/" + strconv.FormatInt(postID, 10)

	return s.client.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Like marks a post as liked by the current user.
func (s *Service) Like(ctx context.Context, postID int64) error {
	path := "/posts/" + strconv.FormatInt(postID, 10) + "/like"

	return s.client.Do(ctx, http.MethodPost, path, nil, nil)
}

// Unlike removes the current user's like from a post.
func (s *Service) Unlike(ctx context.Context, postID int64) error {
	path := "/posts/" + strconv.FormatInt(postID, 10) + "/unlike"

	return s.client.Do(ctx, http.MethodDelete, path, nil, nil)
}

func flattenAll(envelopes []postEnvelope) []Post {
	posts := make([]Post, 0, len(envelopes))
	for _, envelope := range envelopes {
		posts = append(posts, envelope.flatten())
	}

	return posts
}
