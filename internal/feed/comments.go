package feed

import (
	"context"
	"net/http"
	"strconv"
)

// Comments loads one page of a post's comments and replies.
func (s *Service) Comments(ctx context.Context, postID int64, page, pageSize int) ([]Comment, error) {
	var comments []Comment

	path := "/posts/" + strconv.FormatInt(postID, 10) + "/comments?" + pageQuery(page, pageSize)
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &comments); err != nil {
		return nil, err
	}

	return comments, nil
}

// CreateComment adds a comment, or a reply when parentCommentID is non-nil,
// and returns the created entity.
func (s *Service) CreateComment(ctx context.Context, postID int64, content string, parentCommentID *int64) (Comment, error) {
	payload := map[string]any{"content": content}
	if parentCommentID != nil {
		payload["parentCommentId"] = *parentCommentID
	}

	var comment Comment

	path := "/posts/" + strconv.FormatInt(postID, 10) + "/comments"
	if err := s.client.Do(ctx, http.MethodPost, path, payload, &comment); err != nil {
		return Comment{}, err
	}

	return comment, nil
}
