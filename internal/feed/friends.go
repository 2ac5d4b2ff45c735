package feed

import (
	"context"
	"net/http"
	"strconv"
)

// ReceivedPendingRequests loads one page of received friend requests. The
// endpoint is pending-scoped already; the status filter here guards against
// requests resolved between the page being built and received.
func (s *Service) ReceivedPendingRequests(ctx context.Context, page, pageSize int) ([]FriendRequest, error) {
	var requests []FriendRequest

	path := "/friendRequests/receivedPending?" + pageQuery(page, pageSize)
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &requests); err != nil {
		return nil, err
	}

	pending := requests[:0]
	for _, request := range requests {
		if request.Status == StatusPending {
			pending = append(pending, request)
		}
	}

	return pending, nil
}

// RespondFriendRequest accepts or rejects a received request. Status must be
// StatusAccepted or StatusRejected.
func (s *Service) RespondFriendRequest(ctx context.Context, requestID int64, status string) error {
	payload := map[string]string{"status": status}

	path := "/friendRequests/" + strconv.FormatInt(requestID, 10) + "/respond"

	return s.client.Do(ctx, http.MethodPut, path, payload, nil)
}

// SendFriendRequest sends a request to another user.
func (s *Service) SendFriendRequest(ctx context.Context, receiverID int64) error {
	payload := map[string]int64{"receiverId": receiverID}

	return s.client.Do(ctx, http.MethodPost, "/friendRequests", payload, nil)
}

// CancelFriendRequest withdraws the current user's pending request toward the
// given user.
func (s *Service) CancelFriendRequest(ctx context.Context, userID int64) error {
	path := "/friendRequests/user/" + strconv.FormatInt(userID, 10)

	return s.client.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Friendships loads one page of the current user's friends.
func (s *Service) Friendships(ctx context.Context, page, pageSize int) ([]UserSummary, error) {
	var friends []UserSummary

	path := "/friendships?" + pageQuery(page, pageSize)
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &friends); err != nil {
		return nil, err
	}

	return friends, nil
}

// RemoveFriend ends a friendship.
func (s *Service) RemoveFriend(ctx context.Context, userID int64) error {
	path := "/friendships/" + strconv.FormatInt(userID, 10)

	return s.client.Do(ctx, http.MethodDelete, path, nil, nil)
}
