package feed

import (
	"context"
	"io"
	"net/http"
	"strconv"
)

// Profile loads another user's profile.
func (s *Service) Profile(ctx context.Context, userID int64) (Profile, error) {
	var profile Profile

	path := "/users/" + strconv.FormatInt(userID, 10)
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &profile); err != nil {
		return Profile{}, err
	}

	return profile, nil
}

// UpdateProfile changes the current user's username. The backend re-issues
// the token because the username claim changed; the caller must log the new
// token into the session store.
func (s *Service) UpdateProfile(ctx context.Context, username string) (string, error) {
	payload := map[string]string{"username": username}

	var resp struct {
		Token string `json:"token"`
	}

	if err := s.client.Do(ctx, http.MethodPatch, "/users/me", payload, &resp); err != nil {
		return "", err
	}

	return resp.Token, nil
}

// UpdatePassword changes the current user's password.
func (s *Service) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	payload := map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}

	return s.client.Do(ctx, http.MethodPut, "/users/me/password", payload, nil)
}

// UploadProfilePhoto uploads a new profile photo as a multipart form.
func (s *Service) UploadProfilePhoto(ctx context.Context, filename string, content io.Reader) error {
	return s.client.Upload(ctx, "/users/profile-photo", "photo", filename, content)
}

// SearchUsers loads one page of users matching the username filter.
func (s *Service) SearchUsers(ctx context.Context, username string, page, pageSize int) ([]UserSummary, error) {
	var users []UserSummary

	path := "/users/search?username=" + escape(username) + "&" + pageQuery(page, pageSize)
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}

	return users, nil
}
