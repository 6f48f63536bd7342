package model

import (
	"encoding/json"

	"github.com/Guyuepp/go-community-client/domain"
)

type User struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName"`
	AvatarURL   string   `json:"avatarUrl"`
	Tags        []string `json:"tags"`
}

func (m *User) ToDomain() domain.UserSummary {
	u := domain.UserSummary{
		ID:          m.ID,
		Username:    m.Username,
		DisplayName: m.DisplayName,
		AvatarURL:   m.AvatarURL,
		Tags:        m.Tags,
	}
	if u.DisplayName == "" {
		u.DisplayName = u.Username
	}
	if u.AvatarURL == "" {
		u.AvatarURL = domain.DefaultAvatarURL
	}
	return u
}

type Profile struct {
	User
	Bio        string `json:"bio"`
	PostCount  int    `json:"postCount"`
	GroupCount int    `json:"groupCount"`
}

// UnmarshalJSON accepts both {"user": {...}} and a bare profile object.
func (m *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	var p plain
	if err := json.Unmarshal(objectPayload(data, "user"), &p); err != nil {
		return err
	}
	*m = Profile(p)
	return nil
}

func (m *Profile) ToDomain() domain.Profile {
	return domain.Profile{
		UserSummary: m.User.ToDomain(),
		Bio:         m.Bio,
		PostCount:   m.PostCount,
		GroupCount:  m.GroupCount,
	}
}

type ProfileUpdateRequest struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

func NewProfileUpdateFromDomain(in domain.ProfileUpdate) ProfileUpdateRequest {
	return ProfileUpdateRequest{
		DisplayName: in.DisplayName,
		Bio:         in.Bio,
		AvatarURL:   in.AvatarURL,
	}
}

type TagsRequest struct {
	Tags []string `json:"tags"`
}

type AuthResponse struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user"`
}

func (m *AuthResponse) ToDomain() domain.AuthStatus {
	status := domain.AuthStatus{Authenticated: m.Authenticated}
	if m.User != nil {
		u := m.User.ToDomain()
		status.User = &u
	}
	return status
}
