package domain

import (
	"context"
)

const (
	UnknownUserName  = "Unknown User"
	DefaultAvatarURL = "/static/images/default-avatar.png"
)

// UserSummary is the identity shown next to posts and comments.
type UserSummary struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	AvatarURL   string   `json:"avatar_url"`
	Tags        []string `json:"tags,omitempty"`
}

// IsZero reports whether no identity data is present at all.
func (u UserSummary) IsZero() bool {
	return u.ID == 0 && u.Username == "" && u.DisplayName == ""
}

// PlaceholderUser is rendered when nothing is known about a user.
func PlaceholderUser(id int64) UserSummary {
	return UserSummary{
		ID:          id,
		Username:    UnknownUserName,
		DisplayName: UnknownUserName,
		AvatarURL:   DefaultAvatarURL,
	}
}

// AuthStatus is the answer of the auth endpoint.
type AuthStatus struct {
	Authenticated bool
	User          *UserSummary
}

// Profile is the full profile of a user.
type Profile struct {
	UserSummary
	Bio        string `json:"bio"`
	PostCount  int    `json:"post_count"`
	GroupCount int    `json:"group_count"`
}

// ProfileUpdate is the editable part of the current user's profile.
type ProfileUpdate struct {
	DisplayName string `json:"display_name" validate:"required,max=64"`
	Bio         string `json:"bio" validate:"max=500"`
	AvatarURL   string `json:"avatar_url" validate:"omitempty,url"`
}

// AuthAPI is the remote auth contract.
type AuthAPI interface {
	Status(ctx context.Context) (AuthStatus, error)
}

// UserAPI is the remote user contract.
type UserAPI interface {
	GetProfile(ctx context.Context, id int64) (Profile, error)
	UpdateProfile(ctx context.Context, in ProfileUpdate) (Profile, error)
	UpdateTags(ctx context.Context, tags []string) (Profile, error)
}

type UserUsecase interface {
	GetProfile(ctx context.Context, id int64) (Profile, error)
	UpdateProfile(ctx context.Context, in ProfileUpdate) (Profile, error)
	UpdateTags(ctx context.Context, tags []string) (Profile, error)
}
