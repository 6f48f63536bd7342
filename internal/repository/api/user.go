package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/repository/api/model"
)

type authRepository struct {
	client *Client
}

var _ domain.AuthAPI = (*authRepository)(nil)

func NewAuthRepository(client *Client) *authRepository {
	return &authRepository{client: client}
}

// Status treats a 401 as a plain "not logged in" answer.
func (r *authRepository) Status(ctx context.Context) (domain.AuthStatus, error) {
	var res model.AuthResponse
	err := r.client.do(ctx, http.MethodGet, "/auth/", nil, nil, &res)
	if apiErr, ok := asAPIError(err); ok && apiErr.Status == http.StatusUnauthorized {
		return domain.AuthStatus{}, nil
	}
	if err != nil {
		return domain.AuthStatus{}, err
	}
	return res.ToDomain(), nil
}

type userRepository struct {
	client *Client
}

var _ domain.UserAPI = (*userRepository)(nil)

func NewUserRepository(client *Client) *userRepository {
	return &userRepository{client: client}
}

func (r *userRepository) GetProfile(ctx context.Context, id int64) (domain.Profile, error) {
	var res model.Profile
	if err := r.client.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, &res); err != nil {
		return domain.Profile{}, err
	}
	return res.ToDomain(), nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (domain.Profile, error) {
	var res model.Profile
	if err := r.client.do(ctx, http.MethodPut, "/users/me", nil, model.NewProfileUpdateFromDomain(in), &res); err != nil {
		return domain.Profile{}, err
	}
	return res.ToDomain(), nil
}

func (r *userRepository) UpdateTags(ctx context.Context, tags []string) (domain.Profile, error) {
	var res model.Profile
	if err := r.client.do(ctx, http.MethodPut, "/users/me/tags", nil, model.TagsRequest{Tags: tags}, &res); err != nil {
		return domain.Profile{}, err
	}
	return res.ToDomain(), nil
}
