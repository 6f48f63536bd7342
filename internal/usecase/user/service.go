package user

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-community-client/domain"
)

const (
	maxTags   = 20
	maxTagLen = 32
)

type Service struct {
	userAPI  domain.UserAPI
	cache    domain.Cache[domain.Profile]
	observer domain.MutationObserver
	validate *validator.Validate
}

var _ domain.UserUsecase = (*Service)(nil)

func NewService(u domain.UserAPI, cache domain.Cache[domain.Profile], observer domain.MutationObserver) *Service {
	return &Service{
		userAPI:  u,
		cache:    cache,
		observer: observer,
		validate: validator.New(),
	}
}

func (s *Service) GetProfile(ctx context.Context, id int64) (domain.Profile, error) {
	if id <= 0 {
		return domain.Profile{}, domain.ErrBadParamInput
	}
	key := domain.UserProfileKey(id)
	profile, err := s.cache.Get(ctx, key)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("profile cache get %s: %v", key, err)
	}

	profile, err = s.userAPI.GetProfile(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := s.cache.Set(ctx, key, profile); err != nil {
		logrus.Warnf("profile cache set %s: %v", key, err)
	}
	return profile, nil
}

func (s *Service) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (domain.Profile, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Bio = strings.TrimSpace(in.Bio)
	if err := s.validate.Struct(in); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %v", domain.ErrBadParamInput, err)
	}

	profile, err := s.userAPI.UpdateProfile(ctx, in)
	if err != nil {
		return domain.Profile{}, err
	}
	s.observer.AfterMutation(ctx, domain.MutationProfileUpdate)
	return profile, nil
}

// UpdateTags replaces the current user's interest tags, which drive the similar feed.
func (s *Service) UpdateTags(ctx context.Context, tags []string) (domain.Profile, error) {
	tags = normalizeTags(tags)
	if err := s.validate.Var(tags, fmt.Sprintf("max=%d,dive,max=%d", maxTags, maxTagLen)); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %v", domain.ErrBadParamInput, err)
	}

	profile, err := s.userAPI.UpdateTags(ctx, tags)
	if err != nil {
		return domain.Profile{}, err
	}
	s.observer.AfterMutation(ctx, domain.MutationTagsUpdate)
	return profile, nil
}

// normalizeTags lowercases, trims and de-duplicates, keeping first-seen order.
func normalizeTags(tags []string) []string {
	res := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || slices.Contains(res, t) {
			continue
		}
		res = append(res, t)
	}
	return res
}
