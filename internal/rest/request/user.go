package request

import "github.com/Guyuepp/go-community-client/domain"

type Profile struct {
	DisplayName string `json:"display_name" binding:"required"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
}

func (r *Profile) ToDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		DisplayName: r.DisplayName,
		Bio:         r.Bio,
		AvatarURL:   r.AvatarURL,
	}
}

type Tags struct {
	Tags []string `json:"tags" binding:"required"`
}

type LikeState struct {
	IsLiked   bool `json:"is_liked"`
	LikeCount int  `json:"like_count" binding:"min=0"`
}
