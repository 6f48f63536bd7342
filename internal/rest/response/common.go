package response

import (
	"time"

	"github.com/Guyuepp/go-community-client/domain"
)

const DateTimeFormat = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeFormat)
}

type User struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	AvatarURL   string   `json:"avatar_url"`
	Tags        []string `json:"tags,omitempty"`
}

func NewUserFromDomain(u domain.UserSummary) User {
	return User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Tags:        u.Tags,
	}
}

type Profile struct {
	User
	Bio        string `json:"bio"`
	PostCount  int    `json:"post_count"`
	GroupCount int    `json:"group_count"`
}

func NewProfileFromDomain(p domain.Profile) Profile {
	return Profile{
		User:       NewUserFromDomain(p.UserSummary),
		Bio:        p.Bio,
		PostCount:  p.PostCount,
		GroupCount: p.GroupCount,
	}
}

type Interaction struct {
	PostID       int64 `json:"post_id"`
	IsLiked      bool  `json:"is_liked"`
	LikeCount    int   `json:"like_count"`
	IsLoading    bool  `json:"is_loading"`
	CommentCount *int  `json:"comment_count,omitempty"`
}

func NewInteraction(postID int64, s domain.InteractionState) Interaction {
	return Interaction{
		PostID:    postID,
		IsLiked:   s.IsLiked,
		LikeCount: s.LikeCount,
		IsLoading: s.IsLoading,
	}
}
