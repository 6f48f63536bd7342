package response

import "github.com/Guyuepp/go-community-client/domain"

type Post struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	Author       User     `json:"author"`
	Tags         []string `json:"tags,omitempty"`
	LikeCount    int      `json:"like_count"`
	CommentCount int      `json:"comment_count"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func NewPostFromDomain(p *domain.PostSummary) Post {
	return Post{
		ID:           p.ID,
		Title:        p.Title,
		Body:         p.Body,
		Author:       NewUserFromDomain(p.Author),
		Tags:         p.Tags,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}

func NewPostsFromDomain(posts []domain.PostSummary) []Post {
	res := make([]Post, len(posts))
	for i := range posts {
		res[i] = NewPostFromDomain(&posts[i])
	}
	return res
}

type Feed struct {
	AllPosts          []Post            `json:"all_posts"`
	SimilarPosts      []Post            `json:"similar_posts"`
	AllPagination     domain.Pagination `json:"all_posts_pagination"`
	SimilarPagination domain.Pagination `json:"similar_posts_pagination"`
	Stats             domain.FeedStats  `json:"stats"`
	ActiveTab         domain.Tab        `json:"active_tab"`
	Message           string            `json:"message,omitempty"`
	Degraded          bool              `json:"degraded"`
}

func NewFeedFromDomain(b *domain.FeedBundle) Feed {
	return Feed{
		AllPosts:          NewPostsFromDomain(b.AllPosts),
		SimilarPosts:      NewPostsFromDomain(b.SimilarPosts),
		AllPagination:     b.AllPagination,
		SimilarPagination: b.SimilarPagination,
		Stats:             b.Stats,
		ActiveTab:         b.ActiveTab,
		Message:           b.Message,
		Degraded:          b.Degraded,
	}
}

type PostDetail struct {
	Post         Post        `json:"post"`
	Comments     []*Comment  `json:"comments"`
	Interaction  Interaction `json:"interaction"`
	CommentCount int         `json:"comment_count"`
}

func NewPostDetailFromDomain(v *domain.PostView) PostDetail {
	return PostDetail{
		Post:         NewPostFromDomain(&v.Post),
		Comments:     NewCommentTreeFromDomain(v.Comments),
		Interaction:  NewInteraction(v.Post.ID, v.Interaction),
		CommentCount: v.CommentCount,
	}
}
