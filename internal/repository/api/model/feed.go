package model

import (
	"bytes"
	"encoding/json"

	"github.com/Guyuepp/go-community-client/domain"
)

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// ToDomain fills what the API left out from the requested page and count.
func (m Pagination) ToDomain(page, pageSize, count int) domain.Pagination {
	if m.Page == 0 && m.TotalPages == 0 && m.TotalItems == 0 {
		return domain.NewPagination(page, pageSize, count)
	}
	if m.Page == 0 {
		m.Page = page
	}
	if m.PageSize == 0 {
		m.PageSize = pageSize
	}
	return domain.Pagination{
		Page:       m.Page,
		PageSize:   m.PageSize,
		TotalPages: m.TotalPages,
		TotalItems: m.TotalItems,
	}.Normalize()
}

type Stats struct {
	TotalPosts   int `json:"totalPosts"`
	SimilarPosts int `json:"similarPosts"`
	TotalUsers   int `json:"totalUsers"`
	MatchingTags int `json:"matchingTags"`
}

func (m Stats) ToDomain() domain.FeedStats {
	return domain.FeedStats{
		TotalPosts:   m.TotalPosts,
		SimilarPosts: m.SimilarPosts,
		TotalUsers:   m.TotalUsers,
		MatchingTags: m.MatchingTags,
	}
}

// StatsEnvelope accepts {"stats": {...}} as well as bare stats.
type StatsEnvelope struct {
	Stats Stats
}

func (e *StatsEnvelope) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(objectPayload(data, "stats"), &e.Stats)
}

type BatchFeedResponse struct {
	AllPosts               PostList   `json:"allPosts"`
	SimilarPosts           PostList   `json:"similarPosts"`
	AllPostsPagination     Pagination `json:"allPostsPagination"`
	SimilarPostsPagination Pagination `json:"similarPostsPagination"`
	Stats                  Stats      `json:"stats"`
	Message                string     `json:"message"`
}

func (m *BatchFeedResponse) ToDomain(page, pageSize int) domain.BatchFeed {
	return domain.BatchFeed{
		AllPosts:          m.AllPosts.ToDomain(),
		SimilarPosts:      m.SimilarPosts.ToDomain(),
		AllPagination:     m.AllPostsPagination.ToDomain(page, pageSize, len(m.AllPosts)),
		SimilarPagination: m.SimilarPostsPagination.ToDomain(page, pageSize, len(m.SimilarPosts)),
		Stats:             m.Stats.ToDomain(),
		Message:           m.Message,
	}
}

type FeedPageResponse struct {
	Posts      PostList   `json:"posts"`
	Pagination Pagination `json:"pagination"`
	Message    string     `json:"message"`
}

// UnmarshalJSON also accepts a bare array of posts.
func (m *FeedPageResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		*m = FeedPageResponse{}
		return json.Unmarshal(trimmed, &m.Posts)
	}
	type plain FeedPageResponse
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	if p.Posts == nil {
		// {"items": [...], "pagination": ...}
		var alt struct {
			Items PostList `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &alt); err == nil {
			p.Posts = alt.Items
		}
	}
	*m = FeedPageResponse(p)
	return nil
}

func (m *FeedPageResponse) ToDomain(page, pageSize int) domain.FeedPage {
	return domain.FeedPage{
		Posts:      m.Posts.ToDomain(),
		Pagination: m.Pagination.ToDomain(page, pageSize, len(m.Posts)),
		Message:    m.Message,
	}
}

type LikeStatusResponse struct {
	IsLiked   bool `json:"isLiked"`
	LikeCount int  `json:"likeCount"`
}

func (m LikeStatusResponse) ToDomain() domain.LikeStatus {
	return domain.LikeStatus{IsLiked: m.IsLiked, LikeCount: max(m.LikeCount, 0)}
}
