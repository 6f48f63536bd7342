package comment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/go-community-client/domain"
	"github.com/Guyuepp/go-community-client/internal/usecase/comment"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func flat(id, userID int64, parent int64, minutes int) domain.FlatComment {
	c := domain.FlatComment{
		ID:        id,
		UserID:    userID,
		PostID:    1,
		Body:      "comment",
		CreatedAt: base.Add(time.Duration(minutes) * time.Minute),
	}
	if parent != 0 {
		c.ParentID = &parent
	}
	return c
}

func ids(nodes []*domain.CommentNode) []int64 {
	res := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, n.ID)
	}
	return res
}

func TestOrganize_RootsNewestFirstRepliesOldestFirst(t *testing.T) {
	tree := comment.Organize([]domain.FlatComment{
		flat(1, 10, 0, 0),
		flat(2, 10, 0, 5),
		flat(3, 11, 1, 3),
		flat(4, 11, 1, 1),
		flat(5, 12, 4, 2),
	}, domain.TreeContext{})

	require.Equal(t, []int64{2, 1}, ids(tree))
	assert.Equal(t, []int64{4, 3}, ids(tree[1].Replies))
	assert.Equal(t, []int64{5}, ids(tree[1].Replies[0].Replies))
	assert.Empty(t, tree[0].Replies)
}

func TestOrganize_DropsOrphanSubtree(t *testing.T) {
	tree := comment.Organize([]domain.FlatComment{
		flat(1, 10, 0, 0),
		flat(2, 10, 99, 1),
		flat(3, 10, 2, 2),
	}, domain.TreeContext{})

	require.Equal(t, []int64{1}, ids(tree))
	assert.Empty(t, tree[0].Replies)
}

func TestOrganize_DropsCycles(t *testing.T) {
	tree := comment.Organize([]domain.FlatComment{
		flat(1, 10, 0, 0),
		flat(2, 10, 3, 1),
		flat(3, 10, 2, 2),
		flat(4, 10, 4, 3),
	}, domain.TreeContext{})

	assert.Equal(t, []int64{1}, ids(tree))
}

func TestOrganize_FirstDuplicateWins(t *testing.T) {
	first := flat(1, 10, 0, 0)
	first.Body = "first"
	second := flat(1, 10, 0, 0)
	second.Body = "second"

	tree := comment.Organize([]domain.FlatComment{first, second}, domain.TreeContext{})

	require.Len(t, tree, 1)
	assert.Equal(t, "first", tree[0].Body)
}

func TestOrganize_TiesBrokenByID(t *testing.T) {
	tree := comment.Organize([]domain.FlatComment{
		flat(7, 10, 0, 0),
		flat(3, 10, 0, 0),
		flat(5, 10, 0, 0),
	}, domain.TreeContext{})

	assert.Equal(t, []int64{3, 5, 7}, ids(tree))
}

func TestOrganize_CommenterPrecedence(t *testing.T) {
	embedded := &domain.UserSummary{ID: 20, Username: "embedded"}
	session := &domain.UserSummary{ID: 21, Username: "me"}
	author := domain.UserSummary{ID: 22, Username: "author"}

	withEmbedded := flat(1, 21, 0, 4)
	withEmbedded.Commenter = embedded

	tree := comment.Organize([]domain.FlatComment{
		withEmbedded,
		flat(2, 21, 0, 3),
		flat(3, 22, 0, 2),
		flat(4, 23, 0, 1),
	}, domain.TreeContext{SessionUser: session, PostAuthor: author})

	require.Len(t, tree, 4)
	assert.Equal(t, "embedded", tree[0].Commenter.Username)
	assert.Equal(t, "me", tree[1].Commenter.Username)
	assert.Equal(t, "author", tree[2].Commenter.Username)
	assert.Equal(t, domain.PlaceholderUser(23), tree[3].Commenter)
}

func TestOrganize_EmptyInput(t *testing.T) {
	tree := comment.Organize(nil, domain.TreeContext{})
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestOrganize_DoesNotAliasInput(t *testing.T) {
	in := []domain.FlatComment{flat(1, 10, 0, 0), flat(2, 10, 1, 1)}

	tree := comment.Organize(in, domain.TreeContext{})
	*tree[0].Replies[0].ParentID = 42

	assert.Equal(t, int64(1), *in[1].ParentID)
}
