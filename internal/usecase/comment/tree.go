package comment

import (
	"cmp"
	"slices"

	"github.com/Guyuepp/go-community-client/domain"
)

// Organize turns the flat comment list of one post into threads.
// Roots come newest first and replies oldest first at every depth. A reply whose parent
// is not in flat is dropped together with its own replies, the same goes for cycles.
func Organize(flat []domain.FlatComment, tc domain.TreeContext) []*domain.CommentNode {
	nodes := make(map[int64]*domain.CommentNode, len(flat))
	order := make([]*domain.CommentNode, 0, len(flat))
	for i := range flat {
		c := &flat[i]
		if _, ok := nodes[c.ID]; ok {
			continue
		}
		n := newNode(c, tc)
		nodes[c.ID] = n
		order = append(order, n)
	}

	roots := make([]*domain.CommentNode, 0)
	for _, n := range order {
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := nodes[*n.ParentID]
		if !ok || parent == n {
			continue
		}
		parent.Replies = append(parent.Replies, n)
	}

	slices.SortStableFunc(roots, func(a, b *domain.CommentNode) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	for _, root := range roots {
		sortReplies(root)
	}
	return roots
}

func sortReplies(n *domain.CommentNode) {
	slices.SortStableFunc(n.Replies, func(a, b *domain.CommentNode) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	for _, r := range n.Replies {
		sortReplies(r)
	}
}

func newNode(c *domain.FlatComment, tc domain.TreeContext) *domain.CommentNode {
	n := &domain.CommentNode{
		ID:        c.ID,
		UserID:    c.UserID,
		PostID:    c.PostID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Commenter: resolveCommenter(c, tc),
		Replies:   []*domain.CommentNode{},
	}
	if c.ParentID != nil {
		parentID := *c.ParentID
		n.ParentID = &parentID
	}
	return n
}

// resolveCommenter never returns an empty identity.
func resolveCommenter(c *domain.FlatComment, tc domain.TreeContext) domain.UserSummary {
	switch {
	case c.Commenter != nil && !c.Commenter.IsZero():
		return *c.Commenter
	case tc.SessionUser != nil && tc.SessionUser.ID == c.UserID:
		return *tc.SessionUser
	case !tc.PostAuthor.IsZero() && tc.PostAuthor.ID == c.UserID:
		return tc.PostAuthor
	default:
		return domain.PlaceholderUser(c.UserID)
	}
}
