package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-community-client/internal/rest/request"
	"github.com/Guyuepp/go-community-client/internal/rest/response"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// FetchByPost answers the thread the detail view shows, with resolved commenters.
func (h *CommentHandler) FetchByPost(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	postID, ok := int64Param(c, "id")
	if !ok {
		return
	}

	view, err := s.Posts.GetDetail(c.Request.Context(), postID)
	if err != nil {
		abortWithError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": response.NewCommentTreeFromDomain(view.Comments), "comment_count": view.CommentCount})
}

func (h *CommentHandler) Create(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	postID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	created, err := s.Comments.Create(c.Request.Context(), req.ToNewComment(postID))
	if err != nil {
		abortWithError(c, err, "")
		return
	}
	res := gin.H{"comment": response.NewFlatCommentFromDomain(&created)}
	if count, ok := s.Interactions.CommentCount(postID); ok {
		res["comment_count"] = count
	}
	c.JSON(http.StatusCreated, res)
}

func (h *CommentHandler) Update(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	updated, err := s.Comments.Edit(c.Request.Context(), req.PostID, req.ToEdit(id))
	if err != nil {
		abortWithError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": response.NewFlatCommentFromDomain(&updated)})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	postID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	commentID, ok := int64Param(c, "commentID")
	if !ok {
		return
	}

	if err := s.Comments.Delete(c.Request.Context(), postID, commentID); err != nil {
		abortWithError(c, err, "")
		return
	}
	res := gin.H{"message": "Comment deleted successfully"}
	if count, ok := s.Interactions.CommentCount(postID); ok {
		res["comment_count"] = count
	}
	c.JSON(http.StatusOK, res)
}
