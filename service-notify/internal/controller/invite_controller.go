package controller

import (
	"net/http"
	"net/url"

	"flows-notify/pkg/invite"

	"github.com/gin-gonic/gin"
)

// InviteController resolves invitation links for frontend clients.
type InviteController struct{}

// NewInviteController creates a new invite controller.
func NewInviteController() *InviteController {
	return &InviteController{}
}

type resolveInvitationRequest struct {
	URL           string `json:"url" binding:"required"`
	Authenticated bool   `json:"authenticated"`
}

// ResolveInvitation classifies an invitation link and, when the viewer
// is already signed in, returns the URL with invitation parameters
// stripped.
func (ic *InviteController) ResolveInvitation(c *gin.Context) {
	var req resolveInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "url is required"})
		return
	}

	parsed, err := url.Parse(req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid url"})
		return
	}

	resolution := invite.Resolve(parsed.Query(), req.Authenticated)

	response := gin.H{
		"success":    true,
		"resolution": resolution,
	}
	if resolution.CleanURL {
		response["cleaned_url"] = invite.CleanURL(parsed)
	}

	c.JSON(http.StatusOK, response)
}
