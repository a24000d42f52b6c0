package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prtracker/internal/app/dto"
	"prtracker/internal/domain/token"
)

func (h *Handler) TokenSave(c *gin.Context) {
	var body struct {
		Token string `json:"token"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.Token == "" {
		h.badRequest(c, "token is required")
		return
	}

	if err := h.TokenSvc.Save(c.Request.Context(), body.Token); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) TokenGet(c *gin.Context) {
	tok, ok, err := h.TokenSvc.Get(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	if !ok {
		c.JSON(http.StatusOK, gin.H{"token": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

func (h *Handler) TokenDelete(c *gin.Context) {
	if err := h.TokenSvc.Delete(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) TokenVerify(c *gin.Context) {
	var body struct {
		Token string `json:"token"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.Token == "" {
		h.badRequest(c, "token is required")
		return
	}

	info, err := h.TokenSvc.Verify(c.Request.Context(), body.Token)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTokenInfoDTO(info))
}

func (h *Handler) TokenTest(c *gin.Context) {
	info, err := h.TokenSvc.TestStored(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTokenInfoDTO(info))
}

func toTokenInfoDTO(info token.Info) dto.TokenInfo {
	res := dto.TokenInfo{
		Valid:              info.Valid,
		Scopes:             info.Scopes,
		RateLimitRemaining: info.RateLimitRemaining,
		RateLimitTotal:     info.RateLimitTotal,
	}
	if info.User != nil {
		res.User = &dto.GitHubUser{
			Login:     info.User.Login,
			ID:        info.User.ID,
			AvatarURL: info.User.AvatarURL,
			Name:      info.User.Name,
			Email:     info.User.Email,
			Company:   info.User.Company,
		}
	}
	return res
}
