package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"prtracker/internal/app/dto"
	"prtracker/internal/domain/pullrequest"
)

func (h *Handler) PRList(c *gin.Context) {
	prs, err := h.PRSvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	res := make([]dto.PullRequest, 0, len(prs))
	for _, p := range prs {
		res = append(res, toPRDTO(p))
	}

	c.JSON(http.StatusOK, gin.H{"pull_requests": res})
}

func (h *Handler) PRIngest(c *gin.Context) {
	var body struct {
		PRURL     string `json:"pr_url"`
		ProjectID int64  `json:"project_id"`
		Token     string `json:"token"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.PRURL == "" || body.ProjectID == 0 {
		h.badRequest(c, "pr_url and project_id are required")
		return
	}

	pr, err := h.PRSvc.Ingest(c.Request.Context(), body.PRURL, body.ProjectID, body.Token)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"pull_request": toPRDTO(pr)})
}

func (h *Handler) PRGetByGithubID(c *gin.Context) {
	githubID, err := strconv.ParseInt(c.Query("github_id"), 10, 64)
	if err != nil || githubID == 0 {
		h.badRequest(c, "github_id query parameter is required")
		return
	}

	pr, err := h.PRSvc.GetByGithubID(c.Request.Context(), githubID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pull_request": toPRDTO(pr)})
}

func (h *Handler) PRSetStatus(c *gin.Context) {
	var body struct {
		PRID   int64  `json:"pr_id"`
		Status string `json:"status"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.PRID == 0 || body.Status == "" {
		h.badRequest(c, "pr_id and status are required")
		return
	}

	if _, err := h.PRSvc.SetStatus(c.Request.Context(), body.PRID, body.Status); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) PRSetScore(c *gin.Context) {
	var body struct {
		PRID  int64 `json:"pr_id"`
		Score *int  `json:"score"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.PRID == 0 || body.Score == nil {
		h.badRequest(c, "pr_id and score are required")
		return
	}

	if err := h.PRSvc.SetScore(c.Request.Context(), body.PRID, *body.Score); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) PRSetProject(c *gin.Context) {
	var body struct {
		PRID      int64 `json:"pr_id"`
		ProjectID int64 `json:"project_id"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.PRID == 0 || body.ProjectID == 0 {
		h.badRequest(c, "pr_id and project_id are required")
		return
	}

	if err := h.PRSvc.AssignProject(c.Request.Context(), body.PRID, body.ProjectID); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) PRHistory(c *gin.Context) {
	prID, err := strconv.ParseInt(c.Query("pr_id"), 10, 64)
	if err != nil || prID == 0 {
		h.badRequest(c, "pr_id query parameter is required")
		return
	}

	rows, err := h.PRSvc.History(c.Request.Context(), prID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	res := make([]dto.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		res = append(res, dto.HistoryEntry{
			ID:          r.ID,
			PRID:        r.PRID,
			Action:      r.Action,
			PerformedAt: r.PerformedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": res})
}

func toPRDTO(p pullrequest.PullRequest) dto.PullRequest {
	return dto.PullRequest{
		ID:                p.ID,
		GithubID:          p.GithubID,
		PRNumber:          p.Number,
		Title:             p.Title,
		AuthorID:          p.AuthorID,
		ProjectID:         p.ProjectID,
		LastUpdatedAt:     p.LastUpdatedAt,
		Status:            p.Status,
		Branch:            p.Branch,
		Score:             p.Score,
		RepoOwner:         p.RepoOwner,
		RepoName:          p.RepoName,
		AuthorName:        p.AuthorName,
		AuthorAvatar:      p.AuthorAvatar,
		AuthorDisplayName: p.AuthorDisplayName,
		ProjectName:       p.ProjectName,
	}
}
