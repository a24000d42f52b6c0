package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"prtracker/internal/app/dto"
	"prtracker/internal/domain/project"
)

func (h *Handler) ProjectList(c *gin.Context) {
	projects, err := h.ProjectSvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	res := make([]dto.Project, 0, len(projects))
	for _, p := range projects {
		res = append(res, toProjectDTO(p))
	}

	c.JSON(http.StatusOK, gin.H{"projects": res})
}

func (h *Handler) ProjectAdd(c *gin.Context) {
	var body struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.Name == "" {
		h.badRequest(c, "name is required")
		return
	}

	p, err := h.ProjectSvc.Create(c.Request.Context(), body.Name, body.Description)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": toProjectDTO(p)})
}

func (h *Handler) ProjectUpdate(c *gin.Context) {
	var body struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.ID == 0 || body.Name == "" {
		h.badRequest(c, "id and name are required")
		return
	}

	p, err := h.ProjectSvc.Update(c.Request.Context(), body.ID, body.Name, body.Description)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": toProjectDTO(p)})
}

func (h *Handler) ProjectDelete(c *gin.Context) {
	var body struct {
		ID int64 `json:"id"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.ID == 0 {
		h.badRequest(c, "id is required")
		return
	}

	if err := h.ProjectSvc.Delete(c.Request.Context(), body.ID); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ProjectGet(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id == 0 {
		h.badRequest(c, "id query parameter is required")
		return
	}

	p, err := h.ProjectSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": toProjectDTO(p)})
}

func toProjectDTO(p project.Project) dto.Project {
	return dto.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
