package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prtracker/internal/app/http/handler"
	"prtracker/internal/app/http/middleware"
)

func NewRouter(h *handler.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
	)

	r.GET("/health", h.Health)

	r.GET("/projects", h.ProjectList)
	r.POST("/project/add", h.ProjectAdd)
	r.POST("/project/update", h.ProjectUpdate)
	r.POST("/project/delete", h.ProjectDelete)
	r.GET("/project/get", h.ProjectGet)

	r.GET("/pullRequests", h.PRList)
	r.POST("/pullRequest/ingest", h.PRIngest)
	r.GET("/pullRequest/byGithubID", h.PRGetByGithubID)
	r.POST("/pullRequest/setStatus", h.PRSetStatus)
	r.POST("/pullRequest/setScore", h.PRSetScore)
	r.POST("/pullRequest/setProject", h.PRSetProject)
	r.GET("/pullRequest/history", h.PRHistory)

	r.POST("/token/save", h.TokenSave)
	r.GET("/token", h.TokenGet)
	r.POST("/token/delete", h.TokenDelete)
	r.POST("/token/verify", h.TokenVerify)
	r.POST("/token/test", h.TokenTest)

	r.POST("/admin/clearAll", h.AdminClearAll)

	return r
}
