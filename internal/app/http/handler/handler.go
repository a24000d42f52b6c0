package handler

import (
	"go.uber.org/zap"

	"prtracker/internal/domain/admin"
	"prtracker/internal/domain/project"
	"prtracker/internal/domain/pullrequest"
	"prtracker/internal/domain/token"
)

type Handler struct {
	ProjectSvc project.Service
	PRSvc      pullrequest.Service
	TokenSvc   token.Service
	AdminSvc   admin.Service
	Log        *zap.Logger
}

func New(
	projectSvc project.Service,
	prSvc pullrequest.Service,
	tokenSvc token.Service,
	adminSvc admin.Service,
	log *zap.Logger,
) *Handler {
	return &Handler{
		ProjectSvc: projectSvc,
		PRSvc:      prSvc,
		TokenSvc:   tokenSvc,
		AdminSvc:   adminSvc,
		Log:        log,
	}
}
