package admin

import (
	"context"

	"prtracker/internal/domain"
)

// Wiper removes every row from the store, children before parents.
type Wiper interface {
	ClearAll(ctx context.Context) error
}

type Service interface {
	ClearAll(ctx context.Context) error
}

type service struct {
	uow    domain.UnitOfWork
	store  Wiper
	events domain.EventBus
}

func NewService(uow domain.UnitOfWork, store Wiper, events domain.EventBus) Service {
	return &service{
		uow:    uow,
		store:  store,
		events: events,
	}
}

func (s *service) ClearAll(ctx context.Context) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		return s.store.ClearAll(ctx)
	})
	if err != nil {
		return err
	}

	if s.events != nil {
		s.events.Publish(ctx, domain.Event{Type: "store.cleared"})
	}
	return nil
}
