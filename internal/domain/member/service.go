package member

import (
	"context"
	"errors"

	"prtracker/internal/domain"
)

type Service interface {
	GetOrCreate(ctx context.Context, username string) (Member, error)
	Ensure(ctx context.Context, p Profile) (Member, error)
}

type service struct {
	uow     domain.UnitOfWork
	members Repository
	events  domain.EventBus
}

func NewService(uow domain.UnitOfWork, members Repository, events domain.EventBus) Service {
	return &service{
		uow:     uow,
		members: members,
		events:  events,
	}
}

func (s *service) GetOrCreate(ctx context.Context, username string) (Member, error) {
	var res Member

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.members.GetByUsername(ctx, username)
		if err == nil {
			res = existing
			return nil
		}
		if !isNotFound(err) {
			return err
		}

		created, err := s.members.Insert(ctx, Member{Username: username})
		if err != nil {
			return err
		}
		res = created

		if s.events != nil {
			s.events.Publish(ctx, domain.Event{
				Type:    "member.created",
				Payload: map[string]any{"member_id": created.ID, "username": username},
			})
		}
		return nil
	})

	return res, err
}

// Ensure creates the member for an ingested author, or refreshes the avatar
// and display name when the GitHub profile changed.
func (s *service) Ensure(ctx context.Context, p Profile) (Member, error) {
	var res Member

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.members.GetByUsername(ctx, p.Username)
		if err != nil {
			if !isNotFound(err) {
				return err
			}

			created, err := s.members.Insert(ctx, Member{
				Username:    p.Username,
				AvatarURL:   p.AvatarURL,
				DisplayName: p.DisplayName,
			})
			if err != nil {
				return err
			}
			res = created

			if s.events != nil {
				s.events.Publish(ctx, domain.Event{
					Type:    "member.created",
					Payload: map[string]any{"member_id": created.ID, "username": p.Username},
				})
			}
			return nil
		}

		if profileChanged(existing, p) {
			if err := s.members.UpdateProfile(ctx, existing.ID, p.AvatarURL, p.DisplayName); err != nil {
				return err
			}
			existing.AvatarURL = p.AvatarURL
			existing.DisplayName = p.DisplayName
		}
		res = existing
		return nil
	})

	return res, err
}

func profileChanged(m Member, p Profile) bool {
	return !strPtrEq(m.AvatarURL, p.AvatarURL) || !strPtrEq(m.DisplayName, p.DisplayName)
}

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func isNotFound(err error) bool {
	var de *domain.DomainError
	return errors.As(err, &de) && de.Code == domain.ErrorCodeNotFound
}
