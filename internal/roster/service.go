package roster

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/access-console/internal"
	"github.com/frahmantamala/access-console/internal/catalog"
	"github.com/frahmantamala/access-console/internal/core/common/validation"
	"github.com/frahmantamala/access-console/internal/core/events"
)

type Service struct {
	store   Store
	catalog *catalog.Catalog
	events  events.Publisher
	logger  *slog.Logger
}

func NewService(store Store, c *catalog.Catalog, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		catalog: c,
		events:  publisher,
		logger:  logger,
	}
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Create validates draft against the catalog and appends it to the roster.
func (s *Service) Create(ctx context.Context, draft UserDraft) (*User, error) {
	if appErr := s.Validate(draft); appErr != nil {
		return nil, appErr
	}

	u, err := s.store.Add(ctx, draft)
	if err != nil {
		s.logger.Error("failed to add user", "error", err)
		return nil, internal.NewInternalError("failed to add user", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "permissions", len(u.Permissions))
	s.publish(ctx, events.NewUserCreatedEvent(u.ID, string(u.Status), u.SystemIDs()))
	return u, nil
}

// Replace overwrites the whole record with the same id.
func (s *Service) Replace(ctx context.Context, user *User) (*User, error) {
	if appErr := s.Validate(user.UserDraft); appErr != nil {
		return nil, appErr
	}

	found, err := s.store.Update(ctx, user)
	if err != nil {
		s.logger.Error("failed to update user", "user_id", user.ID, "error", err)
		return nil, internal.NewInternalError("failed to update user", err)
	}
	if !found {
		s.logger.Warn("update targeted unknown user", "user_id", user.ID)
		return nil, internal.ErrUserNotFound
	}

	s.logger.Info("user updated", "user_id", user.ID, "permissions", len(user.Permissions))
	s.publish(ctx, events.NewUserUpdatedEvent(user.ID, string(user.Status), user.SystemIDs()))
	return user.Clone(), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	found, err := s.store.Remove(ctx, id)
	if err != nil {
		s.logger.Error("failed to remove user", "user_id", id, "error", err)
		return internal.NewInternalError("failed to remove user", err)
	}
	if !found {
		s.logger.Warn("delete targeted unknown user", "user_id", id)
		return internal.ErrUserNotFound
	}

	s.logger.Info("user deleted", "user_id", id)
	s.publish(ctx, events.NewUserDeletedEvent(id))
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	u, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, internal.ErrUserNotFound
	}
	if err != nil {
		s.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get user", err)
	}
	return u, nil
}

// Search returns the roster narrowed by query (see Filter).
func (s *Service) Search(ctx context.Context, query string) ([]*User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return Filter(users, query), nil
}

// Seed adds drafts in order, used to populate a fresh roster at startup.
// Grants on systems the catalog does not carry are dropped so a narrowed
// catalog can still be seeded with the demo users.
func (s *Service) Seed(ctx context.Context, drafts []UserDraft) error {
	for _, d := range drafts {
		d = d.Clone()
		kept := d.Permissions[:0]
		for _, p := range d.Permissions {
			if !s.catalog.Has(p.SystemID) {
				s.logger.Warn("seed grant dropped, system not in catalog", "user", d.Name, "system_id", p.SystemID)
				continue
			}
			kept = append(kept, p)
		}
		d.Permissions = kept

		if _, err := s.Create(ctx, d); err != nil {
			return err
		}
	}
	s.logger.Info("roster seeded", "count", len(drafts))
	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Validate checks profile fields and that every grant references a distinct
// catalog system.
func (s *Service) Validate(d UserDraft) *internal.AppError {
	v := validation.NewValidator()
	v.Field("status", string(d.Status)).
		OneOf(internal.ErrCodeInvalidStatus, string(StatusActive), string(StatusBlocked))
	v.Field("email", d.Email).
		MaxLength(254)
	v.Field("permissions", d.Permissions).
		Custom(s.permissionsValidator)
	return v.Validate()
}

func (s *Service) permissionsValidator(value interface{}) *internal.AppError {
	perms, _ := value.([]Permission)
	seen := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		if !s.catalog.Has(p.SystemID) {
			return internal.NewValidationFieldError("permissions",
				"unknown system: "+p.SystemID, internal.ErrCodeUnknownSystem)
		}
		if _, dup := seen[p.SystemID]; dup {
			return internal.NewValidationFieldError("permissions",
				"duplicate system: "+p.SystemID, internal.ErrCodeDuplicateSystem)
		}
		seen[p.SystemID] = struct{}{}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish event", "event_type", e.EventType(), "error", err)
	}
}
