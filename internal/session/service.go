package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/frahmantamala/access-console/internal"
	"github.com/frahmantamala/access-console/internal/catalog"
	"github.com/frahmantamala/access-console/internal/core/events"
	"github.com/frahmantamala/access-console/internal/roster"
	"github.com/frahmantamala/access-console/pkg/logger"
)

// Suggester turns a job title into catalog system ids.
type Suggester interface {
	Suggest(ctx context.Context, title string, systems []catalog.System) ([]string, error)
}

// RosterAPI is the part of the roster service a session commits into.
type RosterAPI interface {
	Get(ctx context.Context, id int64) (*roster.User, error)
	Create(ctx context.Context, draft roster.UserDraft) (*roster.User, error)
	Replace(ctx context.Context, user *roster.User) (*roster.User, error)
}

type Service struct {
	registry   *Registry
	roster     RosterAPI
	catalog    *catalog.Catalog
	suggester  Suggester
	events     events.Publisher
	applyEmpty bool
	logger     *slog.Logger
}

type Options struct {
	// ApplyEmpty clears the permission set when a suggestion comes back
	// empty. Off by default: an empty answer leaves the set untouched.
	ApplyEmpty bool
}

func NewService(registry *Registry, rosterSvc RosterAPI, c *catalog.Catalog, suggester Suggester,
	publisher events.Publisher, opts Options, logger *slog.Logger) *Service {
	return &Service{
		registry:   registry,
		roster:     rosterSvc,
		catalog:    c,
		suggester:  suggester,
		events:     publisher,
		applyEmpty: opts.ApplyEmpty,
		logger:     logger,
	}
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Open starts a session. In edit mode it is seeded from the stored user.
func (s *Service) Open(ctx context.Context, mode Mode, userID int64) (string, Snapshot, error) {
	var sess *Session
	switch mode {
	case ModeAdd:
		sess = NewAddSession(s.catalog)
	case ModeEdit:
		u, err := s.roster.Get(ctx, userID)
		if err != nil {
			return "", Snapshot{}, err
		}
		sess = NewEditSession(s.catalog, u)
	default:
		return "", Snapshot{}, internal.NewValidationFieldError("mode",
			"mode must be one of: add, edit", internal.ErrCodeInvalidMode)
	}

	id := s.registry.Open(sess)
	s.log(ctx).Info("edit session opened", "session_id", id, "mode", mode, "user_id", userID)
	return id, sess.Snapshot(), nil
}

func (s *Service) Get(_ context.Context, id string) (Snapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *Service) SetFields(_ context.Context, id string, fields map[string]string) (Snapshot, error) {
	return s.mutate(id, func(sess *Session) error {
		return sess.SetFields(fields)
	})
}

func (s *Service) SetStatus(_ context.Context, id string, status roster.Status) (Snapshot, error) {
	return s.mutate(id, func(sess *Session) error {
		return sess.SetStatus(status)
	})
}

func (s *Service) TogglePermission(_ context.Context, id, systemID string) (Snapshot, error) {
	return s.mutate(id, func(sess *Session) error {
		return sess.TogglePermission(systemID)
	})
}

func (s *Service) SetPermissionDetails(_ context.Context, id, systemID, details string) (Snapshot, error) {
	return s.mutate(id, func(sess *Session) error {
		sess.SetPermissionDetails(systemID, details)
		return nil
	})
}

func (s *Service) ApplySuggestions(_ context.Context, id string, systemIDs []string) (Snapshot, error) {
	return s.mutate(id, func(sess *Session) error {
		return sess.ApplySuggestions(systemIDs)
	})
}

// Suggest asks the suggester for systems matching the session's title and
// applies the answer. The session is not locked while the model runs, so
// overlapping calls each apply their own result in completion order. An
// answer arriving after the session was closed is dropped.
func (s *Service) Suggest(ctx context.Context, id string) (Snapshot, []string, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Snapshot{}, nil, err
	}

	title := strings.TrimSpace(sess.Title())
	if title == "" {
		return Snapshot{}, nil, internal.ErrTitleRequired
	}

	log := s.log(ctx).With("session_id", id)
	ids, err := s.suggester.Suggest(ctx, title, s.catalog.List())
	if err != nil {
		log.Error("suggestion failed", "title", title, "error", err)
		s.publish(ctx, events.NewSuggestionFailedEvent(id, title))
		if errors.Is(err, internal.ErrSuggestionFailed) {
			return Snapshot{}, nil, err
		}
		return Snapshot{}, nil, internal.ErrSuggestionFailed.WithCause(err)
	}

	// the session may have been saved, discarded or evicted during the call
	if !s.registry.Contains(id, sess) {
		log.Warn("session closed while suggestion was running", "title", title)
		return Snapshot{}, nil, internal.ErrSessionNotFound
	}

	if len(ids) > 0 || s.applyEmpty {
		if err := sess.ApplySuggestions(ids); err != nil {
			return Snapshot{}, nil, err
		}
	} else {
		log.Info("empty suggestion left permissions untouched", "title", title)
	}

	log.Info("suggestion applied", "title", title, "systems", len(ids))
	s.publish(ctx, events.NewSuggestionCompletedEvent(id, title, ids))
	return sess.Snapshot(), ids, nil
}

// Save commits the session into the roster and closes it. A session whose
// commit is rejected stays open so the caller can correct it.
func (s *Service) Save(ctx context.Context, id string) (*roster.User, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	user := sess.Commit()
	var saved *roster.User
	if sess.Mode() == ModeAdd {
		saved, err = s.roster.Create(ctx, user.UserDraft)
	} else {
		saved, err = s.roster.Replace(ctx, user)
	}
	if err != nil {
		return nil, err
	}

	s.registry.Close(id)
	s.log(ctx).Info("edit session saved", "session_id", id, "user_id", saved.ID)
	return saved, nil
}

func (s *Service) Discard(ctx context.Context, id string) error {
	if !s.registry.Close(id) {
		return internal.ErrSessionNotFound
	}
	s.log(ctx).Info("edit session discarded", "session_id", id)
	return nil
}

func (s *Service) lookup(id string) (*Session, error) {
	sess, ok := s.registry.Get(id)
	if !ok {
		return nil, internal.ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service) mutate(id string, fn func(*Session) error) (Snapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	if err := fn(sess); err != nil {
		return Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logger.From(ctx)
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, e); err != nil {
		s.log(ctx).Warn("failed to publish event", "event_type", e.EventType(), "error", err)
	}
}
