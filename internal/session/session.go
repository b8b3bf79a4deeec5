package session

import (
	"sort"
	"sync"

	"github.com/frahmantamala/access-console/internal"
	"github.com/frahmantamala/access-console/internal/catalog"
	"github.com/frahmantamala/access-console/internal/roster"
)

type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// profileFields maps accepted field names, camelCase and JSON spelling, to
// setters on the draft.
var profileFields = map[string]func(d *roster.UserDraft, v string){
	"name":          func(d *roster.UserDraft, v string) { d.Name = v },
	"email":         func(d *roster.UserDraft, v string) { d.Email = v },
	"title":         func(d *roster.UserDraft, v string) { d.Title = v },
	"company":       func(d *roster.UserDraft, v string) { d.Company = v },
	"quotaEmail":    func(d *roster.UserDraft, v string) { d.QuotaEmail = v },
	"quota_email":   func(d *roster.UserDraft, v string) { d.QuotaEmail = v },
	"computerName":  func(d *roster.UserDraft, v string) { d.ComputerName = v },
	"computer_name": func(d *roster.UserDraft, v string) { d.ComputerName = v },
	"assetCode":     func(d *roster.UserDraft, v string) { d.AssetCode = v },
	"asset_code":    func(d *roster.UserDraft, v string) { d.AssetCode = v },
}

// Session holds the form state for adding one user or editing an existing
// one. All methods are safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	mode    Mode
	userID  int64
	catalog *catalog.Catalog
	profile roster.UserDraft
	perms   *PermissionSet
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	Mode        Mode
	UserID      int64
	Profile     roster.UserDraft
	Permissions []roster.Permission
}

func NewAddSession(c *catalog.Catalog) *Session {
	return &Session{
		mode:    ModeAdd,
		catalog: c,
		profile: roster.UserDraft{Status: roster.StatusActive},
		perms:   NewPermissionSet(),
	}
}

func NewEditSession(c *catalog.Catalog, u *roster.User) *Session {
	profile := u.UserDraft.Clone()
	profile.Permissions = nil
	return &Session{
		mode:    ModeEdit,
		userID:  u.ID,
		catalog: c,
		profile: profile,
		perms:   PermissionSetFrom(u.Permissions),
	}
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Title
}

func (s *Session) SetField(name, value string) error {
	return s.SetFields(map[string]string{name: value})
}

// SetFields applies every field or none: an unknown name rejects the whole
// patch.
func (s *Session) SetFields(fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := profileFields[name]; !ok {
			return internal.NewValidationFieldError(name, "unknown profile field: "+name, internal.ErrCodeInvalidField)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		profileFields[name](&s.profile, fields[name])
	}
	return nil
}

func (s *Session) SetStatus(status roster.Status) error {
	if !status.Valid() {
		return internal.NewValidationFieldError("status",
			"status must be one of: active, blocked", internal.ErrCodeInvalidStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Status = status
	return nil
}

// TogglePermission removes the system when granted, discarding its details,
// and grants it with empty details otherwise.
func (s *Session) TogglePermission(systemID string) error {
	if !s.catalog.Has(systemID) {
		return unknownSystem(systemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.perms.Delete(systemID) {
		s.perms.Set(systemID, "")
	}
	return nil
}

// SetPermissionDetails is a no-op for a system that is not granted.
func (s *Session) SetPermissionDetails(systemID, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.perms.Has(systemID) {
		s.perms.Set(systemID, details)
	}
}

// ApplySuggestions replaces the whole permission set with ids, each with
// empty details. Details of systems that stay selected are reset too.
func (s *Session) ApplySuggestions(ids []string) error {
	for _, id := range ids {
		if !s.catalog.Has(id) {
			return unknownSystem(id)
		}
	}

	next := NewPermissionSet()
	for _, id := range ids {
		next.Set(id, "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.perms = next
	return nil
}

// Commit merges the profile with the permission set. The id is zero in add
// mode.
func (s *Session) Commit() *roster.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.profile.Clone()
	draft.Permissions = s.perms.Permissions()
	return &roster.User{ID: s.userID, UserDraft: draft}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.profile.Clone()
	return Snapshot{
		Mode:        s.mode,
		UserID:      s.userID,
		Profile:     profile,
		Permissions: s.perms.Permissions(),
	}
}

func unknownSystem(id string) error {
	return internal.NewValidationFieldError("system_id",
		"unknown system: "+id, internal.ErrCodeUnknownSystem)
}
