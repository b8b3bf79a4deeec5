package roster

import "errors"

type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusBlocked
}

// Permission grants a user access to one catalog system.
type Permission struct {
	SystemID string `json:"system_id"`
	Details  string `json:"details"`
}

// UserDraft is a user record before the store has assigned an id.
type UserDraft struct {
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Title        string       `json:"title"`
	Company      string       `json:"company"`
	Status       Status       `json:"status"`
	Permissions  []Permission `json:"permissions"`
	QuotaEmail   string       `json:"quota_email"`
	ComputerName string       `json:"computer_name"`
	AssetCode    string       `json:"asset_code"`
}

type User struct {
	ID int64 `json:"id"`
	UserDraft
}

var ErrNotFound = errors.New("user not found")

// Clone copies the draft including its permission list.
func (d UserDraft) Clone() UserDraft {
	cp := d
	if d.Permissions != nil {
		cp.Permissions = make([]Permission, len(d.Permissions))
		copy(cp.Permissions, d.Permissions)
	}
	return cp
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	return &User{ID: u.ID, UserDraft: u.UserDraft.Clone()}
}

func (d UserDraft) SystemIDs() []string {
	ids := make([]string, len(d.Permissions))
	for i, p := range d.Permissions {
		ids[i] = p.SystemID
	}
	return ids
}

func (d UserDraft) HasPermission(systemID string) bool {
	for _, p := range d.Permissions {
		if p.SystemID == systemID {
			return true
		}
	}
	return false
}
