package session

import "github.com/frahmantamala/access-console/internal/roster"

// PermissionSet is an insertion-ordered map from system id to details.
// Setting a key that is already present keeps its position; deleting a key
// and setting it again moves it to the end.
type PermissionSet struct {
	order   []string
	details map[string]string
}

func NewPermissionSet() *PermissionSet {
	return &PermissionSet{details: make(map[string]string)}
}

// PermissionSetFrom seeds a set from an ordered grant list.
func PermissionSetFrom(perms []roster.Permission) *PermissionSet {
	ps := NewPermissionSet()
	for _, p := range perms {
		ps.Set(p.SystemID, p.Details)
	}
	return ps
}

func (ps *PermissionSet) Has(systemID string) bool {
	_, ok := ps.details[systemID]
	return ok
}

func (ps *PermissionSet) Get(systemID string) (string, bool) {
	d, ok := ps.details[systemID]
	return d, ok
}

func (ps *PermissionSet) Set(systemID, details string) {
	if _, ok := ps.details[systemID]; !ok {
		ps.order = append(ps.order, systemID)
	}
	ps.details[systemID] = details
}

func (ps *PermissionSet) Delete(systemID string) bool {
	if _, ok := ps.details[systemID]; !ok {
		return false
	}
	delete(ps.details, systemID)
	for i, id := range ps.order {
		if id == systemID {
			ps.order = append(ps.order[:i], ps.order[i+1:]...)
			break
		}
	}
	return true
}

func (ps *PermissionSet) Len() int {
	return len(ps.order)
}

func (ps *PermissionSet) IDs() []string {
	ids := make([]string, len(ps.order))
	copy(ids, ps.order)
	return ids
}

// Permissions lists the entries in iteration order.
func (ps *PermissionSet) Permissions() []roster.Permission {
	perms := make([]roster.Permission, len(ps.order))
	for i, id := range ps.order {
		perms[i] = roster.Permission{SystemID: id, Details: ps.details[id]}
	}
	return perms
}
