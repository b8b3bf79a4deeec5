package roster

import "github.com/frahmantamala/access-console/internal/catalog"

type GrantResponse struct {
	SystemID   string `json:"system_id"`
	SystemName string `json:"system_name"`
	Details    string `json:"details"`
}

type UserResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Title        string          `json:"title"`
	Company      string          `json:"company"`
	Status       Status          `json:"status"`
	Permissions  []GrantResponse `json:"permissions"`
	QuotaEmail   string          `json:"quota_email"`
	ComputerName string          `json:"computer_name"`
	AssetCode    string          `json:"asset_code"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// ToResponse resolves system names; grants whose system is not in the
// catalog are left out of the view.
func ToResponse(u *User, c *catalog.Catalog) UserResponse {
	grants := make([]GrantResponse, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		system, ok := c.Get(p.SystemID)
		if !ok {
			continue
		}
		grants = append(grants, GrantResponse{
			SystemID:   p.SystemID,
			SystemName: system.Name,
			Details:    p.Details,
		})
	}
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Title:        u.Title,
		Company:      u.Company,
		Status:       u.Status,
		Permissions:  grants,
		QuotaEmail:   u.QuotaEmail,
		ComputerName: u.ComputerName,
		AssetCode:    u.AssetCode,
	}
}

func ToResponses(users []*User, c *catalog.Catalog) UsersResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = ToResponse(u, c)
	}
	return UsersResponse{Users: out, Total: len(out)}
}
