package catalog

import "github.com/frahmantamala/access-console/internal"

// DefaultSystems is the catalog shipped with the console.
func DefaultSystems() []System {
	return []System{
		{ID: "ad", Name: "Active Directory", Description: "User authentication and authorization."},
		{ID: "eservice", Name: "E-Service", Description: "Customer support and ticketing system."},
		{ID: "exact", Name: "Exact ERP", Description: "Financial and resource planning."},
		{ID: "mail", Name: "Email Account", Description: "Standard corporate email access."},
		{ID: "groupmail", Name: "Group Mailboxes", Description: "Access to shared mailboxes."},
		{ID: "devops", Name: "DevOps Platform", Description: "CI/CD and code repository access."},
		{ID: "bi", Name: "BI Tools", Description: "Business Intelligence and reporting."},
		{ID: "hrfocus", Name: "HR Focus", Description: "Human Resources management system."},
		{ID: "onedrive", Name: "OneDrive", Description: "Cloud storage and file sharing."},
		{ID: "office365", Name: "Office 365", Description: "Productivity suite access."},
		{ID: "msteam", Name: "MS Teams", Description: "Collaboration and communication platform."},
	}
}

// FromConfig builds the catalog from configuration, falling back to
// DefaultSystems when none is configured.
func FromConfig(cfgs []internal.SystemConfig) (*Catalog, error) {
	if len(cfgs) == 0 {
		return New(DefaultSystems())
	}
	systems := make([]System, len(cfgs))
	for i, c := range cfgs {
		systems[i] = System{ID: c.ID, Name: c.Name, Description: c.Description}
	}
	return New(systems)
}
