package roster

// DemoUsers is the starter roster loaded when seeding is enabled.
func DemoUsers() []UserDraft {
	return []UserDraft{
		{
			Name: "Alice Johnson", Email: "alice.j@example.com", Title: "Senior Software Engineer", Company: "Innovate Inc.",
			Status: StatusActive, QuotaEmail: "50GB", ComputerName: "INNOV-LT-001", AssetCode: "ASSET-10234",
			Permissions: []Permission{
				{SystemID: "devops", Details: "Contributor"},
				{SystemID: "eservice", Details: "Level 2 Agent"},
				{SystemID: "mail", Details: ""},
				{SystemID: "ad", Details: "alice.j"},
			},
		},
		{
			Name: "Bob Williams", Email: "bob.w@example.com", Title: "Project Manager", Company: "Innovate Inc.",
			Status: StatusActive, QuotaEmail: "25GB", ComputerName: "INNOV-LT-002", AssetCode: "ASSET-10235",
			Permissions: []Permission{
				{SystemID: "exact", Details: "Read-only"},
				{SystemID: "bi", Details: "Sales Dashboard"},
				{SystemID: "groupmail", Details: "project-leads@example.com"},
				{SystemID: "msteam", Details: ""},
			},
		},
		{
			Name: "Charlie Brown", Email: "charlie.b@example.com", Title: "System Administrator", Company: "Solutions Co.",
			Status: StatusBlocked, QuotaEmail: "50GB", ComputerName: "SOL-LT-003", AssetCode: "ASSET-20567",
			Permissions: []Permission{
				{SystemID: "ad", Details: "charlie.b"},
				{SystemID: "mail", Details: ""},
				{SystemID: "devops", Details: "Admin"},
				{SystemID: "eservice", Details: "Admin"},
				{SystemID: "office365", Details: "Global Admin"},
			},
		},
		{
			Name: "Diana Miller", Email: "diana.m@example.com", Title: "Marketing Head", Company: "Solutions Co.",
			Status: StatusActive, QuotaEmail: "25GB", ComputerName: "SOL-LT-004", AssetCode: "ASSET-20568",
			Permissions: []Permission{
				{SystemID: "groupmail", Details: "marketing-team@example.com"},
				{SystemID: "bi", Details: "Marketing Dashboard"},
				{SystemID: "mail", Details: ""},
			},
		},
	}
}
