package roster

import "strings"

// Filter returns the users whose name, email, title or company contains
// query, ignoring case. An empty query returns users unchanged. Source order
// is kept.
func Filter(users []*User, query string) []*User {
	if query == "" {
		return users
	}

	needle := strings.ToLower(query)
	out := make([]*User, 0, len(users))
	for _, u := range users {
		if matches(u, needle) {
			out = append(out, u)
		}
	}
	return out
}

func matches(u *User, needle string) bool {
	for _, field := range []string{u.Name, u.Email, u.Title, u.Company} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
