package suggestion

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/access-console/internal/catalog"
)

const responseKey = "suggested_permissions"

// BuildPrompt names every system as `"id" (name)` and asks for a JSON object
// carrying only ids from that list.
func BuildPrompt(title string, systems []catalog.System) string {
	pairs := make([]string, len(systems))
	for i, s := range systems {
		pairs[i] = fmt.Sprintf("%q (%s)", s.ID, s.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the job title %q, suggest the most appropriate system permissions from the following list.\n", title)
	fmt.Fprintf(&b, "Only return system IDs that are present in this list: [%s].\n", strings.Join(pairs, ", "))
	b.WriteString("For example, a 'Senior Software Engineer' should have 'devops' and 'eservice'. " +
		"A 'System Administrator' must have 'ad'. A 'Marketing' role might need 'bi' and 'groupmail'.\n")
	fmt.Fprintf(&b, "Return your answer as a JSON object with a single key %q which is an array of system ID strings.", responseKey)
	return b.String()
}
