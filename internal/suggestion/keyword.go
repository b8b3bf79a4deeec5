package suggestion

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

var titlePattern = regexp.MustCompile(`job title "((?:[^"\\]|\\.)*)"`)

// keywordRules map a lowercase title fragment to the systems it implies.
var keywordRules = []struct {
	keyword string
	systems []string
}{
	{"engineer", []string{"devops", "eservice"}},
	{"developer", []string{"devops", "eservice"}},
	{"administrator", []string{"ad"}},
	{"admin", []string{"ad"}},
	{"marketing", []string{"bi", "groupmail"}},
	{"sales", []string{"bi", "exact"}},
	{"finance", []string{"exact", "bi"}},
	{"account", []string{"exact"}},
	{"hr", []string{"hrfocus"}},
	{"human resources", []string{"hrfocus"}},
	{"manager", []string{"bi", "msteam"}},
	{"head", []string{"bi", "msteam"}},
}

// KeywordModel is an llms.Model that answers suggestion prompts from the job
// title alone. It needs no network access and is used for development and
// demos.
type KeywordModel struct{}

func NewKeywordModel() *KeywordModel {
	return &KeywordModel{}
}

func (m *KeywordModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	var prompt strings.Builder
	for _, message := range messages {
		if message.Role != llms.ChatMessageTypeHuman {
			continue
		}
		for _, part := range message.Parts {
			if text, ok := part.(llms.TextContent); ok {
				prompt.WriteString(text.Text)
			}
		}
	}

	text, err := m.Call(ctx, prompt.String())
	if err != nil {
		return nil, err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}, nil
}

func (m *KeywordModel) Call(ctx context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	match := titlePattern.FindStringSubmatch(prompt)
	if match == nil {
		return "", errors.New("keyword model: prompt carries no job title")
	}

	title, err := strconv.Unquote(`"` + match[1] + `"`)
	if err != nil {
		title = match[1]
	}

	out, err := json.Marshal(map[string][]string{responseKey: SuggestForTitle(title)})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// SuggestForTitle applies the keyword rules to title. Every title gets a
// mailbox; other systems follow from the rules, first match first.
func SuggestForTitle(title string) []string {
	words := strings.Fields(strings.ToLower(title))
	lower := strings.Join(words, " ")

	ids := []string{"mail"}
	seen := map[string]bool{"mail": true}
	for _, rule := range keywordRules {
		if !containsKeyword(lower, words, rule.keyword) {
			continue
		}
		for _, id := range rule.systems {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// containsKeyword matches short keywords as whole words so that "hr" does
// not fire on "three".
func containsKeyword(lower string, words []string, keyword string) bool {
	if len(keyword) > 3 {
		return strings.Contains(lower, keyword)
	}
	for _, w := range words {
		if strings.Trim(w, ".,;:()") == keyword {
			return true
		}
	}
	return false
}
