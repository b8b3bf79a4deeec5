package suggestion_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/access-console/internal"
	"github.com/frahmantamala/access-console/internal/catalog"
	"github.com/frahmantamala/access-console/internal/suggestion"
)

var _ = Describe("KeywordModel", func() {
	It("should follow the few-shot guidance", func() {
		Expect(suggestion.SuggestForTitle("Senior Software Engineer")).To(Equal([]string{"mail", "devops", "eservice"}))
		Expect(suggestion.SuggestForTitle("System Administrator")).To(Equal([]string{"mail", "ad"}))
		Expect(suggestion.SuggestForTitle("Marketing Head")).To(Equal([]string{"mail", "bi", "groupmail", "msteam"}))
	})

	It("should match short keywords as whole words", func() {
		Expect(suggestion.SuggestForTitle("HR Partner")).To(ContainElement("hrfocus"))
		Expect(suggestion.SuggestForTitle("Three-D Artist")).NotTo(ContainElement("hrfocus"))
	})

	It("should serve as the model behind a client", func() {
		model, err := suggestion.NewModel(context.Background(), internal.SuggestionConfig{Provider: suggestion.ProviderOffline})
		Expect(err).NotTo(HaveOccurred())

		client := suggestion.NewClient(model, time.Second, quietLogger())
		ids, err := client.Suggest(context.Background(), `System "Ops" Administrator`, catalog.DefaultSystems())
		Expect(err).NotTo(HaveOccurred())
		Expect(ids).To(Equal([]string{"mail", "ad"}))
	})
})

var _ = Describe("NewModel", func() {
	It("should reject unknown providers", func() {
		_, err := suggestion.NewModel(context.Background(), internal.SuggestionConfig{Provider: "carrier-pigeon"})
		Expect(err).To(MatchError(ContainSubstring("unsupported suggestion provider")))
	})

	It("should reject a base url for google", func() {
		_, err := suggestion.NewModel(context.Background(), internal.SuggestionConfig{
			Provider: suggestion.ProviderGoogle, APIKey: "k", BaseURL: "http://localhost",
		})
		Expect(err).To(HaveOccurred())
	})
})
