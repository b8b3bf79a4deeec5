package suggestion_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/access-console/internal"
	"github.com/frahmantamala/access-console/internal/catalog"
	"github.com/frahmantamala/access-console/internal/suggestion"
)

var _ = Describe("Client", func() {
	var (
		ctx     context.Context
		systems []catalog.System
		model   *stubModel
		client  *suggestion.Client
	)

	BeforeEach(func() {
		ctx = context.Background()
		systems = catalog.DefaultSystems()
		model = &stubModel{}
		client = suggestion.NewClient(model, time.Second, quietLogger())
	})

	It("should keep catalog ids in the model's order", func() {
		model.answer = `{"suggested_permissions":["devops","mail","ghost"]}`

		ids, err := client.Suggest(ctx, "Senior Software Engineer", systems)
		Expect(err).NotTo(HaveOccurred())
		Expect(ids).To(Equal([]string{"devops", "mail"}))
	})

	It("should call the model in JSON mode with the catalog in the prompt", func() {
		model.answer = `{"suggested_permissions":[]}`

		_, err := client.Suggest(ctx, "System Administrator", systems)
		Expect(err).NotTo(HaveOccurred())
		Expect(model.calls).To(Equal(1))
		Expect(model.options.JSONMode).To(BeTrue())
		Expect(model.prompt).To(ContainSubstring(`"System Administrator"`))
		Expect(model.prompt).To(ContainSubstring(`"ad" (Active Directory), "eservice" (`))
		Expect(model.prompt).To(ContainSubstring("suggested_permissions"))
	})

	It("should refuse an empty title without calling the model", func() {
		_, err := client.Suggest(ctx, "  ", systems)
		Expect(err).To(MatchError(internal.ErrTitleRequired))
		Expect(model.calls).To(BeZero())
	})

	It("should report provider errors generically", func() {
		model.err = errors.New("401 invalid api key")

		_, err := client.Suggest(ctx, "Engineer", systems)
		Expect(err).To(MatchError(internal.ErrSuggestionFailed))
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Message).NotTo(ContainSubstring("api key"))
	})

	It("should give up when the timeout elapses", func() {
		model.wait = true
		client = suggestion.NewClient(model, 20*time.Millisecond, quietLogger())

		_, err := client.Suggest(ctx, "Engineer", systems)
		Expect(err).To(MatchError(internal.ErrSuggestionFailed))
		Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
	})

	It("should treat malformed answers as no suggestions", func() {
		for _, answer := range []string{"", "   ", "not json", `{"suggested_permissions":"devops"}`, `{"other":[]}`} {
			model.answer = answer
			ids, err := client.Suggest(ctx, "Engineer", systems)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(BeEmpty())
		}
	})
})
