package suggestion_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/access-console/internal/catalog"
	"github.com/frahmantamala/access-console/internal/suggestion"
)

var _ = Describe("ParseResponse", func() {
	systems := catalog.DefaultSystems()

	It("should trim surrounding whitespace", func() {
		ids := suggestion.ParseResponse("\n  {\"suggested_permissions\":[\"bi\"]}  \n", systems, quietLogger())
		Expect(ids).To(Equal([]string{"bi"}))
	})

	It("should keep duplicates the model repeated", func() {
		ids := suggestion.ParseResponse(`{"suggested_permissions":["mail","mail"]}`, systems, quietLogger())
		Expect(ids).To(Equal([]string{"mail", "mail"}))
	})

	It("should drop elements that are not strings", func() {
		ids := suggestion.ParseResponse(`{"suggested_permissions":["ad",3,null,{"id":"bi"}]}`, systems, quietLogger())
		Expect(ids).To(Equal([]string{"ad"}))
	})

	It("should filter against the supplied catalog only", func() {
		narrow := []catalog.System{{ID: "mail", Name: "Email Account"}}
		ids := suggestion.ParseResponse(`{"suggested_permissions":["ad","mail"]}`, narrow, quietLogger())
		Expect(ids).To(Equal([]string{"mail"}))
	})
})
