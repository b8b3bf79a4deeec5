package roster_test

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/access-console/internal/roster"
)

var _ = Describe("MemoryStore", func() {
	var (
		ctx   context.Context
		store *roster.MemoryStore
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = roster.NewMemoryStore()
	})

	draft := func(name string) roster.UserDraft {
		return roster.UserDraft{Name: name, Status: roster.StatusActive}
	}

	names := func() []string {
		users, err := store.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		out := make([]string, len(users))
		for i, u := range users {
			out[i] = u.Name
		}
		return out
	}

	Describe("Add", func() {
		It("should append in insertion order with increasing ids", func() {
			a, err := store.Add(ctx, draft("A"))
			Expect(err).NotTo(HaveOccurred())
			b, err := store.Add(ctx, draft("B"))
			Expect(err).NotTo(HaveOccurred())

			Expect(b.ID).To(BeNumerically(">", a.ID))
			Expect(names()).To(Equal([]string{"A", "B"}))
		})

		It("should never reuse an id after removal", func() {
			a, _ := store.Add(ctx, draft("A"))
			b, _ := store.Add(ctx, draft("B"))
			_, err := store.Remove(ctx, b.ID)
			Expect(err).NotTo(HaveOccurred())

			c, _ := store.Add(ctx, draft("C"))
			Expect(c.ID).NotTo(Equal(a.ID))
			Expect(c.ID).NotTo(Equal(b.ID))
		})

		It("should hand out unique ids to concurrent adds", func() {
			var wg sync.WaitGroup
			ids := make([]int64, 50)
			for i := range ids {
				wg.Add(1)
				go func(i int) {
					defer GinkgoRecover()
					defer wg.Done()
					u, err := store.Add(ctx, draft("user"))
					Expect(err).NotTo(HaveOccurred())
					ids[i] = u.ID
				}(i)
			}
			wg.Wait()

			seen := map[int64]bool{}
			for _, id := range ids {
				Expect(seen).NotTo(HaveKey(id))
				seen[id] = true
			}
		})

		It("should not share permission slices with the caller", func() {
			d := draft("A")
			d.Permissions = []roster.Permission{{SystemID: "mail"}}
			u, _ := store.Add(ctx, d)
			d.Permissions[0].SystemID = "changed"

			got, err := store.Get(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Permissions[0].SystemID).To(Equal("mail"))
		})
	})

	Describe("Update", func() {
		It("should replace the record in place", func() {
			a, _ := store.Add(ctx, draft("A"))
			store.Add(ctx, draft("B"))

			a.Name = "A2"
			found, err := store.Update(ctx, a)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(names()).To(Equal([]string{"A2", "B"}))
		})

		It("should be a silent no-op for an unknown id", func() {
			store.Add(ctx, draft("A"))
			found, err := store.Update(ctx, &roster.User{ID: 99, UserDraft: draft("ghost")})
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
			Expect(names()).To(Equal([]string{"A"}))
		})
	})

	Describe("Remove", func() {
		It("should keep the order of the remaining users", func() {
			store.Add(ctx, draft("A"))
			b, _ := store.Add(ctx, draft("B"))
			store.Add(ctx, draft("C"))

			found, err := store.Remove(ctx, b.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(names()).To(Equal([]string{"A", "C"}))
		})

		It("should leave the roster unchanged for an unknown id", func() {
			store.Add(ctx, draft("A"))
			store.Add(ctx, draft("B"))

			found, err := store.Remove(ctx, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
			Expect(names()).To(Equal([]string{"A", "B"}))
		})
	})

	Describe("Get", func() {
		It("should report ErrNotFound for an unknown id", func() {
			_, err := store.Get(ctx, 7)
			Expect(err).To(MatchError(roster.ErrNotFound))
		})
	})
})
