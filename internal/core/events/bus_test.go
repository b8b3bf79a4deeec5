package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/access-console/internal/core/events"
)

var _ = Describe("EventBus", func() {
	var (
		bus    *events.EventBus
		logger *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
	})

	It("should deliver events to typed and wildcard handlers", func() {
		var (
			mu   sync.Mutex
			seen []string
		)
		record := func(tag string) events.Handler {
			return func(_ context.Context, e events.Event) error {
				mu.Lock()
				defer mu.Unlock()
				seen = append(seen, tag+":"+e.EventType())
				return nil
			}
		}
		bus.Subscribe(events.EventTypeUserCreated, record("typed"))
		bus.Subscribe(events.AnyEvent, record("any"))

		Expect(bus.Publish(context.Background(), events.NewUserCreatedEvent(7, "active", []string{"ad"}))).To(Succeed())
		bus.Wait()

		Expect(seen).To(ConsistOf("typed:user.created", "any:user.created"))
	})

	It("should not fail publish when a handler errors", func() {
		bus.Subscribe(events.EventTypeUserDeleted, func(context.Context, events.Event) error {
			return errors.New("boom")
		})
		Expect(bus.Publish(context.Background(), events.NewUserDeletedEvent(1))).To(Succeed())
		bus.Wait()
	})

	It("should surface handler errors from PublishSync", func() {
		bus.Subscribe(events.EventTypeSuggestionFailed, func(context.Context, events.Event) error {
			return errors.New("boom")
		})
		err := bus.PublishSync(context.Background(), events.NewSuggestionFailedEvent("s-1", "Engineer"))
		Expect(err).To(MatchError(ContainSubstring("suggestion.failed")))
	})

	It("should build events with ids and payloads", func() {
		e := events.NewSuggestionCompletedEvent("s-1", "Engineer", []string{"devops"})
		Expect(e.EventID()).NotTo(BeEmpty())
		Expect(e.OccurredAt()).NotTo(BeZero())
		Expect(e.Payload()).To(HaveKeyWithValue("session_id", "s-1"))
	})
})
