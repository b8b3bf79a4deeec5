package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/access-console/api"
	"github.com/frahmantamala/access-console/internal/catalog"
	"github.com/frahmantamala/access-console/internal/roster"
	"github.com/frahmantamala/access-console/internal/session"
	"github.com/frahmantamala/access-console/internal/suggestion"
	"github.com/frahmantamala/access-console/internal/transport"
	"github.com/frahmantamala/access-console/internal/transport/rest"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("backend down") }

var _ = Describe("Router", func() {
	var (
		router   *chi.Mux
		registry *session.Registry
		store    *roster.MemoryStore
		c        *catalog.Catalog
		slogger  *slog.Logger
	)

	BeforeEach(func() {
		ctx := context.Background()
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		base := transport.NewBaseHandler(slogger)

		var err error
		c, err = catalog.New(catalog.DefaultSystems())
		Expect(err).NotTo(HaveOccurred())

		store = roster.NewMemoryStore()
		rosterSvc := roster.NewService(store, c, nil, slogger)
		Expect(rosterSvc.Seed(ctx, roster.DemoUsers())).To(Succeed())

		client := suggestion.NewClient(suggestion.NewKeywordModel(), time.Second, slogger)
		registry = session.NewRegistry(8, time.Minute, slogger)
		sessionSvc := session.NewService(registry, rosterSvc, c, client, nil, session.Options{}, slogger)

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Handlers{
			Health:  rest.NewHealthHandler(base, store, c.Len(), registry.Len),
			Catalog: catalog.NewHandler(base, c),
			Roster:  roster.NewHandler(base, rosterSvc),
			Session: session.NewHandler(base, sessionSvc),
		}, api.OpenAPISpec, slogger)
	})

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	It("should answer liveness and readiness probes", func() {
		Expect(serve(http.MethodGet, "/api/v1/ping", "").Code).To(Equal(http.StatusOK))

		w := serve(http.MethodGet, "/api/v1/health", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var health rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&health)).To(Succeed())
		Expect(health.Status).To(Equal(rest.HealthHealthy))
		Expect(health.Components).To(HaveKey("roster"))
		Expect(health.Components["catalog"].Details["systems"]).To(BeNumerically("==", 11))
	})

	It("should report an unhealthy roster backend", func() {
		handler := rest.NewHealthHandler(transport.NewBaseHandler(slogger), failingPinger{}, 11, nil)
		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
	})

	It("should echo the caller's trace id", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/systems", nil)
		req.Header.Set("X-Trace-ID", "trace-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("X-Trace-ID")).To(Equal("trace-123"))
	})

	It("should serve the filtered roster", func() {
		w := serve(http.MethodGet, "/api/v1/users?q=bob", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp roster.UsersResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Total).To(Equal(1))
		Expect(resp.Users[0].Name).To(Equal("Bob Williams"))
	})

	It("should run an edit session end to end with the offline model", func() {
		w := serve(http.MethodPost, "/api/v1/sessions", `{"mode":"add"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		var opened session.SessionResponse
		Expect(json.NewDecoder(w.Body).Decode(&opened)).To(Succeed())
		Expect(registry.Len()).To(Equal(1))

		prefix := "/api/v1/sessions/" + opened.ID
		Expect(serve(http.MethodPatch, prefix+"/profile", `{"name":"Frank","title":"System Administrator"}`).Code).
			To(Equal(http.StatusOK))
		Expect(serve(http.MethodPost, prefix+"/suggestions", "").Code).To(Equal(http.StatusOK))

		w = serve(http.MethodPost, prefix+"/save", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var saved roster.UserResponse
		Expect(json.NewDecoder(w.Body).Decode(&saved)).To(Succeed())
		Expect(saved.ID).To(Equal(int64(5)))
		Expect(saved.Permissions).To(HaveLen(2))
		Expect(registry.Len()).To(Equal(0))

		users, err := store.List(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(users).To(HaveLen(5))
	})

	It("should serve a valid OpenAPI document", func() {
		w := serve(http.MethodGet, "/openapi.yml", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		_, err := rest.LoadOpenAPI(context.Background(), w.Body.Bytes())
		Expect(err).NotTo(HaveOccurred())
	})

	It("should document every API route", func() {
		doc, err := rest.LoadOpenAPI(context.Background(), api.OpenAPISpec)
		Expect(err).NotTo(HaveOccurred())

		err = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if !strings.HasPrefix(route, rest.APIPrefix) {
				return nil
			}
			path := strings.TrimSuffix(strings.TrimPrefix(route, rest.APIPrefix), "/")
			item := doc.Paths.Value(path)
			Expect(item).NotTo(BeNil(), "undocumented route %s", path)
			Expect(item.GetOperation(method)).NotTo(BeNil(), "undocumented operation %s %s", method, path)
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
	})
})
