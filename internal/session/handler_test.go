package session_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/access-console/internal"
	"github.com/frahmantamala/access-console/internal/roster"
	"github.com/frahmantamala/access-console/internal/session"
	"github.com/frahmantamala/access-console/internal/transport"
)

var _ = Describe("Handler", func() {
	var router chi.Router

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		rosterSvc := roster.NewService(roster.NewMemoryStore(), defaultCatalog(), nil, slogger)
		Expect(rosterSvc.Seed(context.Background(), roster.DemoUsers())).To(Succeed())

		stub := &stubSuggester{fn: func(context.Context, string) ([]string, error) {
			return []string{"ad", "mail"}, nil
		}}
		registry := session.NewRegistry(8, time.Minute, slogger)
		service := session.NewService(registry, rosterSvc, defaultCatalog(), stub, nil, session.Options{}, slogger)
		handler := session.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Post("/sessions", handler.OpenSession)
		router.Get("/sessions/{id}", handler.GetSession)
		router.Delete("/sessions/{id}", handler.DiscardSession)
		router.Patch("/sessions/{id}/profile", handler.UpdateProfile)
		router.Put("/sessions/{id}/status", handler.SetStatus)
		router.Post("/sessions/{id}/permissions/{systemId}/toggle", handler.TogglePermission)
		router.Put("/sessions/{id}/permissions/{systemId}", handler.SetPermissionDetails)
		router.Put("/sessions/{id}/permissions", handler.ApplySuggestions)
		router.Post("/sessions/{id}/suggestions", handler.Suggest)
		router.Post("/sessions/{id}/save", handler.Save)
	})

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	open := func(body string) session.SessionResponse {
		w := serve(http.MethodPost, "/sessions", body)
		Expect(w.Code).To(Equal(http.StatusCreated))
		var resp session.SessionResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp
	}

	errorCode := func(w *httptest.ResponseRecorder) string {
		var resp struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp.Error.Code
	}

	It("should open an edit session with resolved system names", func() {
		resp := open(`{"mode":"edit","user_id":4}`)
		Expect(resp.ID).NotTo(BeEmpty())
		Expect(*resp.UserID).To(Equal(int64(4)))
		Expect(resp.Permissions[0]).To(Equal(session.PermissionResponse{
			SystemID: "groupmail", SystemName: "Group Mailboxes", Details: "marketing-team@example.com",
		}))
	})

	It("should reject an edit session without a user id", func() {
		w := serve(http.MethodPost, "/sessions", `{"mode":"edit"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should walk an add session through to save", func() {
		id := open(`{"mode":"add"}`).ID

		w := serve(http.MethodPatch, "/sessions/"+id+"/profile", `{"name":"Eve","title":"Engineer"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = serve(http.MethodPost, "/sessions/"+id+"/suggestions", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var suggested session.SuggestResponse
		Expect(json.NewDecoder(w.Body).Decode(&suggested)).To(Succeed())
		Expect(suggested.Suggested).To(Equal([]string{"ad", "mail"}))

		w = serve(http.MethodPut, "/sessions/"+id+"/permissions/ad", `{"details":"eve"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		w = serve(http.MethodPost, "/sessions/"+id+"/permissions/mail/toggle", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		w = serve(http.MethodPut, "/sessions/"+id+"/status", `{"status":"blocked"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = serve(http.MethodPost, "/sessions/"+id+"/save", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var user roster.UserResponse
		Expect(json.NewDecoder(w.Body).Decode(&user)).To(Succeed())
		Expect(user.ID).To(Equal(int64(5)))
		Expect(user.Status).To(Equal(roster.StatusBlocked))
		Expect(user.Permissions).To(Equal([]roster.GrantResponse{
			{SystemID: "ad", SystemName: "Active Directory", Details: "eve"},
		}))

		Expect(serve(http.MethodGet, "/sessions/"+id, "").Code).To(Equal(http.StatusNotFound))
	})

	It("should apply an explicit system list", func() {
		id := open(`{"mode":"edit","user_id":1}`).ID
		w := serve(http.MethodPut, "/sessions/"+id+"/permissions", `{"system_ids":["bi","bi","msteam"]}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp session.SessionResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Permissions).To(HaveLen(2))
		Expect(resp.Permissions[1].SystemID).To(Equal("msteam"))
	})

	It("should answer TITLE_REQUIRED before asking for suggestions", func() {
		id := open(`{"mode":"add"}`).ID
		w := serve(http.MethodPost, "/sessions/"+id+"/suggestions", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(errorCode(w)).To(Equal(string(internal.ErrCodeTitleRequired)))
	})

	It("should reject unknown systems and statuses", func() {
		id := open(`{"mode":"add"}`).ID
		w := serve(http.MethodPost, "/sessions/"+id+"/permissions/ghost/toggle", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		w = serve(http.MethodPut, "/sessions/"+id+"/status", `{"status":"gone"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return 404 for unknown sessions", func() {
		w := serve(http.MethodDelete, "/sessions/missing", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(errorCode(w)).To(Equal(string(internal.ErrCodeSessionNotFound)))
	})
})
