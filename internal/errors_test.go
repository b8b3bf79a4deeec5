package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/access-console/internal"
)

var _ = Describe("AppError", func() {
	It("should match sentinels through copies and wrapping", func() {
		err := fmt.Errorf("suggest: %w", internal.ErrSuggestionFailed.WithCause(errors.New("timeout")))
		Expect(errors.Is(err, internal.ErrSuggestionFailed)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrTitleRequired)).To(BeFalse())

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusBadGateway))
		Expect(internal.ErrSuggestionFailed.Cause).To(BeNil())
	})

	It("should tell field errors apart by their code", func() {
		unknown := internal.NewValidationFieldError("system_id", "unknown system: ghost", internal.ErrCodeUnknownSystem)
		status := internal.NewValidationFieldError("status", "status must be one of: active, blocked", internal.ErrCodeInvalidStatus)
		wrapped := fmt.Errorf("toggle: %w", unknown)

		Expect(errors.Is(wrapped, internal.NewValidationFieldError("system_id", "", internal.ErrCodeUnknownSystem))).To(BeTrue())
		Expect(errors.Is(wrapped, status)).To(BeFalse())
		Expect(errors.Is(status, unknown)).To(BeFalse())

		generic := internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed)
		Expect(errors.Is(wrapped, generic)).To(BeTrue())
	})

	It("should render the error envelope without the cause", func() {
		status, body := internal.ErrSuggestionFailed.WithCause(errors.New("401 bad key")).ToHTTPResponse()
		Expect(status).To(Equal(http.StatusBadGateway))

		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(MatchJSON(`{"error":{
			"type":"EXTERNAL_ERROR",
			"code":"SUGGESTION_FAILED",
			"message":"Failed to get AI suggestions. Please try again."
		}}`))
	})

	It("should summarise validation details", func() {
		appErr := internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
				{Field: "status", Message: "status must be one of: active, blocked"},
				{Field: "email", Message: "email must not exceed 254 characters"},
			}})

		Expect(appErr.Error()).To(Equal("status must be one of: active, blocked"))
		Expect(appErr.GetDetailedMessage()).To(Equal(
			"status must be one of: active, blocked; email must not exceed 254 characters"))
	})

	It("should map types to status codes", func() {
		Expect(internal.ErrTitleRequired.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(internal.ErrUserNotFound.StatusCode).To(Equal(http.StatusNotFound))
		Expect(internal.ErrSessionNotFound.StatusCode).To(Equal(http.StatusNotFound))
		Expect(internal.NewConflictError("x", internal.ErrCodeDuplicateSystem).StatusCode).To(Equal(http.StatusConflict))
		Expect(internal.NewInternalError("x", nil).StatusCode).To(Equal(http.StatusInternalServerError))
	})
})
