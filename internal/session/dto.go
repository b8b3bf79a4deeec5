package session

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/frahmantamala/access-console/internal"
	"github.com/frahmantamala/access-console/internal/catalog"
	"github.com/frahmantamala/access-console/internal/roster"
)

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

type OpenSessionRequest struct {
	Mode   Mode  `json:"mode" validate:"required,oneof=add edit"`
	UserID int64 `json:"user_id" validate:"required_if=Mode edit"`
}

type StatusRequest struct {
	Status roster.Status `json:"status" validate:"required"`
}

type DetailsRequest struct {
	Details string `json:"details"`
}

type ApplySuggestionsRequest struct {
	SystemIDs []string `json:"system_ids" validate:"required,dive,required"`
}

type ProfileResponse struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Title        string        `json:"title"`
	Company      string        `json:"company"`
	Status       roster.Status `json:"status"`
	QuotaEmail   string        `json:"quota_email"`
	ComputerName string        `json:"computer_name"`
	AssetCode    string        `json:"asset_code"`
}

type PermissionResponse struct {
	SystemID   string `json:"system_id"`
	SystemName string `json:"system_name"`
	Details    string `json:"details"`
}

type SessionResponse struct {
	ID          string               `json:"id"`
	Mode        Mode                 `json:"mode"`
	UserID      *int64               `json:"user_id,omitempty"`
	Profile     ProfileResponse      `json:"profile"`
	Permissions []PermissionResponse `json:"permissions"`
}

type SuggestResponse struct {
	Suggested []string        `json:"suggested_permissions"`
	Session   SessionResponse `json:"session"`
}

func ToResponse(id string, snap Snapshot, c *catalog.Catalog) SessionResponse {
	perms := make([]PermissionResponse, len(snap.Permissions))
	for i, p := range snap.Permissions {
		system, _ := c.Get(p.SystemID)
		perms[i] = PermissionResponse{SystemID: p.SystemID, SystemName: system.Name, Details: p.Details}
	}

	resp := SessionResponse{
		ID:   id,
		Mode: snap.Mode,
		Profile: ProfileResponse{
			Name:         snap.Profile.Name,
			Email:        snap.Profile.Email,
			Title:        snap.Profile.Title,
			Company:      snap.Profile.Company,
			Status:       snap.Profile.Status,
			QuotaEmail:   snap.Profile.QuotaEmail,
			ComputerName: snap.Profile.ComputerName,
			AssetCode:    snap.Profile.AssetCode,
		},
		Permissions: perms,
	}
	if snap.Mode == ModeEdit {
		userID := snap.UserID
		resp.UserID = &userID
	}
	return resp
}

// validateRequest runs struct tag validation and reports failures in the
// AppError envelope.
func validateRequest(req interface{}) *internal.AppError {
	err := requestValidator.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	details := internal.ValidationErrors{}
	for _, fe := range fieldErrs {
		details.Errors = append(details.Errors, internal.ValidationError{
			Field:   fe.Field(),
			Message: fe.Field() + " failed on " + fe.Tag(),
			Code:    string(internal.ErrCodeInvalidField),
		})
	}
	return internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).WithDetails(details)
}
