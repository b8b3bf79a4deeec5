package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserCreated         = "user.created"
	EventTypeUserUpdated         = "user.updated"
	EventTypeUserDeleted         = "user.deleted"
	EventTypeSuggestionCompleted = "suggestion.completed"
	EventTypeSuggestionFailed    = "suggestion.failed"
)

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type UserChangedEvent struct {
	BaseEvent
	UserID    int64    `json:"user_id"`
	SystemIDs []string `json:"system_ids,omitempty"`
	Status    string   `json:"status,omitempty"`
}

func NewUserCreatedEvent(userID int64, status string, systemIDs []string) *UserChangedEvent {
	return newUserChanged(EventTypeUserCreated, userID, status, systemIDs)
}

func NewUserUpdatedEvent(userID int64, status string, systemIDs []string) *UserChangedEvent {
	return newUserChanged(EventTypeUserUpdated, userID, status, systemIDs)
}

func NewUserDeletedEvent(userID int64) *UserChangedEvent {
	return newUserChanged(EventTypeUserDeleted, userID, "", nil)
}

func newUserChanged(eventType string, userID int64, status string, systemIDs []string) *UserChangedEvent {
	data := map[string]interface{}{"user_id": userID}
	if status != "" {
		data["status"] = status
	}
	if systemIDs != nil {
		data["system_ids"] = systemIDs
	}
	return &UserChangedEvent{
		BaseEvent: newBase(eventType, data),
		UserID:    userID,
		SystemIDs: systemIDs,
		Status:    status,
	}
}

type SuggestionEvent struct {
	BaseEvent
	SessionID string   `json:"session_id"`
	Title     string   `json:"title"`
	SystemIDs []string `json:"system_ids,omitempty"`
}

func NewSuggestionCompletedEvent(sessionID, title string, systemIDs []string) *SuggestionEvent {
	return &SuggestionEvent{
		BaseEvent: newBase(EventTypeSuggestionCompleted, map[string]interface{}{
			"session_id": sessionID,
			"title":      title,
			"system_ids": systemIDs,
		}),
		SessionID: sessionID,
		Title:     title,
		SystemIDs: systemIDs,
	}
}

func NewSuggestionFailedEvent(sessionID, title string) *SuggestionEvent {
	return &SuggestionEvent{
		BaseEvent: newBase(EventTypeSuggestionFailed, map[string]interface{}{
			"session_id": sessionID,
			"title":      title,
		}),
		SessionID: sessionID,
		Title:     title,
	}
}
