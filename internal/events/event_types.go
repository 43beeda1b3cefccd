package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPostCreated        EventType = "post_created"
	EventPostDeleted        EventType = "post_deleted"
	EventPostLiked          EventType = "post_liked"
	EventPostUnliked        EventType = "post_unliked"
	EventTransactionCreated EventType = "transaction_created"
	EventThemeCustomized    EventType = "theme_customization_updated"
	EventThemeCustomRemoved EventType = "theme_customization_deleted"
	EventStoreCreated       EventType = "store_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ResourceID  string      `json:"resource_id"`
	ActorUserID string      `json:"actor_user_id"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload,omitempty"`
}

// PostCreatedPayload payload.
type PostCreatedPayload struct {
	CommunityID string `json:"community_id"`
	Title       string `json:"title"`
}

// PostLikedPayload payload. OwnerUserID is the author being notified.
type PostLikedPayload struct {
	OwnerUserID string `json:"owner_user_id"`
}

// TransactionCreatedPayload payload.
type TransactionCreatedPayload struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// ThemeCustomizedPayload payload.
type ThemeCustomizedPayload struct {
	StoreID string `json:"store_id"`
}
