package domain

import "time"

type PingActionData struct {
	Type    ActionType
	Label   string
	Url     string
	Method  *string
	Headers *string
	Body    *string
}

// PingSubmission is what a producer sends; the service resolves the
// topic and fills in a title before it becomes PingCreationData.
type PingSubmission struct {
	TopicSlug   TopicSlug
	Title       *string
	ContentType PingContentType
	Content     string
	Tags        []string
	Actions     []PingActionData
}

type PingCreationData struct {
	TopicId     TopicId
	ApiKeyId    ApiKeyId
	Title       string
	ContentType PingContentType
	Content     string
	Tags        []string
	Actions     []PingActionData
}

type PingAction struct {
	Id      string     `json:"id"`
	Type    ActionType `json:"type"`
	Label   string     `json:"label"`
	Url     string     `json:"url"`
	Method  *string    `json:"method,omitempty"`
	Headers *string    `json:"headers,omitempty"`
	Body    *string    `json:"body,omitempty"`
}

type PingTag struct {
	Id   TagId  `json:"id"`
	Name string `json:"name"`
}

// Ping is immutable after creation and belongs to exactly one topic.
type Ping struct {
	Id          PingId          `json:"id"`
	TopicId     TopicId         `json:"topic_id"`
	ApiKeyId    *ApiKeyId       `json:"api_key_id,omitempty"`
	Title       string          `json:"title"`
	ContentType PingContentType `json:"content_type"`
	Content     string          `json:"content"`
	Tags        []PingTag       `json:"tags"`
	Actions     []PingAction    `json:"actions"`
	CreatedAt   time.Time       `json:"created_at"`
}

type PingPage struct {
	Items       []Ping
	HasNextPage bool
	NextCursor  *string
}
