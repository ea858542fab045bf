package domain

import "time"

type TopicCreationData struct {
	SpaceId          SpaceId
	Name             string
	Emoji            string
	Slug             TopicSlug
	ShortDescription string
	Description      *string
}

type Topic struct {
	Id               TopicId    `json:"id"`
	SpaceId          SpaceId    `json:"space_id"`
	Name             string     `json:"name"`
	Emoji            string     `json:"emoji"`
	Slug             TopicSlug  `json:"slug"`
	ShortDescription string     `json:"short_description"`
	Description      *string    `json:"description,omitempty"`
	IsPinned         bool       `json:"is_pinned"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// TopicOverview is one row of the member-facing topic list.
type TopicOverview struct {
	Id               TopicId    `json:"id"`
	Name             string     `json:"name"`
	Emoji            string     `json:"emoji"`
	Slug             TopicSlug  `json:"slug"`
	ShortDescription string     `json:"short_description"`
	IsPinned         bool       `json:"is_pinned"`
	LastPingAt       *time.Time `json:"last_ping_at,omitempty"`
	UnreadCount      int64      `json:"unread_count"`
}
