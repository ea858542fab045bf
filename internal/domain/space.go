package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type SpaceCreationData struct {
	Name             string
	Slug             SpaceSlug
	ShortDescription string
	Description      *string
	OwnerId          UserId
}

type Space struct {
	Id               SpaceId    `json:"id"`
	Name             string     `json:"name"`
	Slug             SpaceSlug  `json:"slug"`
	ShortDescription string     `json:"short_description"`
	Description      *string    `json:"description,omitempty"`
	OwnerId          *UserId    `json:"owner_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// Membership binds a user to a space with a role.
type Membership struct {
	Id       MemberId   `json:"id"`
	SpaceId  SpaceId    `json:"space_id"`
	UserId   UserId     `json:"user_id"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joined_at"`
}

// SpaceOverview is one row of the member-facing spaces feed.
type SpaceOverview struct {
	Id               SpaceId    `json:"id"`
	Name             string     `json:"name"`
	ShortDescription string     `json:"short_description"`
	IsPinned         bool       `json:"is_pinned"`
	LastPingAt       *time.Time `json:"last_ping_at,omitempty"`
	UnreadCount      int64      `json:"unread_count"`
}

type SpacePage struct {
	Items       []SpaceOverview
	HasNextPage bool
	NextCursor  *string
}
