package domain

type (
	Email    = string
	Password = string
	UserId   = string

	SpaceId   = string
	SpaceSlug = string
	MemberId  = string

	TopicId   = string
	TopicSlug = string

	ApiKeyId = string
	PingId   = string
	TagId    = string
)

// MemberRole governs permitted actions within a Space.
type MemberRole string

const (
	RoleOwner  MemberRole = "OWNER"
	RoleAdmin  MemberRole = "ADMIN"
	RoleMember MemberRole = "MEMBER"
)

// ApiKeyStatus is the lifecycle state of a space api key.
type ApiKeyStatus string

const (
	ApiKeyActive   ApiKeyStatus = "ACTIVE"
	ApiKeyInactive ApiKeyStatus = "INACTIVE"
)

// PingContentType discriminates the ping payload encoding.
type PingContentType string

const (
	ContentMarkdown PingContentType = "MARKDOWN"
	ContentJSON     PingContentType = "JSON"
)

// ActionType discriminates ping action descriptors.
type ActionType string

const (
	ActionHttp ActionType = "HTTP"
	ActionLink ActionType = "LINK"
)
