package model

const (
	MemberJoin  = "member_join"
	MemberLeave = "member_leave"
)

// MemberEvent is the payload the chat-platform collaborator publishes on the
// member feed topic.
type MemberEvent struct {
	Type    string `json:"type" mapstructure:"type"`
	GuildID string `json:"guild_id" mapstructure:"guild_id"`
	UserID  string `json:"user_id" mapstructure:"user_id"`
	IsBot   bool   `json:"is_bot" mapstructure:"is_bot"`

	// InviterID is the resolved invite attribution for join events. Empty
	// when the collaborator could not attribute the join.
	InviterID    string `json:"inviter_id" mapstructure:"inviter_id"`
	InviterIsBot bool   `json:"inviter_is_bot" mapstructure:"inviter_is_bot"`
}
