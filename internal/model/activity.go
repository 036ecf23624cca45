package model

// ChannelAccount identifies a participant of a conversation.
type ChannelAccount struct {
	ID   string
	Name string
}

// ActivityType is the kind of inbound activity.
type ActivityType string

const (
	ActivityTypeMessage      ActivityType = "message"
	ActivityTypeMembersAdded ActivityType = "membersAdded"
)

// Activity is one inbound event delivered by a transport.
type Activity struct {
	ID             string
	Type           ActivityType
	ChannelID      string // "telegram", "console"
	ConversationID string
	Text           string
	From           ChannelAccount
	Recipient      ChannelAccount // the bot itself
	MembersAdded   []ChannelAccount
}
