package entity

type Community struct {
	Base
	Handle      string `gorm:"unique"`
	DisplayName string

	// PlatformGuildID is the id of the guild this community maps to on the
	// chat platform.
	PlatformGuildID string
}
