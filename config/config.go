package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs  `toml:"database"`
	ApiServer ServerConfigs    `toml:"api_server"`
	Redis     RedisConfigs     `toml:"redis"`
	Kafka     KafkaConfigs     `toml:"kafka"`
	Discord   DiscordConfigs   `toml:"discord"`
	Giveaway  GiveawayConfigs  `toml:"giveaway"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log_level"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host      string   `toml:"host"`
	Port      string   `toml:"port"`
	AllowCORS []string `toml:"allow_cors"`

	// ServiceToken authenticates the chat-platform collaborator. Empty
	// disables the check, for local development only.
	ServiceToken string `toml:"service_token"`
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr string `toml:"addr"`

	// MemberEventTopic is the topic the chat-platform collaborator publishes
	// member join/leave facts to.
	MemberEventTopic string `toml:"member_event_topic"`

	// AnnouncementTopic receives draw results for the collaborator to render.
	AnnouncementTopic string `toml:"announcement_topic"`
}

type DiscordConfigs struct {
	BotToken string `toml:"bot_token"`
	BotID    string `toml:"bot_id"`
}

type GiveawayConfigs struct {
	// MaxExtraTickets caps the number of extra tickets earned from invites.
	MaxExtraTickets int `toml:"max_extra_tickets"`

	// RoleBonus is the number of extra tickets granted by the bonus role.
	RoleBonus int `toml:"role_bonus"`

	// BonusRoleID identifies the role granting RoleBonus. Empty disables the
	// role bonus entirely.
	BonusRoleID string `toml:"bonus_role_id"`

	MaxWinners int `toml:"max_winners"`

	// MaxDeadlineHorizon is how far in the future a giveaway deadline may be.
	MaxDeadlineHorizon time.Duration `toml:"max_deadline_horizon"`
}
