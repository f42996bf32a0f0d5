package main

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/giveawayhub/backend/config"
)

func (s *srv) loadConfig() {
	cfg := defaultConfigs()

	if path := getEnv("CONFIG_PATH", "config.toml"); path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				panic(err)
			}
		}
	}

	// Secrets come from the environment, never from the file.
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Discord.BotToken = getEnv("DISCORD_BOT_TOKEN", cfg.Discord.BotToken)
	cfg.ApiServer.ServiceToken = getEnv("SERVICE_TOKEN", cfg.ApiServer.ServiceToken)

	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Kafka.Addr = getEnv("KAFKA_ADDR", cfg.Kafka.Addr)

	s.configs = &cfg
}

func defaultConfigs() config.Configs {
	return config.Configs{
		Env: "local",
		Database: config.DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "giveawayhub",
			User:     "giveawayhub",
		},
		ApiServer: config.ServerConfigs{
			Host: "localhost",
			Port: "8080",
		},
		Redis: config.RedisConfigs{
			Addr: "localhost:6379",
		},
		Kafka: config.KafkaConfigs{
			Addr:              "localhost:9092",
			MemberEventTopic:  "member-events",
			AnnouncementTopic: "giveaway-announcements",
		},
		Giveaway: config.GiveawayConfigs{
			MaxExtraTickets:    5,
			RoleBonus:          1,
			MaxWinners:         10,
			MaxDeadlineHorizon: 30 * 24 * time.Hour,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}
