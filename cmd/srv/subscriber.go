package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/giveawayhub/backend/pkg/kafka"

	"github.com/urfave/cli/v2"
)

func (s *srv) startSubscriber(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.newContext()
	s.loadDatabase()
	s.loadRedis()
	s.loadEndpoint()
	s.loadRepos()
	s.loadDomains()

	s.subscriber = kafka.NewSubscriber(
		"giveawayhub-member-feed",
		[]string{s.configs.Kafka.Addr},
		[]string{s.configs.Kafka.MemberEventTopic},
		s.memberFeedDomain.HandleEvent,
	)

	s.logger.Infof("Starting subscriber on topic %s", s.configs.Kafka.MemberEventTopic)
	s.subscriber.Subscribe(s.ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return s.subscriber.Stop(s.ctx)
}
