package main

import (
	"context"
	"net/http"

	"github.com/giveawayhub/backend/config"
	"github.com/giveawayhub/backend/internal/domain"
	"github.com/giveawayhub/backend/internal/domain/statistic"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/giveawayhub/backend/pkg/api/discord"
	"github.com/giveawayhub/backend/pkg/kafka"
	"github.com/giveawayhub/backend/pkg/logger"
	"github.com/giveawayhub/backend/pkg/pubsub"
	"github.com/giveawayhub/backend/pkg/router"
	"github.com/giveawayhub/backend/pkg/xcontext"
	"github.com/giveawayhub/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	// ctx carries the configs, database and logger of the process.
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient     xredis.Client
	publisher       pubsub.Publisher
	subscriber      pubsub.Subscriber
	discordEndpoint *discord.Endpoint

	giveawayRepo  repository.GiveawayRepository
	entryRepo     repository.EntryRepository
	followerRepo  repository.FollowerRepository
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository

	calculator       *domain.TicketCalculator
	leaderboard      statistic.Leaderboard
	scheduler        *domain.DeadlineScheduler
	giveawayDomain   domain.GiveawayDomain
	memberFeedDomain domain.MemberFeedDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" || s.configs.Env == "testing" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) newContext() {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	s.ctx = ctx
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                     s.configs.Database.ConnectionString(),
		DefaultStringSize:       256,
		DontSupportRenameIndex:  true,
		DontSupportRenameColumn: true,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	s.publisher = kafka.NewPublisher("giveawayhub", []string{s.configs.Kafka.Addr})
}

func (s *srv) loadEndpoint() {
	s.discordEndpoint = discord.New(s.configs.Discord)
}

func (s *srv) loadRepos() {
	s.giveawayRepo = repository.NewGiveawayRepository()
	s.entryRepo = repository.NewEntryRepository()
	s.followerRepo = repository.NewFollowerRepository()
	s.communityRepo = repository.NewCommunityRepository()
	s.userRepo = repository.NewUserRepository()
}

func (s *srv) loadDomains() {
	s.calculator = domain.NewTicketCalculator(s.followerRepo, s.discordEndpoint)
	s.leaderboard = statistic.New(s.entryRepo, s.redisClient, s.calculator)
	s.scheduler = domain.NewDeadlineScheduler(s.giveawayRepo)
	s.giveawayDomain = domain.NewGiveawayDomain(
		s.giveawayRepo,
		s.entryRepo,
		s.followerRepo,
		s.communityRepo,
		s.userRepo,
		s.calculator,
		s.leaderboard,
		s.scheduler,
		s.publisher,
	)
	s.memberFeedDomain = domain.NewMemberFeedDomain(
		s.communityRepo,
		s.userRepo,
		s.followerRepo,
		s.giveawayRepo,
		s.leaderboard,
	)
}
