package main

import (
	"net/http"

	"github.com/giveawayhub/backend/internal/middleware"
	"github.com/giveawayhub/backend/migration"
	"github.com/giveawayhub/backend/pkg/router"
	"github.com/rs/cors"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.newContext()
	s.loadDatabase()
	s.loadRedis()
	s.loadPublisher()
	s.loadEndpoint()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}

	if err := s.scheduler.Start(s.ctx); err != nil {
		panic(err)
	}
	defer s.scheduler.Stop()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.configs.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-User-Id"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: c.Handler(s.router.Handler()),
	}

	s.logger.Infof("Starting server on %s", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	s.logger.Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.Authenticate())
	s.router.After(middleware.Logger())

	router.POST(s.router, "/createGiveaway", s.giveawayDomain.Create)
	router.POST(s.router, "/enterGiveaway", s.giveawayDomain.Enter)
	router.POST(s.router, "/closeGiveaway", s.giveawayDomain.Close)
	router.GET(s.router, "/getGiveaway", s.giveawayDomain.Get)
	router.GET(s.router, "/getLeaderboard", s.giveawayDomain.GetLeaderboard)
	router.GET(s.router, "/getMyTickets", s.giveawayDomain.GetMyTickets)
	router.POST(s.router, "/adjustBonus", s.giveawayDomain.AdjustBonus)
	router.POST(s.router, "/clearGiveaways", s.giveawayDomain.Clear)
}
