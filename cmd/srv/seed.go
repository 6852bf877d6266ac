package main

import (
	"time"

	"github.com/atoz-lab/backend/internal/domain"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/pkg/pubsub"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startSeed(cctx *cli.Context) error {
	s.loadDatabase()
	s.loadSnowflake()
	s.loadRepos()

	// Seeding creates no comment, nobody listens to the bus.
	s.publisher = pubsub.NewLocalBus()
	s.loadDomains()
	s.loadMediator()

	if err := s.migrateDB(); err != nil {
		return err
	}

	host := model.RegisterRequest{
		DisplayName: cctx.String("username"),
		Username:    cctx.String("username"),
		Email:       cctx.String("email"),
		Password:    cctx.String("password"),
	}

	n, err := domain.SeedActivities(s.ctx, s.mediator, s.userRepo, s.activityRepo, host, time.Now().UTC())
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot seed activities: %v", err)
		return err
	}

	xcontext.Logger(s.ctx).Infof("Seeded %d activities hosted by %s", n, host.Username)
	return nil
}
