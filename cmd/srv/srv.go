package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atoz-lab/backend/config"
	"github.com/atoz-lab/backend/internal/domain"
	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/internal/repository"
	"github.com/atoz-lab/backend/pkg/authenticator"
	"github.com/atoz-lab/backend/pkg/kafka"
	"github.com/atoz-lab/backend/pkg/logger"
	"github.com/atoz-lab/backend/pkg/pubsub"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/atoz-lab/backend/pkg/xredis"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo       repository.UserRepository
	activityRepo   repository.ActivityRepository
	attendanceRepo repository.AttendanceRepository
	followingRepo  repository.FollowingRepository
	commentRepo    repository.CommentRepository

	userDomain      domain.UserDomain
	activityDomain  domain.ActivityDomain
	followingDomain domain.FollowingDomain
	commentDomain   domain.CommentDomain

	mediator *mediator.Mediator

	tokenEngine authenticator.TokenEngine[model.AccessToken]

	publisher     pubsub.Publisher
	newSubscriber func(topic string, handler pubsub.SubscribeHandler) (pubsub.Subscriber, error)
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.ParseLevel(cfg.Log.Level)))
	return nil
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			SkipInitializeWithVersion: false,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		panic(fmt.Sprintf("unsupported database driver %q", cfg.Driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		panic(err)
	}

	if cfg.Driver == "sqlite" {
		// Sqlite allows a single writer, transactions must not compete for
		// the database file.
		sqlDB, err := db.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "error":
		return gormlogger.Error
	case "warn", "warning":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Silent
	}
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

func (s *srv) loadSnowflake() {
	node, err := snowflake.NewNode(xcontext.Configs(s.ctx).ApiServer.NodeID)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.activityRepo = repository.NewActivityRepository()
	s.attendanceRepo = repository.NewAttendanceRepository()
	s.followingRepo = repository.NewFollowingRepository()
	s.commentRepo = repository.NewCommentRepository()
}

// loadBus selects the comment bus. Every api process subscribes to the bus, so
// a comment received by one process reaches the sessions of all processes.
func (s *srv) loadBus() {
	cfg := xcontext.Configs(s.ctx)

	switch cfg.Realtime.Bus {
	case "local":
		bus := pubsub.NewLocalBus()
		s.publisher = bus
		s.newSubscriber = func(topic string, handler pubsub.SubscribeHandler) (pubsub.Subscriber, error) {
			return bus.NewSubscriber(topic, handler), nil
		}

	case "redis":
		client, err := xredis.NewClient(s.ctx, cfg.Redis.Addr)
		if err != nil {
			panic(err)
		}

		s.publisher = xredis.NewPublisher(client)
		s.newSubscriber = func(topic string, handler pubsub.SubscribeHandler) (pubsub.Subscriber, error) {
			return xredis.NewSubscriber(client, []string{topic}, handler), nil
		}

	case "kafka":
		brokers := strings.Split(cfg.Kafka.Addr, ",")
		publisher, err := kafka.NewPublisher(uuid.NewString(), brokers)
		if err != nil {
			panic(err)
		}

		s.publisher = publisher
		s.newSubscriber = func(topic string, handler pubsub.SubscribeHandler) (pubsub.Subscriber, error) {
			// Each process needs its own consumer group to receive every
			// comment.
			groupID := fmt.Sprintf("%s-%s", cfg.Kafka.GroupID, uuid.NewString())
			return kafka.NewSubscriber(groupID, brokers, []string{topic}, handler)
		}

	default:
		panic(fmt.Sprintf("unsupported realtime bus %q", cfg.Realtime.Bus))
	}
}

func (s *srv) loadDomains() {
	s.tokenEngine = authenticator.NewTokenEngine[model.AccessToken](
		xcontext.Configs(s.ctx).Auth.AccessToken)

	s.userDomain = domain.NewUserDomain(s.userRepo, s.tokenEngine)
	s.activityDomain = domain.NewActivityDomain(s.userRepo, s.activityRepo, s.attendanceRepo)
	s.followingDomain = domain.NewFollowingDomain(s.userRepo, s.followingRepo)
	s.commentDomain = domain.NewCommentDomain(s.userRepo, s.activityRepo, s.commentRepo, s.publisher)
}

func (s *srv) loadMediator() {
	var err error
	s.mediator, err = domain.NewMediator(s.userDomain, s.activityDomain, s.followingDomain, s.commentDomain)
	if err != nil {
		panic(err)
	}
}
