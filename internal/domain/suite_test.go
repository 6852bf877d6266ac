package domain

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/internal/repository"
	"github.com/atoz-lab/backend/pkg/authenticator"
	"github.com/atoz-lab/backend/pkg/pubsub"
	"github.com/atoz-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type recordPublisher struct {
	mutex sync.Mutex
	packs []*pubsub.Pack
}

func (p *recordPublisher) Publish(_ context.Context, _ string, pack *pubsub.Pack) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.packs = append(p.packs, pack)
	return nil
}

func (p *recordPublisher) Packs() []*pubsub.Pack {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]*pubsub.Pack(nil), p.packs...)
}

func newTokenEngine() authenticator.TokenEngine[model.AccessToken] {
	return authenticator.NewTokenEngine[model.AccessToken](testutil.MockConfigs().Auth.AccessToken)
}

func newTestMediator(t *testing.T, publisher pubsub.Publisher) *mediator.Mediator {
	userRepo := repository.NewUserRepository()
	activityRepo := repository.NewActivityRepository()

	m, err := NewMediator(
		NewUserDomain(userRepo, newTokenEngine()),
		NewActivityDomain(userRepo, activityRepo, repository.NewAttendanceRepository()),
		NewFollowingDomain(userRepo, repository.NewFollowingRepository()),
		NewCommentDomain(userRepo, activityRepo, repository.NewCommentRepository(), publisher),
	)
	require.NoError(t, err)
	return m
}

func Test_NewMediator_EveryKindHasHandler(t *testing.T) {
	m := newTestMediator(t, nil)
	require.NotNil(t, m)
	require.Len(t, model.RequestKinds(), 15)
}

func fixedTime() time.Time {
	return time.Date(2026, 12, 1, 18, 0, 0, 0, time.UTC)
}
