package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/testutil"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

const (
	saveKind   mediator.Kind = "test_save"
	countKind  mediator.Kind = "test_count"
	nestedKind mediator.Kind = "test_nested"
)

type saveRequest struct {
	Username string `json:"username" validate:"required"`
	Fail     error
	Panic    bool
}

func (saveRequest) Kind() mediator.Kind { return saveKind }

type countRequest struct{}

func (countRequest) Kind() mediator.Kind { return countKind }

type countResponse struct {
	Count int64
}

type nestedRequest struct {
	Usernames []string
	Fail      bool
}

func (nestedRequest) Kind() mediator.Kind { return nestedKind }

type testHandlers struct {
	m         *mediator.Mediator
	committed []string
}

func (h *testHandlers) save(ctx context.Context, req *saveRequest) (*mediator.Unit, error) {
	err := xcontext.DB(ctx).Create(&entity.User{
		Base:         entity.Base{ID: req.Username},
		UserName:     req.Username,
		Email:        req.Username + "@test.com",
		PasswordHash: "-",
	}).Error
	if err != nil {
		return nil, err
	}

	mediator.AfterCommit(ctx, func(context.Context) {
		h.committed = append(h.committed, req.Username)
	})

	if req.Panic {
		panic("something went wrong")
	}

	if req.Fail != nil {
		return nil, req.Fail
	}

	return &mediator.Unit{}, nil
}

func (h *testHandlers) count(ctx context.Context, req *countRequest) (*countResponse, error) {
	var n int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&n).Error; err != nil {
		return nil, err
	}

	return &countResponse{Count: n}, nil
}

func (h *testHandlers) nested(ctx context.Context, req *nestedRequest) (*mediator.Unit, error) {
	for _, username := range req.Usernames {
		_, err := mediator.Send[saveRequest, mediator.Unit](ctx, h.m, &saveRequest{Username: username})
		if err != nil {
			return nil, err
		}
	}

	if req.Fail {
		return nil, errorx.New(errorx.BadRequest, "Nested failure")
	}

	return &mediator.Unit{}, nil
}

func newMediator(t *testing.T) (*mediator.Mediator, *testHandlers) {
	h := &testHandlers{}
	h.m = mediator.New(saveKind, countKind, nestedKind)
	mediator.RegisterCommand(h.m, h.save)
	mediator.RegisterQuery(h.m, h.count)
	mediator.RegisterCommand(h.m, h.nested)
	require.NoError(t, h.m.Seal())
	return h.m, h
}

func countUsers(t *testing.T, ctx context.Context, m *mediator.Mediator) int64 {
	resp, err := mediator.Send[countRequest, countResponse](ctx, m, &countRequest{})
	require.NoError(t, err)
	return resp.Count
}

func TestMediator_Registration(t *testing.T) {
	h := &testHandlers{}
	m := mediator.New(saveKind, countKind)
	mediator.RegisterCommand(m, h.save)

	require.Panics(t, func() { mediator.RegisterCommand(m, h.save) })
	require.EqualError(t, m.Seal(), "mediator: no handler for test_count")

	mediator.RegisterQuery(m, h.count)
	require.NoError(t, m.Seal())
	require.Panics(t, func() { mediator.RegisterCommand(m, h.nested) })
}

func TestMediator_Commit(t *testing.T) {
	ctx := testutil.MockContext()
	m, h := newMediator(t)

	resp, err := mediator.Send[saveRequest, mediator.Unit](ctx, m, &saveRequest{Username: "alice"})
	require.NoError(t, err)
	require.Equal(t, &mediator.Unit{}, resp)
	require.Equal(t, []string{"alice"}, h.committed)
	require.EqualValues(t, 1, countUsers(t, ctx, m))
}

func TestMediator_Rollback(t *testing.T) {
	testCases := []struct {
		name    string
		req     *saveRequest
		wantErr error
	}{
		{
			name:    "expected error",
			req:     &saveRequest{Username: "alice", Fail: errorx.New(errorx.BadRequest, "Rejected")},
			wantErr: errorx.New(errorx.BadRequest, "Rejected"),
		},
		{
			name:    "unexpected error",
			req:     &saveRequest{Username: "alice", Fail: errors.New("disk is full")},
			wantErr: errorx.Unknown,
		},
		{
			name:    "panic",
			req:     &saveRequest{Username: "alice", Panic: true},
			wantErr: errorx.Unknown,
		},
		{
			name:    "validation",
			req:     &saveRequest{},
			wantErr: errorx.NewValidation(map[string][]string{"username": {"username must not be empty"}}),
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			m, h := newMediator(t)

			_, err := mediator.Send[saveRequest, mediator.Unit](ctx, m, tt.req)
			require.Equal(t, tt.wantErr, err)
			require.Empty(t, h.committed)
			require.Zero(t, countUsers(t, ctx, m))

			// The connection is released, the next command can run.
			_, err = mediator.Send[saveRequest, mediator.Unit](ctx, m, &saveRequest{Username: "bob"})
			require.NoError(t, err)
			require.EqualValues(t, 1, countUsers(t, ctx, m))
		})
	}
}

func TestMediator_Nested(t *testing.T) {
	ctx := testutil.MockContext()
	m, h := newMediator(t)

	_, err := mediator.Send[nestedRequest, mediator.Unit](ctx, m, &nestedRequest{
		Usernames: []string{"alice", "bob"},
		Fail:      true,
	})
	require.True(t, errorx.Is(err, errorx.BadRequest))
	require.Empty(t, h.committed)
	require.Zero(t, countUsers(t, ctx, m))

	_, err = mediator.Send[nestedRequest, mediator.Unit](ctx, m, &nestedRequest{
		Usernames: []string{"alice", "bob"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, h.committed)
	require.EqualValues(t, 2, countUsers(t, ctx, m))
}

func TestMediator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testutil.MockContext())
	m, h := newMediator(t)
	cancel()

	_, err := mediator.Send[saveRequest, mediator.Unit](ctx, m, &saveRequest{Username: "alice"})
	require.Equal(t, errorx.Unknown, err)
	require.Empty(t, h.committed)
}

func TestMediator_UnknownKind(t *testing.T) {
	ctx := testutil.MockContext()
	m := mediator.New()

	_, err := mediator.Send[countRequest, countResponse](ctx, m, &countRequest{})
	require.Equal(t, errorx.Unknown, err)
}

func TestAfterCommit_OutsideCommand(t *testing.T) {
	called := false
	mediator.AfterCommit(context.Background(), func(context.Context) { called = true })
	require.True(t, called)
}
