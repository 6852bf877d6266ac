package authenticator_test

import (
	"testing"
	"time"

	"github.com/atoz-lab/backend/config"
	"github.com/atoz-lab/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Username string `json:"username"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine[payload](config.TokenConfigs{
		Secret:     "secret",
		Expiration: time.Minute,
	})
	token, err := engine.Generate("bob", payload{Username: "bob"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "bob", obj.Username)

	claims, err := engine.Claims(token)
	require.NoError(t, err)
	require.Equal(t, "bob", claims.Subject)
	require.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine[payload](config.TokenConfigs{
		Secret:     "secret",
		Expiration: -time.Minute,
	})
	token, err := engine.Generate("bob", payload{Username: "bob"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	cfg := config.TokenConfigs{Secret: "secret", Expiration: time.Minute}
	token, err := authenticator.NewTokenEngine[payload](cfg).Generate("bob", payload{})
	require.NoError(t, err)

	cfg.Secret = "another"
	_, err = authenticator.NewTokenEngine[payload](cfg).Verify(token)
	require.Error(t, err)
}
