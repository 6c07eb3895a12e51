package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"garden-go/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.jwt, env.logger)

	user, err := svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "pw-alice", Name: "Alice", Age: 31})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "pw-alice", user.PasswordHash)
	assert.Equal(t, 0, user.OwnedVegetableIDs.Len())

	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "pw-alice"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "Alice", resp.User.Name)
	assert.Equal(t, []uint{}, resp.User.OwnedVegetableIDs)

	claims, err := env.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.jwt, env.logger)

	_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "bob", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "bob", Password: "wrong"})
	assert.ErrorIs(t, err, ErrLoginFailed)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "secret"})
	assert.ErrorIs(t, err, ErrLoginFailed)

	// accounts carrying a non-bcrypt credential cannot log in
	env.createUser(t, "legacy")
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "legacy", Password: "unused"})
	assert.ErrorIs(t, err, ErrLoginFailed)
}

func TestAuthService_LatestLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.jwt, env.logger)

	_, err := svc.LatestLoginUserID(ctx)
	assert.ErrorIs(t, err, ErrUserNotFound)

	clock := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	alice, err := svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	clock = clock.Add(time.Minute)
	bob, err := svc.Register(ctx, &dto.RegisterRequest{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	// registration counts as the first login
	id, err := svc.LatestLoginUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, id)

	clock = clock.Add(time.Minute)
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	id, err = svc.LatestLoginUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, id)
}

func TestAuthService_GetUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.jwt, env.logger)

	created := env.createUser(t, "carol")
	got, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Username)

	_, err = svc.GetUser(ctx, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_ConcurrentRegistrationSameUsername(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.jwt, env.logger)

	const n = 4
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "racer", Password: "pw"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrUsernameTaken)
	}
	assert.Equal(t, 1, succeeded)
}
