package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/calendar-couple/couple/internal/couple/domain"
	"github.com/calendar-couple/couple/pkg/clock"
)

// setupRedisContainer starts a throwaway Redis and returns its address.
func setupRedisContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, mappedPort.Port())
}

func TestSessionsAgainstRealRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	addr := setupRedisContainer(t)

	s, err := Open(ctx, Options{Addr: addr}, clock.Real(), 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	rec := domain.RefreshTokenRecord{AccountID: 1, Token: "old", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, s.SaveRefreshToken(ctx, rec))

	ok, err := s.RotateRefreshToken(ctx, "old", domain.RefreshTokenRecord{
		AccountID: 1, Token: "new", ExpiresAt: time.Now().Add(time.Minute),
	})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.RotateRefreshToken(ctx, "old", domain.RefreshTokenRecord{
		AccountID: 1, Token: "newer", ExpiresAt: time.Now().Add(time.Minute),
	})
	require.NoError(t, err)
	require.False(t, ok)

	got, err := s.GetRefreshToken(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "new", got)

	require.NoError(t, s.BlacklistAccessToken(ctx, "access", time.Minute))
	hit, err := s.IsBlacklisted(ctx, "access")
	require.NoError(t, err)
	require.True(t, hit)
}
