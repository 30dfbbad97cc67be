package testutil

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"
)

const (
	redisImage = "redis:8-alpine"

	firestoreEmulatorHostEnv = "FIRESTORE_EMULATOR_HOST"
	emulatorProjectID        = "reminder-dispatcher-test"
)

// SetupRedisContainer starts a throwaway Redis for dedup state tests. The
// test is skipped when Docker is unavailable.
func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start redis container: %v", r)
		}
	}()

	container, err := redismodule.Run(ctx, redisImage)
	if err != nil {
		t.Skipf("failed to start redis container: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	cleanup := func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}

		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	}

	if err := client.Ping(ctx).Err(); err != nil {
		cleanup()
		t.Skipf("redis container not reachable: %v", err)
	}

	return client, cleanup
}

// SetupFirestoreEmulator connects to the emulator named by
// FIRESTORE_EMULATOR_HOST and skips the test when it is not set.
func SetupFirestoreEmulator(ctx context.Context, t *testing.T) *firestore.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if os.Getenv(firestoreEmulatorHostEnv) == "" {
		t.Skipf("%s not set", firestoreEmulatorHostEnv)
	}

	client, err := firestore.NewClient(ctx, emulatorProjectID)
	if err != nil {
		t.Fatalf("failed to create firestore client: %v", err)
	}
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close firestore client: %v", err)
		}
	})

	return client
}
