package health

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/iterator"
)

type redisProbe struct {
	client *redis.Client
}

// RedisProbe pings the dedup store when it is backed by Redis.
func RedisProbe(client *redis.Client) Probe {
	if client == nil {
		return nil
	}
	return &redisProbe{client: client}
}

func (p *redisProbe) Name() string { return "redis" }

func (p *redisProbe) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

type firestoreProbe struct {
	client     *firestore.Client
	collection string
}

// FirestoreProbe reads at most one document from collection.
func FirestoreProbe(client *firestore.Client, collection string) Probe {
	if client == nil {
		return nil
	}
	return &firestoreProbe{client: client, collection: collection}
}

func (p *firestoreProbe) Name() string { return "firestore" }

func (p *firestoreProbe) Ping(ctx context.Context) error {
	iter := p.client.Collection(p.collection).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}
