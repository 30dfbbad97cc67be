package docstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability/tracing"
)

type userRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) domain.UserRepository {
	return &userRepository{
		client: client,
	}
}

func (r *userRepository) userDoc(userID string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(userID)
}

// ListUserIDs walks document references rather than documents so users that
// exist only as the parent of subcollections are included.
func (r *userRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	ctx, span := tracing.StartFirestoreOperationSpan(ctx, "list_users", usersCollection)
	defer span.End()

	iter := r.client.Collection(usersCollection).DocumentRefs(ctx)

	ids := make([]string, 0)
	for {
		ref, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
		ids = append(ids, ref.ID)
	}

	return ids, nil
}

func (r *userRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	ref := r.userDoc(userID).Collection(profileCollection).Doc(profileDocID)

	ctx, span := tracing.StartFirestoreOperationSpan(ctx, "get_profile", ref.Path)
	defer span.End()

	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrProfileNotFound
		}
		tracing.RecordError(span, err)
		return nil, err
	}

	return decodeProfile(userID, snap.Data()), nil
}

func (r *userRepository) ListPushDevices(ctx context.Context, userID string) ([]domain.Device, error) {
	col := r.userDoc(userID).Collection(devicesCollection)

	ctx, span := tracing.StartFirestoreOperationSpan(ctx, "list_devices", col.Path)
	defer span.End()

	docs, err := col.Where(deviceFieldPushEnabled, "==", true).Documents(ctx).GetAll()
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	devices := make([]domain.Device, 0, len(docs))
	for _, doc := range docs {
		device := decodeDevice(doc.Ref.ID, doc.Data())
		if !device.CanReceivePush() {
			continue
		}
		devices = append(devices, device)
	}

	return devices, nil
}

// DeleteDevices removes all given registrations in one transaction. Missing
// documents are not an error.
func (r *userRepository) DeleteDevices(ctx context.Context, userID string, deviceIDs []string) error {
	if len(deviceIDs) == 0 {
		return nil
	}

	col := r.userDoc(userID).Collection(devicesCollection)

	ctx, span := tracing.StartFirestoreOperationSpan(ctx, "delete_devices", col.Path)
	defer span.End()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, id := range deviceIDs {
			if err := tx.Delete(col.Doc(id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to delete %d devices: %w", len(deviceIDs), err)
	}

	return nil
}
