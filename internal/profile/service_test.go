package profile_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlist/internal/profile"
	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
)

type fakeBlobStore struct {
	objects map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, key, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBlobStore) SignedURL(_ context.Context, key string) (string, error) {
	if _, ok := f.objects[key]; !ok {
		return "", fmt.Errorf("no such object %q", key)
	}
	return "https://blobs.test/" + key + "?sig=abc", nil
}

func newService(t *testing.T, blobs profile.BlobStore) (*profile.Service, *profile.InMemoryStore) {
	t.Helper()
	store := profile.NewInMemoryStore()
	return profile.NewService(store, blobs, slog.Default()), store
}

func TestService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)
	userID := id.NewUserID()

	created, err := svc.Create(ctx, userID, "alice_w", "Alice Waters")
	require.NoError(t, err)
	assert.Equal(t, "alice_w", created.Username)

	got, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Waters", got.FullName)
	assert.Empty(t, got.AvatarURL)
}

func TestService_Create_ValidatesUsername(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	for _, username := range []string{"ab", "has space", "p@ul", ""} {
		_, err := svc.Create(ctx, id.NewUserID(), username, "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "username %q", username)
	}
}

func TestService_Create_RejectsTakenUsername(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	_, err := svc.Create(ctx, id.NewUserID(), "alice", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, id.NewUserID(), "Alice", "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodePreconditionFailed))
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)
	userID := id.NewUserID()
	_, err := svc.Create(ctx, userID, "alice", "Alice")
	require.NoError(t, err)

	bio := "collector of summits"
	updated, err := svc.Update(ctx, userID, profile.Update{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "collector of summits", updated.Bio)
	assert.Equal(t, "alice", updated.Username, "unset fields stay put")

	city := "Kathmandu"
	updated, err = svc.Update(ctx, userID, profile.Update{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Kathmandu", updated.City)
	assert.Equal(t, "collector of summits", updated.Bio, "earlier update survives")

	fetched, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Kathmandu", fetched.City)
}

func TestService_Update_UnknownUserIsNotFound(t *testing.T) {
	svc, _ := newService(t, nil)
	bio := "x"
	_, err := svc.Update(context.Background(), id.NewUserID(), profile.Update{Bio: &bio})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	for _, username := range []string{"alice", "alicia", "bob"} {
		_, err := svc.Create(ctx, id.NewUserID(), username, "")
		require.NoError(t, err)
	}

	results, err := svc.Search(ctx, "ali", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "alice", results[0].Username)

	results, err = svc.Search(ctx, "  ", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestService_UploadAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the object and signs reads", func(t *testing.T) {
		blobs := newFakeBlobStore()
		svc, _ := newService(t, blobs)
		userID := id.NewUserID()
		_, err := svc.Create(ctx, userID, "alice", "")
		require.NoError(t, err)

		p, err := svc.UploadAvatar(ctx, userID, "image/png", bytes.NewReader([]byte("png-bytes")))
		require.NoError(t, err)
		assert.Contains(t, p.AvatarKey, userID.String())
		assert.Contains(t, p.AvatarURL, "sig=")

		got, err := svc.Get(ctx, userID)
		require.NoError(t, err)
		assert.NotEmpty(t, got.AvatarURL)
	})

	t.Run("unavailable without a blob store", func(t *testing.T) {
		svc, _ := newService(t, nil)
		userID := id.NewUserID()
		_, err := svc.Create(ctx, userID, "alice", "")
		require.NoError(t, err)

		_, err = svc.UploadAvatar(ctx, userID, "image/png", bytes.NewReader(nil))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}
