package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratus/internal/config"
	"stratus/internal/provider"
	"stratus/pkg/common"
	"stratus/pkg/storage"
)

// fakeStorage implements storage.Storage over in-memory state.
type fakeStorage struct {
	containers map[string]storage.Container
	objects    map[string]map[string]storage.Object
	closed     bool
}

var _ storage.Storage = (*fakeStorage)(nil)

func (f *fakeStorage) ProviderName() common.Provider { return "FAKE" }

func (f *fakeStorage) ListContainers(ctx context.Context) *storage.ContainerIterator {
	return storage.NewContainerIterator(ctx, func(ctx context.Context, pageToken string) ([]storage.Container, string, error) {
		var out []storage.Container
		for _, c := range f.containers {
			out = append(out, c)
		}
		return out, "", nil
	})
}

func (f *fakeStorage) ListContainerObjects(ctx context.Context, container storage.Container) *storage.ObjectIterator {
	return storage.NewObjectIterator(ctx, func(ctx context.Context, pageToken string) ([]storage.Object, string, error) {
		var out []storage.Object
		for _, o := range f.objects[container.Name] {
			out = append(out, o)
		}
		return out, "", nil
	})
}

func (f *fakeStorage) GetContainer(ctx context.Context, name string) (storage.Container, error) {
	c, ok := f.containers[name]
	if !ok {
		return storage.Container{}, storage.ErrContainerNotFound
	}
	return c, nil
}

func (f *fakeStorage) GetObject(ctx context.Context, containerName, objectName string) (storage.Object, error) {
	if _, err := f.GetContainer(ctx, containerName); err != nil {
		return storage.Object{}, err
	}
	o, ok := f.objects[containerName][objectName]
	if !ok {
		return storage.Object{}, storage.ErrObjectNotFound
	}
	return o, nil
}

func (f *fakeStorage) CreateContainer(ctx context.Context, name string) (storage.Container, error) {
	c := storage.Container{Name: name}
	f.containers[name] = c
	return c, nil
}

func (f *fakeStorage) DeleteContainer(ctx context.Context, container storage.Container) (bool, error) {
	delete(f.containers, container.Name)
	return true, nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, obj storage.Object) (bool, error) {
	delete(f.objects[obj.ContainerName], obj.Name)
	return true, nil
}

func (f *fakeStorage) DownloadObject(ctx context.Context, obj storage.Object, destinationPath string, overwriteExisting, deleteOnFailure bool) error {
	return nil
}

func (f *fakeStorage) Close() error {
	f.closed = true
	return nil
}

// The registry is process-global, so the fake provider registers once
// and hands out whichever instance the current test installed.
var currentFake *fakeStorage

func init() {
	provider.Register("fake", provider.Registration{
		ConfigCheck: func(cfg *config.Config) bool { return true },
		Initializer: func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
			return currentFake, nil
		},
	})
}

func newTestService(t *testing.T, fake *fakeStorage) *StorageService {
	t.Helper()
	currentFake = fake

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	factory := provider.NewFactory(&config.Config{}, logger)
	return NewStorageService(factory, logger)
}

func newFake() *fakeStorage {
	return &fakeStorage{
		containers: map[string]storage.Container{
			"bucket-x": {Name: "bucket-x"},
		},
		objects: map[string]map[string]storage.Object{
			"bucket-x": {
				"file.txt": {Name: "file.txt", ContainerName: "bucket-x", Size: 10, Hash: "abc"},
			},
		},
	}
}

func TestListAllContainers(t *testing.T) {
	fake := newFake()
	s := newTestService(t, fake)

	containers, err := s.ListAllContainers(context.Background(), []string{"fake"})
	require.NoError(t, err)
	require.Len(t, containers, 1)
	assert.Equal(t, "bucket-x", containers[0].Name)
	assert.True(t, fake.closed)
}

func TestListAllContainers_NoProviders(t *testing.T) {
	s := newTestService(t, newFake())

	containers, err := s.ListAllContainers(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, containers)
}

func TestListObjects(t *testing.T) {
	s := newTestService(t, newFake())

	objects, err := s.ListObjects(context.Background(), "fake", "bucket-x")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "file.txt", objects[0].Name)
}

func TestListObjects_ContainerMissing(t *testing.T) {
	s := newTestService(t, newFake())

	_, err := s.ListObjects(context.Background(), "fake", "missing")
	assert.ErrorIs(t, err, storage.ErrContainerNotFound)
}

func TestDeleteContainer_ResolvesFirst(t *testing.T) {
	fake := newFake()
	s := newTestService(t, fake)

	deleted, err := s.DeleteContainer(context.Background(), "fake", "bucket-x")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NotContains(t, fake.containers, "bucket-x")

	_, err = s.DeleteContainer(context.Background(), "fake", "bucket-x")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteObject(t *testing.T) {
	fake := newFake()
	s := newTestService(t, fake)

	deleted, err := s.DeleteObject(context.Background(), "fake", "bucket-x", "file.txt")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.DeleteObject(context.Background(), "fake", "bucket-x", "file.txt")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestUnknownProvider(t *testing.T) {
	s := newTestService(t, newFake())

	_, err := s.ListObjects(context.Background(), "nonexistent", "bucket-x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, storage.ErrNotFound))
}
