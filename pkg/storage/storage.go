package storage

import (
	"context"
	"stratus/pkg/common"
)

// Storage is the provider-neutral interface every storage backend
// implements. Implementations perform no local caching and no retries;
// every call maps to provider API requests issued at call time.
type Storage interface {
	ProviderName() common.Provider

	// ListContainers returns a lazy iterator over all containers
	// visible to the configured project.
	ListContainers(ctx context.Context) *ContainerIterator

	// ListContainerObjects returns a lazy iterator over the objects in
	// one container.
	ListContainerObjects(ctx context.Context, container Container) *ObjectIterator

	// GetContainer resolves a single container by name. A missing
	// container yields ErrContainerNotFound, never a zero Container.
	GetContainer(ctx context.Context, name string) (Container, error)

	// GetObject resolves the container first, then the object. A
	// missing object yields ErrObjectNotFound.
	GetObject(ctx context.Context, containerName, objectName string) (Object, error)

	// CreateContainer creates a container and returns the mapped
	// record. A name collision yields ErrContainerAlreadyExists.
	CreateContainer(ctx context.Context, name string) (Container, error)

	// DeleteContainer reports true only when the provider confirmed the
	// deletion with an empty response body. A non-empty success body
	// returns false; provider errors are returned as errors, not false.
	DeleteContainer(ctx context.Context, container Container) (bool, error)

	// DeleteObject has the same empty-body-means-success contract as
	// DeleteContainer.
	DeleteObject(ctx context.Context, obj Object) (bool, error)

	// DownloadObject streams the object content to destinationPath.
	// When overwriteExisting is false an existing destination fails the
	// call before any network I/O. When deleteOnFailure is true a
	// partially written destination is removed on transfer failure.
	DownloadObject(ctx context.Context, obj Object, destinationPath string, overwriteExisting, deleteOnFailure bool) error

	Close() error
}
