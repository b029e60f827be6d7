package service

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/iterator"

	"stratus/internal/provider"
	"stratus/pkg/storage"
)

type StorageService struct {
	providerFactory *provider.Factory
	logger          *slog.Logger
}

func NewStorageService(providerFactory *provider.Factory, logger *slog.Logger) *StorageService {
	return &StorageService{
		providerFactory: providerFactory,
		logger:          logger.With("service", "StorageService"),
	}
}

// --- Container Operations ---

func (s *StorageService) ListAllContainers(ctx context.Context, providerNames []string) ([]storage.Container, error) {
	if len(providerNames) == 0 {
		return nil, nil
	}

	var allContainers []storage.Container
	for _, providerName := range providerNames {
		client, err := s.providerFactory.GetStorageProvider(ctx, providerName)
		if err != nil {
			return nil, err
		}

		containers, err := collectContainers(client.ListContainers(ctx))
		closeErr := client.Close()
		if err != nil {
			s.logger.Error("Failed to list containers", "provider", providerName, "error", err)
			return nil, err
		}
		if closeErr != nil {
			s.logger.Warn("Failed to close storage client", "provider", providerName, "error", closeErr)
		}

		allContainers = append(allContainers, containers...)
	}

	return allContainers, nil
}

func (s *StorageService) DescribeContainer(ctx context.Context, providerName, containerName string) (storage.Container, error) {
	client, err := s.providerFactory.GetStorageProvider(ctx, providerName)
	if err != nil {
		return storage.Container{}, err
	}
	defer client.Close()

	return client.GetContainer(ctx, containerName)
}

func (s *StorageService) CreateContainer(ctx context.Context, providerName, containerName string) (storage.Container, error) {
	client, err := s.providerFactory.GetStorageProvider(ctx, providerName)
	if err != nil {
		return storage.Container{}, err
	}
	defer client.Close()

	return client.CreateContainer(ctx, containerName)
}

// DeleteContainer resolves the container first, then deletes it. The
// boolean mirrors the driver contract: true means the provider
// confirmed the deletion with an empty response body.
func (s *StorageService) DeleteContainer(ctx context.Context, providerName, containerName string) (bool, error) {
	client, err := s.providerFactory.GetStorageProvider(ctx, providerName)
	if err != nil {
		return false, err
	}
	defer client.Close()

	container, err := client.GetContainer(ctx, containerName)
	if err != nil {
		return false, err
	}

	return client.DeleteContainer(ctx, container)
}

// --- Object Operations ---

func (s *StorageService) ListObjects(ctx context.Context, providerName, containerName string) ([]storage.Object, error) {
	client, err := s.providerFactory.GetStorageProvider(ctx, providerName)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	container, err := client.GetContainer(ctx, containerName)
	if err != nil {
		return nil, err
	}

	objects, err := collectObjects(client.ListContainerObjects(ctx, container))
	if err != nil {
		s.logger.Error("Failed to list objects", "provider", providerName, "container", containerName, "error", err)
		return nil, err
	}
	return objects, nil
}

func (s *StorageService) DescribeObject(ctx context.Context, providerName, containerName, objectName string) (storage.Object, error) {
	client, err := s.providerFactory.GetStorageProvider(ctx, providerName)
	if err != nil {
		return storage.Object{}, err
	}
	defer client.Close()

	return client.GetObject(ctx, containerName, objectName)
}

func (s *StorageService) DeleteObject(ctx context.Context, providerName, containerName, objectName string) (bool, error) {
	client, err := s.providerFactory.GetStorageProvider(ctx, providerName)
	if err != nil {
		return false, err
	}
	defer client.Close()

	obj, err := client.GetObject(ctx, containerName, objectName)
	if err != nil {
		return false, err
	}

	return client.DeleteObject(ctx, obj)
}

func (s *StorageService) DownloadObject(ctx context.Context, providerName, containerName, objectName, destinationPath string, overwriteExisting, deleteOnFailure bool) (storage.Object, error) {
	client, err := s.providerFactory.GetStorageProvider(ctx, providerName)
	if err != nil {
		return storage.Object{}, err
	}
	defer client.Close()

	obj, err := client.GetObject(ctx, containerName, objectName)
	if err != nil {
		return storage.Object{}, err
	}

	if err := client.DownloadObject(ctx, obj, destinationPath, overwriteExisting, deleteOnFailure); err != nil {
		return storage.Object{}, err
	}
	return obj, nil
}

func collectContainers(it *storage.ContainerIterator) ([]storage.Container, error) {
	var containers []storage.Container
	for {
		container, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating containers: %w", err)
		}
		containers = append(containers, container)
	}
	return containers, nil
}

func collectObjects(it *storage.ObjectIterator) ([]storage.Object, error) {
	var objects []storage.Object
	for {
		obj, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}
