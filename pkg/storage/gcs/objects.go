package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"stratus/pkg/storage"
)

func objectPath(containerName, objectName string) string {
	return "/b/" + url.PathEscape(containerName) + "/o/" + url.PathEscape(objectName)
}

// ListContainerObjects iterates the objects of one container. A
// container deleted server-side surfaces as ErrContainerNotFound on the
// first fetch that hits the API.
func (g *GCSStorage) ListContainerObjects(ctx context.Context, container storage.Container) *storage.ObjectIterator {
	g.logger.Debug("Starting GCS ListContainerObjects operation", "container", container.Name)

	path := "/b/" + url.PathEscape(container.Name) + "/o"
	fetch := func(ctx context.Context, pageToken string) ([]storage.Object, string, error) {
		items, next, err := g.listPage(ctx, path, nil, pageToken)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				err = storage.ErrContainerNotFound
			}
			return nil, "", storage.NewError("ListContainerObjects", container.Name, providerName, err)
		}

		objects := make([]storage.Object, 0, len(items))
		for _, item := range items {
			obj, err := toObject(item, container.Name)
			if err != nil {
				return nil, "", storage.NewError("ListContainerObjects", container.Name, providerName, err)
			}
			objects = append(objects, obj)
		}
		return objects, next, nil
	}
	return storage.NewObjectIterator(ctx, fetch)
}

// GetObject resolves the container before fetching the object record;
// an object value is never constructed without its container, even
// though this costs an extra round trip.
func (g *GCSStorage) GetObject(ctx context.Context, containerName, objectName string) (storage.Object, error) {
	g.logger.Debug("Starting GCS GetObject operation", "container", containerName, "object", objectName)

	container, err := g.GetContainer(ctx, containerName)
	if err != nil {
		return storage.Object{}, err
	}

	res, err := g.conn.Request(ctx, http.MethodGet, objectPath(container.Name, objectName), nil, nil)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = storage.ErrObjectNotFound
		}
		return storage.Object{}, storage.NewError("GetObject", objectName, providerName, err)
	}

	var item map[string]any
	if err := res.Decode(&item); err != nil {
		return storage.Object{}, storage.NewError("GetObject", objectName, providerName,
			fmt.Errorf("%w: %v", storage.ErrMalformedResponse, err))
	}
	if len(item) == 0 {
		return storage.Object{}, storage.NewError("GetObject", objectName, providerName, storage.ErrObjectNotFound)
	}

	obj, err := toObject(item, container.Name)
	if err != nil {
		return storage.Object{}, storage.NewError("GetObject", objectName, providerName, err)
	}
	return obj, nil
}

// DeleteObject has the same empty-body-means-confirmed contract as
// DeleteContainer.
func (g *GCSStorage) DeleteObject(ctx context.Context, obj storage.Object) (bool, error) {
	g.logger.Debug("Starting GCS DeleteObject operation", "container", obj.ContainerName, "object", obj.Name)

	res, err := g.conn.Request(ctx, http.MethodDelete, objectPath(obj.ContainerName, obj.Name), nil, nil)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = storage.ErrObjectNotFound
		}
		return false, storage.NewError("DeleteObject", obj.Name, providerName, err)
	}
	return res.Empty(), nil
}

// DownloadObject streams the object content to destinationPath. With
// overwriteExisting false an existing destination fails the call before
// any network I/O and the file is left untouched. With deleteOnFailure
// true a partially written destination is removed when the transfer
// fails.
func (g *GCSStorage) DownloadObject(ctx context.Context, obj storage.Object, destinationPath string, overwriteExisting, deleteOnFailure bool) error {
	const op = "DownloadObject"
	g.logger.Debug("Starting GCS DownloadObject operation",
		"container", obj.ContainerName, "object", obj.Name, "destination", destinationPath)

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwriteExisting {
		if _, err := os.Stat(destinationPath); err == nil {
			return storage.NewError(op, destinationPath, providerName, storage.ErrAlreadyExists)
		} else if !os.IsNotExist(err) {
			return storage.NewError(op, destinationPath, providerName, err)
		}
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	params := url.Values{"alt": {"media"}}
	body, err := g.conn.Media(ctx, objectPath(obj.ContainerName, obj.Name), params)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = storage.ErrObjectNotFound
		}
		return storage.NewError(op, obj.Name, providerName, err)
	}
	defer body.Close()

	file, err := os.OpenFile(destinationPath, flags, 0o644)
	if err != nil {
		return storage.NewError(op, destinationPath, providerName, err)
	}

	if _, err := io.Copy(file, body); err != nil {
		file.Close()
		return storage.NewError(op, destinationPath, providerName, g.cleanupPartial(destinationPath, deleteOnFailure, err))
	}
	if err := file.Close(); err != nil {
		return storage.NewError(op, destinationPath, providerName, g.cleanupPartial(destinationPath, deleteOnFailure, err))
	}
	return nil
}

// cleanupPartial removes a partially written download when requested.
// A failed removal is reported alongside the transfer error so a
// leftover partial file is never silent.
func (g *GCSStorage) cleanupPartial(path string, deleteOnFailure bool, cause error) error {
	if !deleteOnFailure {
		return cause
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w (failed to remove partial file: %v)", cause, err)
	}
	g.logger.Debug("Removed partial download", "destination", path)
	return cause
}
