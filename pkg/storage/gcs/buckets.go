package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"stratus/pkg/storage"
)

// listResponse is the shared shape of the bucket and object list
// endpoints: a page of records plus an optional continuation token.
type listResponse struct {
	Items         []map[string]any `json:"items"`
	NextPageToken string           `json:"nextPageToken"`
}

// listPage fetches one page of a listing. The continuation token is an
// explicit parameter and the next token an explicit result; no cursor
// state lives on the connection.
func (g *GCSStorage) listPage(ctx context.Context, path string, base url.Values, pageToken string) ([]map[string]any, string, error) {
	params := url.Values{}
	for k, v := range base {
		params[k] = v
	}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	res, err := g.conn.Request(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, "", err
	}

	var page listResponse
	if err := res.Decode(&page); err != nil {
		return nil, "", fmt.Errorf("%w: %v", storage.ErrMalformedResponse, err)
	}
	return page.Items, page.NextPageToken, nil
}

// ListContainers iterates all buckets of the configured project. Pages
// are fetched on demand; the provider decides the ordering.
func (g *GCSStorage) ListContainers(ctx context.Context) *storage.ContainerIterator {
	g.logger.Debug("Starting GCS ListContainers operation", "project", g.projectID)

	base := url.Values{"project": {g.projectID}}
	fetch := func(ctx context.Context, pageToken string) ([]storage.Container, string, error) {
		items, next, err := g.listPage(ctx, "/b", base, pageToken)
		if err != nil {
			return nil, "", storage.NewError("ListContainers", "", providerName, err)
		}

		containers := make([]storage.Container, 0, len(items))
		for _, item := range items {
			container, err := toContainer(item)
			if err != nil {
				return nil, "", storage.NewError("ListContainers", "", providerName, err)
			}
			containers = append(containers, container)
		}
		return containers, next, nil
	}
	return storage.NewContainerIterator(ctx, fetch)
}

func (g *GCSStorage) GetContainer(ctx context.Context, name string) (storage.Container, error) {
	g.logger.Debug("Starting GCS GetContainer operation", "container", name)

	res, err := g.conn.Request(ctx, http.MethodGet, "/b/"+url.PathEscape(name), nil, nil)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = storage.ErrContainerNotFound
		}
		return storage.Container{}, storage.NewError("GetContainer", name, providerName, err)
	}

	var item map[string]any
	if err := res.Decode(&item); err != nil {
		return storage.Container{}, storage.NewError("GetContainer", name, providerName,
			fmt.Errorf("%w: %v", storage.ErrMalformedResponse, err))
	}
	// An absent record is converted into a typed failure here rather
	// than surfacing an empty Container to the caller.
	if len(item) == 0 {
		return storage.Container{}, storage.NewError("GetContainer", name, providerName, storage.ErrContainerNotFound)
	}

	container, err := toContainer(item)
	if err != nil {
		return storage.Container{}, storage.NewError("GetContainer", name, providerName, err)
	}
	return container, nil
}

func (g *GCSStorage) CreateContainer(ctx context.Context, name string) (storage.Container, error) {
	g.logger.Debug("Starting GCS CreateContainer operation", "container", name)

	params := url.Values{"project": {g.projectID}}
	body := map[string]string{"name": name}

	res, err := g.conn.Request(ctx, http.MethodPost, "/b", params, body)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			err = storage.ErrContainerAlreadyExists
		}
		return storage.Container{}, storage.NewError("CreateContainer", name, providerName, err)
	}

	var item map[string]any
	if err := res.Decode(&item); err != nil {
		return storage.Container{}, storage.NewError("CreateContainer", name, providerName,
			fmt.Errorf("%w: %v", storage.ErrMalformedResponse, err))
	}

	container, err := toContainer(item)
	if err != nil {
		return storage.Container{}, storage.NewError("CreateContainer", name, providerName, err)
	}
	return container, nil
}

// DeleteContainer reports true only when the provider answered with an
// exactly empty body. A non-empty success body means the deletion was
// not confirmed and returns false, never an error.
func (g *GCSStorage) DeleteContainer(ctx context.Context, container storage.Container) (bool, error) {
	g.logger.Debug("Starting GCS DeleteContainer operation", "container", container.Name)

	res, err := g.conn.Request(ctx, http.MethodDelete, "/b/"+url.PathEscape(container.Name), nil, nil)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = storage.ErrContainerNotFound
		}
		return false, storage.NewError("DeleteContainer", container.Name, providerName, err)
	}
	return res.Empty(), nil
}
