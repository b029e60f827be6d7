package gcs

import (
	"encoding/json"
	"fmt"
	"strconv"

	"stratus/pkg/common"
	"stratus/pkg/storage"
)

// Pure mapping from provider JSON records to domain values. A record
// missing a required field fails with ErrMalformedResponse; a partially
// populated value is never returned.

func toContainer(item map[string]any) (storage.Container, error) {
	name, ok := item["name"].(string)
	if !ok || name == "" {
		return storage.Container{}, fmt.Errorf("%w: bucket record missing name", storage.ErrMalformedResponse)
	}

	return storage.Container{
		Name:     name,
		Provider: common.GCS,
		Extra:    item,
	}, nil
}

func toObject(item map[string]any, containerName string) (storage.Object, error) {
	name, ok := item["name"].(string)
	if !ok || name == "" {
		return storage.Object{}, fmt.Errorf("%w: object record missing name", storage.ErrMalformedResponse)
	}

	size, err := toSize(item["size"])
	if err != nil {
		return storage.Object{}, fmt.Errorf("%w: object %q: %v", storage.ErrMalformedResponse, name, err)
	}

	hash, ok := item["md5Hash"].(string)
	if !ok || hash == "" {
		return storage.Object{}, fmt.Errorf("%w: object %q missing md5Hash", storage.ErrMalformedResponse, name)
	}

	return storage.Object{
		Name:          name,
		ContainerName: containerName,
		Provider:      common.GCS,
		Size:          size,
		Hash:          hash,
		MetaData:      toMetaData(item["metadata"]),
		Extra:         item,
	}, nil
}

// The JSON API encodes object sizes as decimal strings; accept a plain
// number as well since emulators emit one.
func toSize(v any) (int64, error) {
	switch n := v.(type) {
	case string:
		size, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid size %q", n)
		}
		return size, nil
	case float64:
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case nil:
		return 0, fmt.Errorf("missing size")
	default:
		return 0, fmt.Errorf("unexpected size type %T", v)
	}
}

func toMetaData(v any) map[string]string {
	meta := make(map[string]string)
	raw, ok := v.(map[string]any)
	if !ok {
		return meta
	}
	for k, val := range raw {
		if s, ok := val.(string); ok {
			meta[k] = s
		}
	}
	return meta
}
