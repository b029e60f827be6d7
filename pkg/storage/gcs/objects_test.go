package gcs

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"

	"stratus/pkg/storage"
)

func TestListContainerObjects_Pagination(t *testing.T) {
	var tokens []string
	g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/b/bucket-x/o", r.URL.Path)
		token := r.URL.Query().Get("pageToken")
		tokens = append(tokens, token)
		if token == "" {
			fmt.Fprint(w, `{"items": [{"name": "a.txt", "size": "1", "md5Hash": "h1"}], "nextPageToken": "T"}`)
			return
		}
		fmt.Fprint(w, `{"items": [{"name": "b.txt", "size": "2", "md5Hash": "h2"}]}`)
	}))

	it := g.ListContainerObjects(context.Background(), storage.Container{Name: "bucket-x"})

	var names []string
	for {
		obj, err := it.Next()
		if err == iterator.Done {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, "bucket-x", obj.ContainerName)
		names = append(names, obj.Name)
	}

	assert.Equal(t, []string{"a.txt", "b.txt"}, names)
	assert.Equal(t, []string{"", "T"}, tokens)
}

func TestListContainerObjects_ContainerGone(t *testing.T) {
	g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusNotFound, "no such bucket")
	}))

	_, err := g.ListContainerObjects(context.Background(), storage.Container{Name: "gone"}).Next()
	assert.ErrorIs(t, err, storage.ErrContainerNotFound)
}

func TestGetObject(t *testing.T) {
	t.Run("resolves the container first", func(t *testing.T) {
		var paths []string
		g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			switch r.URL.Path {
			case "/storage/v1/b/bucket-x":
				fmt.Fprint(w, `{"name": "bucket-x"}`)
			case "/storage/v1/b/bucket-x/o/file.txt":
				fmt.Fprint(w, `{"name": "file.txt", "size": "10", "md5Hash": "abc123==", "metadata": {"owner": "ops"}}`)
			default:
				writeAPIError(w, http.StatusNotFound, "unexpected path")
			}
		}))

		obj, err := g.GetObject(context.Background(), "bucket-x", "file.txt")
		require.NoError(t, err)

		assert.Equal(t, []string{"/storage/v1/b/bucket-x", "/storage/v1/b/bucket-x/o/file.txt"}, paths)
		assert.Equal(t, "file.txt", obj.Name)
		assert.Equal(t, "bucket-x", obj.ContainerName)
		assert.Equal(t, int64(10), obj.Size)
		assert.Equal(t, "abc123==", obj.Hash)
		assert.Equal(t, map[string]string{"owner": "ops"}, obj.MetaData)
	})

	t.Run("missing container short-circuits", func(t *testing.T) {
		requests := 0
		g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			writeAPIError(w, http.StatusNotFound, "no such bucket")
		}))

		_, err := g.GetObject(context.Background(), "gone", "file.txt")
		assert.ErrorIs(t, err, storage.ErrContainerNotFound)
		assert.Equal(t, 1, requests)
	})

	t.Run("missing object is a typed failure", func(t *testing.T) {
		g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/storage/v1/b/bucket-x" {
				fmt.Fprint(w, `{"name": "bucket-x"}`)
				return
			}
			writeAPIError(w, http.StatusNotFound, "no such object")
		}))

		_, err := g.GetObject(context.Background(), "bucket-x", "missing.txt")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
		assert.NotErrorIs(t, err, storage.ErrContainerNotFound)
	})
}

func TestDeleteObject(t *testing.T) {
	obj := storage.Object{Name: "file.txt", ContainerName: "bucket-x"}

	t.Run("empty body confirms deletion", func(t *testing.T) {
		g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/storage/v1/b/bucket-x/o/file.txt", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))

		deleted, err := g.DeleteObject(context.Background(), obj)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("non-empty success body does not confirm", func(t *testing.T) {
		g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{}`)
		}))

		deleted, err := g.DeleteObject(context.Background(), obj)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("missing object is a typed failure", func(t *testing.T) {
		g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeAPIError(w, http.StatusNotFound, "no such object")
		}))

		_, err := g.DeleteObject(context.Background(), obj)
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})
}

func TestDownloadObject(t *testing.T) {
	obj := storage.Object{Name: "file.txt", ContainerName: "bucket-x"}

	t.Run("streams content to the destination", func(t *testing.T) {
		g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/storage/v1/b/bucket-x/o/file.txt", r.URL.Path)
			assert.Equal(t, "media", r.URL.Query().Get("alt"))
			fmt.Fprint(w, "object content")
		}))

		dest := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, g.DownloadObject(context.Background(), obj, dest, false, true))

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "object content", string(data))
	})

	t.Run("refuses to overwrite before any network I/O", func(t *testing.T) {
		requests := 0
		g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			fmt.Fprint(w, "object content")
		}))

		dest := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(dest, []byte("existing"), 0o644))

		err := g.DownloadObject(context.Background(), obj, dest, false, true)
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
		assert.Equal(t, 0, requests)

		// The existing file is untouched.
		data, readErr := os.ReadFile(dest)
		require.NoError(t, readErr)
		assert.Equal(t, "existing", string(data))
	})

	t.Run("overwrites when asked", func(t *testing.T) {
		g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "new content")
		}))

		dest := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(dest, []byte("old content"), 0o644))

		require.NoError(t, g.DownloadObject(context.Background(), obj, dest, true, true))

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "new content", string(data))
	})

	t.Run("removes the partial file on transfer failure", func(t *testing.T) {
		g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Promise more bytes than are sent so the client sees a
			// truncated transfer.
			w.Header().Set("Content-Length", "1000")
			w.Write([]byte("partial"))
		}))

		dest := filepath.Join(t.TempDir(), "file.txt")
		err := g.DownloadObject(context.Background(), obj, dest, false, true)
		require.Error(t, err)

		_, statErr := os.Stat(dest)
		assert.True(t, os.IsNotExist(statErr), "partial file should have been removed")
	})

	t.Run("keeps the partial file when cleanup is disabled", func(t *testing.T) {
		g, _ := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", "1000")
			w.Write([]byte("partial"))
		}))

		dest := filepath.Join(t.TempDir(), "file.txt")
		err := g.DownloadObject(context.Background(), obj, dest, false, false)
		require.Error(t, err)

		data, readErr := os.ReadFile(dest)
		require.NoError(t, readErr)
		assert.Equal(t, "partial", string(data))
	})
}
