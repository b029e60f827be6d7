package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"
)

func TestContainerIterator_SinglePage(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, pageToken string) ([]Container, string, error) {
		calls++
		assert.Empty(t, pageToken)
		return []Container{{Name: "a"}, {Name: "b"}, {Name: "c"}}, "", nil
	}

	it := NewContainerIterator(context.Background(), fetch)

	var names []string
	for {
		c, err := it.Next()
		if err == iterator.Done {
			break
		}
		require.NoError(t, err)
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Equal(t, 1, calls)

	// Done stays Done.
	_, err := it.Next()
	assert.Equal(t, iterator.Done, err)
}

func TestContainerIterator_ThreadsToken(t *testing.T) {
	var tokens []string
	fetch := func(ctx context.Context, pageToken string) ([]Container, string, error) {
		tokens = append(tokens, pageToken)
		switch pageToken {
		case "":
			return []Container{{Name: "page1"}}, "T", nil
		case "T":
			return []Container{{Name: "page2"}}, "", nil
		}
		return nil, "", fmt.Errorf("unexpected token %q", pageToken)
	}

	it := NewContainerIterator(context.Background(), fetch)

	var names []string
	for {
		c, err := it.Next()
		if err == iterator.Done {
			break
		}
		require.NoError(t, err)
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{"page1", "page2"}, names)
	assert.Equal(t, []string{"", "T"}, tokens)
}

func TestContainerIterator_SkipsEmptyPages(t *testing.T) {
	fetch := func(ctx context.Context, pageToken string) ([]Container, string, error) {
		if pageToken == "" {
			return nil, "next", nil
		}
		return []Container{{Name: "only"}}, "", nil
	}

	it := NewContainerIterator(context.Background(), fetch)

	c, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, "only", c.Name)

	_, err = it.Next()
	assert.Equal(t, iterator.Done, err)
}

func TestContainerIterator_PropagatesError(t *testing.T) {
	fetchErr := errors.New("listing failed")
	fetch := func(ctx context.Context, pageToken string) ([]Container, string, error) {
		return nil, "", fetchErr
	}

	it := NewContainerIterator(context.Background(), fetch)
	_, err := it.Next()
	assert.ErrorIs(t, err, fetchErr)
}

func TestObjectIterator_ThreadsToken(t *testing.T) {
	fetch := func(ctx context.Context, pageToken string) ([]Object, string, error) {
		if pageToken == "" {
			return []Object{{Name: "one"}, {Name: "two"}}, "more", nil
		}
		return []Object{{Name: "three"}}, "", nil
	}

	it := NewObjectIterator(context.Background(), fetch)

	var names []string
	for {
		o, err := it.Next()
		if err == iterator.Done {
			break
		}
		require.NoError(t, err)
		names = append(names, o.Name)
	}

	assert.Equal(t, []string{"one", "two", "three"}, names)
}
