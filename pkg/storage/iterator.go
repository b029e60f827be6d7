package storage

import (
	"context"

	"google.golang.org/api/iterator"
)

// ContainerPageFunc fetches one page of containers. pageToken is empty
// for the first page; the returned token is empty when no further pages
// exist. The continuation token is threaded explicitly through the
// iterator rather than stored on the connection, so concurrent listings
// cannot corrupt each other's cursors.
type ContainerPageFunc func(ctx context.Context, pageToken string) ([]Container, string, error)

// ObjectPageFunc fetches one page of objects, with the same token
// contract as ContainerPageFunc.
type ObjectPageFunc func(ctx context.Context, pageToken string) ([]Object, string, error)

// ContainerIterator yields containers lazily, page by page, in the
// order the provider returns them (provider-defined, not guaranteed
// stable). Each List call produces a fresh iterator that re-issues
// requests from the first page.
type ContainerIterator struct {
	ctx       context.Context
	fetch     ContainerPageFunc
	items     []Container
	pageToken string
	done      bool
}

func NewContainerIterator(ctx context.Context, fetch ContainerPageFunc) *ContainerIterator {
	return &ContainerIterator{ctx: ctx, fetch: fetch}
}

// Next returns the next container. It returns iterator.Done when the
// sequence is exhausted.
func (it *ContainerIterator) Next() (Container, error) {
	for len(it.items) == 0 {
		if it.done {
			return Container{}, iterator.Done
		}
		items, token, err := it.fetch(it.ctx, it.pageToken)
		if err != nil {
			return Container{}, err
		}
		it.items = items
		it.pageToken = token
		if token == "" {
			it.done = true
		}
	}
	c := it.items[0]
	it.items = it.items[1:]
	return c, nil
}

// ObjectIterator yields objects lazily with the same semantics as
// ContainerIterator.
type ObjectIterator struct {
	ctx       context.Context
	fetch     ObjectPageFunc
	items     []Object
	pageToken string
	done      bool
}

func NewObjectIterator(ctx context.Context, fetch ObjectPageFunc) *ObjectIterator {
	return &ObjectIterator{ctx: ctx, fetch: fetch}
}

// Next returns the next object. It returns iterator.Done when the
// sequence is exhausted.
func (it *ObjectIterator) Next() (Object, error) {
	for len(it.items) == 0 {
		if it.done {
			return Object{}, iterator.Done
		}
		items, token, err := it.fetch(it.ctx, it.pageToken)
		if err != nil {
			return Object{}, err
		}
		it.items = items
		it.pageToken = token
		if token == "" {
			it.done = true
		}
	}
	o := it.items[0]
	it.items = it.items[1:]
	return o, nil
}
