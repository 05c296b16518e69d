package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"crmdash/internal/types"
)

const bulkDeleteConcurrency = 4

// Resource is a typed CRUD endpoint such as /accounts. Every CRM entity page
// shares this one implementation.
type Resource[T any] struct {
	client *Client
	name   types.Resource
}

func NewResource[T any](c *Client, name types.Resource) *Resource[T] {
	return &Resource[T]{client: c, name: name}
}

func (r *Resource[T]) Name() types.Resource {
	return r.name
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.doJSON(ctx, http.MethodGet, r.collectionURL(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	target, err := r.itemURL(id)
	if err != nil {
		return nil, err
	}
	var out T
	if err := r.client.doJSON(ctx, http.MethodGet, target, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Create(ctx context.Context, item T) (*T, error) {
	var out T
	if err := r.client.doJSON(ctx, http.MethodPost, r.collectionURL(), item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id string, item T) (*T, error) {
	target, err := r.itemURL(id)
	if err != nil {
		return nil, err
	}
	var out T
	if err := r.client.doJSON(ctx, http.MethodPut, target, item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	target, err := r.itemURL(id)
	if err != nil {
		return err
	}
	return r.client.doJSON(ctx, http.MethodDelete, target, nil, nil)
}

// DeleteMany deletes each id independently. Results keep the input order and
// one failure does not stop the others.
func (r *Resource[T]) DeleteMany(ctx context.Context, ids []string) []DeleteResult {
	results := make([]DeleteResult, len(ids))
	var group errgroup.Group
	group.SetLimit(bulkDeleteConcurrency)
	for i, id := range ids {
		results[i].ID = id
		group.Go(func() error {
			results[i].Err = r.Delete(ctx, id)
			return nil
		})
	}
	_ = group.Wait()
	return results
}

func (r *Resource[T]) collectionURL() string {
	return r.client.baseURL + "/" + string(r.name)
}

func (r *Resource[T]) itemURL(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("id is required")
	}
	return r.collectionURL() + "/" + url.PathEscape(id), nil
}

// Records lists a resource as untyped JSON objects.
func (c *Client) Records(ctx context.Context, name types.Resource) ([]map[string]any, error) {
	return NewResource[map[string]any](c, name).List(ctx)
}

// DeleteRecords removes ids from a resource collection, one request per id.
func (c *Client) DeleteRecords(ctx context.Context, name types.Resource, ids []string) []DeleteResult {
	return NewResource[map[string]any](c, name).DeleteMany(ctx, ids)
}
