package api

import (
	"context"
	"fmt"
	"net/http"
)

// Resource is the uniform CRUD surface the backend exposes for each
// entity: /<base>/list, /<base>/list/{id}, /<base>/save,
// /<base>/update/{id}, /<base>/delete/{id}.
type Resource[T any] struct {
	c    *Client
	base string
}

// List fetches all records.
func (r Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, r.base+"/list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one record by id.
func (r Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	out := new(T)
	if err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/list/%d", r.base, id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save creates a record and returns the backend's view of it.
func (r Resource[T]) Save(ctx context.Context, in T) (*T, error) {
	out := new(T)
	if err := r.c.do(ctx, http.MethodPost, r.base+"/save", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the record with the given id.
func (r Resource[T]) Update(ctx context.Context, id int64, in T) (*T, error) {
	out := new(T)
	if err := r.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/update/%d", r.base, id), in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the record with the given id.
func (r Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/delete/%d", r.base, id), nil, nil)
}
