package recordstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Filter narrows a list call, e.g. {"agentId": "3", "status": "pending"}.
type Filter map[string]string

func (f Filter) values() url.Values {
	if len(f) == 0 {
		return nil
	}
	v := url.Values{}
	for k, val := range f {
		v.Set(k, val)
	}
	return v
}

// Service is the uniform CRUD surface of one entity collection.
type Service[T any] struct {
	client *Client
	path   string
}

// List never returns nil on success: no matches means an empty slice.
func (s *Service[T]) List(ctx context.Context, filter Filter) ([]T, error) {
	var out []T
	if err := s.client.do(ctx, http.MethodGet, s.path, filter.values(), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (s *Service[T]) Get(ctx context.Context, id uint) (*T, error) {
	var out T
	if err := s.client.do(ctx, http.MethodGet, s.itemPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts payload and returns the persisted record including its
// server-assigned id.
func (s *Service[T]) Create(ctx context.Context, payload any) (*T, error) {
	var out T
	if err := s.client.do(ctx, http.MethodPost, s.path, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update is a merge patch: fields absent from the payload stay untouched.
func (s *Service[T]) Update(ctx context.Context, id uint, patch any) (*T, error) {
	var out T
	if err := s.client.do(ctx, http.MethodPatch, s.itemPath(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete is idempotent: a missing record already satisfies the desired end
// state, so ErrNotFound is mapped to success.
func (s *Service[T]) Delete(ctx context.Context, id uint) error {
	err := s.client.do(ctx, http.MethodDelete, s.itemPath(id), nil, nil, nil)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// Path is the collection path, used by cache keys.
func (s *Service[T]) Path() string { return s.path }

func (s *Service[T]) itemPath(id uint) string {
	return fmt.Sprintf("%s/%d", s.path, id)
}
