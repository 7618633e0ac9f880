// Package network holds the transport seen by feature pipelines: a request/response client and the user/post API it fetches snapshots from.
package network

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type Request struct {
	Path   string
	Method string
	Body   []byte
}

type Response struct {
	Code int
	Body []byte
}

type Client interface {
	Execute(ctx context.Context, req Request) (Response, error)
}

type APIUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type APIPost struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body,omitempty"`
}

// API is the user/post backend a feature repository reads from.
// GetUser returns ErrNotFound for unknown users.
type API interface {
	GetUser(ctx context.Context, id int64) (APIUser, error)
	GetPosts(ctx context.Context, userID int64, limit int) ([]APIPost, error)
}
