package network

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samber/lo"
)

// FakeClient answers every request in place without touching the network.
// Codes maps a path to the status it should answer with; unknown paths get 200.
type FakeClient struct {
	Codes map[string]int
}

func NewFakeClient() *FakeClient {
	return &FakeClient{Codes: map[string]int{}}
}

func (c *FakeClient) Execute(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	if req.Path == "" {
		return Response{Code: http.StatusBadRequest}, nil
	}

	if code, ok := c.Codes[req.Path]; ok {
		return Response{Code: code}, nil
	}

	return Response{Code: http.StatusOK}, nil
}

// FakeAPI serves canned users and posts. Every non-negative id is a known user.
type FakeAPI struct{}

func NewFakeAPI() FakeAPI {
	return FakeAPI{}
}

func (FakeAPI) GetUser(ctx context.Context, id int64) (APIUser, error) {
	if err := ctx.Err(); err != nil {
		return APIUser{}, err
	}
	if id < 0 {
		return APIUser{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	return APIUser{
		ID:    id,
		Name:  fmt.Sprintf("User %d", id),
		Email: fmt.Sprintf("user%d@example.com", id),
	}, nil
}

func (FakeAPI) GetPosts(ctx context.Context, userID int64, limit int) ([]APIPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []APIPost{}, nil
	}

	return lo.Times(limit, func(i int) APIPost {
		return APIPost{
			ID:     int64(i + 1),
			UserID: userID,
			Title:  fmt.Sprintf("Post %d by user %d", i+1, userID),
		}
	}), nil
}
