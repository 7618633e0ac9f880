package feature

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/samber/lo"

	"github.com/0x0BSoD/featfeed/internal/model"
	"github.com/0x0BSoD/featfeed/internal/network"
)

type Repository struct {
	api    network.API
	config Config
}

func NewRepository(api network.API, config Config) *Repository {
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}

	return &Repository{
		api:    api,
		config: config,
	}
}

// LoadSnapshot fetches the user and one page of their posts. An unknown user
// yields a snapshot without users or posts.
func (r *Repository) LoadSnapshot(ctx context.Context, userID int64) (NetworkSnapshot, error) {
	user, err := r.api.GetUser(ctx, userID)
	if errors.Is(err, network.ErrNotFound) {
		return NetworkSnapshot{
			Users:   []network.APIUser{},
			Posts:   []network.APIPost{},
			RawHash: SnapshotChecksum(nil, nil),
		}, nil
	}
	if err != nil {
		return NetworkSnapshot{}, fmt.Errorf("get user %d: %w", userID, err)
	}

	posts, err := r.api.GetPosts(ctx, userID, r.config.PageSize)
	if err != nil {
		return NetworkSnapshot{}, fmt.Errorf("get posts of user %d: %w", userID, err)
	}

	return NetworkSnapshot{
		Users:   []network.APIUser{user},
		Posts:   posts,
		RawHash: SnapshotChecksum(&user, posts),
	}, nil
}

// SnapshotChecksum hashes the user and posts with 32-bit FNV-1a. The input is
// the user id as 8 big-endian bytes, the user name and a zero byte, followed
// by the same id/title/zero triple for every post in order. A nil user
// contributes nothing.
func SnapshotChecksum(user *network.APIUser, posts []network.APIPost) uint32 {
	h := fnv.New32a()

	write := func(id int64, text string) {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], uint64(id))
		_, _ = h.Write(buf[:])
		_, _ = h.Write([]byte(text))
		_, _ = h.Write([]byte{0})
	}

	if user != nil {
		write(user.ID, user.Name)
	}
	for _, post := range posts {
		write(post.ID, post.Title)
	}

	return h.Sum32()
}

func (r *Repository) ToUserSummary(user model.User) UserSummary {
	return UserSummary{
		ID:       user.ID,
		Name:     user.Name,
		Checksum: model.Checksum(user.Name),
		IsActive: user.IsActive,
	}
}

// ToFeedItems numbers items from zero in input order.
func (r *Repository) ToFeedItems(users []model.User) []FeedItem {
	return lo.Map(users, func(user model.User, i int) FeedItem {
		summary := r.ToUserSummary(user)

		return FeedItem{
			ID:          int64(i),
			Title:       "User " + summary.Name,
			Subtitle:    activity(summary.IsActive),
			UserSummary: summary,
		}
	})
}
