// Package model defines the core data structures shared by every feature pipeline: the User the pipelines map, the factory helpers that synthesize users for benchmarks, and the Run record produced by the bench runner.
package model

import (
	"fmt"
	"hash/fnv"
	"time"
)

type User struct {
	ID       int64
	Name     string
	Email    string
	IsActive bool
}

type Run struct {
	ID         string        `json:"id" yaml:"id"`
	Feature    string        `json:"feature" yaml:"feature"`
	UsersCount int           `json:"users_count" yaml:"users_count"`
	ItemsCount int           `json:"items_count" yaml:"items_count"`
	Checksum   uint32        `json:"checksum" yaml:"checksum"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	CreatedAt  time.Time     `json:"created_at" yaml:"created_at"`
}

// NewUser synthesizes the i-th benchmark user.
func NewUser(i int) User {
	return User{
		ID:       int64(i),
		Name:     fmt.Sprintf("User-%d", i),
		Email:    fmt.Sprintf("user%d@example.com", i),
		IsActive: i%2 == 0,
	}
}

// SequentialUsers returns count users without email where every third user,
// starting with the first, is inactive.
func SequentialUsers(count int) []User {
	users := make([]User, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, User{
			ID:       int64(i),
			Name:     fmt.Sprintf("User-%d", i),
			IsActive: i%3 != 0,
		})
	}
	return users
}

// Checksum is the 32-bit FNV-1a hash of s.
func Checksum(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
