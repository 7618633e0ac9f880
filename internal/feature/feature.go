// Package feature implements the generic feed pipeline every feature module runs:
// fetch a snapshot from the API, derive feed items from users and map them to a
// UI model. A feature is one Config value, not a separate type.
package feature

import (
	"github.com/0x0BSoD/featfeed/internal/network"
	"github.com/0x0BSoD/featfeed/internal/ui"
)

const DefaultPageSize = 20

type Config struct {
	Name          string
	PageSize      int
	EnableLogging bool
}

// NewConfig returns the default configuration of the named feature.
func NewConfig(name string) Config {
	return Config{
		Name:          name,
		PageSize:      DefaultPageSize,
		EnableLogging: true,
	}
}

type UserSummary struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Checksum uint32 `json:"checksum" yaml:"checksum"`
	IsActive bool   `json:"is_active" yaml:"is_active"`
}

type FeedItem struct {
	ID          int64       `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Subtitle    string      `json:"subtitle" yaml:"subtitle"`
	UserSummary UserSummary `json:"user_summary" yaml:"user_summary"`
}

// UIModel is the view state handed to presentation code. An empty Error means
// no error.
type UIModel struct {
	Header  ui.Text       `json:"header" yaml:"header"`
	Items   []ui.ListItem `json:"items" yaml:"items"`
	Loading bool          `json:"loading" yaml:"loading"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`
}

type NetworkSnapshot struct {
	Users   []network.APIUser `json:"users" yaml:"users"`
	Posts   []network.APIPost `json:"posts" yaml:"posts"`
	RawHash uint32            `json:"raw_hash" yaml:"raw_hash"`
}
