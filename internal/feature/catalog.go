package feature

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0x0BSoD/featfeed/internal/network"
)

var ErrUnknownFeature = errors.New("unknown feature")

// Catalog holds one pipeline per configured feature, in configuration order.
type Catalog struct {
	names    []string
	services map[string]*Service
}

func NewCatalog(configs []Config, api network.API, client network.Client) (*Catalog, error) {
	c := &Catalog{
		names:    make([]string, 0, len(configs)),
		services: make(map[string]*Service, len(configs)),
	}

	for _, cfg := range configs {
		cfg.Name = strings.TrimSpace(cfg.Name)
		if cfg.Name == "" {
			return nil, errors.New("feature name is required")
		}
		if _, ok := c.services[cfg.Name]; ok {
			return nil, fmt.Errorf("duplicate feature %q", cfg.Name)
		}

		c.names = append(c.names, cfg.Name)
		c.services[cfg.Name] = New(cfg, api, client)
	}

	return c, nil
}

func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Catalog) Get(name string) (*Service, error) {
	svc, ok := c.services[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFeature)
	}
	return svc, nil
}

// Services returns the pipelines in configuration order.
func (c *Catalog) Services() []*Service {
	out := make([]*Service, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.services[name])
	}
	return out
}
