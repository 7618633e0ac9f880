package feature

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/samber/lo"

	"github.com/0x0BSoD/featfeed/internal/model"
	"github.com/0x0BSoD/featfeed/internal/network"
)

type Service struct {
	config     Config
	repository *Repository
	uiMapper   *UIMapper
	client     network.Client
}

func NewService(
	config Config,
	repository *Repository,
	uiMapper *UIMapper,
	client network.Client,
) *Service {
	return &Service{
		config:     config,
		repository: repository,
		uiMapper:   uiMapper,
		client:     client,
	}
}

// New assembles the whole pipeline of one feature.
func New(config Config, api network.API, client network.Client) *Service {
	return NewService(
		config,
		NewRepository(api, config),
		NewUIMapper(config.Name),
		client,
	)
}

func (s *Service) Name() string {
	return s.config.Name
}

func (s *Service) Mapper() *UIMapper {
	return s.uiMapper
}

// BuildUIForUser maps the first fetched user through the pipeline as an
// active user. A failed fetch produces the error state.
func (s *Service) BuildUIForUser(ctx context.Context, userID int64) UIModel {
	snapshot, err := s.repository.LoadSnapshot(ctx, userID)
	if err != nil {
		log.Printf("[ERROR] %s: failed to load snapshot for user %d: %v", s.config.Name, userID, err)
		return s.uiMapper.ErrorState(err.Error())
	}

	if len(snapshot.Users) == 0 {
		s.debugf("no users in snapshot for user %d", userID)
		return s.uiMapper.EmptyState()
	}

	s.debugf("snapshot for user %d: %d posts, hash %08x", userID, len(snapshot.Posts), snapshot.RawHash)

	user := model.User{
		ID:       snapshot.Users[0].ID,
		Name:     snapshot.Users[0].Name,
		IsActive: true,
	}

	return s.uiMapper.MapToUI(s.repository.ToFeedItems([]model.User{user}))
}

func (s *Service) Ping(ctx context.Context, path string) (int, error) {
	resp, err := s.client.Execute(ctx, network.Request{
		Path:   path,
		Method: http.MethodGet,
	})
	if err != nil {
		return 0, fmt.Errorf("ping %s: %w", path, err)
	}

	s.debugf("ping %s: %d", path, resp.Code)

	return resp.Code, nil
}

// DemoComplexFlow pushes usersCount synthetic users through the pipeline.
func (s *Service) DemoComplexFlow(usersCount int) UIModel {
	users := lo.Times(max(usersCount, 0), model.NewUser)
	return s.uiMapper.MapToUI(s.repository.ToFeedItems(users))
}

func (s *Service) debugf(format string, args ...any) {
	if !s.config.EnableLogging {
		return
	}
	log.Printf("[DEBUG] "+s.config.Name+": "+format, args...)
}
