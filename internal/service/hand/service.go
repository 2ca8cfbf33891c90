package hand

import (
	"context"
	"time"

	"poker-hand-service/internal/model"
	"poker-hand-service/internal/repo"

	"github.com/google/uuid"
)

type Service struct {
	repo *repo.HandRepository
}

func NewService(r *repo.HandRepository) *Service {
	return &Service{repo: r}
}

// CreateParams is the client's view of a finished hand. Shape
// validation happens at the API boundary; business checks (such as a
// non-empty participant set) happen in the calculator.
type CreateParams struct {
	StackSettings  model.StackSettings
	PlayerRoles    map[string]string
	HoleCards      map[string][]string
	ActionSequence string
}

// Process assembles a complete hand record from client input: a fresh
// id, the current UTC timestamp and computed winnings. It has no side
// effects beyond clock and id generation.
func Process(params CreateParams) (*model.Hand, error) {
	winnings, err := CalculateWinnings(params.StackSettings, params.HoleCards, params.ActionSequence)
	if err != nil {
		return nil, err
	}

	return &model.Hand{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		StackSettings:  params.StackSettings,
		PlayerRoles:    params.PlayerRoles,
		HoleCards:      params.HoleCards,
		ActionSequence: params.ActionSequence,
		Winnings:       winnings,
	}, nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*model.Hand, error) {
	record, err := Process(params)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, record)
}

func (s *Service) List(ctx context.Context) []model.Hand {
	return s.repo.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*model.Hand, error) {
	return s.repo.GetByID(ctx, id)
}
