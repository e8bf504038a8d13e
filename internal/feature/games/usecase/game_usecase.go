// Package usecase implements the business logic for game records: group
// validation, uniqueness of the (title, year, developer) triple and
// projection of stored records into basic or full views.
package usecase

import (
	"context"
	"errors"

	"games_backend/internal/feature/games/domain/entity"
	"games_backend/internal/platform/apperror"
	"games_backend/internal/platform/storage"
	"games_backend/internal/platform/validation"
)

// Echo selects how much of a game a response includes.
type Echo string

const (
	// EchoBasic exposes id, title, year and developer.
	EchoBasic Echo = "basic"
	// EchoFull exposes every field.
	EchoFull Echo = "full"
)

// ParseEcho parses the "details" query value. An empty value selects the
// basic view; anything else unknown is a validation failure.
func ParseEcho(raw string) (Echo, error) {
	switch raw {
	case "", string(EchoBasic):
		return EchoBasic, nil
	case string(EchoFull):
		return EchoFull, nil
	}
	return "", apperror.NewValidation("Invalid Query Param", nil)
}

// GameRepository abstracts the persistence layer for game records.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (storage).
type GameRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Game, error)
	Find(ctx context.Context, filter storage.Filter) ([]*entity.Game, error)
	Create(ctx context.Context, game *entity.Game) (*entity.Game, error)
	Update(ctx context.Context, id string, fields storage.Fields) (*entity.Game, error)
	Delete(ctx context.Context, id string) (bool, error)
}

var _ GameRepository = (*storage.Repository[entity.Game, *entity.Game])(nil)

// GameUsecase provides the game operations behind the HTTP layer.
type GameUsecase struct {
	repo GameRepository
}

// NewGameUsecase creates a GameUsecase over the given repository.
func NewGameUsecase(repo GameRepository) *GameUsecase {
	return &GameUsecase{repo: repo}
}

// CreateGame validates the payload under the create group, rejects a
// duplicate (title, year, developer) triple and stores the game. The check
// and the write are not atomic; two concurrent creates of the same triple
// can both succeed.
func (u *GameUsecase) CreateGame(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if err := gameSchema.Validate(payload, validation.Create); err != nil {
		return nil, apperror.NewValidation("Invalid Model", err)
	}
	model := gameModelFrom(payload)

	exists, err := u.gameDetailsExist(ctx, *model.title, *model.year, *model.developer, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflict("Game Already Exists")
	}

	created, err := u.repo.Create(ctx, model.entity())
	if err != nil {
		return nil, err
	}
	return fullGameView(created), nil
}

// GetGame returns one game projected per the echo mode.
func (u *GameUsecase) GetGame(ctx context.Context, id string, details Echo) (map[string]any, error) {
	game, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.NewNotFound("Game Not Found")
		}
		return nil, err
	}
	return projectGame(game, details), nil
}

// GetAllGames returns every game projected per the echo mode.
func (u *GameUsecase) GetAllGames(ctx context.Context, details Echo) ([]map[string]any, error) {
	games, err := u.repo.Find(ctx, nil)
	if err != nil {
		return nil, err
	}
	views := make([]map[string]any, len(games))
	for i, game := range games {
		views[i] = projectGame(game, details)
	}
	return views, nil
}

// UpdateGame validates the payload under the given group and merges it onto
// the stored record. If any of title, year or developer is supplied, all
// three must be, and the new triple must not belong to a different record.
func (u *GameUsecase) UpdateGame(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error) {
	if err := gameSchema.Validate(payload, group); err != nil {
		return nil, apperror.NewValidation("Invalid Model", err)
	}
	model := gameModelFrom(payload)

	exists, err := u.GameIDExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NewNotFound("Game Not Found")
	}

	if model.title != nil || model.year != nil || model.developer != nil {
		if model.title == nil || model.year == nil || model.developer == nil {
			return nil, apperror.NewValidation("Game Details Missing", nil)
		}
		taken, err := u.gameDetailsExist(ctx, *model.title, *model.year, *model.developer, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.NewConflict("Game Already Exists")
		}
	}

	updated, err := u.repo.Update(ctx, id, model.fields())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.NewNotFound("Game Not Found")
		}
		return nil, err
	}
	return fullGameView(updated), nil
}

// DeleteGame removes one game, reporting whether a record was removed.
func (u *GameUsecase) DeleteGame(ctx context.Context, id string) (bool, error) {
	exists, err := u.GameIDExists(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, apperror.NewNotFound("Game Not Found")
	}
	return u.repo.Delete(ctx, id)
}

// GameIDExists reports whether the id resolves to a stored game.
func (u *GameUsecase) GameIDExists(ctx context.Context, id string) (bool, error) {
	_, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// gameDetailsExist reports whether the (title, year, developer) triple is
// already used by a record other than excludeID.
func (u *GameUsecase) gameDetailsExist(ctx context.Context, title string, year int, developer string, excludeID string) (bool, error) {
	matches, err := u.repo.Find(ctx, storage.Filter{
		"title":     title,
		"year":      year,
		"developer": developer,
	})
	if err != nil {
		return false, err
	}
	for _, game := range matches {
		if game.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
