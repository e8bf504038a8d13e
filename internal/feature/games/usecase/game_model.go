package usecase

import (
	"games_backend/internal/feature/games/domain/entity"
	"games_backend/internal/platform/props"
	"games_backend/internal/platform/storage"
	"games_backend/internal/platform/validation"
)

var gameGroups = []validation.Group{validation.Create, validation.Full, validation.Partial}

// gameSchema declares the validated fields of a game payload. Every field
// participates in all three groups; the id is assigned by the backend and is
// never part of a payload.
var gameSchema = validation.Schema{
	"title":                {Kind: validation.KindString, MinLen: 2, MaxLen: 50, Groups: gameGroups},
	"year":                 {Kind: validation.KindInteger, Min: 1958, Groups: gameGroups},
	"genre":                {Kind: validation.KindString, MinLen: 2, MaxLen: 50, Groups: gameGroups},
	"developer":            {Kind: validation.KindString, MinLen: 2, MaxLen: 50, Groups: gameGroups},
	"publisher":            {Kind: validation.KindString, MinLen: 2, MaxLen: 50, Groups: gameGroups},
	"platforms":            {Kind: validation.KindStringList, MinLen: 2, MaxLen: 50, Groups: gameGroups},
	"digital_distribution": {Kind: validation.KindString, MinLen: 2, MaxLen: 50, Groups: gameGroups},
}

// gameModel is the validated request-side shape of a game. Pointer fields
// distinguish absent from zero-valued entries in partial payloads.
type gameModel struct {
	title               *string
	year                *int
	genre               *string
	developer           *string
	publisher           *string
	platforms           []string
	digitalDistribution *string
}

// gameModelFrom builds a gameModel from a validated payload by explicit
// field extraction.
func gameModelFrom(payload map[string]any) gameModel {
	return gameModel{
		title:               validation.StringValue(payload, "title"),
		year:                validation.IntValue(payload, "year"),
		genre:               validation.StringValue(payload, "genre"),
		developer:           validation.StringValue(payload, "developer"),
		publisher:           validation.StringValue(payload, "publisher"),
		platforms:           validation.StringListValue(payload, "platforms"),
		digitalDistribution: validation.StringValue(payload, "digital_distribution"),
	}
}

// entity converts the model to a stored-record shape without an id.
func (m gameModel) entity() *entity.Game {
	game := &entity.Game{}
	if m.title != nil {
		game.Title = *m.title
	}
	if m.year != nil {
		game.Year = *m.year
	}
	if m.genre != nil {
		game.Genre = *m.genre
	}
	if m.developer != nil {
		game.Developer = *m.developer
	}
	if m.publisher != nil {
		game.Publisher = *m.publisher
	}
	if m.platforms != nil {
		game.Platforms = m.platforms
	}
	if m.digitalDistribution != nil {
		game.DigitalDistribution = *m.digitalDistribution
	}
	return game
}

// fields lists the supplied fields for a merge update. The id is never part
// of a model, so it can never leak into an update.
func (m gameModel) fields() storage.Fields {
	fields := storage.Fields{}
	if m.title != nil {
		fields["title"] = *m.title
	}
	if m.year != nil {
		fields["year"] = *m.year
	}
	if m.genre != nil {
		fields["genre"] = *m.genre
	}
	if m.developer != nil {
		fields["developer"] = *m.developer
	}
	if m.publisher != nil {
		fields["publisher"] = *m.publisher
	}
	if m.platforms != nil {
		fields["platforms"] = m.platforms
	}
	if m.digitalDistribution != nil {
		fields["digital_distribution"] = *m.digitalDistribution
	}
	return fields
}

var basicGameKeys = []string{"id", "title", "year", "developer"}

// gameView is the canonical response-side shape of a game, an explicit
// field-by-field copy of the entity.
func gameView(game *entity.Game) map[string]any {
	return map[string]any{
		"id":                   game.ID,
		"title":                game.Title,
		"year":                 game.Year,
		"genre":                game.Genre,
		"developer":            game.Developer,
		"publisher":            game.Publisher,
		"platforms":            game.Platforms,
		"digital_distribution": game.DigitalDistribution,
	}
}

func fullGameView(game *entity.Game) map[string]any {
	return props.Omit(gameView(game))
}

func basicGameView(game *entity.Game) map[string]any {
	return props.Pick(gameView(game), basicGameKeys...)
}

func projectGame(game *entity.Game, details Echo) map[string]any {
	if details == EchoBasic {
		return basicGameView(game)
	}
	return fullGameView(game)
}
