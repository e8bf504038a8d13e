// Package usecase implements the business logic for user records: group
// validation, email uniqueness, referential integrity of the wishlist
// against the game store and resolution of wishlist references into id
// stubs or fully inlined games.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	games "games_backend/internal/feature/games/usecase"
	"games_backend/internal/feature/users/domain/entity"
	"games_backend/internal/platform/apperror"
	"games_backend/internal/platform/props"
	"games_backend/internal/platform/storage"
	"games_backend/internal/platform/validation"
)

// WishlistEcho selects how a user's wishlist is expanded in responses.
type WishlistEcho string

const (
	// WishlistEchoID expands each entry to an {id} stub.
	WishlistEchoID WishlistEcho = "id"
	// WishlistEchoDetails inlines each referenced game's full view.
	WishlistEchoDetails WishlistEcho = "details"
)

// ParseWishlistEcho parses the "wishlist" query value. An empty value
// selects id stubs; anything else unknown is a validation failure.
func ParseWishlistEcho(raw string) (WishlistEcho, error) {
	switch raw {
	case "", string(WishlistEchoID):
		return WishlistEchoID, nil
	case string(WishlistEchoDetails):
		return WishlistEchoDetails, nil
	}
	return "", apperror.NewValidation("Invalid Query Param", nil)
}

// UserRepository abstracts the persistence layer for user records.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	Find(ctx context.Context, filter storage.Filter) ([]*entity.User, error)
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Update(ctx context.Context, id string, fields storage.Fields) (*entity.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

var _ UserRepository = (*storage.Repository[entity.User, *entity.User])(nil)

// GameDirectory is the slice of the games feature this usecase consumes:
// existence probes for write-time integrity checks and full projections for
// wishlist expansion.
type GameDirectory interface {
	GameIDExists(ctx context.Context, id string) (bool, error)
	GetGame(ctx context.Context, id string, details games.Echo) (map[string]any, error)
}

var _ GameDirectory = (*games.GameUsecase)(nil)

// UserUsecase provides the user operations behind the HTTP layer.
type UserUsecase struct {
	repo  UserRepository
	games GameDirectory
}

// NewUserUsecase creates a UserUsecase over the given repository and game
// directory.
func NewUserUsecase(repo UserRepository, games GameDirectory) *UserUsecase {
	return &UserUsecase{repo: repo, games: games}
}

// CreateUser validates the payload under the create group, rejects a
// duplicate email, hashes the password and stores the user with an empty
// wishlist. The uniqueness check and the write are not atomic.
func (u *UserUsecase) CreateUser(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if err := userSchema.Validate(payload, validation.Create); err != nil {
		return nil, apperror.NewValidation("Invalid Model", err)
	}
	model := userModelFrom(payload)

	exists, err := u.userEmailExists(ctx, *model.email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflict("User Already Exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*model.password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := model.entity()
	user.Password = string(hashed)

	created, err := u.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return u.userView(ctx, created, WishlistEchoID)
}

// GetUser returns one user with the wishlist expanded per the echo mode.
func (u *UserUsecase) GetUser(ctx context.Context, id string, echo WishlistEcho) (map[string]any, error) {
	user, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.NewNotFound("User Not Found")
		}
		return nil, err
	}
	return u.userView(ctx, user, echo)
}

// GetAllUsers returns every user with id-stub wishlists.
func (u *UserUsecase) GetAllUsers(ctx context.Context) ([]map[string]any, error) {
	users, err := u.repo.Find(ctx, nil)
	if err != nil {
		return nil, err
	}
	views := make([]map[string]any, len(users))
	for i, user := range users {
		view, err := u.userView(ctx, user, WishlistEchoID)
		if err != nil {
			return nil, err
		}
		views[i] = view
	}
	return views, nil
}

// UpdateUser validates the payload under the given group and merges it onto
// the stored record. A supplied email must not belong to a different user;
// every supplied wishlist id must resolve to an existing game.
func (u *UserUsecase) UpdateUser(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error) {
	if err := userSchema.Validate(payload, group); err != nil {
		return nil, apperror.NewValidation("Invalid Model", err)
	}
	model := userModelFrom(payload)

	exists, err := u.userIDExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NewNotFound("User Not Found")
	}

	if model.email != nil {
		taken, err := u.userEmailExists(ctx, *model.email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.NewConflict("User Already Exists")
		}
	}

	if model.hasWishlist {
		if err := u.verifyWishlist(ctx, model.wishlist); err != nil {
			return nil, err
		}
	}

	updated, err := u.repo.Update(ctx, id, model.fields())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.NewNotFound("User Not Found")
		}
		return nil, err
	}
	return u.userView(ctx, updated, WishlistEchoID)
}

// DeleteUser removes one user, reporting whether a record was removed.
func (u *UserUsecase) DeleteUser(ctx context.Context, id string) (bool, error) {
	exists, err := u.userIDExists(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, apperror.NewNotFound("User Not Found")
	}
	return u.repo.Delete(ctx, id)
}

func (u *UserUsecase) userIDExists(ctx context.Context, id string) (bool, error) {
	_, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// userEmailExists reports whether the email is already used by a record
// other than excludeID.
func (u *UserUsecase) userEmailExists(ctx context.Context, email string, excludeID string) (bool, error) {
	matches, err := u.repo.Find(ctx, storage.Filter{"email": email})
	if err != nil {
		return false, err
	}
	for _, user := range matches {
		if user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// verifyWishlist checks every referenced game id concurrently; the first
// unresolved id rejects the whole update.
func (u *UserUsecase) verifyWishlist(ctx context.Context, ids []string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			ok, err := u.games.GameIDExists(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewConflict(fmt.Sprintf("Bad id %s", id))
			}
			return nil
		})
	}
	return g.Wait()
}

// userView is the outbound projection of a user. The password is stripped
// regardless of echo mode.
func (u *UserUsecase) userView(ctx context.Context, user *entity.User, echo WishlistEcho) (map[string]any, error) {
	wishlist, err := u.resolveWishlist(ctx, user.Wishlist, echo)
	if err != nil {
		return nil, err
	}
	view := map[string]any{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"wishlist":  wishlist,
		"password":  nil,
	}
	return props.Omit(view, "password"), nil
}

// resolveWishlist expands stored game ids per the echo mode, preserving
// input order. Id stubs are built without lookups; detail expansion resolves
// each id concurrently and propagates a missing game as the operation's
// failure.
func (u *UserUsecase) resolveWishlist(ctx context.Context, ids []string, echo WishlistEcho) ([]map[string]any, error) {
	entries := make([]map[string]any, len(ids))
	if echo == WishlistEchoID {
		for i, id := range ids {
			entries[i] = map[string]any{"id": id}
		}
		return entries, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			game, err := u.games.GetGame(ctx, id, games.EchoFull)
			if err != nil {
				return err
			}
			entries[i] = game
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
