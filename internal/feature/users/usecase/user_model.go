package usecase

import (
	"games_backend/internal/feature/users/domain/entity"
	"games_backend/internal/platform/storage"
	"games_backend/internal/platform/validation"
)

// userSchema declares the validated fields of a user payload. The wishlist
// is not creatable (registration stores an empty one) and the password is
// only creatable; neither appears in the groups that exclude it, so the
// structural key-set check rejects them there.
var userSchema = validation.Schema{
	"firstName": {
		Kind: validation.KindString, MinLen: 2, MaxLen: 50,
		Groups: []validation.Group{validation.Create, validation.Full, validation.Partial},
	},
	"lastName": {
		Kind: validation.KindString, MinLen: 2, MaxLen: 50,
		Groups: []validation.Group{validation.Create, validation.Full, validation.Partial},
	},
	"email": {
		Kind: validation.KindEmail, MinLen: 3, MaxLen: 50,
		Groups: []validation.Group{validation.Create, validation.Full, validation.Partial},
	},
	"wishlist": {
		Kind:   validation.KindRefList,
		Groups: []validation.Group{validation.Full, validation.Partial},
	},
	"password": {
		Kind: validation.KindPassword, MinLen: 8, MaxLen: 16,
		Groups: []validation.Group{validation.Create},
	},
}

// userModel is the validated request-side shape of a user. The wishlist
// carries the referenced game ids; presence is tracked separately so an
// explicit empty list can clear the stored one.
type userModel struct {
	firstName   *string
	lastName    *string
	email       *string
	password    *string
	wishlist    []string
	hasWishlist bool
}

func userModelFrom(payload map[string]any) userModel {
	wishlist, hasWishlist := validation.RefIDs(payload, "wishlist")
	return userModel{
		firstName:   validation.StringValue(payload, "firstName"),
		lastName:    validation.StringValue(payload, "lastName"),
		email:       validation.StringValue(payload, "email"),
		password:    validation.StringValue(payload, "password"),
		wishlist:    wishlist,
		hasWishlist: hasWishlist,
	}
}

// entity converts the model to a stored-record shape without an id. The
// wishlist always starts empty: registration cannot seed it.
func (m userModel) entity() *entity.User {
	user := &entity.User{Wishlist: []string{}}
	if m.firstName != nil {
		user.FirstName = *m.firstName
	}
	if m.lastName != nil {
		user.LastName = *m.lastName
	}
	if m.email != nil {
		user.Email = *m.email
	}
	return user
}

// fields lists the supplied fields for a merge update. Password is not
// updatable, so it is never part of the merge.
func (m userModel) fields() storage.Fields {
	fields := storage.Fields{}
	if m.firstName != nil {
		fields["firstName"] = *m.firstName
	}
	if m.lastName != nil {
		fields["lastName"] = *m.lastName
	}
	if m.email != nil {
		fields["email"] = *m.email
	}
	if m.hasWishlist {
		fields["wishlist"] = m.wishlist
	}
	return fields
}
