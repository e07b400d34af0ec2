package service

import (
	"context"
	"errors"
	"time"

	"bitwise74/social-api/internal/model"
	"bitwise74/social-api/internal/store"
	"bitwise74/social-api/pkg/util"
	"bitwise74/social-api/pkg/validators"
)

const (
	MsgUserUpdated     = "Information has been successfully updated"
	MsgPasswordChanged = "Password successfully changed"
	MsgUserDeleted     = "User successfully deleted"
)

// UserUpdate carries the attributes a caller wants to change. Nil fields
// are left untouched.
type UserUpdate struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Photo     *string `json:"photo"`
	Friends   *string `json:"friends"`
}

func (u UserUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.Phone == nil && u.Photo == nil && u.Friends == nil
}

type UserService struct {
	users  store.Users
	hasher PasswordHasher
	photos *PhotoService
}

func NewUserService(users store.Users, h PasswordHasher, p *PhotoService) *UserService {
	return &UserService{users: users, hasher: h, photos: p}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, internalErr("Failed to fetch users", err)
	}

	if len(users) == 0 {
		return nil, notFoundErr("Users not found")
	}

	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	if !util.ValidID(id) {
		return nil, validationErr("Invalid ID format")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundErr("User not found")
		}

		return nil, internalErr("Failed to fetch user", err)
	}

	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, in UserUpdate) error {
	if in.IsEmpty() {
		return validationErr("Enter your data")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if in.Email != nil && *in.Email != user.Email {
		if err := validators.Email(*in.Email); err != nil {
			return validationErr("Invalid email address")
		}

		other, err := s.users.FindByEmail(ctx, *in.Email)
		if err == nil && other.ID != user.ID {
			return conflictErr("This email is already in use")
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return internalErr("Failed to check email", err)
		}

		user.Email = *in.Email
	}

	if in.Photo != nil {
		photo, err := s.photos.Resolve(ctx, user.ID, *in.Photo)
		if err != nil {
			return err
		}

		user.Photo = photo
	}

	apply(&user.FirstName, in.FirstName)
	apply(&user.LastName, in.LastName)
	apply(&user.Phone, in.Phone)
	apply(&user.Friends, in.Friends)
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return conflictErr("This email is already in use")
		case errors.Is(err, store.ErrNotFound):
			return notFoundErr("User not found")
		}

		return internalErr("Failed to update user", err)
	}

	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	missing := validators.MissingFields(
		validators.Field{Name: "oldPassword", Value: oldPassword},
		validators.Field{Name: "newPassword", Value: newPassword},
	)
	if len(missing) > 0 {
		return validationErr(validators.MissingMessage(missing))
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Compare(oldPassword, user.PasswordHash)
	if err != nil {
		return internalErr("Failed to verify password", err)
	}

	if !ok {
		return authErr("Incorrect old password")
	}

	if oldPassword == newPassword {
		return validationErr("Old and new passwords are the same")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return internalErr("Failed to hash password", err)
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return internalErr("Failed to update password", err)
	}

	return nil
}

// Delete removes the account only. The user's relationship record, articles
// and comments are kept.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if !util.ValidID(id) {
		return validationErr("Invalid ID format")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundErr("User not found")
		}

		return internalErr("Failed to delete user", err)
	}

	return nil
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
