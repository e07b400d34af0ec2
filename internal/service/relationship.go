package service

import (
	"context"
	"errors"

	"bitwise74/social-api/internal/model"
	"bitwise74/social-api/internal/store"
	"bitwise74/social-api/pkg/util"
	"bitwise74/social-api/pkg/validators"
)

const (
	MsgRequestSent     = "The request was sent"
	MsgRequestAccepted = "Friend request accepted"
	MsgFriendDeleted   = "Friend was deleted"
)

// RelationshipService manages the friend graph. Every user owns one
// Relationship record holding the users they accepted and the users whose
// requests are still pending.
type RelationshipService struct {
	store store.Relationships
}

func NewRelationshipService(s store.Relationships) *RelationshipService {
	return &RelationshipService{store: s}
}

// CreateItem stores an empty record for userID. A second record for the
// same user is rejected by the store's unique index.
func (s *RelationshipService) CreateItem(ctx context.Context, userID string) (*model.Relationship, error) {
	id, err := util.NewID()
	if err != nil {
		return nil, internalErr("Failed to generate ID", err)
	}

	r := &model.Relationship{
		ID:        id,
		UserID:    userID,
		Accepted:  model.StringSlice{},
		Requested: model.StringSlice{},
	}

	if err := s.store.Create(ctx, r); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, conflictErr("Relationship record already exists")
		}

		return nil, internalErr("Failed to create relationship record", err)
	}

	return r, nil
}

// SendRequest adds fromUserID to the pending requests of toUserID
func (s *RelationshipService) SendRequest(ctx context.Context, fromUserID, toUserID string) (*model.Relationship, error) {
	if err := requirePair(fromUserID, toUserID); err != nil {
		return nil, err
	}

	if fromUserID == toUserID {
		return nil, validationErr("You can't send a friend request to yourself")
	}

	target, err := s.find(ctx, toUserID, "User not found")
	if err != nil {
		return nil, err
	}

	if target.Accepted.Has(fromUserID) {
		return nil, conflictErr("You are already friends")
	}

	if target.Requested.Has(fromUserID) {
		return nil, conflictErr("The request has already been sent")
	}

	target.Requested = target.Requested.Add(fromUserID)

	if err := s.store.Save(ctx, target); err != nil {
		return nil, internalErr("Failed to save friend request", err)
	}

	return target, nil
}

func (s *RelationshipService) List(ctx context.Context, userID string) (*model.Relationship, error) {
	return s.find(ctx, userID, "Friends not found")
}

// Accept turns the pending request from fromUserID into a mutual friendship
func (s *RelationshipService) Accept(ctx context.Context, fromUserID, toUserID string) error {
	if err := requirePair(fromUserID, toUserID); err != nil {
		return err
	}

	target, err := s.find(ctx, toUserID, "User not found")
	if err != nil {
		return err
	}

	if !target.Requested.Has(fromUserID) {
		return notFoundErr("Friend request not found")
	}

	requester, err := s.find(ctx, fromUserID, "Friend not found")
	if err != nil {
		return err
	}

	target.Accepted = target.Accepted.Add(fromUserID)
	target.Requested = target.Requested.Remove(fromUserID)
	requester.Accepted = requester.Accepted.Add(toUserID)

	if err := s.store.Save(ctx, target, requester); err != nil {
		return internalErr("Failed to accept friend request", err)
	}

	return nil
}

// Remove drops the friendship between the two users in both directions,
// together with any request still pending between them. Requests from
// other users are left alone.
func (s *RelationshipService) Remove(ctx context.Context, fromUserID, toUserID string) error {
	if err := requirePair(fromUserID, toUserID); err != nil {
		return err
	}

	target, err := s.find(ctx, toUserID, "User not found")
	if err != nil {
		return err
	}

	requester, err := s.find(ctx, fromUserID, "Friend not found")
	if err != nil {
		return err
	}

	target.Accepted = target.Accepted.Remove(fromUserID)
	target.Requested = target.Requested.Remove(fromUserID)
	requester.Accepted = requester.Accepted.Remove(toUserID)
	requester.Requested = requester.Requested.Remove(toUserID)

	if err := s.store.Save(ctx, target, requester); err != nil {
		return internalErr("Failed to delete friend", err)
	}

	return nil
}

func (s *RelationshipService) find(ctx context.Context, userID, notFound string) (*model.Relationship, error) {
	r, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundErr(notFound)
		}

		return nil, internalErr("Failed to fetch relationship record", err)
	}

	if r.Accepted == nil {
		r.Accepted = model.StringSlice{}
	}
	if r.Requested == nil {
		r.Requested = model.StringSlice{}
	}

	return r, nil
}

func requirePair(fromUserID, toUserID string) error {
	missing := validators.MissingFields(
		validators.Field{Name: "fromUserId", Value: fromUserID},
		validators.Field{Name: "toUserId", Value: toUserID},
	)
	if len(missing) > 0 {
		return validationErr(validators.MissingMessage(missing))
	}

	// ids end up in comma separated sets
	if !util.ValidID(fromUserID) || !util.ValidID(toUserID) {
		return validationErr("Invalid ID format")
	}

	return nil
}
