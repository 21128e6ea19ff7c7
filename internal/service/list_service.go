package service

import (
	"context"
	"fmt"
	"strings"

	"gameboxd/backend/internal/models"
	"gameboxd/backend/internal/store"
)

// ListService owns named game collections and their memberships.
type ListService struct {
	store   store.Store
	catalog Catalog
}

func NewListService(st store.Store, catalog Catalog) *ListService {
	return &ListService{store: st, catalog: catalog}
}

// UpdateListInput is the set of list fields the owner may change.
type UpdateListInput struct {
	Name     *string
	IsPublic *bool
}

// Create makes a new, private-by-default list.
func (s *ListService) Create(name string, userID uint) (*models.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	list := &models.List{
		UserID: userID,
		Name:   name,
	}
	if err := s.store.CreateList(list); err != nil {
		return nil, fmt.Errorf("create list failed: %w", err)
	}
	return list, nil
}

// ListsByUser returns every list the owner has, private ones included.
func (s *ListService) ListsByUser(userID uint) ([]models.List, error) {
	lists, err := s.store.GetListsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("query lists failed: %w", err)
	}
	return lists, nil
}

// ByID returns a list with its items, each item carrying its game's minimal
// catalog record. Private lists are visible to their owner only; for anyone
// else they do not exist.
func (s *ListService) ByID(ctx context.Context, id, viewerID uint) (*models.List, error) {
	list, err := s.store.GetListByID(id)
	if err != nil {
		return nil, fmt.Errorf("query list by id failed: %w", err)
	}
	if list == nil {
		return nil, ErrNotFound
	}
	if !list.IsPublic && list.UserID != viewerID {
		return nil, ErrNotFound
	}

	ids := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		ids = append(ids, item.GameID)
	}
	refs := gameRefs(ctx, s.catalog, ids)
	for i := range list.Items {
		list.Items[i].Game = refs[list.Items[i].GameID]
	}
	return list, nil
}

// Update applies a partial edit, scoped to the owning user.
func (s *ListService) Update(id, userID uint, in UpdateListInput) (*models.List, error) {
	patch := store.ListPatch{IsPublic: in.IsPublic}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		patch.Name = &name
	}

	list, err := s.store.UpdateList(id, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("update list failed: %w", err)
	}
	if list == nil {
		return nil, ErrNotFound
	}
	return list, nil
}

// AddGame inserts a game into a list the user owns. A game already in the
// list is rejected.
func (s *ListService) AddGame(listID uint, gameID string, userID uint) (*models.ListItem, error) {
	if gameID == "" {
		return nil, ErrInvalidInput
	}

	list, err := s.store.GetListByID(listID)
	if err != nil {
		return nil, fmt.Errorf("query list by id failed: %w", err)
	}
	if list == nil || list.UserID != userID {
		return nil, ErrNotFound
	}

	exists, err := s.store.HasListItem(listID, gameID)
	if err != nil {
		return nil, fmt.Errorf("check list membership failed: %w", err)
	}
	if exists {
		return nil, ErrAlreadyInList
	}

	item := &models.ListItem{
		ListID: listID,
		GameID: gameID,
	}
	if err := s.store.AddListItem(item); err != nil {
		return nil, fmt.Errorf("add list item failed: %w", err)
	}
	return item, nil
}

// RemoveItem deletes one membership row by item id, scoped to a list the
// user owns.
func (s *ListService) RemoveItem(listID, itemID, userID uint) error {
	list, err := s.store.GetListByID(listID)
	if err != nil {
		return fmt.Errorf("query list by id failed: %w", err)
	}
	if list == nil || list.UserID != userID {
		return ErrNotFound
	}

	deleted, err := s.store.DeleteListItem(listID, itemID)
	if err != nil {
		return fmt.Errorf("delete list item failed: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Delete removes a list and its items, scoped to the owning user.
func (s *ListService) Delete(id, userID uint) error {
	deleted, err := s.store.DeleteList(id, userID)
	if err != nil {
		return fmt.Errorf("delete list failed: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
