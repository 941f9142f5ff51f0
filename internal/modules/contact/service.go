package contact

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Service defines contact business logic.
type Service interface {
	List(ctx context.Context, userID int64) ([]*Contact, error)
	Create(ctx context.Context, userID int64, address, phone string) (*Contact, error)
	// Update partially updates a contact owned by the user.
	Update(ctx context.Context, userID, id int64, address, phone string) (*Contact, error)
	// Delete removes the user's contacts listed in a comma-separated id
	// string. Non-numeric ids are ignored; returns the number deleted.
	Delete(ctx context.Context, userID int64, csv string) (int64, error)
}

type service struct{ repo Repository }

// NewService creates a new contact service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) List(ctx context.Context, userID int64) ([]*Contact, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Create(ctx context.Context, userID int64, address, phone string) (*Contact, error) {
	if address == "" || phone == "" {
		return nil, fmt.Errorf("address and phone are required")
	}
	c := &Contact{UserID: userID, Address: address, Phone: phone}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, userID, id int64, address, phone string) (*Contact, error) {
	c, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if address != "" {
		c.Address = address
	}
	if phone != "" {
		c.Phone = phone
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, userID int64, csv string) (int64, error) {
	ids := parseIDList(csv)
	if len(ids) == 0 {
		return 0, fmt.Errorf("necessary arguments are not specified")
	}
	return s.repo.DeleteForUser(ctx, ids, userID)
}

// parseIDList splits a comma-separated id string, dropping anything that is
// not a positive integer.
func parseIDList(csv string) []int64 {
	var ids []int64
	for _, part := range strings.Split(csv, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
