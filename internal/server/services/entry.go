package services

import (
	"context"
	"fmt"
	"time"

	"impulselog/internal/dbx"
	"impulselog/internal/server/models"
	"impulselog/internal/server/repositories/repomanager"

	"github.com/google/uuid"
)

type EntryService struct {
	m repomanager.RepositoryManager
}

func NewEntryService(m repomanager.RepositoryManager) *EntryService {
	return &EntryService{m: m}
}

// Create stores a new entry for userID. The id and creation time are
// assigned here; an absent outcome defaults to unknown.
func (s *EntryService) Create(ctx context.Context, userID int64, draft *models.ImpulseEntry) (*models.ImpulseEntry, error) {

	entry := *draft
	entry.ID = uuid.New().String()
	entry.UserID = userID
	entry.CreatedAt = time.Now().UTC()
	entry.UpdatedAt = nil
	if entry.DidAct == "" {
		entry.DidAct = models.OutcomeUnknown
	}

	created, err := s.m.Entries(s.m.Conn()).Create(ctx, &entry)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	return created, nil
}

func (s *EntryService) Get(ctx context.Context, userID int64, id string) (*models.ImpulseEntry, error) {
	return s.m.Entries(s.m.Conn()).GetByID(ctx, userID, id)
}

func (s *EntryService) List(ctx context.Context, userID int64, filter models.EntryFilter) ([]*models.ImpulseEntry, error) {
	return s.m.Entries(s.m.Conn()).List(ctx, userID, filter)
}

// Update loads the entry, overlays the present patch fields, and stores the
// result, all inside one transaction so concurrent updates cannot interleave
// a stale read with the write.
func (s *EntryService) Update(ctx context.Context, userID int64, id string, patch models.EntryPatch) (*models.ImpulseEntry, error) {

	var updated *models.ImpulseEntry

	err := dbx.WithTx(ctx, s.m.Conn(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.m.Entries(tx)

		entry, err := repo.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}

		next := patch.Apply(*entry, time.Now().UTC())
		updated, err = repo.Update(ctx, &next)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *EntryService) Delete(ctx context.Context, userID int64, id string) error {
	return s.m.Entries(s.m.Conn()).Delete(ctx, userID, id)
}
