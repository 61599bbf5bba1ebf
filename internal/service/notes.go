package service

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/secure_notes/internal/logging"
	"github.com/Skotchmaster/secure_notes/internal/models"
	"github.com/Skotchmaster/secure_notes/internal/mykafka"
	"github.com/Skotchmaster/secure_notes/internal/repo"
	"github.com/Skotchmaster/secure_notes/internal/service/search"
)

type NoteService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

func (s *NoteService) List(ctx context.Context, userID uint, q string, limit, offset int) ([]models.Note, error) {
	return s.Repo.ListNotes(ctx, userID, q, limit, offset)
}

func (s *NoteService) Create(ctx context.Context, userID uint, title, content string) (*models.Note, error) {
	note := &models.Note{
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	if err := s.Repo.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	s.index(ctx, note)
	s.publish(ctx, note.UserID, map[string]any{
		"type":    "note_created",
		"note_id": note.ID,
		"user_id": note.UserID,
	})

	return note, nil
}

func (s *NoteService) Get(ctx context.Context, userID, id uint) (*models.Note, error) {
	return s.Repo.GetNote(ctx, userID, id)
}

// Update applies a partial update: nil fields keep their stored value.
func (s *NoteService) Update(ctx context.Context, userID, id uint, title, content *string) (*models.Note, error) {
	note, err := s.Repo.GetNote(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		note.Title = *title
	}
	if content != nil {
		note.Content = *content
	}

	if err := s.Repo.SaveNote(ctx, note); err != nil {
		return nil, err
	}

	s.index(ctx, note)
	s.publish(ctx, note.UserID, map[string]any{
		"type":    "note_updated",
		"note_id": note.ID,
		"user_id": note.UserID,
	})

	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.Repo.DeleteNote(ctx, userID, id); err != nil {
		return err
	}

	if s.ES != nil {
		if err := search.RemoveNote(ctx, s.ES, s.ESIndex, id); err != nil {
			logging.FromContext(ctx).Error("es remove error", "note_id", id, "error", err)
		}
	}
	s.publish(ctx, userID, map[string]any{
		"type":    "note_deleted",
		"note_id": id,
		"user_id": userID,
	})

	return nil
}

// Search queries the Elasticsearch index; the caller must ensure ES is
// configured (Searchable reports that).
func (s *NoteService) Search(ctx context.Context, userID uint, q string, from, size int) (int64, []models.Note, error) {
	return search.Search(ctx, s.ES, s.ESIndex, userID, q, from, size)
}

func (s *NoteService) Searchable() bool {
	return s.ES != nil
}

func (s *NoteService) index(ctx context.Context, note *models.Note) {
	if s.ES == nil {
		return
	}
	if err := search.IndexNote(ctx, s.ES, s.ESIndex, note); err != nil {
		logging.FromContext(ctx).Error("es index error", "note_id", note.ID, "error", err)
	}
}

func (s *NoteService) publish(ctx context.Context, userID uint, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, "note_events", fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", "note_events", "error", err)
	}
}
