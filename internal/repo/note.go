package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/secure_notes/internal/models"
)

// ListNotes returns the user's notes ordered by most recently updated,
// optionally filtered by a case-insensitive title/content match.
func (r *GormRepo) ListNotes(ctx context.Context, userID uint, q string, limit, offset int) ([]models.Note, error) {
	tx := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)", like, like)
	}

	notes := make([]models.Note, 0)
	if err := tx.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *GormRepo) CreateNote(ctx context.Context, note *models.Note) error {
	return r.DB.WithContext(ctx).Create(note).Error
}

// GetNote loads a note by id scoped to its owner. A note belonging to another
// user is indistinguishable from a missing one.
func (r *GormRepo) GetNote(ctx context.Context, userID, id uint) (*models.Note, error) {
	var note models.Note
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *GormRepo) SaveNote(ctx context.Context, note *models.Note) error {
	return r.DB.WithContext(ctx).Save(note).Error
}

func (r *GormRepo) DeleteNote(ctx context.Context, userID, id uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}
