package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ShikhaMathur02/Visitor-System/internal/model"
)

// EntryRepository is the entry-record data access interface.
//
// The three Mark methods are conditional updates: the expected workflow
// state is part of the WHERE clause, so of two racing writers exactly
// one sees a row affected. Callers interpret zero rows as a lost race
// or failed precondition.
type EntryRepository interface {
	Create(ctx context.Context, rec *model.EntryRecord) error
	GetByID(ctx context.Context, id string) (*model.EntryRecord, error)
	GetActiveByIdentity(ctx context.Context, kind model.EntryKind, identity string) (*model.EntryRecord, error)
	GetLatestByIdentity(ctx context.Context, kind model.EntryKind, identity string) (*model.EntryRecord, error)
	Delete(ctx context.Context, id string) (int64, error)

	MarkRequested(ctx context.Context, kind model.EntryKind, identity string) (int64, error)
	MarkApproved(ctx context.Context, kind model.EntryKind, identity string) (int64, error)
	MarkExited(ctx context.Context, kind model.EntryKind, identity string, exitTime time.Time) (int64, error)

	ListPending(ctx context.Context, kind model.EntryKind, facultyID string) ([]model.EntryRecord, error)
	ListApproved(ctx context.Context, kind model.EntryKind) ([]model.EntryRecord, error)
	ListEnteredBetween(ctx context.Context, kind model.EntryKind, from, to time.Time) ([]model.EntryRecord, error)
	ListExitedBetween(ctx context.Context, kind model.EntryKind, from, to time.Time) ([]model.EntryRecord, error)

	CountEnteredBetween(ctx context.Context, kind model.EntryKind, from, to time.Time) (int64, error)
	CountExitedBetween(ctx context.Context, kind model.EntryKind, from, to time.Time) (int64, error)
	CountPending(ctx context.Context, kind model.EntryKind) (int64, error)
	CountApproved(ctx context.Context, kind model.EntryKind) (int64, error)
	CountInside(ctx context.Context, kind model.EntryKind) (int64, error)
}

type entryRepo struct {
	db *gorm.DB
}

// NewEntryRepo builds the GORM-backed EntryRepository.
func NewEntryRepo(db *gorm.DB) EntryRepository {
	return &entryRepo{db: db}
}

func (r *entryRepo) Create(ctx context.Context, rec *model.EntryRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *entryRepo) GetByID(ctx context.Context, id string) (*model.EntryRecord, error) {
	var rec model.EntryRecord
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("record_id = ?", id).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *entryRepo) GetActiveByIdentity(ctx context.Context, kind model.EntryKind, identity string) (*model.EntryRecord, error) {
	var rec model.EntryRecord
	err := r.db.WithContext(ctx).
		Where("kind = ? AND identity = ? AND has_exited = false", kind, identity).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetLatestByIdentity returns the most recent record for an identity,
// exited or not. Workflow operations fall back to it so a call against
// an already-exited entry reports the terminal state.
func (r *entryRepo) GetLatestByIdentity(ctx context.Context, kind model.EntryKind, identity string) (*model.EntryRecord, error) {
	var rec model.EntryRecord
	err := r.db.WithContext(ctx).
		Where("kind = ? AND identity = ?", kind, identity).
		Order("entry_time DESC").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *entryRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("record_id = ?", id).
		Delete(&model.EntryRecord{})
	return res.RowsAffected, res.Error
}

// ── workflow transitions ──

func (r *entryRepo) MarkRequested(ctx context.Context, kind model.EntryKind, identity string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.EntryRecord{}).
		Where("kind = ? AND identity = ? AND has_exited = false AND exit_requested = false", kind, identity).
		Updates(map[string]interface{}{
			"exit_requested": true,
			"updated_at":     gorm.Expr("NOW()"),
		})
	return res.RowsAffected, res.Error
}

func (r *entryRepo) MarkApproved(ctx context.Context, kind model.EntryKind, identity string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.EntryRecord{}).
		Where("kind = ? AND identity = ? AND has_exited = false AND exit_requested = true AND exit_approved = false", kind, identity).
		Updates(map[string]interface{}{
			"exit_approved": true,
			"updated_at":    gorm.Expr("NOW()"),
		})
	return res.RowsAffected, res.Error
}

func (r *entryRepo) MarkExited(ctx context.Context, kind model.EntryKind, identity string, exitTime time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.EntryRecord{}).
		Where("kind = ? AND identity = ? AND has_exited = false AND exit_approved = true", kind, identity).
		Updates(map[string]interface{}{
			"has_exited": true,
			"exit_time":  exitTime,
			"updated_at": gorm.Expr("NOW()"),
		})
	return res.RowsAffected, res.Error
}

// ── reporting queries ──

func (r *entryRepo) ListPending(ctx context.Context, kind model.EntryKind, facultyID string) ([]model.EntryRecord, error) {
	var recs []model.EntryRecord
	db := r.db.WithContext(ctx).
		Where("kind = ? AND exit_requested = true AND exit_approved = false AND has_exited = false", kind)
	if facultyID != "" {
		db = db.Where("faculty_id = ?", facultyID)
	}
	err := db.Order("entry_time DESC").Find(&recs).Error
	return recs, err
}

func (r *entryRepo) ListApproved(ctx context.Context, kind model.EntryKind) ([]model.EntryRecord, error) {
	var recs []model.EntryRecord
	err := r.db.WithContext(ctx).
		Where("kind = ? AND exit_approved = true AND has_exited = false", kind).
		Order("entry_time DESC").
		Find(&recs).Error
	return recs, err
}

func (r *entryRepo) ListEnteredBetween(ctx context.Context, kind model.EntryKind, from, to time.Time) ([]model.EntryRecord, error) {
	var recs []model.EntryRecord
	err := r.db.WithContext(ctx).
		Where("kind = ? AND entry_time >= ? AND entry_time < ?", kind, from, to).
		Order("entry_time DESC").
		Find(&recs).Error
	return recs, err
}

func (r *entryRepo) ListExitedBetween(ctx context.Context, kind model.EntryKind, from, to time.Time) ([]model.EntryRecord, error) {
	var recs []model.EntryRecord
	err := r.db.WithContext(ctx).
		Where("kind = ? AND has_exited = true AND exit_time >= ? AND exit_time < ?", kind, from, to).
		Order("exit_time DESC").
		Find(&recs).Error
	return recs, err
}

func (r *entryRepo) CountEnteredBetween(ctx context.Context, kind model.EntryKind, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.EntryRecord{}).
		Where("kind = ? AND entry_time >= ? AND entry_time < ?", kind, from, to).
		Count(&n).Error
	return n, err
}

func (r *entryRepo) CountExitedBetween(ctx context.Context, kind model.EntryKind, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.EntryRecord{}).
		Where("kind = ? AND has_exited = true AND exit_time >= ? AND exit_time < ?", kind, from, to).
		Count(&n).Error
	return n, err
}

func (r *entryRepo) CountPending(ctx context.Context, kind model.EntryKind) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.EntryRecord{}).
		Where("kind = ? AND exit_requested = true AND exit_approved = false AND has_exited = false", kind).
		Count(&n).Error
	return n, err
}

func (r *entryRepo) CountApproved(ctx context.Context, kind model.EntryKind) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.EntryRecord{}).
		Where("kind = ? AND exit_approved = true AND has_exited = false", kind).
		Count(&n).Error
	return n, err
}

// CountInside deliberately ignores entry date: whoever never exited is
// still inside, even from a previous day.
func (r *entryRepo) CountInside(ctx context.Context, kind model.EntryKind) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.EntryRecord{}).
		Where("kind = ? AND has_exited = false", kind).
		Count(&n).Error
	return n, err
}
