package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ShikhaMathur02/Visitor-System/internal/model"
	"github.com/ShikhaMathur02/Visitor-System/internal/notify"
)

// ── mock EntryRepository ──

type mockEntryRepo struct {
	records map[string]*model.EntryRecord
	nextID  int

	// beforeMark runs before each conditional update; tests use it to
	// interleave a concurrent writer between read and write.
	beforeMark func()
}

func newMockEntryRepo() *mockEntryRepo {
	return &mockEntryRepo{records: make(map[string]*model.EntryRecord)}
}

func (m *mockEntryRepo) Create(_ context.Context, rec *model.EntryRecord) error {
	if rec.RecordID == "" {
		m.nextID++
		rec.RecordID = fmt.Sprintf("rec-%03d", m.nextID)
	}
	m.records[rec.RecordID] = rec
	return nil
}

func (m *mockEntryRepo) GetByID(_ context.Context, id string) (*model.EntryRecord, error) {
	if rec, ok := m.records[id]; ok {
		return rec, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) GetActiveByIdentity(_ context.Context, kind model.EntryKind, identity string) (*model.EntryRecord, error) {
	for _, rec := range m.records {
		if rec.Kind == kind && rec.Identity == identity && !rec.HasExited {
			copy := *rec
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) GetLatestByIdentity(_ context.Context, kind model.EntryKind, identity string) (*model.EntryRecord, error) {
	var latest *model.EntryRecord
	for _, rec := range m.records {
		if rec.Kind != kind || rec.Identity != identity {
			continue
		}
		if latest == nil || rec.EntryTime.After(latest.EntryTime) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *latest
	return &copy, nil
}

func (m *mockEntryRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := m.records[id]; !ok {
		return 0, nil
	}
	delete(m.records, id)
	return 1, nil
}

func (m *mockEntryRepo) active(kind model.EntryKind, identity string) *model.EntryRecord {
	for _, rec := range m.records {
		if rec.Kind == kind && rec.Identity == identity && !rec.HasExited {
			return rec
		}
	}
	return nil
}

func (m *mockEntryRepo) MarkRequested(_ context.Context, kind model.EntryKind, identity string) (int64, error) {
	if m.beforeMark != nil {
		m.beforeMark()
	}
	rec := m.active(kind, identity)
	if rec == nil || rec.ExitRequested {
		return 0, nil
	}
	rec.ExitRequested = true
	return 1, nil
}

func (m *mockEntryRepo) MarkApproved(_ context.Context, kind model.EntryKind, identity string) (int64, error) {
	if m.beforeMark != nil {
		m.beforeMark()
	}
	rec := m.active(kind, identity)
	if rec == nil || !rec.ExitRequested || rec.ExitApproved {
		return 0, nil
	}
	rec.ExitApproved = true
	return 1, nil
}

func (m *mockEntryRepo) MarkExited(_ context.Context, kind model.EntryKind, identity string, exitTime time.Time) (int64, error) {
	if m.beforeMark != nil {
		m.beforeMark()
	}
	rec := m.active(kind, identity)
	if rec == nil || !rec.ExitApproved {
		return 0, nil
	}
	rec.HasExited = true
	rec.ExitTime = &exitTime
	return 1, nil
}

func (m *mockEntryRepo) ListPending(_ context.Context, kind model.EntryKind, facultyID string) ([]model.EntryRecord, error) {
	var result []model.EntryRecord
	for _, rec := range m.records {
		if rec.Kind != kind || !rec.ExitRequested || rec.ExitApproved || rec.HasExited {
			continue
		}
		if facultyID != "" && (rec.FacultyID == nil || *rec.FacultyID != facultyID) {
			continue
		}
		result = append(result, *rec)
	}
	return result, nil
}

func (m *mockEntryRepo) ListApproved(_ context.Context, kind model.EntryKind) ([]model.EntryRecord, error) {
	var result []model.EntryRecord
	for _, rec := range m.records {
		if rec.Kind == kind && rec.ExitApproved && !rec.HasExited {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func (m *mockEntryRepo) ListEnteredBetween(_ context.Context, kind model.EntryKind, from, to time.Time) ([]model.EntryRecord, error) {
	var result []model.EntryRecord
	for _, rec := range m.records {
		if rec.Kind == kind && !rec.EntryTime.Before(from) && rec.EntryTime.Before(to) {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func (m *mockEntryRepo) ListExitedBetween(_ context.Context, kind model.EntryKind, from, to time.Time) ([]model.EntryRecord, error) {
	var result []model.EntryRecord
	for _, rec := range m.records {
		if rec.Kind == kind && rec.HasExited && rec.ExitTime != nil &&
			!rec.ExitTime.Before(from) && rec.ExitTime.Before(to) {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func (m *mockEntryRepo) CountEnteredBetween(ctx context.Context, kind model.EntryKind, from, to time.Time) (int64, error) {
	recs, _ := m.ListEnteredBetween(ctx, kind, from, to)
	return int64(len(recs)), nil
}

func (m *mockEntryRepo) CountExitedBetween(ctx context.Context, kind model.EntryKind, from, to time.Time) (int64, error) {
	recs, _ := m.ListExitedBetween(ctx, kind, from, to)
	return int64(len(recs)), nil
}

func (m *mockEntryRepo) CountPending(ctx context.Context, kind model.EntryKind) (int64, error) {
	recs, _ := m.ListPending(ctx, kind, "")
	return int64(len(recs)), nil
}

func (m *mockEntryRepo) CountApproved(ctx context.Context, kind model.EntryKind) (int64, error) {
	recs, _ := m.ListApproved(ctx, kind)
	return int64(len(recs)), nil
}

func (m *mockEntryRepo) CountInside(_ context.Context, kind model.EntryKind) (int64, error) {
	var n int64
	for _, rec := range m.records {
		if rec.Kind == kind && !rec.HasExited {
			n++
		}
	}
	return n, nil
}

// ── mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%03d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := m.users[id]; !ok {
		return 0, nil
	}
	delete(m.users, id)
	return 1, nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		all = append(all, *u)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListByRoleAndDepartment(_ context.Context, role, department string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role && u.Department == department {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── mock Dispatcher ──

type facultyEvent struct {
	facultyID string
	event     string
	message   string
}

// mockDispatcher records every emitted notification.
type mockDispatcher struct {
	directorMsgs  []string
	guardMsgs     []string
	facultyEvents []facultyEvent
}

func (m *mockDispatcher) NotifyDirector(message string, _ notify.Severity) {
	m.directorMsgs = append(m.directorMsgs, message)
}

func (m *mockDispatcher) NotifyGuard(message string, _ notify.Severity) {
	m.guardMsgs = append(m.guardMsgs, message)
}

func (m *mockDispatcher) NotifyFaculty(facultyID, event, message string, _ interface{}) {
	m.facultyEvents = append(m.facultyEvents, facultyEvent{facultyID, event, message})
}
