package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ShikhaMathur02/Visitor-System/internal/dto"
	"github.com/ShikhaMathur02/Visitor-System/internal/model"
	"github.com/ShikhaMathur02/Visitor-System/internal/notify"
	"github.com/ShikhaMathur02/Visitor-System/internal/repository"
	"github.com/ShikhaMathur02/Visitor-System/internal/workflow"
)

// ── entry module errors ──

var (
	ErrEntryNotFound     = errors.New("no active entry found for this identity")
	ErrRecordNotFound    = errors.New("entry record not found")
	ErrActiveEntryExists = errors.New("an active entry already exists for this identity")
	ErrFacultyRequired   = errors.New("department and faculty are required for visitor entry")
	ErrFacultyNotFound   = errors.New("selected faculty member does not exist")
	ErrConflict          = errors.New("entry was modified by a concurrent operation")
)

// EntryService runs the entry-exit workflow for both record kinds.
// Every controller variant of the old system collapses into these
// operations; the kind parameter is the only per-type difference.
type EntryService interface {
	Register(ctx context.Context, kind model.EntryKind, req *dto.EntryRequest) (*dto.EntryCreatedResponse, error)
	RequestExit(ctx context.Context, kind model.EntryKind, identity string) (*dto.EntryResponse, error)
	ApproveExit(ctx context.Context, kind model.EntryKind, identity string) (*dto.EntryResponse, error)
	ConfirmExit(ctx context.Context, kind model.EntryKind, identity string) (*dto.EntryResponse, error)

	GetByID(ctx context.Context, id string) (*dto.EntryResponse, error)
	GetActiveByIdentity(ctx context.Context, kind model.EntryKind, identity string) (*dto.EntryResponse, error)
	ListPending(ctx context.Context, kind model.EntryKind, facultyID string) ([]dto.EntryResponse, error)
	ListApproved(ctx context.Context, kind model.EntryKind) ([]dto.EntryResponse, error)
	DailyRecords(ctx context.Context, kind model.EntryKind) ([]dto.EntryResponse, error)
	ExitedToday(ctx context.Context, kind model.EntryKind) ([]dto.EntryResponse, error)
	Delete(ctx context.Context, id string) error
}

type entryService struct {
	repo       *repository.Repository
	dispatcher notify.Dispatcher
	logger     *zap.Logger
}

// NewEntryService builds the EntryService. The dispatcher is injected:
// the workflow never reaches into global notification state.
func NewEntryService(repo *repository.Repository, dispatcher notify.Dispatcher, logger *zap.Logger) EntryService {
	return &entryService{repo: repo, dispatcher: dispatcher, logger: logger}
}

// kindLabel is used in notification texts.
func kindLabel(kind model.EntryKind) string {
	if kind == model.KindStudent {
		return "Student"
	}
	return "Visitor"
}

// Register records an arrival and opens a new active entry.
func (s *entryService) Register(ctx context.Context, kind model.EntryKind, req *dto.EntryRequest) (*dto.EntryCreatedResponse, error) {
	var facultyID *string

	if kind == model.KindVisitor {
		// a visitor must name the faculty member they came to see
		if req.Department == "" || req.FacultyID == "" {
			return nil, ErrFacultyRequired
		}
		faculty, err := s.repo.User.GetByID(ctx, req.FacultyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrFacultyNotFound
			}
			s.logger.Error("look up faculty", zap.String("faculty_id", req.FacultyID), zap.Error(err))
			return nil, err
		}
		if faculty.Role != model.RoleFaculty {
			return nil, ErrFacultyNotFound
		}
		facultyID = &faculty.UserID
	}

	// one active entry per identity, for both kinds
	existing, err := s.repo.Entry.GetActiveByIdentity(ctx, kind, req.Identity)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check active entry", zap.String("identity", req.Identity), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrActiveEntryExists
	}

	rec := &model.EntryRecord{
		Kind:       kind,
		Identity:   req.Identity,
		Name:       req.Name,
		Purpose:    req.Purpose,
		Department: req.Department,
		FacultyID:  facultyID,
		EntryTime:  time.Now(),
	}

	if err := s.repo.Entry.Create(ctx, rec); err != nil {
		s.logger.Error("create entry record", zap.String("identity", req.Identity), zap.Error(err))
		return nil, err
	}

	resp := toEntryResponse(rec)

	switch kind {
	case model.KindStudent:
		s.dispatcher.NotifyGuard(
			fmt.Sprintf("New student entry: %s (%s)", rec.Name, rec.Identity),
			notify.SeverityInfo,
		)
	case model.KindVisitor:
		s.dispatcher.NotifyFaculty(
			*facultyID,
			notify.EventNewVisitor,
			fmt.Sprintf("New visitor %s has arrived to see you.", rec.Name),
			resp,
		)
	}

	created := &dto.EntryCreatedResponse{Record: *resp}

	// exit QR for the gate slip; registration stands even if encoding fails
	if kind == model.KindStudent {
		png, err := qrcode.Encode(rec.RecordID, qrcode.Medium, 256)
		if err != nil {
			s.logger.Warn("generate exit QR", zap.String("record_id", rec.RecordID), zap.Error(err))
		} else {
			created.QRCode = base64.StdEncoding.EncodeToString(png)
		}
	}

	return created, nil
}

// RequestExit moves the current entry to the requested state.
func (s *entryService) RequestExit(ctx context.Context, kind model.EntryKind, identity string) (*dto.EntryResponse, error) {
	rec, err := s.loadCurrent(ctx, kind, identity)
	if err != nil {
		return nil, err
	}

	if err := workflow.CheckRequest(stateOf(rec)); err != nil {
		return nil, err
	}

	rows, err := s.repo.Entry.MarkRequested(ctx, kind, identity)
	if err != nil {
		s.logger.Error("mark exit requested", zap.String("identity", identity), zap.Error(err))
		return nil, err
	}
	if rows == 0 {
		return nil, s.loseRace(ctx, kind, identity, workflow.CheckRequest)
	}
	rec.ExitRequested = true

	s.dispatcher.NotifyDirector(
		fmt.Sprintf("%s %s (%s) has requested to exit", kindLabel(kind), rec.Name, rec.Identity),
		notify.SeverityInfo,
	)

	return toEntryResponse(rec), nil
}

// ApproveExit clears a requested exit for the gate.
func (s *entryService) ApproveExit(ctx context.Context, kind model.EntryKind, identity string) (*dto.EntryResponse, error) {
	rec, err := s.loadCurrent(ctx, kind, identity)
	if err != nil {
		return nil, err
	}

	if err := workflow.CheckApprove(stateOf(rec)); err != nil {
		return nil, err
	}

	rows, err := s.repo.Entry.MarkApproved(ctx, kind, identity)
	if err != nil {
		s.logger.Error("mark exit approved", zap.String("identity", identity), zap.Error(err))
		return nil, err
	}
	if rows == 0 {
		return nil, s.loseRace(ctx, kind, identity, workflow.CheckApprove)
	}
	rec.ExitApproved = true

	s.dispatcher.NotifyGuard(
		fmt.Sprintf("Exit approved for %s %s (%s)", kindLabel(kind), rec.Name, rec.Identity),
		notify.SeveritySuccess,
	)

	return toEntryResponse(rec), nil
}

// ConfirmExit finalizes an approved exit and stamps the exit time.
func (s *entryService) ConfirmExit(ctx context.Context, kind model.EntryKind, identity string) (*dto.EntryResponse, error) {
	rec, err := s.loadCurrent(ctx, kind, identity)
	if err != nil {
		return nil, err
	}

	if err := workflow.CheckConfirm(stateOf(rec)); err != nil {
		return nil, err
	}

	exitTime := time.Now()
	rows, err := s.repo.Entry.MarkExited(ctx, kind, identity, exitTime)
	if err != nil {
		s.logger.Error("mark exited", zap.String("identity", identity), zap.Error(err))
		return nil, err
	}
	if rows == 0 {
		return nil, s.loseRace(ctx, kind, identity, workflow.CheckConfirm)
	}
	rec.HasExited = true
	rec.ExitTime = &exitTime

	resp := toEntryResponse(rec)

	if rec.FacultyID != nil {
		s.dispatcher.NotifyFaculty(
			*rec.FacultyID,
			notify.EventVisitorExited,
			fmt.Sprintf("%s %s has successfully exited.", kindLabel(kind), rec.Name),
			resp,
		)
	}
	s.dispatcher.NotifyDirector(
		fmt.Sprintf("%s %s (%s) has exited", kindLabel(kind), rec.Name, rec.Identity),
		notify.SeverityInfo,
	)

	return resp, nil
}

func (s *entryService) GetByID(ctx context.Context, id string) (*dto.EntryResponse, error) {
	rec, err := s.repo.Entry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		s.logger.Error("load entry record", zap.String("record_id", id), zap.Error(err))
		return nil, err
	}
	return toEntryResponse(rec), nil
}

func (s *entryService) GetActiveByIdentity(ctx context.Context, kind model.EntryKind, identity string) (*dto.EntryResponse, error) {
	rec, err := s.loadActive(ctx, kind, identity)
	if err != nil {
		return nil, err
	}
	return toEntryResponse(rec), nil
}

func (s *entryService) ListPending(ctx context.Context, kind model.EntryKind, facultyID string) ([]dto.EntryResponse, error) {
	recs, err := s.repo.Entry.ListPending(ctx, kind, facultyID)
	if err != nil {
		s.logger.Error("list pending exits", zap.Error(err))
		return nil, err
	}
	return toEntryResponses(recs), nil
}

func (s *entryService) ListApproved(ctx context.Context, kind model.EntryKind) ([]dto.EntryResponse, error) {
	recs, err := s.repo.Entry.ListApproved(ctx, kind)
	if err != nil {
		s.logger.Error("list approved exits", zap.Error(err))
		return nil, err
	}
	return toEntryResponses(recs), nil
}

func (s *entryService) DailyRecords(ctx context.Context, kind model.EntryKind) ([]dto.EntryResponse, error) {
	from, to := todayWindow(time.Now())
	recs, err := s.repo.Entry.ListEnteredBetween(ctx, kind, from, to)
	if err != nil {
		s.logger.Error("list daily records", zap.Error(err))
		return nil, err
	}
	return toEntryResponses(recs), nil
}

func (s *entryService) ExitedToday(ctx context.Context, kind model.EntryKind) ([]dto.EntryResponse, error) {
	from, to := todayWindow(time.Now())
	recs, err := s.repo.Entry.ListExitedBetween(ctx, kind, from, to)
	if err != nil {
		s.logger.Error("list exited today", zap.Error(err))
		return nil, err
	}
	return toEntryResponses(recs), nil
}

// Delete is an administrative operation, not a workflow transition.
func (s *entryService) Delete(ctx context.Context, id string) error {
	rows, err := s.repo.Entry.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete entry record", zap.String("record_id", id), zap.Error(err))
		return err
	}
	if rows == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *entryService) loadActive(ctx context.Context, kind model.EntryKind, identity string) (*model.EntryRecord, error) {
	rec, err := s.repo.Entry.GetActiveByIdentity(ctx, kind, identity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("load active entry", zap.String("identity", identity), zap.Error(err))
		return nil, err
	}
	return rec, nil
}

// loadCurrent resolves an identity for a workflow transition: the
// active record when one exists, otherwise the most recent record. The
// fallback lets the precondition checks report ErrAlreadyExited on a
// finished entry instead of pretending it never existed.
func (s *entryService) loadCurrent(ctx context.Context, kind model.EntryKind, identity string) (*model.EntryRecord, error) {
	rec, err := s.loadActive(ctx, kind, identity)
	if err == nil || !errors.Is(err, ErrEntryNotFound) {
		return rec, err
	}

	rec, err = s.repo.Entry.GetLatestByIdentity(ctx, kind, identity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("load latest entry", zap.String("identity", identity), zap.Error(err))
		return nil, err
	}
	return rec, nil
}

// loseRace resolves a conditional update that affected zero rows: a
// concurrent writer advanced the record between our read and write.
// Re-reading usually yields the precise transition error; ErrConflict
// covers the remainder (e.g. the record was deleted underneath us).
func (s *entryService) loseRace(ctx context.Context, kind model.EntryKind, identity string, check func(workflow.State) error) error {
	fresh, err := s.loadCurrent(ctx, kind, identity)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return ErrConflict
		}
		return err
	}
	if cerr := check(stateOf(fresh)); cerr != nil {
		return cerr
	}
	return ErrConflict
}

func stateOf(rec *model.EntryRecord) workflow.State {
	return workflow.StateOf(rec.ExitRequested, rec.ExitApproved, rec.HasExited)
}

// todayWindow returns [start of today, start of tomorrow) in local time.
func todayWindow(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, 1)
}

func toEntryResponse(rec *model.EntryRecord) *dto.EntryResponse {
	resp := &dto.EntryResponse{
		ID:            rec.RecordID,
		Kind:          string(rec.Kind),
		Identity:      rec.Identity,
		Name:          rec.Name,
		Purpose:       rec.Purpose,
		Department:    rec.Department,
		EntryTime:     rec.EntryTime.Format(time.RFC3339),
		State:         string(stateOf(rec)),
		ExitRequested: rec.ExitRequested,
		ExitApproved:  rec.ExitApproved,
		HasExited:     rec.HasExited,
	}
	if rec.FacultyID != nil {
		resp.FacultyID = *rec.FacultyID
	}
	if rec.ExitTime != nil {
		resp.ExitTime = rec.ExitTime.Format(time.RFC3339)
	}
	return resp
}

func toEntryResponses(recs []model.EntryRecord) []dto.EntryResponse {
	result := make([]dto.EntryResponse, 0, len(recs))
	for i := range recs {
		result = append(result, *toEntryResponse(&recs[i]))
	}
	return result
}
