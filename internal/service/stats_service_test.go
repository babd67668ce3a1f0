package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ShikhaMathur02/Visitor-System/config"
	"github.com/ShikhaMathur02/Visitor-System/internal/dto"
	"github.com/ShikhaMathur02/Visitor-System/internal/model"
	"github.com/ShikhaMathur02/Visitor-System/internal/repository"
)

func TestStatsService_DailyStats(t *testing.T) {
	entryRepo := newMockEntryRepo()
	userRepo := newMockUserRepo()
	seedFaculty(userRepo, "fac-001", "CSE")
	repo := &repository.Repository{User: userRepo, Entry: entryRepo}

	entrySvc := NewEntryService(repo, &mockDispatcher{}, zap.NewNop())
	statsSvc := NewStatsService(&config.Config{}, repo, nil, zap.NewNop())
	ctx := context.Background()

	// three students: one inside, one pending, one fully exited
	for _, id := range []string{"S1", "S2", "S3"} {
		if _, err := entrySvc.Register(ctx, model.KindStudent, &dto.EntryRequest{
			Identity: id, Name: "N-" + id, Purpose: "class",
		}); err != nil {
			t.Fatalf("Register %s failed: %v", id, err)
		}
	}
	entrySvc.RequestExit(ctx, model.KindStudent, "S2")
	entrySvc.RequestExit(ctx, model.KindStudent, "S3")
	entrySvc.ApproveExit(ctx, model.KindStudent, "S3")
	if _, err := entrySvc.ConfirmExit(ctx, model.KindStudent, "S3"); err != nil {
		t.Fatalf("ConfirmExit failed: %v", err)
	}

	// one visitor, approved but not yet out of the gate
	if _, err := entrySvc.Register(ctx, model.KindVisitor, &dto.EntryRequest{
		Identity: "9876543210", Name: "Asha", Purpose: "meeting",
		Department: "CSE", FacultyID: "fac-001",
	}); err != nil {
		t.Fatalf("visitor Register failed: %v", err)
	}
	entrySvc.RequestExit(ctx, model.KindVisitor, "9876543210")
	entrySvc.ApproveExit(ctx, model.KindVisitor, "9876543210")

	stats, err := statsSvc.DailyStats(ctx)
	if err != nil {
		t.Fatalf("DailyStats failed: %v", err)
	}

	st := stats.Students
	if st.TotalToday != 3 {
		t.Errorf("students total today: expected 3, got %d", st.TotalToday)
	}
	if st.ExitedToday != 1 {
		t.Errorf("students exited today: expected 1, got %d", st.ExitedToday)
	}
	if st.PendingApproval != 1 {
		t.Errorf("students pending approval: expected 1, got %d", st.PendingApproval)
	}
	if st.ApprovedNotExited != 0 {
		t.Errorf("students approved not exited: expected 0, got %d", st.ApprovedNotExited)
	}
	if st.CurrentlyInside != 2 {
		t.Errorf("students currently inside: expected 2, got %d", st.CurrentlyInside)
	}

	vs := stats.Visitors
	if vs.TotalToday != 1 || vs.ApprovedNotExited != 1 || vs.CurrentlyInside != 1 {
		t.Errorf("unexpected visitor stats: %+v", vs)
	}
	if vs.ExitedToday != 0 || vs.PendingApproval != 0 {
		t.Errorf("unexpected visitor stats: %+v", vs)
	}
}

func TestStatsService_CountsAreReadOnly(t *testing.T) {
	entryRepo := newMockEntryRepo()
	repo := &repository.Repository{User: newMockUserRepo(), Entry: entryRepo}

	entrySvc := NewEntryService(repo, &mockDispatcher{}, zap.NewNop())
	statsSvc := NewStatsService(&config.Config{}, repo, nil, zap.NewNop())
	ctx := context.Background()

	created, err := entrySvc.Register(ctx, model.KindStudent, &dto.EntryRequest{
		Identity: "S1", Name: "A", Purpose: "library",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	before := *entryRepo.records[created.Record.ID]
	if _, err := statsSvc.DailyStats(ctx); err != nil {
		t.Fatalf("DailyStats failed: %v", err)
	}
	after := *entryRepo.records[created.Record.ID]

	if before.ExitRequested != after.ExitRequested ||
		before.ExitApproved != after.ExitApproved ||
		before.HasExited != after.HasExited {
		t.Error("stats computation must not mutate entry records")
	}
}

// Counting "inside" ignores the entry date: someone who entered
// yesterday and never exited is still on campus.
func TestStatsService_InsideSpansDays(t *testing.T) {
	entryRepo := newMockEntryRepo()
	repo := &repository.Repository{User: newMockUserRepo(), Entry: entryRepo}
	statsSvc := NewStatsService(&config.Config{}, repo, nil, zap.NewNop())

	entryRepo.records["old"] = &model.EntryRecord{
		RecordID:  "old",
		Kind:      model.KindStudent,
		Identity:  "S-old",
		Name:      "Overnight",
		Purpose:   "hostel",
		EntryTime: time.Now().AddDate(0, 0, -1),
	}

	stats, err := statsSvc.DailyStats(context.Background())
	if err != nil {
		t.Fatalf("DailyStats failed: %v", err)
	}
	if stats.Students.TotalToday != 0 {
		t.Errorf("yesterday's entry must not count toward today, got %d", stats.Students.TotalToday)
	}
	if stats.Students.CurrentlyInside != 1 {
		t.Errorf("expected 1 currently inside, got %d", stats.Students.CurrentlyInside)
	}
}
