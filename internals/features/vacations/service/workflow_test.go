package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	notifModel "medstaff_backend/internals/features/notifications/model"
	userModel "medstaff_backend/internals/features/users/user/model"
	"medstaff_backend/internals/features/vacations/model"
	"medstaff_backend/internals/helpers/errs"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&model.VacationRequestModel{},
		&notifModel.NotificationModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role, region string) userModel.UserModel {
	t.Helper()
	user := userModel.UserModel{
		Name:     name,
		Email:    name + "@medstaff.test",
		Password: "x",
		Role:     role,
		Active:   true,
		Status:   true,
	}
	if region != "" {
		user.Region = &region
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return user
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustCreate(t *testing.T, db *gorm.DB, requester, replacement userModel.UserModel, start, end time.Time) *model.VacationRequestModel {
	t.Helper()
	request, err := Create(db, requester.ID, start, end, replacement.ID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	return request
}

func TestOverlapsInclusiveBounds(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"disjoint before", 1, 5, 10, 15, false},
		{"disjoint after", 10, 15, 1, 5, false},
		{"touching at boundary", 1, 10, 10, 15, true},
		{"contained", 5, 7, 1, 10, true},
		{"containing", 1, 10, 5, 7, true},
		{"partial", 5, 12, 10, 15, true},
		{"adjacent days do not overlap", 16, 20, 10, 15, false},
	}
	for _, tc := range cases {
		a1, a2 := day(2025, 6, tc.aStart), day(2025, 6, tc.aEnd)
		b1, b2 := day(2025, 6, tc.bStart), day(2025, 6, tc.bEnd)
		if got := Overlaps(a1, a2, b1, b2); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		if got := Overlaps(b1, b2, a1, a2); got != tc.want {
			t.Errorf("%s (swapped): Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCreateRejectsSelfReplacement(t *testing.T) {
	db := testDB(t)
	requester := seedUser(t, db, "ana", "user", "Gjilan")

	_, err := Create(db, requester.ID, day(2025, 7, 1), day(2025, 7, 5), requester.ID)
	if !errs.IsValidation(err) {
		t.Fatalf("self replacement: got %v, want validation error", err)
	}
}

func TestCreateRejectsReversedDates(t *testing.T) {
	db := testDB(t)
	requester := seedUser(t, db, "ana", "user", "Gjilan")
	replacement := seedUser(t, db, "blerta", "user", "Gjilan")

	_, err := Create(db, requester.ID, day(2025, 7, 5), day(2025, 7, 1), replacement.ID)
	if !errs.IsValidation(err) {
		t.Fatalf("reversed dates: got %v, want validation error", err)
	}
}

func TestCreateConflictsWithLiveRequest(t *testing.T) {
	db := testDB(t)
	requester := seedUser(t, db, "ana", "user", "Gjilan")
	replacement := seedUser(t, db, "blerta", "user", "Gjilan")

	first := mustCreate(t, db, requester, replacement, day(2025, 7, 1), day(2025, 7, 10))

	_, err := Create(db, requester.ID, day(2025, 7, 10), day(2025, 7, 15), replacement.ID)
	if !errs.IsConflict(err) {
		t.Fatalf("overlapping create: got %v, want conflict error", err)
	}

	// A terminal request frees the dates again.
	if _, err := RespondReplacement(db, first.ID, replacement.ID, false); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if _, err := Create(db, requester.ID, day(2025, 7, 10), day(2025, 7, 15), replacement.ID); err != nil {
		t.Fatalf("create after decline: %v", err)
	}
}

func TestEligibleReplacementsExcludesBusyUsers(t *testing.T) {
	db := testDB(t)
	requester := seedUser(t, db, "ana", "user", "Gjilan")
	free := seedUser(t, db, "blerta", "user", "Gjilan")
	busy := seedUser(t, db, "driton", "user", "Gjilan")
	cover := seedUser(t, db, "edona", "user", "Gjilan")
	seedUser(t, db, "fatos", "user", "Prishtina")

	inactive := seedUser(t, db, "gezim", "user", "Gjilan")
	db.Model(&inactive).Update("active", false)
	unapproved := seedUser(t, db, "hana", "user", "Gjilan")
	db.Model(&unapproved).Update("status", false)

	// driton has his own approved leave Jun 10-15.
	db.Create(&model.VacationRequestModel{
		UserID:            busy.ID,
		StartDate:         day(2025, 6, 10),
		EndDate:           day(2025, 6, 15),
		ReplacementUserID: free.ID,
		Status:            model.StatusApproved,
		ReplacementStatus: model.ReplacementDeclined,
	})
	// edona already covers an overlapping request awaiting HR.
	db.Create(&model.VacationRequestModel{
		UserID:            busy.ID,
		StartDate:         day(2025, 6, 18),
		EndDate:           day(2025, 6, 19),
		ReplacementUserID: cover.ID,
		Status:            model.StatusPendingAdmin,
		ReplacementStatus: model.ReplacementAccepted,
	})

	candidates, err := ListEligibleReplacements(db, requester.ID, day(2025, 6, 12), day(2025, 6, 20))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != free.ID {
		t.Fatalf("got %d candidates, want only %s", len(candidates), free.Name)
	}

	// Jun 16-20 no longer touches driton's leave, so he is free again.
	candidates, err = ListEligibleReplacements(db, requester.ID, day(2025, 6, 16), day(2025, 6, 20))
	if err != nil {
		t.Fatalf("list adjacent: %v", err)
	}
	ids := map[uuid.UUID]bool{}
	for _, c := range candidates {
		ids[c.ID] = true
	}
	if !ids[busy.ID] {
		t.Fatalf("adjacent window should include %s again, got %v", busy.Name, ids)
	}
	if ids[cover.ID] {
		t.Fatalf("accepted replacement %s must stay excluded", cover.Name)
	}
}

func TestRespondReplacementOnlyOnce(t *testing.T) {
	db := testDB(t)
	requester := seedUser(t, db, "ana", "user", "Gjilan")
	replacement := seedUser(t, db, "blerta", "user", "Gjilan")
	request := mustCreate(t, db, requester, replacement, day(2025, 7, 1), day(2025, 7, 5))

	if _, err := RespondReplacement(db, request.ID, replacement.ID, false); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if _, err := RespondReplacement(db, request.ID, replacement.ID, true); !errs.IsNotFound(err) {
		t.Fatalf("second answer: got %v, want not-found", err)
	}
	// The wrong responder never matches the conditional update either.
	other := mustCreate(t, db, requester, replacement, day(2025, 8, 1), day(2025, 8, 5))
	if _, err := RespondReplacement(db, other.ID, requester.ID, true); !errs.IsNotFound(err) {
		t.Fatalf("wrong responder: got %v, want not-found", err)
	}
}

func TestManagerRespondEnforcesRegionAndStage(t *testing.T) {
	db := testDB(t)
	requester := seedUser(t, db, "ana", "user", "Gjilan")
	replacement := seedUser(t, db, "blerta", "user", "Gjilan")
	manager := seedUser(t, db, "mira", "manager", "Gjilan")
	foreign := seedUser(t, db, "petrit", "manager", "Prishtina")
	request := mustCreate(t, db, requester, replacement, day(2025, 7, 1), day(2025, 7, 5))

	// Still at the replacement stage: nothing for a manager to act on.
	if _, err := ManagerRespond(db, request.ID, manager.ID, *manager.Region, true, ""); !errs.IsAlreadyProcessed(err) {
		t.Fatalf("premature manager action: got %v, want already-processed", err)
	}

	if _, err := RespondReplacement(db, request.ID, replacement.ID, true); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := ManagerRespond(db, request.ID, foreign.ID, *foreign.Region, true, ""); !errs.IsForbidden(err) {
		t.Fatalf("foreign manager: got %v, want forbidden", err)
	}

	updated, err := ManagerRespond(db, request.ID, manager.ID, *manager.Region, true, "")
	if err != nil {
		t.Fatalf("manager approve: %v", err)
	}
	if updated.Status != model.StatusPendingAdmin {
		t.Fatalf("status = %s, want %s", updated.Status, model.StatusPendingAdmin)
	}
	if updated.ManagerApproverID == nil || *updated.ManagerApproverID != manager.ID {
		t.Fatalf("manager approver not recorded")
	}
}

func TestAdminRejectRequiresComment(t *testing.T) {
	db := testDB(t)
	admin := seedUser(t, db, "arta", "admin", "")

	_, err := AdminRespond(db, uuid.New(), admin.ID, model.StatusRejected, "")
	if !errs.IsValidation(err) {
		t.Fatalf("reject without comment: got %v, want validation error", err)
	}
	if _, err := AdminRespond(db, uuid.New(), admin.ID, "pending", ""); !errs.IsValidation(err) {
		t.Fatalf("bogus status: got %v, want validation error", err)
	}
}

func TestAdminRespondSingleWinner(t *testing.T) {
	db := testDB(t)
	requester := seedUser(t, db, "ana", "user", "Gjilan")
	replacement := seedUser(t, db, "blerta", "user", "Gjilan")
	manager := seedUser(t, db, "mira", "manager", "Gjilan")
	admin1 := seedUser(t, db, "arta", "admin", "")
	admin2 := seedUser(t, db, "burim", "admin", "")
	request := mustCreate(t, db, requester, replacement, day(2025, 7, 1), day(2025, 7, 5))

	if _, err := RespondReplacement(db, request.ID, replacement.ID, true); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := ManagerRespond(db, request.ID, manager.ID, *manager.Region, true, ""); err != nil {
		t.Fatalf("manager approve: %v", err)
	}

	if _, err := AdminRespond(db, request.ID, admin1.ID, model.StatusApproved, ""); err != nil {
		t.Fatalf("first admin decision: %v", err)
	}
	if _, err := AdminRespond(db, request.ID, admin2.ID, model.StatusRejected, "too late"); !errs.IsAlreadyProcessed(err) {
		t.Fatalf("second admin decision: got %v, want already-processed", err)
	}

	var final model.VacationRequestModel
	if err := db.First(&final, "id = ?", request.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if final.Status != model.StatusApproved {
		t.Fatalf("loser overwrote the decision: status = %s", final.Status)
	}
	if final.AdminApproverID == nil || *final.AdminApproverID != admin1.ID {
		t.Fatalf("admin approver = %v, want the winner %s", final.AdminApproverID, admin1.ID)
	}
	if final.AdminComment != nil {
		t.Fatalf("loser's comment leaked through: %q", *final.AdminComment)
	}
}

func TestFullApprovalFlowEndsRejected(t *testing.T) {
	db := testDB(t)
	requester := seedUser(t, db, "ana", "user", "Gjilan")
	replacement := seedUser(t, db, "blerta", "user", "Gjilan")
	manager := seedUser(t, db, "mira", "manager", "Gjilan")
	admin := seedUser(t, db, "arta", "admin", "")

	request := mustCreate(t, db, requester, replacement, day(2025, 7, 1), day(2025, 7, 10))
	if request.Status != model.StatusPendingReplacement || request.ReplacementStatus != model.ReplacementPending {
		t.Fatalf("fresh request in wrong state: %s/%s", request.Status, request.ReplacementStatus)
	}

	if _, err := RespondReplacement(db, request.ID, replacement.ID, true); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := ManagerRespond(db, request.ID, manager.ID, *manager.Region, true, ""); err != nil {
		t.Fatalf("manager approve: %v", err)
	}
	final, err := AdminRespond(db, request.ID, admin.ID, model.StatusRejected, "Insufficient coverage")
	if err != nil {
		t.Fatalf("admin reject: %v", err)
	}

	if final.Status != model.StatusRejected {
		t.Fatalf("status = %s, want rejected", final.Status)
	}
	if final.ReplacementStatus != model.ReplacementAccepted {
		t.Fatalf("replacement_status = %s, want accepted (kept as-is on rejection)", final.ReplacementStatus)
	}
	if final.AdminComment == nil || *final.AdminComment != "Insufficient coverage" {
		t.Fatalf("admin comment not kept: %v", final.AdminComment)
	}
	if final.AdminApproverID == nil || *final.AdminApproverID != admin.ID {
		t.Fatalf("admin approver not recorded")
	}

	// Terminal: every later transition attempt fails.
	if _, err := ManagerRespond(db, request.ID, manager.ID, *manager.Region, false, ""); !errs.IsAlreadyProcessed(err) {
		t.Fatalf("manager on terminal: got %v, want already-processed", err)
	}
	if _, err := AdminRespond(db, request.ID, admin.ID, model.StatusApproved, ""); !errs.IsAlreadyProcessed(err) {
		t.Fatalf("admin on terminal: got %v, want already-processed", err)
	}
}

func TestMarkSeenIsIdempotent(t *testing.T) {
	db := testDB(t)
	requester := seedUser(t, db, "ana", "user", "Gjilan")
	replacement := seedUser(t, db, "blerta", "user", "Gjilan")
	request := mustCreate(t, db, requester, replacement, day(2025, 7, 1), day(2025, 7, 5))

	for i := 0; i < 2; i++ {
		if err := MarkSeen(db, request.ID, requester.ID); err != nil {
			t.Fatalf("mark seen (round %d): %v", i+1, err)
		}
	}
	if err := MarkSeen(db, request.ID, replacement.ID); !errs.IsNotFound(err) {
		t.Fatalf("mark seen by non-owner: got %v, want not-found", err)
	}

	var reloaded model.VacationRequestModel
	db.First(&reloaded, "id = ?", request.ID)
	if !reloaded.IsSeen {
		t.Fatal("is_seen not set")
	}
}

func TestMarkAllSeenOnlyTouchesFinalized(t *testing.T) {
	db := testDB(t)
	requester := seedUser(t, db, "ana", "user", "Gjilan")
	replacement := seedUser(t, db, "blerta", "user", "Gjilan")

	pending := mustCreate(t, db, requester, replacement, day(2025, 7, 1), day(2025, 7, 5))
	done := mustCreate(t, db, requester, replacement, day(2025, 8, 1), day(2025, 8, 5))
	if _, err := RespondReplacement(db, done.ID, replacement.ID, false); err != nil {
		t.Fatalf("decline: %v", err)
	}

	if err := MarkAllSeen(db, requester.ID); err != nil {
		t.Fatalf("mark all: %v", err)
	}

	var rows []model.VacationRequestModel
	db.Order("start_date asc").Find(&rows)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].ID == pending.ID && rows[0].IsSeen {
		t.Fatal("pending request must not be marked seen")
	}
	for _, row := range rows {
		if row.ID == done.ID && !row.IsSeen {
			t.Fatal("finalized request should be marked seen")
		}
	}
}
