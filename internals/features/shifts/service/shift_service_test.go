package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	notifModel "medstaff_backend/internals/features/notifications/model"
	"medstaff_backend/internals/features/shifts/model"
	userModel "medstaff_backend/internals/features/users/user/model"
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
		&model.ShiftRequestModel{},
		&notifModel.NotificationModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, shift int) userModel.UserModel {
	t.Helper()
	user := userModel.UserModel{
		Name:     name,
		Email:    name + "@medstaff.test",
		Password: "x",
		Role:     "user",
		Active:   true,
		Status:   true,
		Shift:    &shift,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestCreateValidatesShift(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "ana", 1)

	if _, err := Create(db, user.ID, 3); !errs.IsValidation(err) {
		t.Fatalf("shift 3: got %v, want validation error", err)
	}
	if _, err := Create(db, user.ID, 1); !errs.IsValidation(err) {
		t.Fatalf("same shift: got %v, want validation error", err)
	}
}

func TestCreateSecondPendingConflicts(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "ana", 1)

	if _, err := Create(db, user.ID, 2); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if _, err := Create(db, user.ID, 2); !errs.IsConflict(err) {
		t.Fatalf("second pending request: got %v, want conflict error", err)
	}
}

func TestRespondApprovalMovesUser(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "ana", 1)
	manager := seedUser(t, db, "mira", 1)

	request, err := Create(db, user.ID, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := Respond(db, request.ID, manager.ID, model.StatusApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != model.StatusApproved {
		t.Fatalf("status = %s, want approved", updated.Status)
	}

	var reloaded userModel.UserModel
	db.First(&reloaded, "id = ?", user.ID)
	if reloaded.Shift == nil || *reloaded.Shift != 2 {
		t.Fatalf("user shift = %v, want 2", reloaded.Shift)
	}

	// The request is finalized: a new pending one is allowed again.
	if _, err := Create(db, user.ID, 1); err != nil {
		t.Fatalf("new request after approval: %v", err)
	}
}

func TestRespondRejectionKeepsShift(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "ana", 1)
	manager := seedUser(t, db, "mira", 1)

	request, err := Create(db, user.ID, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := Respond(db, request.ID, manager.ID, model.StatusRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}

	var reloaded userModel.UserModel
	db.First(&reloaded, "id = ?", user.ID)
	if reloaded.Shift == nil || *reloaded.Shift != 1 {
		t.Fatalf("user shift = %v, want unchanged 1", reloaded.Shift)
	}
}

func TestRespondOnlyOnce(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "ana", 1)
	manager := seedUser(t, db, "mira", 1)

	request, err := Create(db, user.ID, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := Respond(db, request.ID, manager.ID, model.StatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := Respond(db, request.ID, manager.ID, model.StatusRejected); !errs.IsAlreadyProcessed(err) {
		t.Fatalf("second answer: got %v, want already-processed", err)
	}
	if _, err := Respond(db, request.ID, manager.ID, "pending"); !errs.IsValidation(err) {
		t.Fatalf("bogus status: got %v, want validation error", err)
	}
}
