package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authModel "medstaff_backend/internals/features/users/auth/model"
	userModel "medstaff_backend/internals/features/users/user/model"
)

func testApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&userModel.UserModel{}, &authModel.TokenBlacklist{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctrl := NewAuthController(db)
	app := fiber.New()
	app.Post("/register", ctrl.Register)
	app.Post("/login", ctrl.Login)
	app.Post("/login-mobile", ctrl.LoginMobile)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s: %v", path, err)
	}
	return resp
}

func TestRegisterCreatesPendingAccount(t *testing.T) {
	app, db := testApp(t)

	resp := postJSON(t, app, "/register",
		`{"name":"ana","email":"ana@medstaff.test","password":"secret123"}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}

	var user userModel.UserModel
	if err := db.First(&user, "email = ?", "ana@medstaff.test").Error; err != nil {
		t.Fatalf("account not persisted: %v", err)
	}
	if user.Status {
		t.Fatal("fresh account must start unapproved")
	}
	if user.Password == "secret123" {
		t.Fatal("password stored in plaintext")
	}

	// duplicate email
	resp = postJSON(t, app, "/register",
		`{"name":"ana2","email":"ana@medstaff.test","password":"secret123"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("duplicate register status = %d, want 400", resp.StatusCode)
	}
}

func TestMobileLoginRequiresApproval(t *testing.T) {
	app, db := testApp(t)

	if resp := postJSON(t, app, "/register",
		`{"name":"ana","email":"ana@medstaff.test","password":"secret123"}`); resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}
	creds := `{"email":"ana@medstaff.test","password":"secret123"}`

	// Dashboard login works while still pending; mobile does not.
	if resp := postJSON(t, app, "/login", creds); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("dashboard login status = %d, want 200", resp.StatusCode)
	}
	if resp := postJSON(t, app, "/login-mobile", creds); resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("pending mobile login status = %d, want 403", resp.StatusCode)
	}

	db.Model(&userModel.UserModel{}).Where("email = ?", "ana@medstaff.test").Update("status", true)
	if resp := postJSON(t, app, "/login-mobile", creds); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("approved mobile login status = %d, want 200", resp.StatusCode)
	}

	// Deactivation blocks both surfaces.
	db.Model(&userModel.UserModel{}).Where("email = ?", "ana@medstaff.test").Update("active", false)
	if resp := postJSON(t, app, "/login", creds); resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("deactivated login status = %d, want 403", resp.StatusCode)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := testApp(t)

	if resp := postJSON(t, app, "/register",
		`{"name":"ana","email":"ana@medstaff.test","password":"secret123"}`); resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}

	if resp := postJSON(t, app, "/login",
		`{"email":"ana@medstaff.test","password":"wrong-pass"}`); resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", resp.StatusCode)
	}
	if resp := postJSON(t, app, "/login",
		`{"email":"nobody@medstaff.test","password":"secret123"}`); resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("unknown email status = %d, want 401", resp.StatusCode)
	}
}
