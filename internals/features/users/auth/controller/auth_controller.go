package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"medstaff_backend/internals/configs"
	authDTO "medstaff_backend/internals/features/users/auth/dto"
	authModel "medstaff_backend/internals/features/users/auth/model"
	userModel "medstaff_backend/internals/features/users/user/model"
	helper "medstaff_backend/internals/helpers"
)

const accessTokenTTL = 24 * time.Hour

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

// POST /api/auth/register — creates a pending account (status=false)
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[ERROR] bcrypt:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     "user",
		Active:   true,
		Status:   false,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusBadRequest, "Name or email already in use")
		}
		log.Println("[ERROR] Register:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	log.Printf("[SUCCESS] New signup: %s (pending approval)\n", user.Name)
	return helper.SuccessWithCode(c, fiber.StatusCreated,
		"Account created. An administrator must approve it before mobile login.", user)
}

// POST /api/auth/login — dashboard login (any active account)
func (ac *AuthController) Login(c *fiber.Ctx) error {
	return ac.login(c, false)
}

// POST /api/auth/login-mobile — mobile login, requires an approved account
func (ac *AuthController) LoginMobile(c *fiber.Ctx) error {
	return ac.login(c, true)
}

func (ac *AuthController) login(c *fiber.Ctx, mobile bool) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "email = ?", req.Email).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.Active {
		return helper.Error(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if mobile && !user.Status {
		return helper.Error(c, fiber.StatusForbidden, "Your account is awaiting approval")
	}

	token, err := ac.signToken(&user)
	if err != nil {
		log.Println("[ERROR] signToken:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.Success(c, "Login successful", fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (ac *AuthController) signToken(user *userModel.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID.String(),
		"name": user.Name,
		"role": user.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
	}
	if user.Region != nil {
		claims["region"] = *user.Region
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

// POST /api/auth/logout — blacklists the presented token
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	tokenString := helper.GetRawAccessToken(c)
	if tokenString == "" {
		return helper.Error(c, fiber.StatusBadRequest, "No token provided")
	}

	// keep the row until the token would have expired anyway
	expiredAt := time.Now().Add(accessTokenTTL)
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0)
		}
	}

	entry := authModel.TokenBlacklist{Token: tokenString, ExpiredAt: expiredAt}
	if err := ac.DB.Create(&entry).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		log.Println("[ERROR] Logout blacklist:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to log out")
	}

	return helper.Success(c, "Logged out", nil)
}

// PATCH /api/u/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req authDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := ac.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		log.Println("[ERROR] ChangePassword:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to change password")
	}

	return helper.Success(c, "Password changed", nil)
}
