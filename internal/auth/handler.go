package auth

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/koperasi-tentera/authapi/internal/identity"
	"github.com/koperasi-tentera/authapi/internal/response"
)

var errBadRequest = response.New(http.StatusBadRequest, "Invalid request data", "بيانات الطلب غير صالحة")

// Handler exposes the registration/verification/PIN endpoints.
type Handler struct {
	svc      *Service
	users    identity.Repository
	validate *validator.Validate
}

// NewHandler builds the HTTP handler for the auth workflows.
func NewHandler(svc *Service, users identity.Repository) *Handler {
	return &Handler{svc: svc, users: users, validate: validator.New()}
}

// booleanResult mirrors the success payload of the verification endpoints.
type booleanResult struct {
	Success bool `json:"success"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	ICNumber string `json:"icNumber" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// Register creates a user and dispatches both OTPs.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := h.parse(c, &req); err != nil {
		return response.Fail(c, errBadRequest)
	}
	userID, werr := h.svc.Register(c.UserContext(), RegisterInput{
		Email:    req.Email,
		Phone:    req.Phone,
		ICNumber: req.ICNumber,
		Username: req.Username,
	})
	if werr != nil {
		return response.Fail(c, werr)
	}
	return response.OK(c, userID, "User created successfully!", "تم إنشاء المستخدم بنجاح.")
}

type verifyRequest struct {
	UserID string `json:"userId" validate:"required"`
	OTP    string `json:"otp" validate:"required"`
}

// VerifyEmail confirms the email channel with the supplied code.
func (h *Handler) VerifyEmail(c *fiber.Ctx) error {
	var req verifyRequest
	if err := h.parse(c, &req); err != nil {
		return response.Fail(c, errBadRequest)
	}
	if werr := h.svc.VerifyEmail(c.UserContext(), req.UserID, req.OTP); werr != nil {
		return response.Fail(c, werr)
	}
	return response.OK(c, booleanResult{Success: true}, "Email successfully verified!", "تم التحقق من الايميل.")
}

// VerifyPhone confirms the phone channel with the supplied code.
func (h *Handler) VerifyPhone(c *fiber.Ctx) error {
	var req verifyRequest
	if err := h.parse(c, &req); err != nil {
		return response.Fail(c, errBadRequest)
	}
	if werr := h.svc.VerifyPhone(c.UserContext(), req.UserID, req.OTP); werr != nil {
		return response.Fail(c, werr)
	}
	return response.OK(c, booleanResult{Success: true}, "Phone number successfully verified!", "تم التحقق من رقم الهاتف بنجاح.")
}

type createPINRequest struct {
	UserID string `json:"userId" validate:"required"`
	PIN    string `json:"pin" validate:"required"`
}

// CreatePIN sets a first-time PIN.
func (h *Handler) CreatePIN(c *fiber.Ctx) error {
	var req createPINRequest
	if err := h.parse(c, &req); err != nil {
		return response.Fail(c, errBadRequest)
	}
	if werr := h.svc.CreatePIN(c.UserContext(), req.UserID, req.PIN); werr != nil {
		return response.Fail(c, werr)
	}
	return response.OK(c, booleanResult{Success: true}, "PIN was successfully created!", "تم إنشاء الرمز بنجاح")
}

type loginRequest struct {
	ICNumber string `json:"icNumber" validate:"required"`
}

// Login runs the login challenge: IC lookup plus fresh OTP dispatch.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := h.parse(c, &req); err != nil {
		return response.Fail(c, errBadRequest)
	}
	userID, werr := h.svc.LoginChallenge(c.UserContext(), req.ICNumber)
	if werr != nil {
		return response.Fail(c, werr)
	}
	return response.OK(c, userID, "User is valid!", "بيانات المستخدم موجودة بالنظام.")
}

type updatePINRequest struct {
	UserID string `json:"userId" validate:"required"`
	OldPIN string `json:"oldPin" validate:"required"`
	NewPIN string `json:"newPin" validate:"required"`
}

// UpdatePIN verifies the old PIN and replaces it.
func (h *Handler) UpdatePIN(c *fiber.Ctx) error {
	var req updatePINRequest
	if err := h.parse(c, &req); err != nil {
		return response.Fail(c, errBadRequest)
	}
	userID, werr := h.svc.UpdatePIN(c.UserContext(), req.UserID, req.OldPIN, req.NewPIN)
	if werr != nil {
		return response.Fail(c, werr)
	}
	return response.OK(c, userID, "Process Successfully done!", "تم معالجة العملية بنجاح")
}

// Profile returns the confirmation state for a user.
func (h *Handler) Profile(c *fiber.Ctx) error {
	userID := c.Params("id")
	user, err := h.users.FindByID(c.UserContext(), userID)
	if err != nil {
		return response.Fail(c, ErrUserNotFound)
	}
	return response.OK(c, fiber.Map{
		"userId":         user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"phone":          user.Phone,
		"icNumber":       user.ICNumber,
		"role":           user.Role,
		"emailConfirmed": user.EmailConfirmed,
		"phoneConfirmed": user.PhoneConfirmed,
		"hasPin":         user.HasPIN(),
		"createdAt":      user.CreatedAt,
	}, "User profile", "بيانات المستخدم")
}

func (h *Handler) parse(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return err
	}
	return h.validate.Struct(req)
}
