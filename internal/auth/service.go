package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/koperasi-tentera/authapi/internal/credential"
	"github.com/koperasi-tentera/authapi/internal/identity"
	"github.com/koperasi-tentera/authapi/internal/notification"
	"github.com/koperasi-tentera/authapi/internal/otp"
	"github.com/koperasi-tentera/authapi/internal/response"
	"github.com/koperasi-tentera/authapi/internal/validation"
)

// Error catalogue. Business-rule failures carry fixed bilingual messages and
// no diagnostic text; infra failures get a diagnostic attached at the call
// site via WithDiag.
var (
	ErrDuplicatePhone     = response.New(http.StatusBadRequest, "Phone Number is already Registered in our system!", "رقم الجوال مسجل من قبل")
	ErrDuplicateEmail     = response.New(http.StatusBadRequest, "Email is already Registered in our system!", "البريد الالكتروني مسجل من قبل")
	ErrDuplicateICNumber  = response.New(http.StatusBadRequest, "There is an account registered with the IC number.", "الرقم التعريفي مسجل من قبل")
	ErrInvalidEmailFormat = response.New(http.StatusBadRequest, "Invalid email format. Please provide a valid email address.", "صيغة البريد الإلكتروني غير صالحة. يرجى تقديم عنوان بريد إلكتروني صحيح")
	ErrInvalidPhoneFormat = response.New(http.StatusBadRequest, "Invalid phone number format. Please provide a valid Malaysian phone number.", "صيغة رقم الهاتف غير صالحة. يرجى تقديم رقم هاتف ماليزي صحيح.")
	ErrCreationFailed     = response.New(http.StatusBadRequest, "An error occurred while processing your request", "فشلت عملية التسجيل. برجاء التحقق من البيانات المدخلة وحاول مرة ثانية.")

	ErrUserNotFound    = response.New(http.StatusNotFound, "User not found", "المستخدم غير موجود")
	ErrEmailOtpInvalid = response.New(http.StatusBadRequest, "Invalid OTP", "خطأ بالكود")
	ErrPhoneOtpInvalid = response.New(http.StatusBadRequest, "Incorrect OTP", "خطأ بالكود")
	ErrOtpExpired      = response.New(http.StatusBadRequest, "OTP Expired", "انتهت صلاحية الكود")
	ErrUpdateFailed    = response.New(http.StatusBadRequest, "An error occurred while processing your request", "حدث خطأ أثناء معالجة الطلب. برجاء التحقق من البيانات المدخلة وحاول مرة ثانية.")

	ErrInvalidICNumber = response.New(http.StatusBadRequest, "Invalid Ic Number", "خطأ ببيانات الطلب")
	ErrInvalidOldPIN   = response.New(http.StatusBadRequest, "Invalid Old PIN Number", "الرمز غير صحيح")
	ErrPINRejected     = response.New(http.StatusBadRequest, "An error occurred while processing your request", "حدث خطأ أثناء معالجة الطلب. برجاء التحقق من البيانات المدخلة وحاول مرة ثانية.")

	ErrUnexpected = response.New(http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", "حدث خطأ غير متوقع. يرجى المحاولة مرة أخرى لاحقاً")
)

const (
	emailOTPSubject   = "Email Validation - Koperasi Tentera"
	accountOTPSubject = "Account Verification - Koperasi Tentera"
)

// Service orchestrates registration, verification, login challenge and PIN
// workflows over the repository, credential store and notifier collaborators.
type Service struct {
	users  identity.Repository
	pins   credential.Store
	otp    *otp.Generator
	mailer notification.Mailer
	sms    notification.SMS
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the workflow collaborators together.
func NewService(users identity.Repository, pins credential.Store, gen *otp.Generator, mailer notification.Mailer, sms notification.SMS, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		pins:   pins,
		otp:    gen,
		mailer: mailer,
		sms:    sms,
		logger: logger,
		now:    time.Now,
	}
}

// RegisterInput carries the registration request fields. The PIN is not
// collected here; it is created separately once both channels are verified.
type RegisterInput struct {
	Email    string
	Phone    string
	ICNumber string
	Username string
}

// Register runs the uniqueness checks, validates formats, creates the user
// with both OTPs issued, and dispatches the codes. Checks short-circuit in a
// fixed order: phone, email, IC number, email format, phone format.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, *response.Error) {
	if _, err := s.users.FindByPhone(ctx, in.Phone); err == nil {
		return "", ErrDuplicatePhone
	} else if !errors.Is(err, identity.ErrNotFound) {
		return "", ErrUnexpected.WithDiag(err.Error())
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return "", ErrDuplicateEmail
	} else if !errors.Is(err, identity.ErrNotFound) {
		return "", ErrUnexpected.WithDiag(err.Error())
	}
	if _, err := s.users.FindByICNumber(ctx, in.ICNumber); err == nil {
		return "", ErrDuplicateICNumber
	} else if !errors.Is(err, identity.ErrNotFound) {
		return "", ErrUnexpected.WithDiag(err.Error())
	}

	if !validation.EmailFormat(in.Email) {
		return "", ErrInvalidEmailFormat
	}
	if !validation.MalaysianMobile(in.Phone) {
		return "", ErrInvalidPhoneFormat
	}

	emailCode, emailExpiry := s.otp.Issue()
	phoneCode, phoneExpiry := s.otp.Issue()

	user := identity.User{
		ID:             uuid.NewString(),
		Username:       in.Username,
		Email:          in.Email,
		Phone:          in.Phone,
		ICNumber:       in.ICNumber,
		Role:           identity.RoleUser,
		EmailOTP:       emailCode,
		PhoneOTP:       phoneCode,
		EmailOTPExpiry: emailExpiry,
		PhoneOTPExpiry: phoneExpiry,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", ErrCreationFailed.WithDiag(err.Error())
	}

	// Best effort: the account exists even if delivery fails.
	s.dispatchOTPs(ctx, user, emailOTPSubject)

	return user.ID, nil
}

// VerifyEmail checks the supplied code against the stored email OTP and, on
// success, marks the email channel confirmed. A wrong code is reported as a
// mismatch even when the stored code has also expired.
func (s *Service) VerifyEmail(ctx context.Context, userID, code string) *response.Error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return s.lookupError(err)
	}

	switch otp.Validate(user.EmailOTP, user.EmailOTPExpiry, code, s.now().UTC()) {
	case otp.Mismatch:
		return ErrEmailOtpInvalid
	case otp.Expired:
		return ErrOtpExpired
	}

	user.EmailConfirmed = true
	if err := s.users.Update(ctx, user); err != nil {
		return ErrUpdateFailed.WithDiag(err.Error())
	}
	return nil
}

// VerifyPhone is the phone-channel counterpart of VerifyEmail.
func (s *Service) VerifyPhone(ctx context.Context, userID, code string) *response.Error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return s.lookupError(err)
	}

	switch otp.Validate(user.PhoneOTP, user.PhoneOTPExpiry, code, s.now().UTC()) {
	case otp.Mismatch:
		return ErrPhoneOtpInvalid
	case otp.Expired:
		return ErrOtpExpired
	}

	user.PhoneConfirmed = true
	if err := s.users.Update(ctx, user); err != nil {
		return ErrUpdateFailed.WithDiag(err.Error())
	}
	return nil
}

// LoginChallenge looks the user up by IC number, reissues both OTPs and
// redispatches them. An unknown IC number reports the same generic invalid
// message so existence is not leaked. No credential is checked here; this is
// the identity-verification step of the two-step login.
func (s *Service) LoginChallenge(ctx context.Context, icNumber string) (string, *response.Error) {
	user, err := s.users.FindByICNumber(ctx, icNumber)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return "", ErrInvalidICNumber
		}
		return "", ErrUnexpected.WithDiag(err.Error())
	}

	// Fresh pair overwrites whatever is stored; earlier codes stop matching.
	user.EmailOTP, user.EmailOTPExpiry = s.otp.Issue()
	user.PhoneOTP, user.PhoneOTPExpiry = s.otp.Issue()
	if err := s.users.Update(ctx, user); err != nil {
		return "", ErrUpdateFailed.WithDiag(err.Error())
	}

	s.dispatchOTPs(ctx, user, accountOTPSubject)

	return user.ID, nil
}

// CreatePIN sets a first-time PIN for the user.
func (s *Service) CreatePIN(ctx context.Context, userID, pin string) *response.Error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return s.lookupError(err)
	}
	if err := s.pins.Set(ctx, userID, pin); err != nil {
		switch {
		case errors.Is(err, credential.ErrExists), errors.Is(err, credential.ErrBadFormat):
			return ErrPINRejected.WithDiag(err.Error())
		case errors.Is(err, identity.ErrNotFound):
			return ErrUserNotFound
		default:
			return ErrUnexpected.WithDiag(err.Error())
		}
	}
	return nil
}

// UpdatePIN verifies the old PIN and replaces it with the new one.
func (s *Service) UpdatePIN(ctx context.Context, userID, oldPIN, newPIN string) (string, *response.Error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", s.lookupError(err)
	}

	if err := s.pins.Verify(ctx, userID, oldPIN); err != nil {
		if errors.Is(err, credential.ErrMismatch) {
			return "", ErrInvalidOldPIN
		}
		return "", ErrUnexpected.WithDiag(err.Error())
	}
	if err := s.pins.Change(ctx, userID, oldPIN, newPIN); err != nil {
		switch {
		case errors.Is(err, credential.ErrMismatch):
			return "", ErrInvalidOldPIN
		case errors.Is(err, credential.ErrBadFormat):
			return "", ErrPINRejected.WithDiag(err.Error())
		default:
			return "", ErrUnexpected.WithDiag(err.Error())
		}
	}
	return user.ID, nil
}

func (s *Service) lookupError(err error) *response.Error {
	if errors.Is(err, identity.ErrNotFound) {
		return ErrUserNotFound
	}
	return ErrUnexpected.WithDiag(err.Error())
}

func (s *Service) dispatchOTPs(ctx context.Context, user identity.User, subject string) {
	if err := s.mailer.SendEmail(ctx, user.Email, subject, fmt.Sprintf("Here is your OTP: %s", user.EmailOTP)); err != nil {
		s.logger.Warn("email otp dispatch failed", "user_id", user.ID, "error", err)
	}
	if err := s.sms.SendSMS(ctx, user.Phone, fmt.Sprintf("Koperasi Tentera App - Here is your OTP: %s", user.PhoneOTP)); err != nil {
		s.logger.Warn("sms otp dispatch failed", "user_id", user.ID, "error", err)
	}
}
