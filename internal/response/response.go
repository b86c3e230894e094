package response

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform reply shape for every endpoint: a success/error
// flag, an HTTP-style status code, English and Arabic messages, and an
// optional diagnostic string populated only for infra/unexpected failures.
type Envelope struct {
	Timestamp  time.Time `json:"timestamp"`
	StatusCode int       `json:"statusCode"`
	IsError    bool      `json:"isError"`
	MessageEn  string    `json:"messageEn"`
	MessageAr  string    `json:"messageAr"`
	ExMessage  string    `json:"exMessage,omitempty"`
	Data       any       `json:"data"`
}

// Error is a workflow-level failure carrying everything the envelope needs.
// Diag holds diagnostic detail for infra/unexpected errors; business-rule
// failures leave it empty so internals never leak to clients.
type Error struct {
	StatusCode int
	MessageEn  string
	MessageAr  string
	Diag       string
}

func (e *Error) Error() string {
	return e.MessageEn
}

// New builds a workflow error with the given status and bilingual messages.
func New(status int, en, ar string) *Error {
	return &Error{StatusCode: status, MessageEn: en, MessageAr: ar}
}

// WithDiag returns a copy of the error carrying diagnostic detail.
func (e *Error) WithDiag(diag string) *Error {
	clone := *e
	clone.Diag = diag
	return &clone
}

// OK writes a success envelope with the given payload and messages.
func OK(c *fiber.Ctx, data any, en, ar string) error {
	return c.Status(http.StatusOK).JSON(Envelope{
		Timestamp:  time.Now().UTC(),
		StatusCode: http.StatusOK,
		IsError:    false,
		MessageEn:  en,
		MessageAr:  ar,
		Data:       data,
	})
}

// Fail writes an error envelope. The HTTP status mirrors the envelope status.
func Fail(c *fiber.Ctx, err *Error) error {
	return c.Status(err.StatusCode).JSON(Envelope{
		Timestamp:  time.Now().UTC(),
		StatusCode: err.StatusCode,
		IsError:    true,
		MessageEn:  err.MessageEn,
		MessageAr:  err.MessageAr,
		ExMessage:  err.Diag,
		Data:       nil,
	})
}
