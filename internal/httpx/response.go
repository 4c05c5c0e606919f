package httpx

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/apperr"
)

// envelope is the error response body (§7): {code, message, params?}.
type envelope struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
	Params  []any       `json:"params,omitempty"`
}

// WithError renders err as the stable error envelope and status code.
// Any error that isn't an *apperr.AppError is treated as an unexpected
// internal failure and never leaks its raw message to the client.
func WithError(c *fiber.Ctx, err error) error {
	var ae *apperr.AppError
	if !errors.As(err, &ae) {
		ae = apperr.Internal(err)
	}

	return c.Status(ae.Status).JSON(envelope{Code: ae.Code, Message: ae.Message, Params: ae.Params})
}

// OK writes a 200 response with body.
func OK(c *fiber.Ctx, body any) error {
	return c.Status(fiber.StatusOK).JSON(body)
}

// Created writes a 201 response with body.
func Created(c *fiber.Ctx, body any) error {
	return c.Status(fiber.StatusCreated).JSON(body)
}

// NoContent writes a bodyless 200, used by the gateway's delete/action
// endpoints per §6 ("200 read/update/delete ok").
func NoContent(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{})
}

// Decode parses c's JSON body into a fresh *T and validates it, returning
// a ready-to-use pointer or the mapped validation error.
func Decode[T any](c *fiber.Ctx) (*T, error) {
	var body T

	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return nil, apperr.New(apperr.EWrongRequest, err.Error())
		}
	}

	if err := ValidateStruct(&body); err != nil {
		return nil, err
	}

	return &body, nil
}
