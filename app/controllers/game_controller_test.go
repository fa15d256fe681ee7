package controllers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/DedS3t/monopoly-engine/platform/lobby"
	"github.com/DedS3t/monopoly-engine/platform/registry"
)

func TestStatusFor(t *testing.T) {
	tcs := []struct {
		err  error
		want int
	}{
		{engine.ErrNotYourTurn, fiber.StatusForbidden},
		{engine.ErrWrongPhase, fiber.StatusConflict},
		{fmt.Errorf("parse: %w", engine.ErrUnknownAction), fiber.StatusBadRequest},
		{engine.ErrAlreadyOwned, fiber.StatusConflict},
		{engine.ErrInsufficientFunds, fiber.StatusPaymentRequired},
		{&engine.FatalError{Err: engine.ErrUnknownEffect}, fiber.StatusInternalServerError},
		{fmt.Errorf("%w: g1", registry.ErrSessionNotFound), fiber.StatusNotFound},
		{registry.ErrUnavailable, fiber.StatusServiceUnavailable},
		{fmt.Errorf("%w: 1m0s left", registry.ErrDeadlineNotReached), fiber.StatusConflict},
		{engine.ErrPlayerOut, fiber.StatusConflict},
		{lobby.ErrGameNotFound, fiber.StatusNotFound},
		{lobby.ErrNotSeated, fiber.StatusForbidden},
		{lobby.ErrGameNotOpen, fiber.StatusConflict},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range tcs {
		if got := StatusFor(tc.err); got != tc.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
