// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/diningguru/backend/internal/mealperiod"
)

// MealPeriodHandlers reports the meal period currently being served.
type MealPeriodHandlers struct {
	clock *mealperiod.Clock
}

// NewMealPeriods creates a new MealPeriodHandlers instance.
func NewMealPeriods(clock *mealperiod.Clock) *MealPeriodHandlers {
	return &MealPeriodHandlers{clock: clock}
}

// Current returns the meal period for the current local time.
func (h *MealPeriodHandlers) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"meal_period": h.clock.Current(),
		"timezone":    h.clock.Location().String(),
	})
}
