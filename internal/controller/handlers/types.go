package handlers

import (
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"go.uber.org/zap"
)

// Handlers обработчики команд и шагов диалогов
type Handlers struct {
	services     callbacktypes.Services
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandlers создаёт обработчики; stateManager общий с callback handlers
func NewHandlers(
	services callbacktypes.Services,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		services:     services,
		stateManager: stateManager,
		logger:       logger,
	}
}
