package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "timetrack/internal/errors"
)

// persistenceFailure logs a datastore error with its context and returns the generic
// error shown to the caller.
func persistenceFailure(log zerolog.Logger, message, logMsg string, userID uuid.UUID, err error) error {
	log.Error().
		Err(err).
		Str("user_id", userID.String()).
		Msg(logMsg)
	return apperrors.NewOperationError(message, err)
}

// defaultPage fills in an unset or invalid limit.
func defaultPage(offset, limit, fallback int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = fallback
	}
	return offset, limit
}
