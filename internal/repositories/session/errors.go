package session

import (
	"fmt"

	"github.com/mindvale/clinic/internal/models"
)

// ErrSessionNotFound is returned when a session does not exist or was
// soft-deleted
var ErrSessionNotFound = fmt.Errorf("therapy session: %w", models.ErrEntityNotFound)
