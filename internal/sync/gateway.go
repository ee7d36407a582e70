// Package sync pushes local game state to a remote gateway. The local store
// is always the source of truth; everything here is best-effort replication
// that must never block or corrupt local play.
package sync

import (
	"github.com/habitforge/habitforge/internal/models"
)

// Gateway is the remote persistence contract. Implementations validate
// every payload before transmission and return an error without sending
// anything when validation fails.
type Gateway interface {
	SaveProfile(userID string, state models.GameState) error
	LoadProfile(userID string) (*models.GameState, error)
	SaveDailyLog(userID string, rec models.DayRecord) error
	LoadDailyLogs(userID string) ([]models.DayRecord, error)
	DeleteAllUserData(userID string) error
}
