package constants

import "time"

const (
	AppName            = "habitforge"
	DefaultKeyringUser = "gateway-connection"
	DefaultConfigPath  = "~/.config/habitforge/habitforge.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitforge-"
	BackupFileSuffix = ".db"

	// Sync constants
	SyncDebounce   = 300 * time.Millisecond
	SyncMaxRetries = 3
)

const (
	// LevelXP is the amount of XP required to advance one level.
	LevelXP = 100

	// PerfectDayBonus is granted once when every scheduled habit is completed.
	PerfectDayBonus = 50

	// RelapseRecoveryXP is the fixed reward for logging a relapse honestly.
	RelapseRecoveryXP = 5

	// ProgramDays is the length of the discipline program.
	ProgramDays = 66

	// SideQuestsPerDay is the number of side quests offered each day.
	SideQuestsPerDay = 4

	// LevelsPerRank is how many levels each rank in an archetype ladder spans.
	LevelsPerRank = 5
)

// Streak multiplier tiers, checked highest-first.
const (
	StreakTierWeek    = 7
	StreakTierMonth   = 30
	StreakTierProgram = 66

	MultiplierBase    = 1.0
	MultiplierWeek    = 1.3
	MultiplierMonth   = 1.5
	MultiplierProgram = 2.0
)
