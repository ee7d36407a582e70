package sync

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	_ "github.com/lib/pq"

	"github.com/habitforge/habitforge/internal/migration"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/validation"
	"github.com/habitforge/habitforge/migrations"
)

// PostgresGateway replicates game state to a Postgres instance.
type PostgresGateway struct {
	connStr string
	db      *sql.DB
}

func NewPostgresGateway(connStr string) *PostgresGateway {
	return &PostgresGateway{connStr: connStr}
}

// Init opens the connection and brings the remote schema up to date.
func (g *PostgresGateway) Init(logFn func(string)) error {
	db, err := sql.Open("postgres", g.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	g.db = db

	if err := g.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	runner := migration.NewRunner(g.db, sub)
	if _, err := runner.ApplyMigrations(logFn); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (g *PostgresGateway) Close() error {
	if g.db != nil {
		return g.db.Close()
	}
	return nil
}

func (g *PostgresGateway) SaveProfile(userID string, state models.GameState) error {
	if err := validation.UserID(userID); err != nil {
		return err
	}
	if err := validation.Profile(state); err != nil {
		return err
	}

	habitsJSON, err := json.Marshal(state.Habits)
	if err != nil {
		return fmt.Errorf("failed to marshal habits: %w", err)
	}
	achievementsJSON, err := json.Marshal(state.Profile.Achievements)
	if err != nil {
		return fmt.Errorf("failed to marshal achievements: %w", err)
	}
	dailyQuestsJSON, err := json.Marshal(state.DailySideQuests)
	if err != nil {
		return fmt.Errorf("failed to marshal daily side quests: %w", err)
	}
	completedQuestsJSON, err := json.Marshal(state.CompletedSideQuests)
	if err != nil {
		return fmt.Errorf("failed to marshal completed side quests: %w", err)
	}

	p := state.Profile
	_, err = g.db.Exec(`
	INSERT INTO profiles (
		user_id, username, archetype, xp, level, current_streak, longest_streak,
		day_started, current_day, day_locked_at, last_completed_at,
		last_submit_date, last_celebration_date, last_reset_date,
		total_days_completed, perfect_days_count, total_xp_earned,
		habits, achievements, daily_side_quests, completed_side_quests, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	ON CONFLICT (user_id) DO UPDATE SET
	username = EXCLUDED.username,
	archetype = EXCLUDED.archetype,
	xp = EXCLUDED.xp,
	level = EXCLUDED.level,
	current_streak = EXCLUDED.current_streak,
	longest_streak = EXCLUDED.longest_streak,
	day_started = EXCLUDED.day_started,
	current_day = EXCLUDED.current_day,
	day_locked_at = EXCLUDED.day_locked_at,
	last_completed_at = EXCLUDED.last_completed_at,
	last_submit_date = EXCLUDED.last_submit_date,
	last_celebration_date = EXCLUDED.last_celebration_date,
	last_reset_date = EXCLUDED.last_reset_date,
	total_days_completed = EXCLUDED.total_days_completed,
	perfect_days_count = EXCLUDED.perfect_days_count,
	total_xp_earned = EXCLUDED.total_xp_earned,
	habits = EXCLUDED.habits,
	achievements = EXCLUDED.achievements,
	daily_side_quests = EXCLUDED.daily_side_quests,
	completed_side_quests = EXCLUDED.completed_side_quests,
	updated_at = EXCLUDED.updated_at`,
		userID, p.Username, p.Archetype, p.XP, p.Level, p.CurrentStreak, p.LongestStreak,
		nullTime(p.DayStarted), p.CurrentDay, nullTime(p.DayLockedAt), nullTime(p.LastCompletedAt),
		p.LastSubmitDate, p.LastCelebrationDate, p.LastResetDate,
		p.TotalDaysCompleted, p.PerfectDaysCount, p.TotalXPEarned,
		string(habitsJSON), string(achievementsJSON), string(dailyQuestsJSON), string(completedQuestsJSON),
		time.Now().UTC(),
	)
	return err
}

// LoadProfile returns the stored state for the user, or nil when none exists.
func (g *PostgresGateway) LoadProfile(userID string) (*models.GameState, error) {
	if err := validation.UserID(userID); err != nil {
		return nil, err
	}

	row := g.db.QueryRow(`
	SELECT username, archetype, xp, level, current_streak, longest_streak,
	       day_started, current_day, day_locked_at, last_completed_at,
	       last_submit_date, last_celebration_date, last_reset_date,
	       total_days_completed, perfect_days_count, total_xp_earned,
	       habits, achievements, daily_side_quests, completed_side_quests
	FROM profiles WHERE user_id = $1`, userID)

	state := models.NewGameState()
	p := &state.Profile
	p.UserID = userID

	var dayStarted, dayLockedAt, lastCompletedAt sql.NullTime
	var habitsJSON, achievementsJSON, dailyQuestsJSON, completedQuestsJSON string

	err := row.Scan(
		&p.Username, &p.Archetype, &p.XP, &p.Level, &p.CurrentStreak, &p.LongestStreak,
		&dayStarted, &p.CurrentDay, &dayLockedAt, &lastCompletedAt,
		&p.LastSubmitDate, &p.LastCelebrationDate, &p.LastResetDate,
		&p.TotalDaysCompleted, &p.PerfectDaysCount, &p.TotalXPEarned,
		&habitsJSON, &achievementsJSON, &dailyQuestsJSON, &completedQuestsJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if dayStarted.Valid {
		t := dayStarted.Time
		p.DayStarted = &t
	}
	if dayLockedAt.Valid {
		t := dayLockedAt.Time
		p.DayLockedAt = &t
	}
	if lastCompletedAt.Valid {
		t := lastCompletedAt.Time
		p.LastCompletedAt = &t
	}

	if err := json.Unmarshal([]byte(habitsJSON), &state.Habits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal habits: %w", err)
	}
	if err := json.Unmarshal([]byte(achievementsJSON), &p.Achievements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal achievements: %w", err)
	}
	if err := json.Unmarshal([]byte(dailyQuestsJSON), &state.DailySideQuests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal daily side quests: %w", err)
	}
	if err := json.Unmarshal([]byte(completedQuestsJSON), &state.CompletedSideQuests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal completed side quests: %w", err)
	}
	if p.Achievements == nil {
		p.Achievements = map[string]bool{}
	}

	logs, err := g.LoadDailyLogs(userID)
	if err != nil {
		return nil, err
	}
	state.History = logs

	return state, nil
}

func (g *PostgresGateway) SaveDailyLog(userID string, rec models.DayRecord) error {
	if err := validation.UserID(userID); err != nil {
		return err
	}
	if err := validation.DayRecord(rec); err != nil {
		return err
	}

	habitsJSON, err := json.Marshal(rec.Habits)
	if err != nil {
		return fmt.Errorf("failed to marshal habit snapshots: %w", err)
	}

	_, err = g.db.Exec(`
	INSERT INTO daily_logs (
		user_id, date, day_number, habits, xp_earned, is_perfect,
		successful_count, total_count, relapse_count
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (user_id, date) DO UPDATE SET
	day_number = EXCLUDED.day_number,
	habits = EXCLUDED.habits,
	xp_earned = EXCLUDED.xp_earned,
	is_perfect = EXCLUDED.is_perfect,
	successful_count = EXCLUDED.successful_count,
	total_count = EXCLUDED.total_count,
	relapse_count = EXCLUDED.relapse_count`,
		userID, rec.Date, rec.DayNumber, string(habitsJSON), rec.XPEarned, rec.IsPerfect,
		rec.SuccessfulCount, rec.TotalCount, rec.RelapseCount,
	)
	return err
}

func (g *PostgresGateway) LoadDailyLogs(userID string) ([]models.DayRecord, error) {
	if err := validation.UserID(userID); err != nil {
		return nil, err
	}

	rows, err := g.db.Query(`
	SELECT date, day_number, habits, xp_earned, is_perfect,
	       successful_count, total_count, relapse_count
	FROM daily_logs WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily logs: %w", err)
	}
	defer rows.Close()

	var logs []models.DayRecord
	for rows.Next() {
		var rec models.DayRecord
		var habitsJSON string
		if err := rows.Scan(
			&rec.Date, &rec.DayNumber, &habitsJSON, &rec.XPEarned, &rec.IsPerfect,
			&rec.SuccessfulCount, &rec.TotalCount, &rec.RelapseCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily log: %w", err)
		}
		if err := json.Unmarshal([]byte(habitsJSON), &rec.Habits); err != nil {
			return nil, fmt.Errorf("failed to unmarshal habit snapshots: %w", err)
		}
		logs = append(logs, rec)
	}

	return logs, rows.Err()
}

// DeleteAllUserData removes the user's profile and all daily logs in a
// single transaction.
func (g *PostgresGateway) DeleteAllUserData(userID string) error {
	if err := validation.UserID(userID); err != nil {
		return err
	}

	tx, err := g.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM daily_logs WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete daily logs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM profiles WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return tx.Commit()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
