package game

import (
	"sort"
	"strconv"
	"strings"

	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/progression"
)

// dateSeed sums the numeric components of a YYYY-MM-DD string. Intentionally
// simple and reproducible: the same date always yields the same quest set.
func dateSeed(date string) int {
	seed := 0
	for _, part := range strings.Split(date, "-") {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		seed += n
	}
	return seed
}

func questHash(seed int, id string) int {
	c := 0
	if len(id) > 3 {
		c = int(id[3])
	}
	return (seed * c) % 100
}

// DailyQuests selects the fixed-size quest subset for a date via a
// date-seeded deterministic ordering of the catalog. Not cryptographic.
func DailyQuests(date string) []models.SideQuest {
	seed := dateSeed(date)

	pool := make([]constants.SideQuestDef, len(constants.SideQuestCatalog))
	copy(pool, constants.SideQuestCatalog)
	sort.SliceStable(pool, func(i, j int) bool {
		return questHash(seed, pool[i].ID) < questHash(seed, pool[j].ID)
	})

	n := constants.SideQuestsPerDay
	if n > len(pool) {
		n = len(pool)
	}
	quests := make([]models.SideQuest, 0, n)
	for _, q := range pool[:n] {
		quests = append(quests, models.SideQuest{ID: q.ID, Name: q.Name, XP: q.XP, Category: q.Category})
	}
	return quests
}

// QuestStatus is a side quest with its completion flag for display.
type QuestStatus struct {
	models.SideQuest
	Completed bool
}

// SideQuests returns today's quests with completion flags. The set itself is
// re-rolled by CheckAndResetDay.
func (e *Engine) SideQuests() []QuestStatus {
	done := make(map[string]bool, len(e.state.CompletedSideQuests))
	for _, id := range e.state.CompletedSideQuests {
		done[id] = true
	}
	out := make([]QuestStatus, 0, len(e.state.DailySideQuests))
	for _, q := range e.state.DailySideQuests {
		out = append(out, QuestStatus{SideQuest: q, Completed: done[q.ID]})
	}
	return out
}

// QuestResult reports a side quest completion.
type QuestResult struct {
	Quest    models.SideQuest
	XPEarned int
}

// CompleteSideQuest grants multiplied XP for a quest in today's set, once per
// day per quest.
func (e *Engine) CompleteSideQuest(id string) (QuestResult, error) {
	for _, done := range e.state.CompletedSideQuests {
		if done == id {
			return QuestResult{}, ErrAlreadyCompleted
		}
	}

	var quest *models.SideQuest
	for i := range e.state.DailySideQuests {
		if e.state.DailySideQuests[i].ID == id {
			quest = &e.state.DailySideQuests[i]
			break
		}
	}
	if quest == nil {
		return QuestResult{}, ErrQuestNotFound
	}

	earned := progression.MultiplyXP(quest.XP, e.state.Profile.CurrentStreak)
	e.addXP(earned)
	e.state.CompletedSideQuests = append(e.state.CompletedSideQuests, id)

	e.persist()
	e.scheduleSync()
	return QuestResult{Quest: *quest, XPEarned: earned}, nil
}
