package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/models"
)

func questIDs(quests []models.SideQuest) []string {
	ids := make([]string, len(quests))
	for i, q := range quests {
		ids[i] = q.ID
	}
	return ids
}

func TestDailyQuestsDeterministic(t *testing.T) {
	a := DailyQuests("2026-09-01")
	b := DailyQuests("2026-09-01")

	require.Len(t, a, constants.SideQuestsPerDay)
	assert.Equal(t, questIDs(a), questIDs(b))
}

func TestDailyQuestsVaryAcrossDates(t *testing.T) {
	base := questIDs(DailyQuests("2026-09-01"))
	varied := false
	for _, date := range []string{"2026-09-02", "2026-09-05", "2026-09-13", "2026-10-01"} {
		if !assert.ObjectsAreEqual(base, questIDs(DailyQuests(date))) {
			varied = true
			break
		}
	}
	assert.True(t, varied, "quest sets should differ across dates")
}

func TestDailyQuestsAreUnique(t *testing.T) {
	quests := DailyQuests("2026-09-01")
	seen := map[string]bool{}
	for _, q := range quests {
		assert.False(t, seen[q.ID], "duplicate quest %s", q.ID)
		seen[q.ID] = true
	}
}

func TestCompleteSideQuestOncePerDay(t *testing.T) {
	e, _ := newTestEngine(t)
	startWith(t, e, power("Exercise", 20))
	require.NotEmpty(t, e.State().DailySideQuests)

	quest := e.State().DailySideQuests[0]
	res, err := e.CompleteSideQuest(quest.ID)
	require.NoError(t, err)
	assert.Equal(t, quest.XP, res.XPEarned)
	assert.Equal(t, quest.XP, e.State().Profile.XP)

	_, err = e.CompleteSideQuest(quest.ID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestCompleteSideQuestOutsideTodaysSet(t *testing.T) {
	e, _ := newTestEngine(t)
	startWith(t, e, power("Exercise", 20))

	inToday := map[string]bool{}
	for _, q := range e.State().DailySideQuests {
		inToday[q.ID] = true
	}
	var outside string
	for _, def := range constants.SideQuestCatalog {
		if !inToday[def.ID] {
			outside = def.ID
			break
		}
	}
	require.NotEmpty(t, outside)

	_, err := e.CompleteSideQuest(outside)
	assert.ErrorIs(t, err, ErrQuestNotFound)
}

func TestSideQuestXPUsesStreakMultiplier(t *testing.T) {
	e, _ := newTestEngine(t)
	startWith(t, e, power("Exercise", 20))
	e.State().Profile.CurrentStreak = 30

	quest := e.State().DailySideQuests[0]
	res, err := e.CompleteSideQuest(quest.ID)
	require.NoError(t, err)
	assert.Equal(t, int(float64(quest.XP)*1.5), res.XPEarned)
}
