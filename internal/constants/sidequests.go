package constants

// SideQuestDef is a catalog entry for a daily bonus task.
type SideQuestDef struct {
	ID       string
	Name     string
	XP       int
	Category string
}

// SideQuestCatalog is the fixed pool daily quests are drawn from. The daily
// subset is selected deterministically per date, see internal/game.
var SideQuestCatalog = []SideQuestDef{
	{ID: "sq-1", Name: "Take 10 deep breaths", XP: 5, Category: "mind"},
	{ID: "sq-2", Name: "Write 3 things you're grateful for", XP: 8, Category: "mind"},
	{ID: "sq-3", Name: "No phone for 1 hour", XP: 10, Category: "mind"},
	{ID: "sq-4", Name: "Listen to a podcast/audiobook", XP: 8, Category: "mind"},
	{ID: "sq-5", Name: "Journal for 5 minutes", XP: 8, Category: "mind"},
	{ID: "sq-6", Name: "Do 10 squats right now", XP: 5, Category: "body"},
	{ID: "sq-7", Name: "Drink a glass of water", XP: 3, Category: "body"},
	{ID: "sq-8", Name: "Stretch for 5 minutes", XP: 5, Category: "body"},
	{ID: "sq-9", Name: "Eat a piece of fruit", XP: 5, Category: "body"},
	{ID: "sq-10", Name: "Go outside for 10 minutes", XP: 8, Category: "body"},
	{ID: "sq-11", Name: "Take the stairs instead of elevator", XP: 5, Category: "body"},
	{ID: "sq-12", Name: "Do 20 jumping jacks", XP: 5, Category: "body"},
	{ID: "sq-13", Name: "Text/call a friend or family", XP: 8, Category: "social"},
	{ID: "sq-14", Name: "Compliment someone genuinely", XP: 5, Category: "social"},
	{ID: "sq-15", Name: "Help someone with something", XP: 10, Category: "social"},
	{ID: "sq-16", Name: "Clean your desk/workspace", XP: 8, Category: "productivity"},
	{ID: "sq-17", Name: "Make your bed", XP: 3, Category: "productivity"},
	{ID: "sq-18", Name: "Plan tomorrow's top 3 tasks", XP: 8, Category: "productivity"},
	{ID: "sq-19", Name: "Delete 10 unused apps/files", XP: 5, Category: "productivity"},
	{ID: "sq-20", Name: "Learn one new word/fact", XP: 5, Category: "productivity"},
	{ID: "sq-21", Name: "Take a cold shower", XP: 15, Category: "challenge"},
	{ID: "sq-22", Name: "No complaining for 3 hours", XP: 10, Category: "challenge"},
	{ID: "sq-23", Name: "Sit in silence for 5 minutes", XP: 8, Category: "mind"},
	{ID: "sq-24", Name: "Fix something you've been avoiding", XP: 12, Category: "productivity"},
}
