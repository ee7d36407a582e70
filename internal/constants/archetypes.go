package constants

// Archetype describes a selectable character class. Rank ladders are ordered
// lowest to highest; each rank spans LevelsPerRank levels.
type Archetype struct {
	ID    string
	Name  string
	Motto string
	Ranks []string
}

var Archetypes = map[string]Archetype{
	"SPECTER": {
		ID:    "SPECTER",
		Name:  "Specter",
		Motto: "Move in silence. Let results speak.",
		Ranks: []string{"Shadow", "Phantom", "Specter", "Wraith", "Ghost"},
	},
	"ASCENDANT": {
		ID:    "ASCENDANT",
		Name:  "Ascendant",
		Motto: "Sacrifice now. Transcend later.",
		Ranks: []string{"Novice", "Disciple", "Ascetic", "Sage", "Ascendant"},
	},
	"WRATH": {
		ID:    "WRATH",
		Name:  "Wrath",
		Motto: "No mercy for weakness. No excuses.",
		Ranks: []string{"Recruit", "Warrior", "Ravager", "Warlord", "Wrath"},
	},
	"SOVEREIGN": {
		ID:    "SOVEREIGN",
		Name:  "Sovereign",
		Motto: "I rule myself. I build my empire.",
		Ranks: []string{"Peasant", "Knight", "Lord", "King", "Sovereign"},
	},
}

// ValidArchetype reports whether id names a known archetype.
func ValidArchetype(id string) bool {
	_, ok := Archetypes[id]
	return ok
}
