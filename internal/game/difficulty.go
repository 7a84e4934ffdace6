package game

// Difficulty is a preset board configuration.
type Difficulty struct {
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MineCount int    `json:"mine_count"`
}

// Difficulties holds the standard presets. Multiplayer matches always use
// the "multi" preset so both peers agree on the board shape.
var Difficulties = map[string]Difficulty{
	"easy":   {Name: "Easy", Width: 10, Height: 8, MineCount: 10},
	"medium": {Name: "Medium", Width: 18, Height: 16, MineCount: 40},
	"hard":   {Name: "Hard", Width: 24, Height: 20, MineCount: 90},
	"multi":  {Name: "Multiplayer", Width: 18, Height: 16, MineCount: 40},
}

// MultiDifficulty returns the preset used for all multiplayer rooms.
func MultiDifficulty() Difficulty {
	return Difficulties["multi"]
}
