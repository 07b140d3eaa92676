package pet

import "time"

// Activity IDs.
const (
	ActivityFeed     = "feed"
	ActivityPlay     = "play"
	ActivitySleep    = "sleep"
	ActivityBath     = "bath"
	ActivityMedicine = "medicine"
	ActivityExercise = "exercise"
)

// Achievement IDs.
const (
	AchievementFirstFeed  = "first_feed"
	AchievementLevel5     = "level_5"
	AchievementLevel10    = "level_10"
	AchievementHappyWeek  = "happy_week"
	AchievementRichPet    = "rich_pet"
	AchievementCleanFreak = "clean_freak"
)

const (
	happyThreshold = 80
	happyWeek      = 7 * 24 * time.Hour
	richCoins      = 1000
	cleanFreakBath = 50
)

// initial stats for a new pet
const (
	initHappiness   = 80
	initHunger      = 70
	initEnergy      = 90
	initCleanliness = 85
	initHealth      = 100
	initCoins       = 100
)

var activityCatalog = [...]Activity{
	{
		ID: ActivityFeed, Name: "Feed", Icon: "🍖",
		Description: "Give your pet some delicious food",
		Duration:    2 * time.Second,
		Effects:     Effects{Hunger: 25, Happiness: 10, Health: 5, Experience: 5},
		Cost:        10,
		Cooldown:    30 * time.Second,
	},
	{
		ID: ActivityPlay, Name: "Play", Icon: "🎾",
		Description: "Play games with your pet",
		Duration:    3 * time.Second,
		Effects:     Effects{Happiness: 30, Energy: -10, Experience: 10, Coins: 5},
		Cooldown:    time.Minute,
	},
	{
		ID: ActivitySleep, Name: "Sleep", Icon: "😴",
		Description: "Let your pet take a nap",
		Duration:    5 * time.Second,
		Effects:     Effects{Energy: 40, Happiness: 5, Health: 10},
		Cooldown:    2 * time.Minute,
	},
	{
		ID: ActivityBath, Name: "Bath", Icon: "🛁",
		Description: "Clean your pet",
		Duration:    3 * time.Second,
		Effects:     Effects{Cleanliness: 35, Happiness: -5, Health: 15, Experience: 5},
		Cost:        5,
		Cooldown:    90 * time.Second,
	},
	{
		ID: ActivityMedicine, Name: "Medicine", Icon: "💊",
		Description: "Give medicine when sick",
		Duration:    2 * time.Second,
		Effects:     Effects{Health: 50, Happiness: -10},
		Cost:        50,
		Cooldown:    5 * time.Minute,
	},
	{
		ID: ActivityExercise, Name: "Exercise", Icon: "🏃",
		Description: "Exercise to stay healthy",
		Duration:    4 * time.Second,
		Effects:     Effects{Health: 20, Energy: -15, Happiness: 15, Experience: 15, Coins: 10},
		Cooldown:    3 * time.Minute,
	},
}

var achievementCatalog = [...]Achievement{
	{AchievementFirstFeed, "First Meal", "Fed your pet for the first time", 50},
	{AchievementLevel5, "Growing Up", "Reached level 5", 100},
	{AchievementLevel10, "Experienced", "Reached level 10", 200},
	{AchievementHappyWeek, "Week of Joy", "Kept pet happy for 7 days", 300},
	{AchievementRichPet, "Wealthy Pet", "Accumulated 1000 coins", 500},
	{AchievementCleanFreak, "Clean Freak", "Bathed pet 50 times", 150},
}

// DefaultActivities returns a fresh copy of the activity catalog.
func DefaultActivities() []Activity {
	out := make([]Activity, len(activityCatalog))
	copy(out, activityCatalog[:])
	return out
}

// Achievements returns the achievement catalog.
func Achievements() []Achievement {
	out := make([]Achievement, len(achievementCatalog))
	copy(out, achievementCatalog[:])
	return out
}

// LookupAchievement finds an achievement by ID.
func LookupAchievement(id string) (Achievement, bool) {
	for _, a := range achievementCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

var speciesEmoji = map[Species]string{
	SpeciesCat:    "🐱",
	SpeciesDog:    "🐶",
	SpeciesBird:   "🐦",
	SpeciesRabbit: "🐰",
}

var moodEmoji = map[Mood]string{
	MoodHappy:  "😊",
	MoodSad:    "😢",
	MoodTired:  "😴",
	MoodHungry: "🤤",
	MoodSick:   "🤒",
	MoodDirty:  "🤢",
	MoodBored:  "😐",
}
