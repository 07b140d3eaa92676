package pet

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetropet/internal/core"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestSim(t *testing.T) (*Sim, *core.TickScheduler, *MemoryPersister) {
	t.Helper()
	sched := core.NewTickScheduler(epoch)
	store := NewMemoryPersister()
	return NewSim(sched, Options{Persister: store}), sched, store
}

func adopted(t *testing.T) (*Sim, *core.TickScheduler, *MemoryPersister) {
	t.Helper()
	s, sched, store := newTestSim(t)
	s.CreatePet("Mochi", SpeciesCat)
	return s, sched, store
}

func TestCreatePet(t *testing.T) {
	s, _, store := adopted(t)

	p := s.Pet()
	require.NotNil(t, p)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "Mochi", p.Name)
	assert.Equal(t, SpeciesCat, p.Species)
	assert.Equal(t, 80.0, p.Happiness)
	assert.Equal(t, 70.0, p.Hunger)
	assert.Equal(t, 90.0, p.Energy)
	assert.Equal(t, 85.0, p.Cleanliness)
	assert.Equal(t, 100.0, p.Health)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.Experience)
	assert.Equal(t, 100, p.Coins)
	assert.True(t, p.Created.Equal(epoch))
	assert.Empty(t, p.Items)
	assert.Empty(t, p.Achievements)

	assert.True(t, s.LoopsRunning())
	assert.Equal(t, 1, store.Saves())
	require.NotEmpty(t, s.NotificationTexts())
	assert.Contains(t, s.NotificationTexts()[0], "Mochi has been adopted!")
}

func TestMood(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Pet)
		want   Mood
	}{
		{"default is bored", func(p *Pet) {}, MoodBored},
		{"happy above 80", func(p *Pet) { p.Happiness = 81 }, MoodHappy},
		{"sick beats everything", func(p *Pet) { p.Health = 29; p.Cleanliness = 0; p.Hunger = 0 }, MoodSick},
		{"dirty beats hungry", func(p *Pet) { p.Cleanliness = 29; p.Hunger = 0 }, MoodDirty},
		{"hungry beats tired", func(p *Pet) { p.Hunger = 19; p.Energy = 0 }, MoodHungry},
		{"tired beats sad", func(p *Pet) { p.Energy = 19; p.Happiness = 0 }, MoodTired},
		{"sad", func(p *Pet) { p.Happiness = 29 }, MoodSad},
		{"boundaries are exclusive", func(p *Pet) { p.Health = 30; p.Cleanliness = 30; p.Hunger = 20; p.Energy = 20; p.Happiness = 30 }, MoodBored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := adopted(t)
			tt.modify(s.pet)
			assert.Equal(t, tt.want, s.Mood())
		})
	}

	s, _, _ := newTestSim(t)
	assert.Equal(t, MoodNeutral, s.Mood())
}

func TestEmoji(t *testing.T) {
	s, _, _ := newTestSim(t)
	assert.Equal(t, "🐾", s.Emoji())

	s.CreatePet("Rex", SpeciesDog)
	assert.Equal(t, "🐶", s.Emoji())

	s.pet.Health = 10
	assert.Equal(t, "🤒", s.Emoji())
}

func TestPerformActivityProgress(t *testing.T) {
	s, sched, _ := adopted(t)

	require.True(t, s.PerformActivity(ActivityFeed))
	assert.False(t, s.CanUseActivity(ActivityPlay), "one activity at a time")
	assert.False(t, s.PerformActivity(ActivityPlay))

	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, 5, s.Progress())

	sched.Advance(1800 * time.Millisecond)
	assert.Equal(t, 95, s.Progress())
	assert.Equal(t, 70.0, s.Pet().Hunger, "effects wait for completion")

	sched.Advance(100 * time.Millisecond)
	_, busy := s.CurrentActivity()
	assert.False(t, busy)
	assert.Equal(t, 0, s.Progress())

	p := s.Pet()
	assert.Equal(t, 95.0, p.Hunger)
	assert.Equal(t, 90.0, p.Happiness)
	assert.Equal(t, 100.0, p.Health)
	assert.Equal(t, 5, p.Experience)
	// 100 - 10 cost + 50 first meal reward
	assert.Equal(t, 140, p.Coins)
	assert.True(t, p.HasAchievement(AchievementFirstFeed))
	assert.True(t, p.LastFed.Equal(epoch.Add(2*time.Second)))
	assert.True(t, p.HappySince.Equal(epoch.Add(2*time.Second)))

	texts := s.NotificationTexts()
	require.Len(t, texts, 3)
	assert.Equal(t, "Feed completed! 🍖", texts[0])
	assert.Contains(t, texts[1], "Achievement unlocked: First Meal! +50 coins")
	assert.Contains(t, texts[2], "adopted")
}

func TestCompletionOrder(t *testing.T) {
	s, sched, _ := adopted(t)
	s.pet.Level = 4
	s.pet.Experience = 395

	require.True(t, s.PerformActivity(ActivityPlay))
	sched.Advance(3 * time.Second)

	p := s.Pet()
	assert.Equal(t, 5, p.Level)
	assert.Equal(t, 5, p.Experience)
	// 100 + 5 play + 100 level-up bonus + 100 achievement
	assert.Equal(t, 305, p.Coins)
	assert.True(t, p.HasAchievement(AchievementLevel5))
	assert.False(t, p.HasAchievement(AchievementLevel10))

	texts := s.NotificationTexts()
	require.GreaterOrEqual(t, len(texts), 3)
	assert.Equal(t, "Play completed! 🎾", texts[0])
	assert.Contains(t, texts[1], "Growing Up")
	assert.Equal(t, "Level up! Now level 5! 🌟", texts[2])
}

func TestCooldownBoundary(t *testing.T) {
	s, sched, _ := adopted(t)
	require.True(t, s.PerformActivity(ActivityFeed))
	sched.Advance(2 * time.Second)

	sched.Advance(30*time.Second - time.Millisecond)
	assert.False(t, s.CanUseActivity(ActivityFeed))
	cd := s.ActivityCooldowns()[ActivityFeed]
	assert.Equal(t, time.Millisecond, cd.Remaining)
	assert.Equal(t, 30*time.Second, cd.Total)
	assert.False(t, cd.CanUse)

	sched.Advance(time.Millisecond)
	assert.True(t, s.CanUseActivity(ActivityFeed))
	assert.True(t, s.ActivityCooldowns()[ActivityFeed].CanUse)
}

func TestCanUseActivity(t *testing.T) {
	s, _, _ := newTestSim(t)
	assert.False(t, s.CanUseActivity(ActivityPlay), "no pet")

	s.CreatePet("Mochi", SpeciesCat)
	assert.False(t, s.CanUseActivity("juggle"))

	s.pet.Coins = 9
	assert.False(t, s.CanUseActivity(ActivityFeed))
	assert.True(t, s.CanUseActivity(ActivityPlay))
	s.pet.Coins = 10
	assert.True(t, s.CanUseActivity(ActivityFeed))
}

func TestStatClamping(t *testing.T) {
	s, sched, _ := adopted(t)
	idx := s.activityIndex(ActivityPlay)
	s.activities[idx].Effects = Effects{Happiness: -999, Health: 999, Energy: 999, Coins: -999}

	require.True(t, s.PerformActivity(ActivityPlay))
	sched.Advance(3 * time.Second)

	p := s.Pet()
	assert.Equal(t, 0.0, p.Happiness)
	assert.Equal(t, 100.0, p.Health)
	assert.Equal(t, 100.0, p.Energy)
	assert.Equal(t, 0, p.Coins)
}

func TestCatalogPerSim(t *testing.T) {
	a, _, _ := adopted(t)
	b, _, _ := adopted(t)
	a.activities[0].Effects.Hunger = 1

	assert.Equal(t, 25.0, b.Activities()[0].Effects.Hunger)
	assert.Equal(t, 25.0, DefaultActivities()[0].Effects.Hunger)
}

func TestCheckLevelUp(t *testing.T) {
	tests := []struct {
		level, xp         int
		wantLevel, wantXP int
		wantCoins         int
	}{
		{2, 250, 3, 50, 160},
		{1, 350, 3, 50, 200},
		{1, 99, 1, 99, 100},
		{1, 100, 2, 0, 140},
	}

	for _, tt := range tests {
		s, _, _ := adopted(t)
		s.pet.Level = tt.level
		s.pet.Experience = tt.xp

		s.CheckLevelUp()

		assert.Equal(t, tt.wantLevel, s.pet.Level, "level from %d/%d", tt.level, tt.xp)
		assert.Equal(t, tt.wantXP, s.pet.Experience)
		assert.Equal(t, tt.wantCoins, s.pet.Coins)
	}
}

func TestExperienceToNextLevel(t *testing.T) {
	s, _, _ := newTestSim(t)
	assert.Equal(t, 0, s.ExperienceToNextLevel())

	s.CreatePet("Mochi", SpeciesCat)
	s.pet.Level = 3
	s.pet.Experience = 120
	assert.Equal(t, 180, s.ExperienceToNextLevel())
}

func TestAchievementsAreOneTime(t *testing.T) {
	s, sched, _ := adopted(t)
	s.pet.Coins = 995

	require.True(t, s.PerformActivity(ActivityPlay))
	sched.Advance(3 * time.Second)
	assert.True(t, s.pet.HasAchievement(AchievementRichPet))
	assert.Equal(t, 1500, s.pet.Coins)

	sched.Advance(time.Minute)
	require.True(t, s.PerformActivity(ActivityPlay))
	sched.Advance(3 * time.Second)
	assert.Equal(t, 1505, s.pet.Coins)
	assert.Len(t, s.pet.Achievements, 1)
}

func TestCleanFreak(t *testing.T) {
	s, sched, _ := adopted(t)
	s.pet.BathCount = 49

	require.True(t, s.PerformActivity(ActivityBath))
	sched.Advance(3 * time.Second)

	assert.Equal(t, 50, s.pet.BathCount)
	assert.True(t, s.pet.HasAchievement(AchievementCleanFreak))
	assert.True(t, s.pet.LastCleaned.Equal(epoch.Add(3*time.Second)))
}

func TestHappyWeek(t *testing.T) {
	s, sched, _ := adopted(t)
	s.pet.Happiness = 95
	s.pet.HappySince = sched.Now().Add(-7 * 24 * time.Hour)

	s.DecayStats()

	assert.True(t, s.pet.HasAchievement(AchievementHappyWeek))

	s.pet.Happiness = 50
	s.DecayStats()
	assert.True(t, s.pet.HappySince.IsZero(), "streak resets when happiness drops")
}

func TestDecayStats(t *testing.T) {
	s, sched, _ := adopted(t)

	sched.Advance(2 * time.Hour)

	p := s.Pet()
	assert.InDelta(t, 66.0, p.Hunger, 1e-6)
	assert.InDelta(t, 77.0, p.Happiness, 1e-6)
	assert.InDelta(t, 88.0, p.Energy, 1e-6)
	assert.InDelta(t, 84.0, p.Cleanliness, 1e-6)
	assert.Equal(t, 100.0, p.Health)
	assert.InDelta(t, 2.0/24, p.Age, 1e-6)
}

func TestDecayHealthWhenNeglected(t *testing.T) {
	s, sched, _ := adopted(t)
	s.pet.Hunger = 10
	s.lastDecay = sched.Now().Add(-time.Hour)

	s.DecayStats()

	assert.InDelta(t, 8.0, s.pet.Hunger, 1e-9)
	assert.InDelta(t, 97.0, s.pet.Health, 1e-9)
	assert.Contains(t, s.NotificationTexts()[0], "Mochi is very hungry!")
}

func TestDecayFloorsAtZero(t *testing.T) {
	s, sched, _ := adopted(t)
	s.pet.Cleanliness = 0.1
	s.lastDecay = sched.Now().Add(-10 * time.Hour)

	s.DecayStats()

	assert.Equal(t, 0.0, s.pet.Cleanliness)
}

func TestDecaySkippedDuringActivity(t *testing.T) {
	s, sched, _ := adopted(t)
	require.True(t, s.PerformActivity(ActivitySleep))
	s.lastDecay = sched.Now().Add(-time.Hour)

	s.DecayStats()

	assert.Equal(t, 70.0, s.pet.Hunger)
}

func TestNotificationsBounded(t *testing.T) {
	s, _, _ := newTestSim(t)
	for i := 0; i < 7; i++ {
		s.notify(string(rune('a' + i)))
	}

	assert.Equal(t, []string{"g", "f", "e", "d", "c"}, s.NotificationTexts())
}

func TestNotificationsExpire(t *testing.T) {
	s, sched, _ := newTestSim(t)
	s.notify("first")
	sched.Advance(3 * time.Second)
	s.notify("second")

	sched.Advance(2 * time.Second)
	assert.Equal(t, []string{"second"}, s.NotificationTexts())

	sched.Advance(3 * time.Second)
	assert.Empty(t, s.NotificationTexts())
	assert.Equal(t, 0, sched.Pending())
}

func TestDuplicateNotificationTexts(t *testing.T) {
	s, sched, _ := newTestSim(t)
	s.notify("same")
	sched.Advance(2 * time.Second)
	s.notify("same")

	sched.Advance(3 * time.Second)
	assert.Equal(t, []string{"same"}, s.NotificationTexts(), "each copy expires on its own")
}

func TestBuyItem(t *testing.T) {
	s, _, store := newTestSim(t)
	assert.False(t, s.BuyItem("ball", 10), "no pet")

	s.CreatePet("Mochi", SpeciesCat)
	saves := store.Saves()

	assert.True(t, s.BuyItem("ball", 30))
	assert.Equal(t, 70, s.pet.Coins)
	assert.Equal(t, []string{"ball"}, s.pet.Items)
	assert.Equal(t, saves+1, store.Saves())
	assert.Contains(t, s.NotificationTexts()[0], "Purchased ball!")

	assert.False(t, s.BuyItem("car", 500))
	assert.False(t, s.BuyItem("refund", -10))
	assert.Equal(t, 70, s.pet.Coins)
}

func TestResetPet(t *testing.T) {
	s, sched, store := adopted(t)
	require.True(t, s.PerformActivity(ActivityFeed))

	require.NoError(t, s.ResetPet(context.Background()))

	assert.False(t, s.HasPet())
	assert.False(t, s.LoopsRunning())
	assert.Empty(t, s.NotificationTexts())
	assert.Equal(t, 0, sched.Pending())
	_, busy := s.CurrentActivity()
	assert.False(t, busy)

	_, err := store.Load(context.Background())
	assert.True(t, errors.Is(err, ErrNoPet))

	sched.Advance(time.Hour)
	assert.False(t, s.HasPet())
}

func TestLoadEmpty(t *testing.T) {
	s, _, _ := newTestSim(t)
	err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoPet)

	noStore := NewSim(core.NewTickScheduler(epoch), Options{})
	assert.ErrorIs(t, noStore.Load(context.Background()), ErrNoPet)
}

func TestLoadCorrupt(t *testing.T) {
	s, _, store := newTestSim(t)
	require.NoError(t, store.Save(context.Background(), []byte("{not json")))

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoPet))
	assert.False(t, s.HasPet())
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, sched, store := adopted(t)
	require.True(t, s.PerformActivity(ActivityFeed))
	sched.Advance(2 * time.Second)
	require.True(t, s.BuyItem("ball", 20))
	want := s.Pet()

	// Reload at the same instant: no offline decay
	other := NewSim(core.NewTickScheduler(sched.Now()), Options{Persister: store})
	require.NoError(t, other.Load(context.Background()))

	got := other.Pet()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Coins, got.Coins)
	assert.Equal(t, want.Hunger, got.Hunger)
	assert.Equal(t, want.Experience, got.Experience)
	assert.Equal(t, want.Items, got.Items)
	assert.Equal(t, want.Achievements, got.Achievements)
	assert.True(t, want.LastFed.Equal(got.LastFed))
	assert.True(t, other.LoopsRunning())
	assert.False(t, other.CanUseActivity(ActivityFeed), "cooldown survives reload")
}

func TestHandleOfflineTime(t *testing.T) {
	tests := []struct {
		name        string
		away        time.Duration
		wantHunger  float64
		wantHappy   float64
		wantClean   float64
		wantMessage string
	}{
		{"three hours", 3 * time.Hour, 55, 71, 79, "Welcome back! Mochi missed you for 3 hours"},
		{"ninety minutes", 90 * time.Minute, 62.5, 75.5, 82, "missed you for 1 hours"},
		{"under a minute", 30 * time.Second, 70, 80, 85, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, store := adopted(t)

			s := NewSim(core.NewTickScheduler(epoch.Add(tt.away)), Options{Persister: store})
			require.NoError(t, s.Load(context.Background()))

			p := s.Pet()
			assert.InDelta(t, tt.wantHunger, p.Hunger, 1e-9)
			assert.InDelta(t, tt.wantHappy, p.Happiness, 1e-9)
			assert.InDelta(t, tt.wantClean, p.Cleanliness, 1e-9)

			texts := strings.Join(s.NotificationTexts(), "\n")
			if tt.wantMessage == "" {
				assert.NotContains(t, texts, "Welcome back")
			} else {
				assert.Contains(t, texts, tt.wantMessage)
			}
		})
	}
}

func TestSaveWithoutPetIsNoop(t *testing.T) {
	s, _, store := newTestSim(t)
	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, 0, store.Saves())
}

func TestCloseStopsTimers(t *testing.T) {
	s, sched, store := adopted(t)
	saves := store.Saves()

	require.NoError(t, s.Close(context.Background()))

	assert.Equal(t, saves+1, store.Saves())
	assert.Equal(t, 0, sched.Pending())
}
