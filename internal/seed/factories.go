package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// activityPool is the interest vocabulary used for generated data.
var activityPool = []string{
	"Running", "Swimming", "Cycling", "Yoga", "Weightlifting", "Climbing",
	"Hiking", "Boxing", "Pilates", "Rowing", "Surfing", "Tennis",
	"Basketball", "Soccer", "CrossFit", "Spinning",
}

var skillLevels = []string{"Beginner", "Intermediate", "Advanced"}

// Factory generates random demo members and sessions. Development only; the
// generated accounts all share the password "changeme".
type Factory struct {
	loader *Loader
	rng    *rand.Rand
}

// NewFactory creates a Factory over the given loader.
func NewFactory(loader *Loader) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		loader: loader,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RandomSettings builds a Settings document with the requested number of
// generated members and sessions. Session owners are drawn from the
// generated members.
func (f *Factory) RandomSettings(numProfiles, numSessions int) *Settings {
	settings := &Settings{}

	for i := 0; i < numProfiles; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		email := fmt.Sprintf("%s.%s%d@example.com", first, last, i)

		settings.DefaultAccounts = append(settings.DefaultAccounts, AccountSetting{
			Email:    email,
			Password: "changeme",
			Role:     "user",
		})
		settings.DefaultProfiles = append(settings.DefaultProfiles, ProfileSetting{
			Email:     email,
			FirstName: first,
			LastName:  last,
			Bio:       gofakeit.Sentence(8),
			Picture:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
			Interests: f.pickInterests(1 + f.rng.Intn(3)),
		})
	}

	for i := 0; i < numSessions && numProfiles > 0; i++ {
		owner := settings.DefaultProfiles[f.rng.Intn(numProfiles)]
		activity := activityPool[f.rng.Intn(len(activityPool))]

		settings.DefaultSessions = append(settings.DefaultSessions, SessionSetting{
			Title:       fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), activity),
			Date:        time.Now().Add(time.Duration(1+f.rng.Intn(30)) * 24 * time.Hour),
			Description: gofakeit.Sentence(10),
			Interests:   []string{activity},
			SkillLevel:  skillLevels[f.rng.Intn(len(skillLevels))],
			Location:    gofakeit.City(),
			Owner:       owner.Email,
		})
	}

	return settings
}

// LoadRandom generates and loads random demo data in one call.
func (f *Factory) LoadRandom(ctx context.Context, numProfiles, numSessions int) error {
	return f.loader.Load(ctx, f.RandomSettings(numProfiles, numSessions))
}

func (f *Factory) pickInterests(n int) []string {
	picked := make([]string, 0, n)
	seen := map[int]bool{}
	for len(picked) < n {
		idx := f.rng.Intn(len(activityPool))
		if seen[idx] {
			continue
		}
		seen[idx] = true
		picked = append(picked, activityPool[idx])
	}
	return picked
}
