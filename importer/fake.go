// ABOUTME: Deterministic fake contacts and notes for demos and seeding
// ABOUTME: The same seed always yields the same people, so re-seeding is idempotent
package importer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
)

var (
	firstNames = []string{"Ada", "Ben", "Carla", "Dev", "Elena", "Farid", "Grace", "Hugo", "Ines", "Jonah", "Kemi", "Liam"}
	lastNames  = []string{"Okafor", "Lindqvist", "Moreau", "Patel", "Reyes", "Sato", "Turner", "Umar", "Vega", "Walsh"}
	noteLines  = []string{
		"Interested in the spring catalog, send pricing.",
		"Call back tomorrow at 10am about the quote.",
		"Left voicemail.",
		"Asked for samples, follow up next week.",
		"Confirmed order, delivery on friday.",
		"",
	}
	noteTags = []string{"urgent", "follow-up", "interested", "callback", "quote-sent", "vip", "pricing"}
)

// FakeSource generates Count contacts from Seed.
type FakeSource struct {
	Count int
	Seed  int64
}

func (f FakeSource) Name() string { return "fake" }

func (f FakeSource) List(_ context.Context) ([]models.DeviceContact, error) {
	rng := rand.New(rand.NewSource(f.Seed))
	out := make([]models.DeviceContact, 0, f.Count)
	for i := 0; i < f.Count; i++ {
		name := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
		// The index keeps numbers unique within one seed.
		phone := fmt.Sprintf("+1 555 %03d %04d", rng.Intn(1000), i)
		out = append(out, models.DeviceContact{Name: name, PhoneNumbers: []string{phone}})
	}
	return out, nil
}

// FakeNotes returns perNote notes for each contact with call times spread over
// the month before now.
func FakeNotes(contacts []models.Contact, perContact int, seed int64, now time.Time) []store.NewNote {
	rng := rand.New(rand.NewSource(seed))
	var out []store.NewNote
	for _, c := range contacts {
		for i := 0; i < perContact; i++ {
			start := now.Add(-time.Duration(rng.Intn(30*24*60)) * time.Minute)
			direction := models.DirectionOutbound
			if rng.Intn(2) == 0 {
				direction = models.DirectionInbound
			}
			out = append(out, store.NewNote{
				ContactID:     c.ID,
				ContactName:   c.Name,
				Note:          noteLines[rng.Intn(len(noteLines))],
				CallStartTime: start,
				CallEndTime:   start.Add(time.Duration(30+rng.Intn(600)) * time.Second),
				CallDirection: direction,
				Status:        models.NoteStatuses[rng.Intn(len(models.NoteStatuses)-1)],
				Priority:      []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}[rng.Intn(3)],
				Tags:          []string{noteTags[rng.Intn(len(noteTags))]},
				FolderID:      []string{"", "work", "sales", "support", "personal"}[rng.Intn(5)],
			})
		}
	}
	return out
}
