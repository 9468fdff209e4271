// ABOUTME: Tests for the grouping engine
// ABOUTME: Coverage properties for every mode, folder edge cases, week boundaries and golden outlines
package grouping

import (
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/harperreed/callbook/models"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func note(id, contact, start, folder string) models.CallNote {
	t := at(start)
	return models.CallNote{ID: id, ContactName: contact, CallStartTime: t, CreatedAt: t, FolderID: folder}
}

var testFolders = []models.NoteFolder{
	{ID: "work", Name: "Work"},
	{ID: "sales", Name: "Sales"},
	{ID: "support", Name: "Support"},
}

func fixture() []models.CallNote {
	return []models.CallNote{
		note("n1", "Ann", "2024-03-10 09:00", "work"),
		note("n2", "Bo", "2024-03-12 14:00", "sales"),
		note("n3", "Ann", "2024-03-16 18:00", ""),
		note("n4", "Cy", "2024-03-17 08:00", "gone"),
		note("n5", "Ann", "2024-03-02 10:00", "work"),
	}
}

func ids(notes []models.CallNote) string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return strings.Join(out, ",")
}

func outline(groups []Group) []byte {
	var b strings.Builder
	for _, g := range groups {
		fmt.Fprintf(&b, "%s %q [%s] %s\n", g.ID, g.Title, g.Kind, ids(g.Notes))
		for _, sub := range g.SubGroups {
			fmt.Fprintf(&b, "  %s %q [%s] %s\n", sub.ID, sub.Title, sub.Kind, ids(sub.Notes))
		}
	}
	return []byte(b.String())
}

func TestGoldenOutlines(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "week_outline", outline(Build(fixture(), models.GroupByWeek, testFolders, WithLocation(time.UTC))))
	g.Assert(t, "folder_outline", outline(Build(fixture(), models.GroupByFolder, testFolders, WithLocation(time.UTC))))
}

func TestNoneGroupsByContactNewestFirst(t *testing.T) {
	groups := Build(fixture(), models.GroupByNone, nil)
	require.Len(t, groups, 3)
	assert.Equal(t, "contact:Cy", groups[0].ID)
	assert.Equal(t, "contact:Ann", groups[1].ID)
	assert.Equal(t, "n3,n1,n5", ids(groups[1].Notes))
	assert.Equal(t, "contact:Bo", groups[2].ID)
	for _, g := range groups {
		assert.Equal(t, KindContact, g.Kind)
		assert.Empty(t, g.SubGroups)
	}
}

func TestNoneUsesCreatedAt(t *testing.T) {
	a := note("a", "Ann", "2024-01-01 10:00", "")
	a.CreatedAt = at("2024-05-01 10:00")
	b := note("b", "Bo", "2024-04-01 10:00", "")
	groups := Build([]models.CallNote{b, a}, models.GroupByNone, nil)
	assert.Equal(t, "contact:Ann", groups[0].ID)
}

func TestDayGroupsWithContactSubgroups(t *testing.T) {
	notes := []models.CallNote{
		note("a", "Ann", "2024-03-10 09:00", ""),
		note("b", "Bo", "2024-03-10 11:00", ""),
		note("c", "Ann", "2024-03-11 08:00", ""),
	}
	groups := Build(notes, models.GroupByDay, nil, WithLocation(time.UTC))
	require.Len(t, groups, 2)
	assert.Equal(t, "day:2024-03-11", groups[0].ID)
	assert.Equal(t, "Monday, March 11, 2024", groups[0].Title)
	assert.Equal(t, "day:2024-03-10", groups[1].ID)
	require.Len(t, groups[1].SubGroups, 2)
	assert.Equal(t, "day:2024-03-10/contact:Bo", groups[1].SubGroups[0].ID)
	assert.Equal(t, "day:2024-03-10/contact:Ann", groups[1].SubGroups[1].ID)
}

func TestMonthAndYearBuckets(t *testing.T) {
	id, title := TimeBucket(at("2024-03-10 09:00"), models.GroupByMonth, time.UTC)
	assert.Equal(t, "month:2024-03", id)
	assert.Equal(t, "March 2024", title)

	id, title = TimeBucket(at("2024-03-10 09:00"), models.GroupByYear, time.UTC)
	assert.Equal(t, "year:2024", id)
	assert.Equal(t, "2024", title)
}

func TestWeekStartsOnSunday(t *testing.T) {
	tests := []struct {
		when string
		want string
	}{
		{"2024-03-10 00:00", "week:2024-03-10"}, // Sunday
		{"2024-03-16 23:59", "week:2024-03-10"}, // Saturday
		{"2024-03-17 00:00", "week:2024-03-17"},
		{"2024-03-02 10:00", "week:2024-02-25"},
		{"2025-01-01 12:00", "week:2024-12-29"},
	}
	for _, tt := range tests {
		id, _ := TimeBucket(at(tt.when), models.GroupByWeek, time.UTC)
		assert.Equal(t, tt.want, id, tt.when)
	}

	_, title := TimeBucket(at("2024-03-12 10:00"), models.GroupByWeek, time.UTC)
	assert.Equal(t, "Mar 10 - Mar 16, 2024", title)
}

func TestWeekUsesLocation(t *testing.T) {
	// Sunday 02:00 UTC is still Saturday in New York.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	id, _ := TimeBucket(at("2024-03-17 02:00"), models.GroupByWeek, ny)
	assert.Equal(t, "week:2024-03-10", id)
}

func TestFolderModeOmitsEmptyAndCollectsDangling(t *testing.T) {
	groups := Build(fixture(), models.GroupByFolder, testFolders)
	var got []string
	for _, g := range groups {
		got = append(got, g.ID)
		assert.Equal(t, KindFolder, g.Kind)
	}
	assert.Equal(t, []string{"folder:work", "folder:sales", UngroupedID}, got)
	assert.Equal(t, "n4,n3", ids(groups[2].Notes))
}

func TestFolderNamedUngroupedKeepsItsOwnID(t *testing.T) {
	folders := []models.NoteFolder{{ID: "ungrouped", Name: "Misc"}}
	notes := []models.CallNote{
		note("a", "Ann", "2024-03-10 09:00", "ungrouped"),
		note("b", "Bo", "2024-03-10 10:00", ""),
	}
	groups := Build(notes, models.GroupByFolder, folders)
	require.Len(t, groups, 2)
	assert.Equal(t, "folder:ungrouped", groups[0].ID)
	assert.Equal(t, UngroupedID, groups[1].ID)
	assert.NotEqual(t, groups[0].SubGroups[0].ID, groups[1].SubGroups[0].ID)
}

func TestFolderModeWithoutUngroupedNotes(t *testing.T) {
	notes := []models.CallNote{note("a", "Ann", "2024-03-10 09:00", "sales")}
	groups := Build(notes, models.GroupByFolder, testFolders)
	require.Len(t, groups, 1)
	assert.Equal(t, "folder:sales", groups[0].ID)
}

func TestFolderModeSkipsDuplicateFolderIDs(t *testing.T) {
	folders := append([]models.NoteFolder{}, testFolders...)
	folders = append(folders, models.NoteFolder{ID: "work", Name: "Work again"})
	groups := Build(fixture(), models.GroupByFolder, folders)
	assert.Len(t, Notes(groups), len(fixture()))
}

func TestGroupIDsStableAcrossRecompute(t *testing.T) {
	before := Build(fixture(), models.GroupByWeek, nil, WithLocation(time.UTC))
	more := append(fixture(), note("n6", "Dee", "2024-03-11 10:00", ""))
	after := Build(more, models.GroupByWeek, nil, WithLocation(time.UTC))

	idsOf := func(groups []Group) []string {
		var out []string
		for _, g := range groups {
			out = append(out, g.ID)
		}
		return out
	}
	assert.ElementsMatch(t, idsOf(before), idsOf(after))
}

func TestEmptyInput(t *testing.T) {
	for _, mode := range models.GroupModes {
		assert.Empty(t, Build(nil, mode, testFolders), mode)
	}
}

func noteGenerator(i int) *rapid.Generator[models.CallNote] {
	return rapid.Custom(func(t *rapid.T) models.CallNote {
		start := time.Unix(rapid.Int64Range(1_600_000_000, 1_800_000_000).Draw(t, "start"), 0).UTC()
		return models.CallNote{
			ID:            fmt.Sprintf("n%d", i),
			ContactName:   rapid.SampledFrom([]string{"Ann", "Bo", "Cy", ""}).Draw(t, "contact"),
			CallStartTime: start,
			CreatedAt:     start.Add(time.Duration(rapid.IntRange(0, 3600).Draw(t, "lag")) * time.Second),
			FolderID:      rapid.SampledFrom([]string{"", "work", "sales", "support", "gone"}).Draw(t, "folder"),
		}
	})
}

func sortedIDs(notes []models.CallNote) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	sort.Strings(out)
	return out
}

func TestEveryNoteAppearsExactlyOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 30).Draw(t, "count")
		notes := make([]models.CallNote, count)
		for i := range notes {
			notes[i] = noteGenerator(i).Draw(t, fmt.Sprintf("note%d", i))
		}
		mode := rapid.SampledFrom(models.GroupModes).Draw(t, "mode")
		want := sortedIDs(notes)

		groups := Build(notes, mode, testFolders, WithLocation(time.UTC))
		assert.Equal(t, want, sortedIDs(Notes(groups)))

		var fromSubs []models.CallNote
		for _, g := range groups {
			assert.NotEmpty(t, g.Notes)
			if len(g.SubGroups) == 0 {
				fromSubs = append(fromSubs, g.Notes...)
				continue
			}
			for _, sub := range g.SubGroups {
				assert.True(t, strings.HasPrefix(sub.ID, g.ID+"/"))
				fromSubs = append(fromSubs, sub.Notes...)
			}
		}
		assert.Equal(t, want, sortedIDs(fromSubs))
	})
}

func TestTwelveNotesDistributed(t *testing.T) {
	var notes []models.CallNote
	for i := 0; i < 12; i++ {
		notes = append(notes, note(fmt.Sprintf("n%d", i), []string{"Ann", "Bo", "Cy"}[i%3],
			fmt.Sprintf("2024-%02d-%02d 10:00", i%4+1, i+1), []string{"work", "", "sales"}[i%3]))
	}
	for _, mode := range models.GroupModes {
		assert.Len(t, Notes(Build(notes, mode, testFolders)), 12, mode)
	}
}
