// ABOUTME: Grouping engine turning a flat note list into display groups
// ABOUTME: Time, folder and contact buckets with one level of contact subgroups
package grouping

import (
	"sort"
	"strings"
	"time"

	"github.com/harperreed/callbook/models"
)

type Kind string

const (
	KindTime    Kind = "time-based"
	KindFolder  Kind = "folder-based"
	KindContact Kind = "contact-based"
)

// UngroupedID is the id of the trailing folder-mode group for notes without
// a live folder.
const UngroupedID = "ungrouped"

const unknownContact = "Unknown Contact"

// Leaf is a group without subgroups. Notes are sorted newest first.
type Leaf struct {
	ID    string            `json:"id"`
	Title string            `json:"title"`
	Kind  Kind              `json:"kind"`
	Notes []models.CallNote `json:"notes"`
}

// Group is a top-level group. Its subgroups are leaves, so nesting never
// goes deeper than one level.
type Group struct {
	Leaf
	SubGroups []Leaf `json:"subGroups,omitempty"`
}

type Option func(*options)

type options struct {
	loc *time.Location
}

// WithLocation sets the time zone used for calendar buckets. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// Build groups notes by mode. Every input note appears exactly once in the
// top-level groups, and exactly once across the subgroups of groups that
// have them. Unknown modes group by contact.
func Build(notes []models.CallNote, mode models.GroupBy, folders []models.NoteFolder, opts ...Option) []Group {
	o := options{loc: time.Local}
	for _, opt := range opts {
		opt(&o)
	}

	switch mode {
	case models.GroupByDay, models.GroupByWeek, models.GroupByMonth, models.GroupByYear:
		return byTime(notes, mode, o.loc)
	case models.GroupByFolder:
		return byFolder(notes, folders)
	default:
		return byContact(notes)
	}
}

// Notes flattens the top-level groups back into one list.
func Notes(groups []Group) []models.CallNote {
	var out []models.CallNote
	for _, g := range groups {
		out = append(out, g.Notes...)
	}
	return out
}

// bucket accumulates notes under one key in first-seen order.
type bucket struct {
	id    string
	title string
	notes []models.CallNote
}

type buckets struct {
	order []*bucket
	byID  map[string]*bucket
}

func newBuckets() *buckets {
	return &buckets{byID: make(map[string]*bucket)}
}

func (b *buckets) add(id, title string, n models.CallNote) {
	bk, ok := b.byID[id]
	if !ok {
		bk = &bucket{id: id, title: title}
		b.byID[id] = bk
		b.order = append(b.order, bk)
	}
	bk.notes = append(bk.notes, n)
}

// sorted returns the buckets newest first by their latest note, with each
// bucket's notes sorted newest first. Ties keep first-seen order.
func (b *buckets) sorted(at func(models.CallNote) time.Time) []*bucket {
	for _, bk := range b.order {
		sortNotes(bk.notes, at)
	}
	out := append([]*bucket(nil), b.order...)
	sort.SliceStable(out, func(i, j int) bool {
		return at(out[i].notes[0]).After(at(out[j].notes[0]))
	})
	return out
}

func sortNotes(notes []models.CallNote, at func(models.CallNote) time.Time) {
	sort.SliceStable(notes, func(i, j int) bool {
		return at(notes[i]).After(at(notes[j]))
	})
}

func createdAt(n models.CallNote) time.Time { return n.CreatedAt }
func callStart(n models.CallNote) time.Time { return n.CallStartTime }

func contactTitle(n models.CallNote) string {
	name := strings.TrimSpace(n.ContactName)
	if name == "" {
		return unknownContact
	}
	return name
}

func contactKey(n models.CallNote) string {
	return "contact:" + contactTitle(n)
}

func byContact(notes []models.CallNote) []Group {
	b := newBuckets()
	for _, n := range notes {
		b.add(contactKey(n), contactTitle(n), n)
	}
	var groups []Group
	for _, bk := range b.sorted(createdAt) {
		groups = append(groups, Group{Leaf: Leaf{ID: bk.id, Title: bk.title, Kind: KindContact, Notes: bk.notes}})
	}
	return groups
}

// contactSubGroups splits an already grouped note list by contact.
func contactSubGroups(parentID string, notes []models.CallNote) []Leaf {
	b := newBuckets()
	for _, n := range notes {
		b.add(parentID+"/"+contactKey(n), contactTitle(n), n)
	}
	var leaves []Leaf
	for _, bk := range b.sorted(callStart) {
		leaves = append(leaves, Leaf{ID: bk.id, Title: bk.title, Kind: KindContact, Notes: bk.notes})
	}
	return leaves
}

func byTime(notes []models.CallNote, mode models.GroupBy, loc *time.Location) []Group {
	b := newBuckets()
	for _, n := range notes {
		id, title := TimeBucket(n.CallStartTime, mode, loc)
		b.add(id, title, n)
	}
	var groups []Group
	for _, bk := range b.sorted(callStart) {
		groups = append(groups, Group{
			Leaf:      Leaf{ID: bk.id, Title: bk.title, Kind: KindTime, Notes: bk.notes},
			SubGroups: contactSubGroups(bk.id, bk.notes),
		})
	}
	return groups
}

// TimeBucket returns the bucket id and title for t under a calendar mode.
// Weeks start on Sunday.
func TimeBucket(t time.Time, mode models.GroupBy, loc *time.Location) (id, title string) {
	t = t.In(loc)
	switch mode {
	case models.GroupByWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		sunday := day.AddDate(0, 0, -int(day.Weekday()))
		saturday := sunday.AddDate(0, 0, 6)
		return "week:" + sunday.Format("2006-01-02"), sunday.Format("Jan 2") + " - " + saturday.Format("Jan 2, 2006")
	case models.GroupByMonth:
		return "month:" + t.Format("2006-01"), t.Format("January 2006")
	case models.GroupByYear:
		return "year:" + t.Format("2006"), t.Format("2006")
	default:
		return "day:" + t.Format("2006-01-02"), t.Format("Monday, January 2, 2006")
	}
}

func byFolder(notes []models.CallNote, folders []models.NoteFolder) []Group {
	members := make(map[string][]models.CallNote, len(folders))
	live := make(map[string]bool, len(folders))
	for _, f := range folders {
		live[f.ID] = true
	}
	var ungrouped []models.CallNote
	for _, n := range notes {
		if n.FolderID == "" || !live[n.FolderID] {
			ungrouped = append(ungrouped, n)
			continue
		}
		members[n.FolderID] = append(members[n.FolderID], n)
	}

	var groups []Group
	seen := make(map[string]bool, len(folders))
	for _, f := range folders {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		if len(members[f.ID]) == 0 {
			continue
		}
		groups = append(groups, folderGroup("folder:"+f.ID, f.Name, members[f.ID]))
	}
	if len(ungrouped) > 0 {
		groups = append(groups, folderGroup(UngroupedID, "Ungrouped", ungrouped))
	}
	return groups
}

func folderGroup(id, title string, notes []models.CallNote) Group {
	sortNotes(notes, callStart)
	return Group{
		Leaf:      Leaf{ID: id, Title: title, Kind: KindFolder, Notes: notes},
		SubGroups: contactSubGroups(id, notes),
	}
}
