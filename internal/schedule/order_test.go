package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func dates(rs []Reservation) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Date
	}
	return out
}

func TestSortByDate(t *testing.T) {
	in := []Reservation{{Date: "2024-02-01"}, {Date: "2024-01-01"}, {Date: ""}}
	got := Sort(in)
	assert.Equal(t, []string{"2024-01-01", "2024-02-01", ""}, dates(got))
}

func TestSortByStartTime(t *testing.T) {
	in := []Reservation{
		{Date: "2024-01-01", Time: "13:00-14:00", Name: "c"},
		{Date: "2024-01-01", Name: "d"},
		{Date: "2024-01-01", Time: "09:00-10:00", Name: "a"},
		{Date: "2024-01-01", Time: "10:30-11:00", Name: "b"},
	}
	got := Sort(in)
	names := make([]string, len(got))
	for i, r := range got {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
}

func TestSortIsStable(t *testing.T) {
	in := []Reservation{
		{Date: "2024-01-01", Time: "09:00-10:00", Room: "first"},
		{Date: "2024-01-01", Time: "09:00-09:30", Room: "second"},
		{Room: "third"},
		{Room: "fourth"},
	}
	got := Sort(in)
	assert.Equal(t, "first", got[0].Room)
	assert.Equal(t, "second", got[1].Room)
	assert.Equal(t, "third", got[2].Room)
	assert.Equal(t, "fourth", got[3].Room)
}

func TestSortIdempotentAndPure(t *testing.T) {
	in := []Reservation{{Date: "2024-03-01"}, {Date: ""}, {Date: "2024-01-01", Time: "10:00-11:00"}}
	original := append([]Reservation(nil), in...)

	first := Sort(in)
	second := Sort(in)
	assert.Equal(t, first, second)
	assert.Equal(t, original, in)
	assert.Equal(t, first, Sort(first))
}

func TestSortByCustomType(t *testing.T) {
	type row struct {
		id  int
		res Reservation
	}
	rows := []row{
		{id: 1, res: Reservation{Date: "2024-05-02"}},
		{id: 2, res: Reservation{Date: "2024-05-01"}},
	}
	got := SortBy(rows, func(r row) Reservation { return r.res })
	assert.Equal(t, 2, got[0].id)
	assert.Equal(t, 1, got[1].id)
}
