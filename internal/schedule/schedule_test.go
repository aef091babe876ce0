package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayNames(w Weekly) []string {
	out := make([]string, 0, len(w.Days))
	for _, d := range w.Days {
		out = append(out, d.Day)
	}
	return out
}

func TestDefault(t *testing.T) {
	w := Default()
	assert.Equal(t, CanonicalDays, dayNames(w))
	for _, d := range w.Days {
		assert.NotNil(t, d.Classes)
		assert.Empty(t, d.Classes)
	}
}

func TestMerge(t *testing.T) {
	yoga := Class{Time: "07:00", Name: "Yoga"}
	pilates := Class{Time: "18:00", Name: "Pilates"}

	tests := []struct {
		name  string
		input []Day
		check func(t *testing.T, w Weekly)
	}{
		{
			name:  "empty input gives default",
			input: nil,
			check: func(t *testing.T, w Weekly) {
				assert.Equal(t, Default(), w)
			},
		},
		{
			name:  "out of order days are reordered",
			input: []Day{{Day: "Sunday", Classes: []Class{pilates}}, {Day: "Monday", Classes: []Class{yoga}}},
			check: func(t *testing.T, w Weekly) {
				assert.Equal(t, CanonicalDays, dayNames(w))
				assert.Equal(t, []Class{yoga}, w.Days[0].Classes)
				assert.Equal(t, []Class{pilates}, w.Days[6].Classes)
				assert.Empty(t, w.Days[3].Classes)
			},
		},
		{
			name:  "unknown day is dropped",
			input: []Day{{Day: "Funday", Classes: []Class{yoga}}},
			check: func(t *testing.T, w Weekly) {
				assert.Equal(t, Default(), w)
			},
		},
		{
			name:  "last duplicate wins",
			input: []Day{{Day: "Friday", Classes: []Class{yoga}}, {Day: "Friday", Classes: []Class{pilates}}},
			check: func(t *testing.T, w Weekly) {
				assert.Equal(t, []Class{pilates}, w.Days[4].Classes)
			},
		},
		{
			name:  "nil classes become empty",
			input: []Day{{Day: "Tuesday"}},
			check: func(t *testing.T, w Weekly) {
				assert.NotNil(t, w.Days[1].Classes)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Merge(tt.input)
			require.Len(t, w.Days, 7)
			tt.check(t, w)
		})
	}
}

func TestDecodeClasses(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		assert.Equal(t, Default(), DecodeClasses(json.RawMessage(`{nope`)))
	})
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Default(), DecodeClasses(nil))
	})
	t.Run("blank optional fields", func(t *testing.T) {
		raw := `{"days":[{"day":"Wednesday","classes":[{"time":"09:00","name":"Flow","spots":"","price":"12.5"}]}]}`
		w := DecodeClasses(json.RawMessage(raw))
		c := w.Days[2].Classes
		require.Len(t, c, 1)
		assert.Equal(t, "Flow", c[0].Name)
		assert.Nil(t, c[0].Spots)
		require.NotNil(t, c[0].Price)
		assert.Equal(t, 12.5, *c[0].Price)
	})
	t.Run("bad number falls back to default", func(t *testing.T) {
		raw := `{"days":[{"day":"Monday","classes":[{"name":"x","spots":"many"}]}]}`
		assert.Equal(t, Default(), DecodeClasses(json.RawMessage(raw)))
	})
}

func TestDecodeEvents(t *testing.T) {
	assert.Equal(t, []Event{}, DecodeEvents(json.RawMessage(`{"not":"array"}`)))
	assert.Equal(t, []Event{}, DecodeEvents(json.RawMessage(`null`)))

	evs := DecodeEvents(json.RawMessage(`[{"date":"2026-05-01","time":"10:00","name":"Retreat","spots":8}]`))
	require.Len(t, evs, 1)
	require.NotNil(t, evs[0].Spots)
	assert.Equal(t, 8, *evs[0].Spots)
}

func TestSortAndUpcoming(t *testing.T) {
	evs := []Event{
		{Date: "2026-06-02", Time: "09:00", Name: "c"},
		{Date: "2026-06-01", Time: "18:00", Name: "b"},
		{Date: "2026-06-01", Time: "08:00", Name: "a"},
		{Date: "2026-05-01", Time: "08:00", Name: "past"},
		{Date: "soon", Name: "bad"},
	}
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	up := Upcoming(evs, now)
	names := []string{}
	for _, e := range up {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestValidate(t *testing.T) {
	good := Default()
	good.Days[0].Classes = []Class{{Time: "07:00", Name: "Yoga"}}
	assert.NoError(t, Validate(good, []Event{{Date: "2026-01-02", Name: "x"}}))

	bad := Weekly{Days: []Day{{Day: "Someday"}}}
	assert.Error(t, Validate(bad, nil))

	dup := Weekly{Days: []Day{{Day: "Monday"}, {Day: "Monday"}}}
	assert.Error(t, Validate(dup, nil))

	assert.Error(t, Validate(Default(), []Event{{Date: "01/02/2026", Name: "x"}}))
	assert.Error(t, Validate(Default(), []Event{{Date: "2026-01-02"}}))
}
