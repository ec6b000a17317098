package dataset

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddington-archives/quote-service/internal/domain"
	"github.com/reddington-archives/quote-service/internal/ports"
)

func intPtr(v int) *int {
	return &v
}

func testRecords() []domain.QuoteRecord {
	return []domain.QuoteRecord{
		{Text: "Every cause has more than one effect.", Season: 1, Episode: 7},
		{Text: "I am a creature of my environment.", Season: 1, Episode: 9},
		{Text: "Loyalty is a vastly overrated virtue.", Season: 2, Episode: 1},
	}
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()

	idx, err := NewIndex(testRecords())
	require.NoError(t, err)

	return idx
}

func TestNewIndex(t *testing.T) {
	t.Run("rejects empty collection", func(t *testing.T) {
		idx, err := NewIndex(nil)

		require.Error(t, err)
		assert.True(t, domain.IsLoad(err))
		assert.Nil(t, idx)
	})

	t.Run("rejects invalid record", func(t *testing.T) {
		records := []domain.QuoteRecord{
			{Text: "A valid quote for the collection.", Season: 1},
			{Text: "   ", Season: 1},
		}

		idx, err := NewIndex(records)

		require.Error(t, err)
		assert.True(t, domain.IsLoad(err))
		assert.Contains(t, err.Error(), "record 1")
		assert.Nil(t, idx)
	})

	t.Run("copies input slice", func(t *testing.T) {
		records := testRecords()
		idx, err := NewIndex(records)
		require.NoError(t, err)

		records[0].Text = "mutated after construction"

		all, err := idx.List(context.Background(), ports.ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, "Every cause has more than one effect.", all[0].Text)
	})
}

func TestIndex_List(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	t.Run("no filters returns everything in loading order", func(t *testing.T) {
		got, err := idx.List(ctx, ports.ListFilter{})

		require.NoError(t, err)
		assert.Equal(t, testRecords(), got)
	})

	t.Run("season filter", func(t *testing.T) {
		got, err := idx.List(ctx, ports.ListFilter{Season: intPtr(1)})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 7, got[0].Episode)
		assert.Equal(t, 9, got[1].Episode)
	})

	t.Run("season and episode filter", func(t *testing.T) {
		got, err := idx.List(ctx, ports.ListFilter{Season: intPtr(1), Episode: intPtr(9)})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "I am a creature of my environment.", got[0].Text)
	})

	t.Run("episode filter without season spans seasons", func(t *testing.T) {
		got, err := idx.List(ctx, ports.ListFilter{Episode: intPtr(1)})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].Season)
	})

	t.Run("absent season returns empty slice not error", func(t *testing.T) {
		got, err := idx.List(ctx, ports.ListFilter{Season: intPtr(99)})

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("non-positive filters are validation errors", func(t *testing.T) {
		tests := []struct {
			name   string
			filter ports.ListFilter
		}{
			{name: "zero season", filter: ports.ListFilter{Season: intPtr(0)}},
			{name: "negative season", filter: ports.ListFilter{Season: intPtr(-3)}},
			{name: "zero episode", filter: ports.ListFilter{Episode: intPtr(0)}},
			{name: "negative episode", filter: ports.ListFilter{Season: intPtr(1), Episode: intPtr(-1)}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := idx.List(ctx, tt.filter)

				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
				assert.Nil(t, got)
			})
		}
	})
}

func TestIndex_RandomOne(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	t.Run("eventually visits every record", func(t *testing.T) {
		seen := make(map[string]bool)

		for range 1000 {
			q, err := idx.RandomOne(ctx)
			require.NoError(t, err)
			seen[q.Text] = true
		}

		// 1000 uniform draws over 3 records miss one with
		// probability (2/3)^1000; a miss here means a real bug.
		assert.Len(t, seen, len(testRecords()))
	})

	t.Run("draws are members of the collection", func(t *testing.T) {
		q, err := idx.RandomOne(ctx)

		require.NoError(t, err)
		assert.Contains(t, testRecords(), q)
	})
}

func TestIndex_FeaturedForDate(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	t.Run("same date yields identical record", func(t *testing.T) {
		date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

		first, err := idx.FeaturedForDate(ctx, date)
		require.NoError(t, err)

		second, err := idx.FeaturedForDate(ctx, date)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("time of day does not matter", func(t *testing.T) {
		morning := time.Date(2024, time.March, 15, 0, 0, 1, 0, time.UTC)
		night := time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC)

		a, err := idx.FeaturedForDate(ctx, morning)
		require.NoError(t, err)

		b, err := idx.FeaturedForDate(ctx, night)
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("timezone does not matter", func(t *testing.T) {
		// 2024-03-15 22:00 -05:00 is 2024-03-16 03:00 UTC.
		est := time.FixedZone("EST", -5*3600)
		local := time.Date(2024, time.March, 15, 22, 0, 0, 0, est)
		utc := time.Date(2024, time.March, 16, 3, 0, 0, 0, time.UTC)

		a, err := idx.FeaturedForDate(ctx, local)
		require.NoError(t, err)

		b, err := idx.FeaturedForDate(ctx, utc)
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("consecutive days rotate through the collection", func(t *testing.T) {
		start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
		seen := make(map[string]bool)

		for d := range len(testRecords()) {
			q, err := idx.FeaturedForDate(ctx, start.AddDate(0, 0, d))
			require.NoError(t, err)
			seen[q.Text] = true
		}

		assert.Len(t, seen, len(testRecords()))
	})

	t.Run("dates before the epoch still map into range", func(t *testing.T) {
		ancient := time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)

		q, err := idx.FeaturedForDate(ctx, ancient)

		require.NoError(t, err)
		assert.Contains(t, testRecords(), q)
	})
}

func TestFeaturedIndex(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		size int
		want int
	}{
		{
			name: "epoch day is index zero",
			t:    time.Date(2013, time.September, 23, 12, 0, 0, 0, time.UTC),
			size: 221,
			want: 0,
		},
		{
			name: "next day is index one",
			t:    time.Date(2013, time.September, 24, 0, 0, 0, 0, time.UTC),
			size: 221,
			want: 1,
		},
		{
			name: "wraps at collection size",
			t:    time.Date(2013, time.September, 23, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 221),
			size: 221,
			want: 0,
		},
		{
			name: "day before epoch wraps to last index",
			t:    time.Date(2013, time.September, 22, 0, 0, 0, 0, time.UTC),
			size: 221,
			want: 220,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, featuredIndex(tt.t, tt.size))
		})
	}
}

func TestIndex_Search(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		query     string
		wantTexts []string
	}{
		{
			name:      "case-insensitive substring match",
			query:     "LOYALTY",
			wantTexts: []string{"Loyalty is a vastly overrated virtue."},
		},
		{
			name:      "below minimum length returns nothing",
			query:     "lo",
			wantTexts: []string{},
		},
		{
			name:      "whitespace does not count toward minimum length",
			query:     "  a  ",
			wantTexts: []string{},
		},
		{
			name:      "surrounding whitespace is trimmed before matching",
			query:     "  loyalty  ",
			wantTexts: []string{"Loyalty is a vastly overrated virtue."},
		},
		{
			name:  "matches preserve loading order",
			query: "tha",
			wantTexts: []string{
				"Every cause has more than one effect.",
			},
		},
		{
			name:      "no match yields empty slice",
			query:     "zzzzzz",
			wantTexts: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Search(ctx, tt.query)

			texts := make([]string, 0, len(got))
			for _, q := range got {
				texts = append(texts, q.Text)
			}

			assert.Equal(t, tt.wantTexts, texts)
		})
	}

	t.Run("matches against context too", func(t *testing.T) {
		records := []domain.QuoteRecord{
			{Text: "Short and plain.", Season: 3, Context: "Spoken in the warehouse scene"},
		}
		withContext, err := NewIndex(records)
		require.NoError(t, err)

		got := withContext.Search(ctx, "warehouse")

		require.Len(t, got, 1)
		assert.Equal(t, "Short and plain.", got[0].Text)
	})

	t.Run("minimum length counts runes not bytes", func(t *testing.T) {
		records := []domain.QuoteRecord{
			{Text: "Não confunda lealdade com obediência.", Season: 1},
		}
		accented, err := NewIndex(records)
		require.NoError(t, err)

		// Two runes but three bytes; still below the minimum.
		assert.Empty(t, accented.Search(ctx, "ão"))

		// Three runes match regardless of byte width.
		got := accented.Search(ctx, "não")
		require.Len(t, got, 1)
		assert.Equal(t, records[0].Text, got[0].Text)
	})

	t.Run("order is stable across text and context matches", func(t *testing.T) {
		records := []domain.QuoteRecord{
			{Text: "The harbor was quiet that night.", Season: 1},
			{Text: "Nothing of note.", Season: 1, Context: "At the harbor"},
			{Text: "A harbor is just a door to the sea.", Season: 2},
		}
		mixed, err := NewIndex(records)
		require.NoError(t, err)

		got := mixed.Search(ctx, "harbor")

		require.Len(t, got, 3)
		assert.Equal(t, records, got)
	})
}

func TestIndex_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("counts per season", func(t *testing.T) {
		idx := newTestIndex(t)

		got := idx.Stats(ctx)

		assert.Equal(t, map[int]int{1: 2, 2: 1}, got.PerSeason)
		assert.Equal(t, 3, got.TotalQuotes)
		assert.Equal(t, 2, got.TotalSeasons)
	})

	t.Run("seasons need not be contiguous", func(t *testing.T) {
		records := []domain.QuoteRecord{
			{Text: "From the fourth season only.", Season: 4},
			{Text: "From the tenth season only.", Season: 10},
			{Text: "Another from the tenth.", Season: 10},
		}
		idx, err := NewIndex(records)
		require.NoError(t, err)

		got := idx.Stats(ctx)

		assert.Equal(t, map[int]int{4: 1, 10: 2}, got.PerSeason)
		assert.Equal(t, 3, got.TotalQuotes)
		assert.Equal(t, 2, got.TotalSeasons)
	})

	t.Run("per-season counts sum to total", func(t *testing.T) {
		idx := newTestIndex(t)

		got := idx.Stats(ctx)

		sum := 0
		for _, n := range got.PerSeason {
			sum += n
		}

		assert.Equal(t, got.TotalQuotes, sum)
	})
}

func TestIndex_HealthCheck(t *testing.T) {
	idx := newTestIndex(t)

	assert.Equal(t, "quote-index", idx.Name())
	assert.NoError(t, idx.Check(context.Background()))
}

func BenchmarkIndex_Search(b *testing.B) {
	records := make([]domain.QuoteRecord, 0, 300)
	for i := range 300 {
		records = append(records, domain.QuoteRecord{
			Text:    fmt.Sprintf("Every cause has more than one effect, and this is line %d.", i),
			Season:  i%10 + 1,
			Episode: i%22 + 1,
			Context: "Spoken during an interrogation scene.",
		})
	}

	idx, err := NewIndex(records)
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()

	b.ResetTimer()

	for b.Loop() {
		idx.Search(ctx, "interrogation")
	}
}
