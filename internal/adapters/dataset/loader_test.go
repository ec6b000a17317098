package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddington-archives/quote-service/internal/domain"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quotes.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("loads valid dataset in file order", func(t *testing.T) {
		path := writeDataset(t, `{
			"metadata": {"total_quotes": 2, "last_updated": "2026-08-01T12:00:00Z"},
			"quotes": [
				{
					"quote": "Every cause has more than one effect.",
					"season": 1,
					"episode": 7,
					"episode_title": "Frederick Barnes",
					"source_url": "https://en.wikiquote.org/wiki/The_Blacklist",
					"source_name": "Wikiquote"
				},
				{
					"quote": "Loyalty is a vastly overrated virtue.",
					"season": 2
				}
			]
		}`)

		records, err := Load(path)

		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "Every cause has more than one effect.", records[0].Text)
		assert.Equal(t, 1, records[0].Season)
		assert.Equal(t, 7, records[0].Episode)
		assert.Equal(t, "Frederick Barnes", records[0].EpisodeTitle)
		assert.Equal(t, "Wikiquote", records[0].SourceName)

		assert.Equal(t, 2, records[1].Season)
		assert.False(t, records[1].HasEpisode())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))

		require.Error(t, err)
		assert.True(t, domain.IsLoad(err))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeDataset(t, `{"quotes": [`)

		_, err := Load(path)

		require.Error(t, err)
		assert.True(t, domain.IsLoad(err))
		assert.Contains(t, err.Error(), "malformed JSON")
	})

	t.Run("empty quote list", func(t *testing.T) {
		path := writeDataset(t, `{"metadata": {}, "quotes": []}`)

		_, err := Load(path)

		require.Error(t, err)
		assert.True(t, domain.IsLoad(err))
	})

	t.Run("record missing season", func(t *testing.T) {
		path := writeDataset(t, `{
			"quotes": [
				{"quote": "A perfectly fine first record.", "season": 1},
				{"quote": "This one forgot its season."}
			]
		}`)

		_, err := Load(path)

		require.Error(t, err)
		assert.True(t, domain.IsLoad(err))
		assert.Contains(t, err.Error(), "record 1")
	})

	t.Run("record with blank text", func(t *testing.T) {
		path := writeDataset(t, `{"quotes": [{"quote": "   ", "season": 1}]}`)

		_, err := Load(path)

		require.Error(t, err)
		assert.True(t, domain.IsLoad(err))
	})
}
