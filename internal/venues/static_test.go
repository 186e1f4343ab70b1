package venues

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStaticSource_EmbeddedCatalog(t *testing.T) {
	src, err := NewStaticSource()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, src.Len(), 10)

	first, err := src.Fetch(context.Background(), "SW1A 1AA")
	require.NoError(t, err)
	other, err := src.Fetch(context.Background(), "M1 1AE")
	require.NoError(t, err)
	assert.Equal(t, first, other)

	first[0].Name = "changed"
	again, _ := src.Fetch(context.Background(), "SW1A 1AA")
	assert.NotEqual(t, "changed", again[0].Name)
}

func TestParseCatalog_RejectsUnknownCategory(t *testing.T) {
	_, err := ParseCatalog([]byte("- id: x\n  name: X\n  category: Bowling\n"))
	assert.Error(t, err)
}

func TestParseCatalog_RequiresID(t *testing.T) {
	_, err := ParseCatalog([]byte("- name: X\n  category: Nature Walks\n"))
	assert.Error(t, err)
}

func TestStaticWeather(t *testing.T) {
	assert.Equal(t, "Rain", NewStaticWeather("Rain").Summary(context.Background(), "E1"))
	assert.Equal(t, defaultWeatherSummary, NewStaticWeather("").Summary(context.Background(), "E1"))
}
