package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/piwi3910/sectionsheets/internal/errors"
	"github.com/piwi3910/sectionsheets/internal/model"
)

func pageConfig(w, h float64) model.PackingConfig {
	return model.PackingConfig{AvailableWidth: w, AvailableHeight: h}
}

func TestPackAll_SinglePage(t *testing.T) {
	rects := rectsOf([2]float64{2, 2}, [2]float64{2, 2}, [2]float64{2, 2})

	pages, err := PackAll(rects, pageConfig(5, 5))

	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Index)
	require.Len(t, pages[0].Placements, 3)
	for _, p := range pages[0].Placements {
		assert.Equal(t, 1, p.PageIndex)
	}
}

func TestPackAll_MultiplePages(t *testing.T) {
	rects := rectsOf([2]float64{4, 4}, [2]float64{4, 4}, [2]float64{4, 4})

	pages, err := PackAll(rects, pageConfig(5, 5))

	require.NoError(t, err)
	require.Len(t, pages, 3)
	for i, page := range pages {
		assert.Equal(t, i+1, page.Index)
		require.Len(t, page.Placements, 1)
		assert.Equal(t, rects[i].ID, page.Placements[0].RectID)
		assert.Equal(t, i+1, page.Placements[0].PageIndex)
	}
}

func TestPackAll_UnplaceableRect(t *testing.T) {
	rects := rectsOf([2]float64{10, 2})

	pages, err := PackAll(rects, pageConfig(5, 5))

	assert.Empty(t, pages)
	require.Error(t, err)

	var uerr *UnplaceableError
	require.True(t, errors.As(err, &uerr))
	require.Len(t, uerr.Rects, 1)
	assert.Equal(t, "r1", uerr.Rects[0].RectID)
	assert.Equal(t, 5.0, uerr.Rects[0].MaxWidth)

	var rerr *UnplaceableRectangleError
	require.True(t, errors.As(err, &rerr))
	assert.True(t, errors.Is(err, ErrUnplaceable))
	assert.Equal(t, apperrors.ErrCodeUnplaceable, apperrors.GetCode(rerr))
}

func TestPackAll_UnplaceableDoesNotBlockOthers(t *testing.T) {
	rects := rectsOf([2]float64{2, 2}, [2]float64{6, 1}, [2]float64{3, 3}, [2]float64{1, 9})

	pages, err := PackAll(rects, pageConfig(5, 5))

	var uerr *UnplaceableError
	require.True(t, errors.As(err, &uerr))
	require.Len(t, uerr.Rects, 2)
	assert.Equal(t, "r2", uerr.Rects[0].RectID)
	assert.Equal(t, "r4", uerr.Rects[1].RectID)

	placed := 0
	for _, p := range pages {
		placed += len(p.Placements)
	}
	assert.Equal(t, 2, placed)
	assert.True(t, rects[0].Placed)
	assert.True(t, rects[2].Placed)
}

func TestPackAll_Empty(t *testing.T) {
	pages, err := PackAll(nil, pageConfig(5, 5))
	assert.NoError(t, err)
	assert.Empty(t, pages)
}

func TestPackAll_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  model.PackingConfig
	}{
		{"zero width", model.PackingConfig{AvailableWidth: 0, AvailableHeight: 5}},
		{"negative height", model.PackingConfig{AvailableWidth: 5, AvailableHeight: -1}},
		{"negative margin", model.PackingConfig{AvailableWidth: 5, AvailableHeight: 5, Margin: -1}},
		{"negative gap", model.PackingConfig{AvailableWidth: 5, AvailableHeight: 5, Gap: -0.1}},
		{"nan width", model.PackingConfig{AvailableWidth: math.NaN(), AvailableHeight: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rects := rectsOf([2]float64{1, 1})
			pages, err := PackAll(rects, tt.cfg)
			assert.Nil(t, pages)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidConfig))
			assert.False(t, rects[0].Placed, "no packing attempt on invalid config")
		})
	}
}

func TestPackAll_InvalidRect(t *testing.T) {
	for _, size := range [][2]float64{{0, 1}, {1, -2}, {math.NaN(), 1}, {1, math.Inf(1)}} {
		_, err := PackAll(rectsOf(size), pageConfig(5, 5))
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput), "%v", size)
	}
}

func TestPackAll_Deterministic(t *testing.T) {
	sizes := [][2]float64{{3, 2}, {1, 4}, {2, 2}, {5, 1}, {1, 1}, {2, 3}, {4, 4}, {1, 3}}

	first, err := PackAll(rectsOf(sizes...), model.PackingConfig{AvailableWidth: 6, AvailableHeight: 5, Margin: 1, Gap: 0.5})
	require.NoError(t, err)
	second, err := PackAll(rectsOf(sizes...), model.PackingConfig{AvailableWidth: 6, AvailableHeight: 5, Margin: 1, Gap: 0.5})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPackAll_NoOverlapAcrossPages(t *testing.T) {
	sizes := [][2]float64{{3, 2}, {1, 4}, {2, 2}, {5, 1}, {1, 1}, {2, 3}, {4, 4}, {1, 3}, {3, 1}, {2, 5}}

	pages, err := PackAll(rectsOf(sizes...), model.PackingConfig{AvailableWidth: 6, AvailableHeight: 5, Gap: 0.5})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, page := range pages {
		for i, a := range page.Placements {
			assert.False(t, seen[a.RectID], "%s placed twice", a.RectID)
			seen[a.RectID] = true
			for _, b := range page.Placements[i+1:] {
				assert.False(t, a.Overlaps(b))
			}
		}
	}
	assert.Len(t, seen, len(sizes))
}

func TestPackAll_MonotonicInCapacity(t *testing.T) {
	sizes := make([][2]float64, 12)
	for i := range sizes {
		sizes[i] = [2]float64{2, 2}
	}

	prev := math.MaxInt
	for _, capacity := range []float64{2, 3, 4, 5, 6, 8, 10, 12} {
		pages, err := PackAll(rectsOf(sizes...), pageConfig(capacity, capacity))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(pages), prev, "capacity %v", capacity)
		prev = len(pages)
	}
}

type recordingTracer struct {
	NopTracer
	pages       []int
	unplaceable []string
	rowBreaks   int
}

func (r *recordingTracer) OnPage(p model.Page)     { r.pages = append(r.pages, p.Index) }
func (r *recordingTracer) OnRowBreak(int, float64) { r.rowBreaks++ }
func (r *recordingTracer) OnUnplaceable(e *UnplaceableRectangleError) {
	r.unplaceable = append(r.unplaceable, e.RectID)
}

func TestScheduler_Trace(t *testing.T) {
	tr := &recordingTracer{}
	rects := rectsOf([2]float64{2, 2}, [2]float64{2, 2}, [2]float64{2, 2}, [2]float64{9, 9})

	_, err := NewScheduler(pageConfig(5, 5), tr).Run(rects)

	require.Error(t, err)
	assert.Equal(t, []int{1}, tr.pages)
	assert.Equal(t, 1, tr.rowBreaks)
	assert.Equal(t, []string{"r4"}, tr.unplaceable)
}
