package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestDeriveFlightCategory(t *testing.T) {
	tests := []struct {
		name     string
		vis      *float64
		ceiling  *int
		expected string
	}{
		{"clear and unlimited", ptr.To(6.0), nil, CategoryVFR},
		{"high ceiling", ptr.To(10.0), ptr.To(5000), CategoryVFR},
		{"marginal ceiling", ptr.To(4.0), ptr.To(2000), CategoryMVFR},
		{"instrument", ptr.To(2.0), ptr.To(800), CategoryIFR},
		{"low instrument", ptr.To(0.5), ptr.To(400), CategoryLIFR},
		{"MVFR boundary inclusive", ptr.To(5.0), ptr.To(3000), CategoryMVFR},
		{"IFR visibility alone", ptr.To(2.0), nil, CategoryIFR},
		{"LIFR ceiling alone", ptr.To(10.0), ptr.To(400), CategoryLIFR},
		{"good visibility low ceiling", ptr.To(10.0), ptr.To(800), CategoryIFR},
		{"ceiling exactly 1000", ptr.To(10.0), ptr.To(1000), CategoryMVFR},
		{"ceiling exactly 3000", ptr.To(10.0), ptr.To(3000), CategoryMVFR},
		{"no visibility low ceiling", nil, ptr.To(700), CategoryIFR},
		{"no visibility high ceiling", nil, ptr.To(10000), CategoryVFR},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveFlightCategory(tc.vis, tc.ceiling)
			require.NotNil(t, got)
			assert.Equal(t, tc.expected, *got)
		})
	}

	t.Run("no signal at all", func(t *testing.T) {
		assert.Nil(t, DeriveFlightCategory(nil, nil))
	})
}

func TestExtractCeiling(t *testing.T) {
	t.Run("first BKN in source order wins", func(t *testing.T) {
		layers := []CloudLayer{
			{Cover: "FEW", BaseFeetAGL: ptr.To(1500)},
			{Cover: "BKN", BaseFeetAGL: ptr.To(4000)},
			{Cover: "OVC", BaseFeetAGL: ptr.To(2000)},
		}
		got := ExtractCeiling(layers)
		require.NotNil(t, got)
		assert.Equal(t, 4000, *got)
	})

	t.Run("vertical visibility counts", func(t *testing.T) {
		got := ExtractCeiling([]CloudLayer{{Cover: "VV", BaseFeetAGL: ptr.To(200)}})
		require.NotNil(t, got)
		assert.Equal(t, 200, *got)
	})

	t.Run("scattered sky has no ceiling", func(t *testing.T) {
		layers := []CloudLayer{
			{Cover: "FEW", BaseFeetAGL: ptr.To(1500)},
			{Cover: "SCT", BaseFeetAGL: ptr.To(2500)},
		}
		assert.Nil(t, ExtractCeiling(layers))
	})

	t.Run("broken layer without base is skipped", func(t *testing.T) {
		layers := []CloudLayer{
			{Cover: "BKN"},
			{Cover: "OVC", BaseFeetAGL: ptr.To(900)},
		}
		got := ExtractCeiling(layers)
		require.NotNil(t, got)
		assert.Equal(t, 900, *got)
	})

	t.Run("empty layers", func(t *testing.T) {
		assert.Nil(t, ExtractCeiling(nil))
	})
}
