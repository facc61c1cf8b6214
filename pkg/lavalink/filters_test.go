package lavalink

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiltersTriState(t *testing.T) {
	f := NewFilters()
	f.SetKaraoke(Karaoke{Level: 1.0, MonoLevel: 1.0, FilterBand: 220, FilterWidth: 100})
	f.ClearTimescale()

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	// set field serializes with its value
	require.Contains(t, raw, "timescale")
	require.Contains(t, raw, "karaoke")
	assert.Equal(t, "null", string(raw["timescale"]))
	assert.NotEqual(t, "null", string(raw["karaoke"]))

	// unset fields are omitted entirely
	assert.NotContains(t, raw, "tremolo")
	assert.NotContains(t, raw, "volume")
}

func TestFiltersMergeNeverOverwritesWithUnset(t *testing.T) {
	base := NewFilters()
	_, err := base.SetVolume(0.8)
	require.NoError(t, err)
	base.SetKaraoke(Karaoke{Level: 1.0})

	// update leaves volume unset; it must survive the merge unchanged
	update := NewFilters()
	update.SetTremolo(Tremolo{Frequency: 2.0, Depth: 0.5})

	merged := base.Merge(update)
	assert.True(t, merged.IsSet(filterVolume))
	assert.True(t, merged.IsSet(filterKaraoke))
	assert.True(t, merged.IsSet(filterTremolo))

	// a cleared field wins over a previously set one
	update2 := NewFilters().ClearKaraoke()
	merged2 := merged.Merge(update2)
	assert.True(t, merged2.IsCleared(filterKaraoke))
	assert.True(t, merged2.IsSet(filterVolume))

	// inputs are never mutated
	assert.True(t, base.IsSet(filterKaraoke))
	assert.False(t, base.IsSet(filterTremolo))
}

func TestFiltersValidation(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(*Filters) error
		wantErr bool
	}{
		{
			name: "valid equalizer",
			apply: func(f *Filters) error {
				_, err := f.SetEqualizer(EqualizerBand{Band: 0, Gain: 0.25})
				return err
			},
		},
		{
			name: "band out of range",
			apply: func(f *Filters) error {
				_, err := f.SetEqualizer(EqualizerBand{Band: 15, Gain: 0.25})
				return err
			},
			wantErr: true,
		},
		{
			name: "gain out of range",
			apply: func(f *Filters) error {
				_, err := f.SetEqualizer(EqualizerBand{Band: 3, Gain: 1.5})
				return err
			},
			wantErr: true,
		},
		{
			name: "volume out of range",
			apply: func(f *Filters) error {
				_, err := f.SetVolume(-0.5)
				return err
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.apply(NewFilters())
			if tt.wantErr {
				var buildErr *BuildError
				assert.ErrorAs(t, err, &buildErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFiltersRoundTrip(t *testing.T) {
	payload := []byte(`{"karaoke":{"level":1.0},"timescale":null}`)

	var f Filters
	require.NoError(t, json.Unmarshal(payload, &f))
	assert.True(t, f.IsSet(filterKaraoke))
	assert.True(t, f.IsCleared(filterTimescale))
	assert.False(t, f.IsSet(filterRotation))
	assert.False(t, f.IsCleared(filterRotation))

	out, err := json.Marshal(&f)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Len(t, raw, 2)
	assert.Equal(t, "null", string(raw["timescale"]))
}

func TestFiltersZeroValue(t *testing.T) {
	var f Filters
	data, err := json.Marshal(&f)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
