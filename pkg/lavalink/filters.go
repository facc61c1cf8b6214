package lavalink

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Filter field names as they appear on the wire.
const (
	filterVolume     = "volume"
	filterEqualizer  = "equalizer"
	filterKaraoke    = "karaoke"
	filterTimescale  = "timescale"
	filterTremolo    = "tremolo"
	filterVibrato    = "vibrato"
	filterRotation   = "rotation"
	filterDistortion = "distortion"
	filterChannelMix = "channelMix"
	filterLowPass    = "lowPass"
)

// EqualizerBand adjusts the gain of one of the 15 equalizer bands.
type EqualizerBand struct {
	Band int     `json:"band"`
	Gain float64 `json:"gain"`
}

// Karaoke uses equalization to eliminate part of a band, usually vocals.
type Karaoke struct {
	Level       float64 `json:"level"`
	MonoLevel   float64 `json:"monoLevel"`
	FilterBand  float64 `json:"filterBand"`
	FilterWidth float64 `json:"filterWidth"`
}

// Timescale changes the speed, pitch and rate of playback.
type Timescale struct {
	Speed float64 `json:"speed,omitempty"`
	Pitch float64 `json:"pitch,omitempty"`
	Rate  float64 `json:"rate,omitempty"`
}

// Tremolo oscillates the volume to create a shuddering effect.
type Tremolo struct {
	Frequency float64 `json:"frequency"`
	Depth     float64 `json:"depth"`
}

// Vibrato oscillates the pitch.
type Vibrato struct {
	Frequency float64 `json:"frequency"`
	Depth     float64 `json:"depth"`
}

// Rotation rotates the sound around the stereo channels.
type Rotation struct {
	RotationHz float64 `json:"rotationHz"`
}

// Distortion applies a distortion effect.
type Distortion struct {
	SinOffset float64 `json:"sinOffset,omitempty"`
	SinScale  float64 `json:"sinScale,omitempty"`
	CosOffset float64 `json:"cosOffset,omitempty"`
	CosScale  float64 `json:"cosScale,omitempty"`
	TanOffset float64 `json:"tanOffset,omitempty"`
	TanScale  float64 `json:"tanScale,omitempty"`
	Offset    float64 `json:"offset,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// ChannelMix mixes both stereo channels into each other.
type ChannelMix struct {
	LeftToLeft   float64 `json:"leftToLeft"`
	LeftToRight  float64 `json:"leftToRight"`
	RightToLeft  float64 `json:"rightToLeft"`
	RightToRight float64 `json:"rightToRight"`
}

// LowPass suppresses higher frequencies.
type LowPass struct {
	Smoothing float64 `json:"smoothing"`
}

// Filters is a sparse set of effect configurations. Every field is
// tri-state: unset (omitted from serialization and left untouched by a
// merge), set to an explicit value, or explicitly cleared (serialized as
// null so the node removes the effect). The zero value is usable.
type Filters struct {
	fields map[string]interface{}
}

// NewFilters creates an empty filter set with every field unset.
func NewFilters() *Filters {
	return &Filters{fields: make(map[string]interface{})}
}

func (f *Filters) set(name string, value interface{}) *Filters {
	if f.fields == nil {
		f.fields = make(map[string]interface{})
	}
	f.fields[name] = value
	return f
}

// SetVolume sets the filter-level volume multiplier. This is independent
// of the player volume. Values above 1.0 may cause distortion.
func (f *Filters) SetVolume(volume float64) (*Filters, error) {
	if volume < 0 || volume > 5 {
		return f, &BuildError{Reason: fmt.Sprintf("filter volume %v out of range [0, 5]", volume)}
	}
	return f.set(filterVolume, volume), nil
}

// ClearVolume explicitly removes the volume multiplier.
func (f *Filters) ClearVolume() *Filters { return f.set(filterVolume, nil) }

// SetEqualizer sets the equalizer bands. Bands must be in [0, 14] and
// gains in [-0.25, 1.0].
func (f *Filters) SetEqualizer(bands ...EqualizerBand) (*Filters, error) {
	for _, b := range bands {
		if b.Band < 0 || b.Band > 14 {
			return f, &BuildError{Reason: fmt.Sprintf("equalizer band %d out of range [0, 14]", b.Band)}
		}
		if b.Gain < -0.25 || b.Gain > 1.0 {
			return f, &BuildError{Reason: fmt.Sprintf("equalizer gain %v out of range [-0.25, 1.0]", b.Gain)}
		}
	}
	return f.set(filterEqualizer, bands), nil
}

// ClearEqualizer explicitly removes the equalizer.
func (f *Filters) ClearEqualizer() *Filters { return f.set(filterEqualizer, nil) }

// SetKaraoke sets the karaoke configuration.
func (f *Filters) SetKaraoke(k Karaoke) *Filters { return f.set(filterKaraoke, k) }

// ClearKaraoke explicitly removes the karaoke configuration.
func (f *Filters) ClearKaraoke() *Filters { return f.set(filterKaraoke, nil) }

// SetTimescale sets the timescale configuration.
func (f *Filters) SetTimescale(t Timescale) *Filters { return f.set(filterTimescale, t) }

// ClearTimescale explicitly removes the timescale configuration.
func (f *Filters) ClearTimescale() *Filters { return f.set(filterTimescale, nil) }

// SetTremolo sets the tremolo configuration.
func (f *Filters) SetTremolo(t Tremolo) *Filters { return f.set(filterTremolo, t) }

// ClearTremolo explicitly removes the tremolo configuration.
func (f *Filters) ClearTremolo() *Filters { return f.set(filterTremolo, nil) }

// SetVibrato sets the vibrato configuration.
func (f *Filters) SetVibrato(v Vibrato) *Filters { return f.set(filterVibrato, v) }

// ClearVibrato explicitly removes the vibrato configuration.
func (f *Filters) ClearVibrato() *Filters { return f.set(filterVibrato, nil) }

// SetRotation sets the rotation configuration.
func (f *Filters) SetRotation(r Rotation) *Filters { return f.set(filterRotation, r) }

// ClearRotation explicitly removes the rotation configuration.
func (f *Filters) ClearRotation() *Filters { return f.set(filterRotation, nil) }

// SetDistortion sets the distortion configuration.
func (f *Filters) SetDistortion(d Distortion) *Filters { return f.set(filterDistortion, d) }

// ClearDistortion explicitly removes the distortion configuration.
func (f *Filters) ClearDistortion() *Filters { return f.set(filterDistortion, nil) }

// SetChannelMix sets the channel mix configuration.
func (f *Filters) SetChannelMix(m ChannelMix) *Filters { return f.set(filterChannelMix, m) }

// ClearChannelMix explicitly removes the channel mix configuration.
func (f *Filters) ClearChannelMix() *Filters { return f.set(filterChannelMix, nil) }

// SetLowPass sets the low pass configuration.
func (f *Filters) SetLowPass(lp LowPass) *Filters { return f.set(filterLowPass, lp) }

// ClearLowPass explicitly removes the low pass configuration.
func (f *Filters) ClearLowPass() *Filters { return f.set(filterLowPass, nil) }

// IsSet reports whether the named field carries an explicit value.
func (f *Filters) IsSet(name string) bool {
	if f == nil || f.fields == nil {
		return false
	}
	v, ok := f.fields[name]
	return ok && v != nil
}

// IsCleared reports whether the named field was explicitly cleared.
func (f *Filters) IsCleared(name string) bool {
	if f == nil || f.fields == nil {
		return false
	}
	v, ok := f.fields[name]
	return ok && v == nil
}

// Merge overlays other onto f and returns the result as a new value.
// Fields set or cleared in other win; fields unset in other keep f's
// state. Neither input is mutated.
func (f *Filters) Merge(other *Filters) *Filters {
	merged := NewFilters()
	if f != nil {
		for k, v := range f.fields {
			merged.fields[k] = v
		}
	}
	if other != nil {
		for k, v := range other.fields {
			merged.fields[k] = v
		}
	}
	return merged
}

// MarshalJSON serializes set fields with their value, cleared fields as
// null and omits unset fields entirely.
func (f *Filters) MarshalJSON() ([]byte, error) {
	if f == nil || f.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f.fields)
}

// UnmarshalJSON decodes a filter payload. Present null fields become
// cleared, present values become set, absent fields stay unset.
func (f *Filters) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &BuildError{Reason: "invalid filters payload", Cause: err}
	}
	f.fields = make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			f.fields[k] = nil
		} else {
			f.fields[k] = v
		}
	}
	return nil
}
