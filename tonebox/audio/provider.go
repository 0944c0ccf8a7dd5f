package audio

type Provider interface {
	// GetSamples retrieves interleaved stereo samples for playback
	GetSamples(count int) []int16

	// Host-side mute, does not affect the emulated pin
	ToggleMute()
	Muted() bool
}

var _ Provider = (*Sampler)(nil)
