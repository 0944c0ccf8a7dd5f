package audio

// Output format
const (
	// SampleRate is the rate at which the speaker pin is sampled, and the
	// master clock of the emulated board.
	SampleRate = 44100
	// Channels is the number of interleaved channels GetSamples returns.
	Channels = 2
	// BitDepth of the PCM samples.
	BitDepth = 16
)

const (
	// amplitude is the peak value of a fully driven pin after filtering.
	amplitude = 12000
	// dcPole is the feedback coefficient of the DC blocker, modelling the
	// coupling capacitor in front of the speaker.
	dcPole = 0.995

	maxBufferSize    = SampleRate * Channels / 2
	bufferRetainSize = SampleRate * Channels / 10
)
