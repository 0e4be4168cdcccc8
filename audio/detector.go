package audio

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

// pipeCandidate is a CLI player that accepts raw s16le stereo on stdin
type pipeCandidate struct {
	bin  string
	typ  BackendType
	name string
	args func(rate string) []string
}

// Detection order: sound servers first, then raw ALSA, then general-purpose players
var pipeCandidates = []pipeCandidate{
	{"pacat", BackendPulse, "pacat", func(r string) []string {
		return []string{"--raw", "--format=s16le", "--rate=" + r, "--channels=2", "--latency-msec=50", "--playback"}
	}},
	{"pw-cat", BackendPipeWire, "pw-cat", func(r string) []string {
		return []string{"--playback", "--format=s16", "--rate=" + r, "--channels=2", "--latency=50ms", "-"}
	}},
	{"aplay", BackendALSA, "aplay", func(r string) []string {
		return []string{"-t", "raw", "-f", "S16_LE", "-r", r, "-c", "2", "-q"}
	}},
	{"play", BackendSoX, "sox", func(r string) []string {
		return []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", r, "-", "-d", "-q"}
	}},
	{"ffplay", BackendFFplay, "ffplay", func(r string) []string {
		return []string{"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", r,
			"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet"}
	}},
}

// DetectBackend finds a pipe player for when the native speaker cannot open a device
func DetectBackend(sampleRate int) (*BackendConfig, error) {
	return detectBackend(sampleRate, exec.LookPath)
}

func detectBackend(sampleRate int, lookPath func(string) (string, error)) (*BackendConfig, error) {
	rate := strconv.Itoa(sampleRate)
	for _, c := range pipeCandidates {
		path, err := lookPath(c.bin)
		if err != nil {
			continue
		}
		return &BackendConfig{Type: c.typ, Name: c.name, Path: path, Args: c.args(rate)}, nil
	}

	// OSS takes a direct device write
	if runtime.GOOS == "freebsd" {
		if _, err := os.Stat("/dev/dsp"); err == nil {
			return &BackendConfig{Type: BackendOSS, Name: "oss", Path: "/dev/dsp"}, nil
		}
	}
	return nil, ErrNoAudioBackend
}
