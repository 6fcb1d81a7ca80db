package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"kokesynth/audio"
	"kokesynth/pattern"
)

func main() {
	var (
		bpm    = flag.Float64("bpm", 120, "initial tempo in beats per minute")
		rate   = flag.Int("rate", audio.DefaultSampleRate, "output sample rate in Hz")
		block  = flag.Int("block", audio.DefaultBlockSize, "output block size in frames")
		voices = flag.Int("voices", audio.DefaultMaxVoices, "polyphony limit")
		run    = flag.String("run", "", "file with commands to run at startup")
	)
	flag.Parse()

	if *bpm < pattern.MinTempo || *bpm > pattern.MaxTempo {
		log.Fatalf("bpm out of range %d-%d: %v", pattern.MinTempo, pattern.MaxTempo, *bpm)
	}

	engine, err := audio.NewEngine(audio.Config{
		SampleRate: *rate,
		BlockSize:  *block,
		MaxVoices:  *voices,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	if err := engine.Start(); err != nil {
		log.Fatal(err)
	}

	s := &session{
		engine: engine,
		pat:    pattern.New(pattern.DefaultRows, pattern.DefaultSteps),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.pat.Tempo = *bpm
	s.transport = newTransport(engine, s.snapshot)
	defer s.transport.stop()

	if *run != "" {
		if err := runScript(s, *run); err != nil {
			log.Fatal(err)
		}
	}

	if err := repl(s); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runScript(s *session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := exec(s, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// session holds the mutable pattern state shared between the REPL and
// the transport goroutine, guarded by one mutex. The engine manages its
// own synchronization.
type session struct {
	engine    *audio.Engine
	transport *transport
	rng       *rand.Rand

	mu  sync.Mutex
	pat pattern.Pattern
}

func (s *session) update(f func(*pattern.Pattern)) {
	s.mu.Lock()
	f(&s.pat)
	s.mu.Unlock()
}

// snapshot returns a copy of the pattern that can be read without
// holding the session lock.
func (s *session) snapshot() pattern.Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pat.Clone()
}
