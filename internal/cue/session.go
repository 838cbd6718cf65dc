package cue

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/olincollege/fairytale-sound-effects/internal/log"
)

// ClipSelector picks one playable clip for a resolved location.
// Implementations list the location's directory on every call and fail
// with StorageNotFoundError or EmptyLibraryError.
type ClipSelector interface {
	PickRandom(loc Location) (string, error)
}

// Player plays one clip and blocks the caller for the playback window.
// A non-nil error means playback never started.
type Player interface {
	Play(ctx context.Context, loc Location, clip string) error
}

// Counts is the running tally of one session's outcomes.
type Counts struct {
	Cues   int // utterances that matched and played
	Misses int // utterances with no matching phrase
	Faults int // matched utterances that failed selection or playback
}

// Session composes a vocabulary, a clip selector, and a player into the
// single entry point the read-aloud driver uses. Calls are expected to
// arrive sequentially (playback blocks the caller), but the session's
// introspection methods are safe to call from other goroutines while an
// utterance is in flight.
type Session struct {
	vocab    *Vocabulary
	selector ClipSelector
	player   Player
	tracer   trace.Tracer

	mu       sync.Mutex
	phase    Phase
	lastLoc  Location
	hasLast  bool
	lastClip string
	counts   Counts
}

// NewSession builds a session around an injected vocabulary. The
// vocabulary is shared, not copied: mutations through AddPhrases are
// visible to any other holder of the same vocabulary.
func NewSession(vocab *Vocabulary, selector ClipSelector, player Player) *Session {
	return &Session{
		vocab:    vocab,
		selector: selector,
		player:   player,
		tracer:   otel.Tracer("fairytale/cue"),
		phase:    PhaseIdle,
	}
}

// Vocabulary returns the session's shared vocabulary.
func (s *Session) Vocabulary() *Vocabulary {
	return s.vocab
}

// Detect scans text against the vocabulary without playing anything.
func (s *Session) Detect(text string) (string, bool) {
	return s.vocab.Detect(text)
}

// AddPhrases extends the vocabulary at runtime.
func (s *Session) AddPhrases(entries []PhraseEntry) {
	s.vocab.AddPhrases(entries)
	log.Info(log.CatCue, "Vocabulary extended", "entries", len(entries), "categories", s.vocab.Len())
}

// Phase reports where the session is inside the current utterance.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// LastLocation returns the location resolved by the most recent
// detection, if any. It is overwritten on each detection and stays set
// even when the subsequent selection or playback failed, so it reads as
// "the last decision", not "the last success".
func (s *Session) LastLocation() (Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastLoc, s.hasLast
}

// LastClip returns the clip chosen by the most recent detection, or
// false when the last detection never got as far as a clip.
func (s *Session) LastClip() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastClip, s.lastClip != ""
}

// Counts returns the session's outcome tally so far.
func (s *Session) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts
}

// HandleUtterance runs the full cue pipeline for one piece of
// transcribed text: detect, resolve, select, play. It blocks for the
// playback window on success and returns whether a clip was played.
// A text with no matching phrase is a no-op false, not an error; clip
// selection and playback failures are logged and reported as false.
// The session never panics or terminates the process over a cue that
// could not be played.
func (s *Session) HandleUtterance(ctx context.Context, text string) bool {
	ctx, span := s.tracer.Start(ctx, "cue.handle_utterance",
		trace.WithAttributes(attribute.Int("utterance.length", len(text))))
	defer span.End()

	s.setPhase(PhaseDetecting)
	match, ok := s.detect(ctx, text)
	if !ok {
		span.SetAttributes(attribute.Bool("cue.matched", false))
		log.Debug(log.CatCue, "No cue matched", "length", len(text))
		s.finish(func(c *Counts) { c.Misses++ })
		return false
	}
	span.SetAttributes(
		attribute.Bool("cue.matched", true),
		attribute.String("cue.category", match.Category),
		attribute.String("cue.phrase", match.Phrase),
	)

	s.setPhase(PhaseResolving)
	loc := s.resolve(ctx, match.Category)

	s.setPhase(PhaseSelecting)
	clip, err := s.selectClip(ctx, loc)
	if err != nil {
		span.RecordError(err)
		s.logSelectionFailure(loc, err)
		s.finish(func(c *Counts) { c.Faults++ })
		return false
	}

	s.setPhase(PhasePlaying)
	if err := s.play(ctx, loc, clip); err != nil {
		span.RecordError(err)
		log.ErrorErr(log.CatCue, "Playback failed", err, "location", loc, "clip", clip)
		s.finish(func(c *Counts) { c.Faults++ })
		return false
	}

	log.Info(log.CatCue, "Cue played", "category", match.Category, "phrase", match.Phrase, "location", loc, "clip", clip)
	s.finish(func(c *Counts) { c.Cues++ })
	return true
}

func (s *Session) detect(ctx context.Context, text string) (Match, bool) {
	_, span := s.tracer.Start(ctx, "cue.detect")
	defer span.End()
	return s.vocab.DetectMatch(text)
}

func (s *Session) resolve(ctx context.Context, category string) Location {
	_, span := s.tracer.Start(ctx, "cue.resolve")
	defer span.End()

	loc := s.vocab.Resolve(category)
	span.SetAttributes(
		attribute.String("cue.class_folder", loc.ClassFolder),
		attribute.String("cue.category_folder", loc.CategoryFolder),
	)

	s.mu.Lock()
	s.lastLoc = loc
	s.hasLast = true
	s.lastClip = ""
	s.mu.Unlock()

	return loc
}

func (s *Session) selectClip(ctx context.Context, loc Location) (string, error) {
	_, span := s.tracer.Start(ctx, "cue.select")
	defer span.End()

	clip, err := s.selector.PickRandom(loc)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.String("cue.clip", clip))

	s.mu.Lock()
	s.lastClip = clip
	s.mu.Unlock()

	return clip, nil
}

func (s *Session) play(ctx context.Context, loc Location, clip string) error {
	ctx, span := s.tracer.Start(ctx, "cue.play")
	defer span.End()

	if err := s.player.Play(ctx, loc, clip); err != nil {
		var fault *PlaybackFaultError
		if errors.As(err, &fault) {
			return err
		}
		return &PlaybackFaultError{Location: loc, Clip: clip, Err: err}
	}
	return nil
}

func (s *Session) logSelectionFailure(loc Location, err error) {
	var notFound *StorageNotFoundError
	var empty *EmptyLibraryError
	switch {
	case errors.As(err, &notFound):
		log.ErrorErr(log.CatCue, "Clip library missing for cue", err, "location", loc)
	case errors.As(err, &empty):
		log.Warn(log.CatCue, "No clips available for cue", "location", loc)
	default:
		log.ErrorErr(log.CatCue, "Clip selection failed", err, "location", loc)
	}
}

// setPhase advances the per-utterance phase machine. Transitions are
// validated against the legal set; an illegal move is a bug in the
// pipeline and is logged rather than enforced, since halting a read-
// aloud session over bookkeeping would invert the error contract.
func (s *Session) setPhase(next Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.phase.CanTransitionTo(next) {
		log.Warn(log.CatCue, "Illegal phase transition", "from", s.phase, "to", next)
	}
	s.phase = next
}

func (s *Session) finish(update func(*Counts)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseIdle && !s.phase.CanTransitionTo(PhaseIdle) {
		log.Warn(log.CatCue, "Illegal phase transition", "from", s.phase, "to", PhaseIdle)
	}
	s.phase = PhaseIdle
	update(&s.counts)
}
