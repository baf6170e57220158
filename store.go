// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package bmfont

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"log"
	"sort"
	"sync"

	"github.com/gazed/bmfont/atlas"
	"github.com/gazed/bmfont/load"
	"github.com/gazed/bmfont/minify"
	"github.com/gazed/bmfont/spec"
)

// loadState is the per-identity state machine spec.md section 4.8
// describes for DrawTextFromAtlas: an identity starts unloaded, gains
// usable placeholder-mode draws once metrics install, and becomes
// fully ready once its atlas is reconstructed on top of those metrics.
type loadState int

const (
	stateUnloaded loadState = iota
	stateMetricsOnly
	stateReady
)

// Store is the process-wide metrics/atlas cache spec.md section 4.9
// and section 5 describe: two keyed stores (metrics, atlas) with
// immutable-after-install entries, a pending-atlas table for atlases
// that arrive before their metrics, and a per-identity in-flight table
// deduplicating concurrent LoadFonts calls for the same font. Mirrors
// the teacher's depot/cache shape (asset.go, loader.go) generalized
// from the teacher's many asset kinds (mesh/shader/texture/sound) down
// to this package's two (metrics, atlas).
type Store struct {
	mu       sync.RWMutex
	metrics  map[FontIdentity]*FontMetrics
	atlases  map[FontIdentity]*AtlasData
	charsets map[FontIdentity][]rune
	pending  map[FontIdentity][]byte // raw atlas bytes awaiting metrics.
	states   map[FontIdentity]loadState
	specs    map[string]*spec.Spec // keyed by family; one spec document may cover several identities.

	locator  load.Locator
	inflight sync.Map // FontIdentity -> chan struct{}, in-flight load de-dup.
}

// NewStore constructs an empty Store. Expected to be called once; the
// result is a process-wide singleton per spec.md section 5.
func NewStore() *Store {
	return &Store{
		metrics:  map[FontIdentity]*FontMetrics{},
		atlases:  map[FontIdentity]*AtlasData{},
		charsets: map[FontIdentity][]rune{},
		pending:  map[FontIdentity][]byte{},
		states:   map[FontIdentity]loadState{},
		specs:    map[string]*spec.Spec{},
		locator:  load.NewLocator(),
	}
}

// SetLocator overrides the default disk/zip resource Locator, e.g. to
// inject a test double or a host-specific URL loader.
func (s *Store) SetLocator(l load.Locator) { s.locator = l }

// SetSpec installs the parsed kerning/correction spec document used by
// every identity of the given font family's MeasureText/
// DrawTextFromAtlas calls.
func (s *Store) SetSpec(family string, sp *spec.Spec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.specs[family] = sp
}

func (s *Store) specFor(family string) *spec.Spec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.specs[family]
}

// Metrics returns the installed FontMetrics for identity, or nil if
// none are installed.
func (s *Store) Metrics(identity FontIdentity) *FontMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics[identity]
}

// Atlas returns the installed AtlasData for identity, or nil if none
// is installed (identity is unloaded or in placeholder mode).
func (s *Store) Atlas(identity FontIdentity) *AtlasData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.atlases[identity]
}

// State reports the identity's position in the load state machine.
func (s *Store) State(identity FontIdentity) (unloaded, metricsOnly, ready bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.states[identity] {
	case stateMetricsOnly:
		return false, true, false
	case stateReady:
		return false, false, true
	default:
		return true, false, false
	}
}

// RegisterMetrics decodes a minified metrics blob and installs it for
// identity, per spec.md section 4.9. charset may be in any order (it
// is sorted to ascending code-point order here) and is the same
// character set the blob and any atlas for this identity were built
// against; the sorted copy is remembered so a
// later-arriving atlas (or one already pending) can be reconstructed
// against it. Installing metrics then drains any atlas bytes that
// arrived before this call.
func (s *Store) RegisterMetrics(identity FontIdentity, blobJSON []byte, charset []rune) error {
	sorted := append([]rune(nil), charset...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	blob, err := minify.ParseBlob(blobJSON)
	if err != nil {
		return fmt.Errorf("bmfont: %s: %w", identity, err)
	}
	fm, err := minify.Expand(blob, sorted)
	if err != nil {
		return fmt.Errorf("bmfont: %s: %w", identity, err)
	}

	s.mu.Lock()
	s.metrics[identity] = fm
	s.charsets[identity] = sorted
	if s.states[identity] < stateMetricsOnly {
		s.states[identity] = stateMetricsOnly
	}
	pendingAtlas, hasPending := s.pending[identity]
	delete(s.pending, identity)
	s.mu.Unlock()

	if hasPending {
		if err := s.installAtlasBytes(identity, pendingAtlas); err != nil {
			log.Printf("bmfont: %s: pending atlas reconstruction failed: %s", identity, err)
		}
	}
	return nil
}

// RegisterAtlas decodes raw atlas image bytes (PNG, or any format
// registered with load.RegisterImageFormat) and installs the
// reconstructed tight atlas for identity, per spec.md section 4.9. If
// metrics for identity are not yet installed, the bytes are enqueued
// and reconstruction is deferred until RegisterMetrics arrives.
func (s *Store) RegisterAtlas(identity FontIdentity, rawImageBytes []byte) error {
	s.mu.RLock()
	_, haveMetrics := s.metrics[identity]
	s.mu.RUnlock()

	if !haveMetrics {
		s.mu.Lock()
		s.pending[identity] = rawImageBytes
		s.mu.Unlock()
		return nil
	}
	return s.installAtlasBytes(identity, rawImageBytes)
}

// installAtlasBytes runs the tight-atlas reconstruction (package
// atlas, C3/C4) against already-installed metrics and stores the
// result. Called either immediately from RegisterAtlas or later, once
// metrics arrive, to drain the pending table.
func (s *Store) installAtlasBytes(identity FontIdentity, rawImageBytes []byte) error {
	s.mu.RLock()
	fm := s.metrics[identity]
	charset := s.charsets[identity]
	s.mu.RUnlock()
	if fm == nil {
		return fmt.Errorf("bmfont: %s: no metrics installed for atlas reconstruction", identity)
	}

	source, err := load.DecodeImage(rawImageBytes)
	if err != nil {
		return fmt.Errorf("bmfont: %s: %w", identity, err)
	}
	tight, positioning, err := atlas.Repack(source, charset, fm, atlas.NRGBAFactory{})
	if err != nil {
		return fmt.Errorf("bmfont: %s: %w", identity, err)
	}

	s.mu.Lock()
	s.atlases[identity] = &AtlasData{Image: tight, Positioning: positioning}
	s.states[identity] = stateReady
	s.mu.Unlock()
	return nil
}

// DeleteAtlas discards the installed atlas for identity, per spec.md
// section 3's explicit, bulk deletion lifecycle. The identity reverts
// to metrics-only (placeholder draw mode) if metrics remain installed.
func (s *Store) DeleteAtlas(identity FontIdentity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.atlases, identity)
	if _, ok := s.metrics[identity]; ok {
		s.states[identity] = stateMetricsOnly
	} else {
		s.states[identity] = stateUnloaded
	}
}

// ResetFontMetrics discards the installed metrics, atlas, and charset
// for identity, returning it to stateUnloaded.
func (s *Store) ResetFontMetrics(identity FontIdentity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.metrics, identity)
	delete(s.atlases, identity)
	delete(s.charsets, identity)
	delete(s.pending, identity)
	s.states[identity] = stateUnloaded
}

// DeleteAll clears every installed identity. Intended for test
// teardown or a full application reset.
func (s *Store) DeleteAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = map[FontIdentity]*FontMetrics{}
	s.atlases = map[FontIdentity]*AtlasData{}
	s.charsets = map[FontIdentity][]rune{}
	s.pending = map[FontIdentity][]byte{}
	s.states = map[FontIdentity]loadState{}
}

// LoadFonts locates and installs the metrics, atlas, and correction
// spec resources named by each manifest entry, per spec.md section
// 4.9. A missing metrics resource is a hard error for that entry's
// identity but does not abort the others; a missing atlas resource is
// a soft error (log only), leaving that identity in placeholder mode.
// Concurrent loads of the same identity (here: concurrent LoadFonts
// calls racing on an overlapping manifest) are deduplicated through an
// in-flight table, the goroutine-based shape of the teacher's own
// loader.go, collapsed to a single request phase since there is no
// GPU-bind phase to stage separately.
func (s *Store) LoadFonts(manifest *load.Manifest) []error {
	var wg sync.WaitGroup
	errs := make([]error, len(manifest.Fonts))
	for i, entry := range manifest.Fonts {
		wg.Add(1)
		go func(i int, entry load.ManifestEntry) {
			defer wg.Done()
			errs[i] = s.loadEntry(entry)
		}(i, entry)
	}
	wg.Wait()

	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

func (s *Store) loadEntry(entry load.ManifestEntry) error {
	identity := NewFontIdentity(entry.PixelDensity, entry.Family, entry.Style, entry.Weight, entry.FontSize)

	done := make(chan struct{})
	actual, inflight := s.inflight.LoadOrStore(identity, done)
	if inflight {
		<-actual.(chan struct{})
		return nil
	}
	defer func() {
		s.inflight.Delete(identity)
		close(done)
	}()

	charset := []rune(entry.Charset)
	metricsBytes, err := s.readResource(entry.MetricsResource)
	if err != nil {
		return fmt.Errorf("bmfont: %s: missing metrics resource %q: %w", identity, entry.MetricsResource, err)
	}
	if err := s.RegisterMetrics(identity, metricsBytes, charset); err != nil {
		return err
	}

	if entry.SpecResource != "" {
		specBytes, err := s.readResource(entry.SpecResource)
		if err != nil {
			log.Printf("bmfont: %s: missing spec resource %q, using uncorrected metrics: %s", identity, entry.SpecResource, err)
		} else {
			parsed, err := spec.Parse(bytes.NewReader(specBytes))
			if err != nil {
				log.Printf("bmfont: %s: malformed spec resource %q: %s", identity, entry.SpecResource, err)
			} else {
				s.SetSpec(entry.Family, parsed)
			}
		}
	}

	if entry.AtlasResource == "" {
		return nil
	}
	atlasBytes, err := s.readResource(entry.AtlasResource)
	if err != nil {
		log.Printf("bmfont: %s: missing atlas resource %q, using placeholder mode: %s", identity, entry.AtlasResource, err)
		return nil
	}
	if err := s.RegisterAtlas(identity, atlasBytes); err != nil {
		log.Printf("bmfont: %s: atlas reconstruction failed, using placeholder mode: %s", identity, err)
	}
	return nil
}

func (s *Store) readResource(name string) ([]byte, error) {
	file, err := s.locator.GetResource(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// MeasureText resolves identity's installed metrics and correction
// spec and measures text, per spec.md section 4.7.
func (s *Store) MeasureText(identity FontIdentity, text string, tp TextProperties) (TextMetrics, Status) {
	fm := s.Metrics(identity)
	if fm == nil {
		return TextMetrics{}, StatusNoMetrics
	}
	return MeasureText(fm, identity, text, tp, s.specFor(identity.FontFamily())), StatusSuccess
}

// DrawText resolves identity's installed metrics and atlas (falling
// back to tp's FallbackIdentity for missing glyphs, per spec.md
// section 7.3) and draws text, per spec.md section 4.8.
func (s *Store) DrawText(dst draw.Image, text string, x, y float64, identity FontIdentity, tp TextProperties) Status {
	fm := s.Metrics(identity)
	if fm == nil {
		return StatusNoMetrics
	}
	ad := s.Atlas(identity)
	sp := s.specFor(identity.FontFamily())

	chars := []rune(text)
	if tp.fallback != nil {
		fbFm, fbAd := s.Metrics(*tp.fallback), s.Atlas(*tp.fallback)
		if fbFm != nil {
			fm = mergeFallback(fm, fbFm, chars)
			if ad == nil {
				ad = fbAd
			} else if fbAd != nil {
				ad = mergeFallbackAtlas(ad, fbAd, chars)
			}
		}
	}
	return DrawTextFromAtlas(dst, text, x, y, identity, tp, fm, ad, sp)
}

// mergeFallback overlays fallback's metrics for exactly the characters
// of text missing from primary, leaving primary's own characters (and
// kerning table) untouched.
func mergeFallback(primary, fallback *FontMetrics, text []rune) *FontMetrics {
	merged := *primary
	needsCopy := false
	for _, r := range text {
		if _, ok := primary.Characters[r]; ok {
			continue
		}
		if cm, ok := fallback.Characters[r]; ok {
			if !needsCopy {
				chars := make(map[rune]CharacterMetrics, len(primary.Characters)+1)
				for k, v := range primary.Characters {
					chars[k] = v
				}
				merged.Characters = chars
				needsCopy = true
			}
			merged.Characters[r] = cm
		}
	}
	return &merged
}

// mergeFallbackAtlas composites fallback's atlas image alongside
// primary's into a new image, offsetting fallback's positions by
// primary's width, so every Position's XInAtlas/YInAtlas still indexes
// correctly into the single image the merged AtlasData carries. A
// Position copied straight from fallback without this offset would
// index into the wrong image once primary and fallback are no longer
// the same bitmap.
func mergeFallbackAtlas(primary, fallback *AtlasData, text []rune) *AtlasData {
	primaryBounds := primary.Image.Bounds()
	fallbackBounds := fallback.Image.Bounds()
	pw, ph := primaryBounds.Dx(), primaryBounds.Dy()
	fw, fh := fallbackBounds.Dx(), fallbackBounds.Dy()
	height := ph
	if fh > height {
		height = fh
	}

	combined := image.NewNRGBA(image.Rect(0, 0, pw+fw, height))
	draw.Draw(combined, image.Rect(0, 0, pw, ph), primary.Image, primaryBounds.Min, draw.Src)
	draw.Draw(combined, image.Rect(pw, 0, pw+fw, fh), fallback.Image, fallbackBounds.Min, draw.Src)

	merged := atlas.Positioning{}
	for r, pos := range primary.Positioning {
		merged[r] = pos
	}
	for _, r := range text {
		if _, ok := merged[r]; ok {
			continue
		}
		if pos, ok := fallback.Positioning[r]; ok {
			pos.XInAtlas += pw
			merged[r] = pos
		}
	}
	return &AtlasData{Image: combined, Positioning: merged}
}
