package settings

import (
	"errors"
	"fmt"
	"maps"

	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/validation"
)

// ErrUseCaseMismatch is returned when a staged config is applied to a use
// case other than the one it was staged for.
var ErrUseCaseMismatch = errors.New("staged config belongs to another use case")

// Staged is an edit that has not been applied yet.
type Staged struct {
	UseCase payload.UseCase `json:"use_case"`
	Config  Config          `json:"config"`
}

// Store keeps the render settings of a single session. It is not safe for
// concurrent use; each session owns its own Store.
type Store struct {
	committed map[payload.UseCase]Config
	pending   map[payload.UseCase]Config
	dirty     bool
}

// NewStore returns a store where every use case has the default config.
func NewStore() *Store {
	return &Store{
		committed: make(map[payload.UseCase]Config),
		pending:   make(map[payload.UseCase]Config),
	}
}

// Get returns the committed config for uc, or Default when none was applied.
func (s *Store) Get(uc payload.UseCase) Config {
	if cfg, ok := s.committed[uc]; ok {
		return cfg
	}
	return Default()
}

// Stage merges edits onto the pending edit for uc (or the committed config
// when nothing is pending) and keeps the result without committing it.
func (s *Store) Stage(uc payload.UseCase, edits Edits) (Staged, error) {
	if !uc.Valid() {
		return Staged{}, validation.New("use_case", "must be one of link, wifi, vcard, text, email")
	}

	base, ok := s.pending[uc]
	if !ok {
		base = s.Get(uc)
	}
	cfg := edits.applyTo(base)
	if err := cfg.Validate(); err != nil {
		return Staged{}, err
	}

	s.pending[uc] = cfg
	s.dirty = true
	return Staged{UseCase: uc, Config: cfg}, nil
}

// Pending returns the staged edit for uc, if any.
func (s *Store) Pending(uc payload.UseCase) (Staged, bool) {
	cfg, ok := s.pending[uc]
	if !ok {
		return Staged{}, false
	}
	return Staged{UseCase: uc, Config: cfg}, true
}

// Apply commits staged as the config for uc, replacing the previous one, and
// clears the pending edit. The caller is responsible for re-rendering.
func (s *Store) Apply(uc payload.UseCase, staged Staged) (Config, error) {
	if staged.UseCase != uc {
		return Config{}, fmt.Errorf("%w: staged for %q, applying to %q", ErrUseCaseMismatch, staged.UseCase, uc)
	}
	cfg := staged.Config
	if l, err := ParseLevel(string(cfg.ErrorCorrection)); err == nil {
		cfg.ErrorCorrection = l
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	s.committed[uc] = cfg
	delete(s.pending, uc)
	s.dirty = true
	return cfg, nil
}

// Discard drops the pending edit for uc.
func (s *Store) Discard(uc payload.UseCase) {
	if _, ok := s.pending[uc]; ok {
		delete(s.pending, uc)
		s.dirty = true
	}
}

// Reset restores the default config for uc and drops its pending edit.
func (s *Store) Reset(uc payload.UseCase) {
	_, committed := s.committed[uc]
	_, pending := s.pending[uc]
	if committed || pending {
		delete(s.committed, uc)
		delete(s.pending, uc)
		s.dirty = true
	}
}

// Dirty reports whether the store changed since it was created, restored or
// last marked clean.
func (s *Store) Dirty() bool { return s.dirty }

// MarkClean clears the dirty flag after the store was persisted.
func (s *Store) MarkClean() { s.dirty = false }

// Snapshot is the serializable state of a Store.
type Snapshot struct {
	Committed map[payload.UseCase]Config `json:"committed,omitempty"`
	Pending   map[payload.UseCase]Config `json:"pending,omitempty"`
}

// Snapshot copies the store state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Committed: maps.Clone(s.committed),
		Pending:   maps.Clone(s.pending),
	}
}

// Restore builds a clean store from snap. Entries for unknown use cases or
// with invalid configs are dropped.
func Restore(snap Snapshot) *Store {
	s := NewStore()
	for uc, cfg := range snap.Committed {
		if uc.Valid() && cfg.Validate() == nil {
			s.committed[uc] = cfg
		}
	}
	for uc, cfg := range snap.Pending {
		if uc.Valid() && cfg.Validate() == nil {
			s.pending[uc] = cfg
		}
	}
	return s
}
