package roi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// AutosaveFilename is the well-known file Autosave writes inside
	// the session directory.
	AutosaveFilename = "autosave_annotations.json"

	// SessionExt is the file extension enforced on exported sessions.
	SessionExt = ".anno"
)

// ErrSessionExtension reports an Export or Import path without the
// .anno extension.
var ErrSessionExtension = errors.New("roi: session file requires the .anno extension")

// Session is the ordered collection of annotations edited together,
// typically one per acquisition. Sessions persist as a JSON array of
// annotations; tool and stroke state never survive a round-trip.
type Session struct {
	annotations []*Annotation
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Len returns the number of annotations.
func (s *Session) Len() int {
	return len(s.annotations)
}

// Add appends an annotation to the session.
func (s *Session) Add(a *Annotation) {
	s.annotations = append(s.annotations, a)
}

// AddNew creates an annotation with the next palette colour, appends
// it and returns it.
func (s *Session) AddNew(description string) *Annotation {
	colour := DefaultPalette[len(s.annotations)%len(DefaultPalette)]
	a := NewAnnotation(description, colour)
	s.Add(a)
	return a
}

// Get returns the annotation at index i, or nil when out of range.
func (s *Session) Get(i int) *Annotation {
	if i < 0 || i >= len(s.annotations) {
		return nil
	}
	return s.annotations[i]
}

// Remove deletes and returns the annotation at index i, keeping the
// order of the rest. Out-of-range indices return nil.
func (s *Session) Remove(i int) *Annotation {
	if i < 0 || i >= len(s.annotations) {
		return nil
	}
	a := s.annotations[i]
	s.annotations = append(s.annotations[:i], s.annotations[i+1:]...)
	return a
}

// Annotations returns the annotations in order. The returned slice is
// a copy; the annotations themselves are shared.
func (s *Session) Annotations() []*Annotation {
	out := make([]*Annotation, len(s.annotations))
	copy(out, s.annotations)
	return out
}

// Labels derives the classifier class list: one label per annotation
// in session order, with values assigned from 1 upward. Zero stays
// reserved for unclassified pixels.
func (s *Session) Labels() []Label {
	labels := make([]Label, len(s.annotations))
	for i, a := range s.annotations {
		labels[i] = Label{Description: a.Description, Value: i + 1, Colour: a.Colour}
	}
	return labels
}

// TrainingEntries pairs each annotation with its class value, ready
// for BuildTrainingSet. Values match Labels.
func (s *Session) TrainingEntries() []TrainingEntry {
	entries := make([]TrainingEntry, len(s.annotations))
	for i, a := range s.annotations {
		entries[i] = TrainingEntry{Annotation: a, Label: i + 1}
	}
	return entries
}

// Save writes the session as an indented JSON annotation array.
func (s *Session) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.annotations); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession reads a JSON annotation array. Loaded annotations start
// idle with no active tool, whatever state they were saved in.
func LoadSession(r io.Reader) (*Session, error) {
	var annotations []*Annotation
	if err := json.NewDecoder(r).Decode(&annotations); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &Session{annotations: annotations}, nil
}

// SaveFile writes the session to path.
func (s *Session) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	Logger().Info("session saved", "file", path, "annotations", s.Len())
	return nil
}

// LoadSessionFile reads a session from path.
func LoadSessionFile(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	defer f.Close()
	s, err := LoadSession(f)
	if err != nil {
		return nil, err
	}
	Logger().Info("session loaded", "file", path, "annotations", s.Len())
	return s, nil
}

// Autosave writes the session to the well-known autosave file in dir.
func (s *Session) Autosave(dir string) error {
	return s.SaveFile(filepath.Join(dir, AutosaveFilename))
}

// Export saves the session to path, which must carry the .anno
// extension.
func (s *Session) Export(path string) error {
	if filepath.Ext(path) != SessionExt {
		return fmt.Errorf("%w: %s", ErrSessionExtension, path)
	}
	return s.SaveFile(path)
}

// ImportSession loads a session from an exported .anno file.
func ImportSession(path string) (*Session, error) {
	if filepath.Ext(path) != SessionExt {
		return nil, fmt.Errorf("%w: %s", ErrSessionExtension, path)
	}
	return LoadSessionFile(path)
}
