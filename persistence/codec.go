// Package persistence saves and restores a settlement as a JSON document.
//
// Saving writes each building's worker roster, but loading does not restore
// it: buildings come back empty and citizens keep only their employment flag.
// Building capacity is not restored either.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"hamlet-go/core"
	"hamlet-go/game"
	"os"
)

var (
	// ErrNotFound is returned when the save file does not exist.
	ErrNotFound = errors.New("save file not found")
	// ErrParse is returned for malformed or incomplete save documents.
	ErrParse = errors.New("invalid save document")
)

// Citizen is a worker as stored in the save document.
type Citizen struct {
	Name      string `json:"name"`
	IsWorking bool   `json:"isWorking"`
}

// Building is a production site as stored in the save document.
type Building struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	MaxWorkers int       `json:"maxWorkers"`
	Workers    []Citizen `json:"workers"`
}

// Document is the save file layout.
type Document struct {
	TotalFood  int        `json:"totalFood"`
	TotalWood  int        `json:"totalWood"`
	TotalStone int        `json:"totalStone"`
	Citizens   []Citizen  `json:"citizens"`
	Buildings  []Building `json:"buildings"`
}

func citizenOf(w *game.Worker) Citizen {
	return Citizen{Name: w.Name, IsWorking: w.Employed}
}

// Encode captures the settlement's current state.
func Encode(s *game.Settlement) Document {
	res := s.Resources()
	doc := Document{
		TotalFood:  res.Food,
		TotalWood:  res.Wood,
		TotalStone: res.Stone,
		Citizens:   make([]Citizen, 0, s.Population()),
		Buildings:  make([]Building, 0, len(s.Sites())),
	}
	for _, w := range s.Workers() {
		doc.Citizens = append(doc.Citizens, citizenOf(w))
	}
	for _, site := range s.Sites() {
		b := Building{
			Type:       site.Label(),
			Name:       site.Name(),
			MaxWorkers: site.Capacity(),
			Workers:    make([]Citizen, 0, site.Roster()),
		}
		for _, w := range site.Workers() {
			b.Workers = append(b.Workers, citizenOf(w))
		}
		doc.Buildings = append(doc.Buildings, b)
	}
	return doc
}

// Decode builds a settlement from doc. It starts from a new default
// settlement, clears it and replays the document through the settlement's own
// operations, so negative totals end up as zero.
func Decode(doc Document, rec game.Recorder) *game.Settlement {
	s := game.NewSettlement(rec)
	s.Reset()

	s.ChangeFood(-s.Food())
	s.ChangeFood(doc.TotalFood)
	s.ChangeStone(-s.Stone())
	s.ChangeStone(doc.TotalStone)
	s.ChangeWood(-s.Wood())
	s.ChangeWood(doc.TotalWood)

	for _, b := range doc.Buildings {
		s.AddSite(game.NewLabeledSite(b.Type, b.Name))
	}
	for _, c := range doc.Citizens {
		s.AddWorker(game.NewWorker(c.Name, c.IsWorking))
	}
	return s
}

// Parse validates raw JSON and decodes it. No settlement is returned on
// error.
func Parse(data []byte, rec game.Recorder) (*game.Settlement, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return Decode(doc, rec), nil
}

// Write saves the settlement to path, creating parent directories.
func Write(path string, s *game.Settlement) error {
	fm := core.NewFileManager("")
	if err := fm.SaveJSONFile(Encode(s), path); err != nil {
		return fmt.Errorf("failed to save settlement: %w", err)
	}
	s.Record(core.KindPersistence, "Village state was saved")
	return nil
}

// Read loads a settlement from path.
func Read(path string, rec game.Recorder) (*game.Settlement, error) {
	fm := core.NewFileManager("")
	data, err := fm.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settlement: %w", err)
	}
	s, err := Parse(data, rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Record(core.KindPersistence, "Village state was loaded")
	return s, nil
}
