package main

import (
	"errors"
	"fmt"
	"hamlet-go/core"
	"hamlet-go/game"
	"hamlet-go/persistence"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Options control how a session starts and ends.
type Options struct {
	Load bool
	Save bool
}

// Session drives one settlement for a number of turns and hands the event
// log to the audit sinks when it closes.
type Session struct {
	ConfigManager *core.ConfigManager
	Settlement    *game.Settlement
	Events        *core.EventLog
	audit         *core.AuditWriter
	archive       *core.Archive
	logger        *log.Logger
	out           io.Writer
	save          bool
	paused        bool
	lock          sync.Mutex
}

// NewSession loads the config at configPath and prepares a settlement. With
// opts.Load the configured save file is read; a missing save starts a new
// settlement instead.
func NewSession(configPath string, opts Options, logger *log.Logger, out io.Writer) (*Session, error) {
	cm, err := core.NewConfigManager(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	config := cm.GetConfig()
	events := core.NewEventLog()

	var settlement *game.Settlement
	if opts.Load {
		settlement, err = persistence.Read(config.Session.SavePath, events)
		if errors.Is(err, persistence.ErrNotFound) {
			logger.Printf("No save at %s, starting a new village", config.Session.SavePath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to load settlement: %w", err)
		}
	}
	if settlement == nil {
		settlement = game.NewSettlement(events)
	}

	session := &Session{
		ConfigManager: cm,
		Settlement:    settlement,
		Events:        events,
		logger:        logger,
		out:           out,
		save:          opts.Save,
	}
	if config.Audit.Dir != "" {
		session.audit = core.NewAuditWriter(config.Audit.Dir)
	}
	if config.Audit.Archive != "" {
		fm := core.NewFileManager("")
		if err := fm.CreateDirectory(filepath.Dir(config.Audit.Archive)); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
		archive, err := core.OpenArchive(config.Audit.Archive)
		if err != nil {
			return nil, err
		}
		session.archive = archive
	}
	return session, nil
}

// Run advances up to turns turns and returns how many were played. It stops
// early while paused or once nobody is left.
func (s *Session) Run(turns int) int {
	config := s.ConfigManager.GetConfig()
	played := 0
	for i := 0; i < turns; i++ {
		if s.IsPaused() {
			s.logger.Println("Session is paused")
			break
		}
		if s.Settlement.Population() == 0 {
			s.logger.Println("Everyone is gone, the village is empty")
			break
		}
		if config.Session.AutoHire {
			s.autoHire()
		}

		report := s.Settlement.AdvanceTurn()
		played++
		if report.Starved != nil {
			s.logger.Println("A CITIZEN STARVED TO DEATH DURING THE NIGHT!")
		}
		s.logger.Printf("Turn %d: food=%d wood=%d stone=%d population=%d unemployed=%d",
			report.Turn, s.Settlement.Food(), s.Settlement.Wood(), s.Settlement.Stone(),
			s.Settlement.Population(), len(s.Settlement.Unemployed()))
	}
	return played
}

// autoHire fills open roster slots, site by site, from the front of the
// unemployed queue.
func (s *Session) autoHire() {
	for _, site := range s.Settlement.Sites() {
		for !site.Full() {
			idle := s.Settlement.Unemployed()
			if len(idle) == 0 {
				return
			}
			if !s.Settlement.Hire(site, idle[0]) {
				break
			}
		}
	}
}

// Build adds a site priced from the config catalog.
func (s *Session) Build(category game.Category, name string) (bool, error) {
	cost, ok := s.ConfigManager.Cost(category.String())
	if !ok {
		return false, fmt.Errorf("no catalog entry for %s", category)
	}
	return s.Settlement.Build(category, name, cost.Wood, cost.Stone), nil
}

// BuildOrder is a site to build at the start of a session.
type BuildOrder struct {
	Category game.Category
	Name     string
}

// ParseBuildOrder reads "category:name", e.g. "lumber_mill:Mill 2".
// Underscores in the category stand for spaces.
func ParseBuildOrder(s string) (BuildOrder, error) {
	kind, name, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return BuildOrder{}, fmt.Errorf("build order %q: want category:name", s)
	}
	category := game.ParseCategory(strings.ReplaceAll(kind, "_", " "))
	if category == game.Other {
		return BuildOrder{}, fmt.Errorf("build order %q: unknown category %q", s, kind)
	}
	return BuildOrder{Category: category, Name: name}, nil
}

// Close saves the settlement if requested, drains the event log to the audit
// sinks and prints it.
func (s *Session) Close() error {
	var errs []error
	config := s.ConfigManager.GetConfig()

	if s.save {
		if err := persistence.Write(config.Session.SavePath, s.Settlement); err != nil {
			errs = append(errs, err)
		} else {
			s.logger.Printf("Saved village to %s", config.Session.SavePath)
		}
	}

	events := s.Events.Drain()
	for _, e := range events {
		fmt.Fprintf(s.out, "%s [turn %d] %s\n", e.Time.Format(time.DateTime), e.Turn, e.Description)
	}

	if s.audit != nil {
		if err := s.audit.WriteEvents(events); err != nil {
			errs = append(errs, fmt.Errorf("failed to write audit log: %w", err))
		}
		if err := s.audit.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.archive != nil {
		if err := s.archive.SaveEvents(events); err != nil {
			errs = append(errs, fmt.Errorf("failed to archive events: %w", err))
		}
		if err := s.archive.SaveMeta("last_turn", strconv.Itoa(s.Settlement.Turn())); err != nil {
			errs = append(errs, err)
		}
		if err := s.archive.SaveMeta("population", strconv.Itoa(s.Settlement.Population())); err != nil {
			errs = append(errs, err)
		}
		if err := s.archive.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Pause stops Run before its next turn.
func (s *Session) Pause() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.paused = true
}

// Resume lets Run continue.
func (s *Session) Resume() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.paused = false
}

// IsPaused returns true if the session is paused.
func (s *Session) IsPaused() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.paused
}
