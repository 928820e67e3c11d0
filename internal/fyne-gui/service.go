package fynegui

import (
	"transcompare/internal/core/backup"
	"transcompare/internal/core/charset"
	"transcompare/internal/core/config"
	"transcompare/internal/core/utils"
	"transcompare/internal/core/workspace"
)

// Pane selects one side of a comparison tab.
type Pane int

const (
	SourcePane Pane = iota
	TargetPane
)

func (p Pane) String() string {
	if p == SourcePane {
		return "source"
	}
	return "target"
}

// EncodingFailure is returned by Service.Open when the detected encoding
// cannot decode the file and the user has to pick one.
type EncodingFailure struct {
	Path     string
	Detected string
	Cause    error
}

// Service owns the editing session behind the window. It holds no widgets,
// so every operation can be driven from tests.
type Service struct {
	config    *config.Config
	logger    *utils.Logger
	workspace *workspace.Workspace
	watcher   *workspace.Watcher
}

func NewService(cfg *config.Config, logger *utils.Logger) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = utils.NopLogger()
	}

	bw := backup.NewWriter(charset.Local, cfg.Backup.Dir)
	bw.Enabled = cfg.Backup.Enabled

	var watcher *workspace.Watcher
	if cfg.GUI.WatchFiles {
		w, err := workspace.NewWatcher(logger)
		if err != nil {
			// Editing works without change notifications.
			logger.WithError(err).Warn("File watching unavailable")
		} else {
			watcher = w
		}
	}

	ws := workspace.New(workspace.Options{
		FS:       charset.Local,
		Backup:   bw,
		FontSize: cfg.Editor.FontSize,
		Encoding: cfg.Editor.Encoding,
		Logger:   logger,
		Watcher:  watcher,
	})

	return &Service{
		config:    cfg,
		logger:    logger,
		workspace: ws,
		watcher:   watcher,
	}
}

func (s *Service) Workspace() *workspace.Workspace {
	return s.workspace
}

func (s *Service) Config() *config.Config {
	return s.config
}

// Open loads path into one pane of t with the detected encoding. When that
// encoding fails, Open returns an EncodingFailure and leaves the tab
// untouched; call OpenWith with the user's choice.
func (s *Service) Open(t *workspace.Tab, pane Pane, path string) (*EncodingFailure, error) {
	var failure *EncodingFailure
	ask := func(p, detected string, cause error) (string, bool) {
		failure = &EncodingFailure{Path: p, Detected: detected, Cause: cause}
		return "", false
	}

	err := s.open(t, pane, path, ask)
	if failure != nil {
		s.logger.WithTab(t.ID).WithFile(path).Info("Detected encoding failed", "encoding", failure.Detected)
		return failure, nil
	}
	return nil, err
}

// OpenWith loads path with encoding after detection failed.
func (s *Service) OpenWith(t *workspace.Tab, pane Pane, path, encoding string) error {
	use := func(string, string, error) (string, bool) {
		return encoding, true
	}
	return s.open(t, pane, path, use)
}

func (s *Service) open(t *workspace.Tab, pane Pane, path string, chooser charset.Chooser) error {
	if pane == SourcePane {
		return t.OpenSource(path, chooser)
	}
	return t.OpenTarget(path, chooser)
}

// SetDarkMode records the theme choice in the configuration.
func (s *Service) SetDarkMode(dark bool) error {
	s.config.GUI.DarkMode = dark
	return config.SetDarkMode(dark)
}

// WatchChanges calls deliver for every change the watcher reports until the
// service is closed. deliver runs on the watcher's goroutine.
func (s *Service) WatchChanges(deliver func(workspace.Change)) {
	if s.watcher == nil {
		return
	}
	go func() {
		for c := range s.watcher.Changes() {
			deliver(c)
		}
	}()
}

// ChangedTabs returns the tabs whose target is path and has changed on disk
// since it was last read, saved or acknowledged.
func (s *Service) ChangedTabs(path string) []*workspace.Tab {
	var out []*workspace.Tab
	for _, t := range s.workspace.TabsForPath(path) {
		if t.ChangedOnDisk() {
			out = append(out, t)
		}
	}
	return out
}

func (s *Service) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}
