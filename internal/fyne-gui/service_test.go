package fynegui

import (
	"path/filepath"
	"testing"

	"transcompare/internal/core/charset"
	"transcompare/internal/core/config"
	"transcompare/internal/core/utils"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.GUI.WatchFiles = false
	cfg.Backup.Dir = filepath.Join(t.TempDir(), "Backup")
	return NewService(cfg, utils.NopLogger())
}

func TestNewService_Defaults(t *testing.T) {
	s := NewService(nil, nil)
	defer s.Close()

	if s.Config() == nil {
		t.Fatal("Expected default configuration")
	}
	if s.Workspace() == nil {
		t.Fatal("Expected a workspace")
	}
	if s.Workspace().Len() != 0 {
		t.Errorf("A new service should have no tabs, got %d", s.Workspace().Len())
	}
}

func TestService_OpenDetectedEncoding(t *testing.T) {
	s := newTestService(t)
	tab := s.Workspace().NewTab()
	path := writeTestFile(t, "th.txt", []byte("ภาษาไทย"))

	failure, err := s.Open(tab, TargetPane, path)

	if err != nil || failure != nil {
		t.Fatalf("Expected a clean open, got failure=%v err=%v", failure, err)
	}
	if tab.Target.Text() != "ภาษาไทย" || tab.Encoding != charset.UTF8 {
		t.Errorf("Unexpected tab state: text=%q encoding=%s", tab.Target.Text(), tab.Encoding)
	}
}

func TestService_OpenReportsEncodingFailure(t *testing.T) {
	s := newTestService(t)
	tab := s.Workspace().NewTab()
	// A UTF-16 byte-order mark followed by an odd number of bytes.
	path := writeTestFile(t, "odd.txt", []byte{0xFF, 0xFE, 'a'})

	failure, err := s.Open(tab, TargetPane, path)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if failure == nil {
		t.Fatal("Expected an encoding failure")
	}
	if failure.Path != path || failure.Detected != charset.UTF16 || failure.Cause == nil {
		t.Errorf("Unexpected failure: %+v", failure)
	}
	if tab.TargetPath != "" {
		t.Error("Tab should be untouched after a failed open")
	}

	if err := s.OpenWith(tab, TargetPane, path, charset.Latin1); err != nil {
		t.Fatalf("OpenWith failed: %v", err)
	}
	if tab.Target.Text() != "ÿþa" || tab.Encoding != charset.Latin1 {
		t.Errorf("Unexpected tab state: text=%q encoding=%s", tab.Target.Text(), tab.Encoding)
	}
}

func TestService_OpenWithWrongEncoding(t *testing.T) {
	s := newTestService(t)
	tab := s.Workspace().NewTab()
	path := writeTestFile(t, "odd.txt", []byte{0xFF, 0xFE, 'a'})

	err := s.OpenWith(tab, SourcePane, path, charset.UTF16LE)

	if !utils.IsEncodingError(err) {
		t.Errorf("Expected an encoding error, got %v", err)
	}
}

func TestService_OpenMissingFile(t *testing.T) {
	s := newTestService(t)
	tab := s.Workspace().NewTab()

	failure, err := s.Open(tab, SourcePane, filepath.Join(t.TempDir(), "nope.txt"))

	if failure != nil {
		t.Error("A missing file is not an encoding failure")
	}
	if !utils.IsFileSystemError(err) {
		t.Errorf("Expected a filesystem error, got %v", err)
	}
}

func TestService_ChangedTabs(t *testing.T) {
	s := newTestService(t)
	path := writeTestFile(t, "t.txt", []byte("v1"))
	tab := s.Workspace().NewTab()
	if _, err := s.Open(tab, TargetPane, path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.Workspace().NewTab()

	if got := s.ChangedTabs(path); len(got) != 0 {
		t.Errorf("Expected no changed tabs, got %d", len(got))
	}
}

func TestPane_String(t *testing.T) {
	if SourcePane.String() != "source" || TargetPane.String() != "target" {
		t.Errorf("Unexpected pane names: %s, %s", SourcePane, TargetPane)
	}
}
