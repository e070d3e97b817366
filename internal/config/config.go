// Package config persists named Jira server profiles in a flat ini file
// under the user's config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	AuthPAT        = "pat"
	AuthCloudToken = "cloud_token"

	DefaultIssueJQL = "assignee=currentUser() AND statusCategory not in (Done)"

	fileName = "jira-worklogger.conf"
)

// ServerProfile is one named set of connection, credential and default-query
// settings for a Jira instance. The section name in the config file is the
// profile name.
type ServerProfile struct {
	Name         string
	URL          string
	AuthType     string
	PAT          string
	Email        string
	APIToken     string
	IssueJQL     string
	TeamIssueJQL string
	ProjectKeys  []string
}

// Normalize trims every string field, falls back to the default issue JQL,
// and uppercases/deduplicates the project keys preserving first-seen order.
func (p *ServerProfile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.URL = strings.TrimSpace(p.URL)
	p.AuthType = strings.TrimSpace(p.AuthType)
	if p.AuthType == "" {
		p.AuthType = AuthPAT
	}
	p.PAT = strings.TrimSpace(p.PAT)
	p.Email = strings.TrimSpace(p.Email)
	p.APIToken = strings.TrimSpace(p.APIToken)
	p.IssueJQL = strings.TrimSpace(p.IssueJQL)
	if p.IssueJQL == "" {
		p.IssueJQL = DefaultIssueJQL
	}
	p.TeamIssueJQL = strings.TrimSpace(p.TeamIssueJQL)

	seen := make(map[string]struct{}, len(p.ProjectKeys))
	normalized := make([]string, 0, len(p.ProjectKeys))
	for _, key := range p.ProjectKeys {
		key = strings.ToUpper(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, key)
	}
	p.ProjectKeys = normalized
}

// Store reads and writes server profiles. Servers reflects the on-disk
// state as of the last Load.
type Store struct {
	dir     string
	path    string
	file    *ini.File
	Servers []*ServerProfile
}

// DefaultStore points at ~/.config/jira-worklogger/.
func DefaultStore() *Store {
	home, _ := os.UserHomeDir()
	return NewStore(filepath.Join(home, ".config", "jira-worklogger"))
}

// NewStore points at an explicit config directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir, path: filepath.Join(dir, fileName)}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads all profiles from disk, creating the config directory and an
// empty file on first run. It fails when a section declares an unsupported
// auth type or is missing the credentials its auth type requires.
func (s *Store) Load() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		if err := os.WriteFile(s.path, nil, 0o600); err != nil {
			return fmt.Errorf("cannot create config file: %w", err)
		}
	}

	file, err := ini.Load(s.path)
	if err != nil {
		return fmt.Errorf("cannot parse config file %s: %w", s.path, err)
	}
	s.file = file

	s.Servers = nil
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		profile := &ServerProfile{
			Name:         section.Name(),
			URL:          section.Key("url").String(),
			AuthType:     section.Key("auth_type").MustString(AuthPAT),
			IssueJQL:     section.Key("issue_jql").MustString(DefaultIssueJQL),
			TeamIssueJQL: section.Key("team_issue_jql").String(),
		}
		if raw := section.Key("project_keys").String(); raw != "" {
			profile.ProjectKeys = strings.Split(raw, ",")
		}

		switch profile.AuthType {
		case AuthPAT:
			profile.PAT = section.Key("pat").String()
			if strings.TrimSpace(profile.PAT) == "" {
				return fmt.Errorf("config file %s must define a non-empty PAT for section %q", s.path, section.Name())
			}
		case AuthCloudToken:
			profile.Email = section.Key("email").String()
			profile.APIToken = section.Key("api_token").String()
			if strings.TrimSpace(profile.Email) == "" || strings.TrimSpace(profile.APIToken) == "" {
				return fmt.Errorf("config file %s must define both an email and API token for section %q", s.path, section.Name())
			}
		default:
			return fmt.Errorf("config file %s sets auth_type for section %q to %q but only %q and %q are supported",
				s.path, section.Name(), profile.AuthType, AuthPAT, AuthCloudToken)
		}

		profile.Normalize()
		s.Servers = append(s.Servers, profile)
	}
	return nil
}

// HasServer reports whether a profile of that name exists.
func (s *Store) HasServer(name string) bool {
	if s.file == nil {
		return false
	}
	_, err := s.file.GetSection(name)
	return err == nil
}

// AddServer persists the profile, replacing any existing section of the
// same name, and then reloads so the in-memory view matches the file.
func (s *Store) AddServer(p *ServerProfile) error {
	if s.file == nil {
		if err := s.Load(); err != nil {
			return err
		}
	}
	p.Normalize()

	s.file.DeleteSection(p.Name)
	section, err := s.file.NewSection(p.Name)
	if err != nil {
		return fmt.Errorf("cannot create config section %q: %w", p.Name, err)
	}
	section.Key("url").SetValue(p.URL)
	section.Key("auth_type").SetValue(p.AuthType)
	section.Key("issue_jql").SetValue(p.IssueJQL)
	section.Key("team_issue_jql").SetValue(p.TeamIssueJQL)
	section.Key("project_keys").SetValue(strings.Join(p.ProjectKeys, ","))

	switch p.AuthType {
	case AuthPAT:
		section.Key("pat").SetValue(p.PAT)
	case AuthCloudToken:
		section.Key("email").SetValue(p.Email)
		section.Key("api_token").SetValue(p.APIToken)
	default:
		return fmt.Errorf("unsupported auth type %q for server %q", p.AuthType, p.Name)
	}

	if err := s.file.SaveTo(s.path); err != nil {
		return fmt.Errorf("cannot write config file %s: %w", s.path, err)
	}
	return s.Load()
}
