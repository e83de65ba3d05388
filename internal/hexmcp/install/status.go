package install

import (
    "github.com/Masterminds/semver/v3"
)

// State classifies one host's install.
type State string

const (
    StateNotInstalled State = "not installed"
    StateUpToDate     State = "up to date"
    StateOutdated     State = "outdated"

    // StateUnknown means the server is registered but the manifest has no
    // record of it, for example when it was added by hand.
    StateUnknown State = "installed (unmanaged)"
)

// TargetStatus reports the install state of one host.
type TargetStatus struct {
    Target           Target
    Path             string
    State            State
    InstalledVersion string
    CurrentVersion   string
}

// Status cross-checks each known host config against the install manifest.
// A host counts as installed only if its config actually carries the server
// entry; stale manifest records are ignored. Recorded versions are compared
// to the current binary's version with semver so downgraded or rebuilt
// binaries show as outdated.
func (i *Installer) Status() ([]TargetStatus, error) {
    m, err := i.loadManifest()
    if err != nil {
        return nil, err
    }

    records := make(map[string]InstallRecord, len(m.Installs))
    for _, r := range m.Installs {
        records[r.Path] = r
    }

    checks := []struct {
        target Target
        path   string
    }{
        {TargetClaudeDesktop, i.claudeDesktopConfigPath()},
        {TargetClaudeCode, i.claudeCodeConfigPath(ScopeUser)},
        {TargetClaudeCode, i.claudeCodeConfigPath(ScopeProject)},
    }

    var statuses []TargetStatus
    seen := make(map[string]bool)
    for _, check := range checks {
        if seen[check.path] {
            continue
        }
        seen[check.path] = true

        status := TargetStatus{
            Target:         check.target,
            Path:           check.path,
            State:          StateNotInstalled,
            CurrentVersion: i.version,
        }

        cfg, err := loadHostConfig(check.path)
        if err != nil {
            return nil, err
        }

        if _, ok := cfg.MCPServers[i.serverName]; ok {
            record, recorded := records[check.path]
            switch {
            case !recorded:
                status.State = StateUnknown
            default:
                status.InstalledVersion = record.Version
                status.State = compareVersions(record.Version, i.version)
            }
        }

        statuses = append(statuses, status)
    }
    return statuses, nil
}

// compareVersions reports whether installed is behind current. Versions
// that don't parse as semver (dev builds) are treated as up to date.
func compareVersions(installed, current string) State {
    iv, err := semver.NewVersion(installed)
    if err != nil {
        return StateUpToDate
    }
    cv, err := semver.NewVersion(current)
    if err != nil {
        return StateUpToDate
    }

    if iv.LessThan(cv) {
        return StateOutdated
    }
    return StateUpToDate
}
