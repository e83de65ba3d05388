// Package install manages the registration of the hex MCP server with
// assistant hosts. It edits each host's JSON config in place, preserving
// any other servers registered there, and records what it did in a local
// manifest so status checks can flag outdated installs.
package install

import (
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"
    "runtime"
    "time"
)

// Target identifies which assistant host to install into.
type Target string

const (
    // TargetAuto installs into every host whose config directory exists.
    TargetAuto Target = "auto"

    // TargetClaudeDesktop installs into the Claude Desktop app config.
    TargetClaudeDesktop Target = "claude-desktop"

    // TargetClaudeCode installs into a Claude Code .mcp.json file.
    TargetClaudeCode Target = "claude-code"

    // TargetAll installs into every known host unconditionally.
    TargetAll Target = "all"
)

// Scope selects which Claude Code config file is edited. It has no effect
// on other targets.
type Scope string

const (
    // ScopeLocal and ScopeProject both edit .mcp.json in the working
    // directory, the file Claude Code shares with the project.
    ScopeLocal   Scope = "local"
    ScopeProject Scope = "project"

    // ScopeUser edits ~/.mcp.json, which applies to every project.
    ScopeUser Scope = "user"
)

// ServerConfig is one server entry in a host's mcpServers map.
type ServerConfig struct {
    Command string            `json:"command"`
    Args    []string          `json:"args,omitempty"`
    Env     map[string]string `json:"env,omitempty"`
}

// hostConfig is the shape shared by Claude Desktop's config and .mcp.json
// files. Unknown top-level keys in Claude Desktop's config are preserved
// separately so edits don't drop them.
type hostConfig struct {
    MCPServers map[string]ServerConfig `json:"mcpServers"`

    extra map[string]json.RawMessage
}

func (c *hostConfig) UnmarshalJSON(data []byte) error {
    var raw map[string]json.RawMessage
    if err := json.Unmarshal(data, &raw); err != nil {
        return err
    }

    c.MCPServers = make(map[string]ServerConfig)
    if servers, ok := raw["mcpServers"]; ok {
        if err := json.Unmarshal(servers, &c.MCPServers); err != nil {
            return err
        }
        delete(raw, "mcpServers")
    }
    c.extra = raw
    return nil
}

func (c hostConfig) MarshalJSON() ([]byte, error) {
    out := make(map[string]any, len(c.extra)+1)
    for k, v := range c.extra {
        out[k] = v
    }
    servers := c.MCPServers
    if servers == nil {
        servers = map[string]ServerConfig{}
    }
    out["mcpServers"] = servers
    return json.Marshal(out)
}

// Result reports the outcome of installing into or uninstalling from one
// host config file.
type Result struct {
    Target Target
    Path   string
    Action string // "installed", "updated", "already installed", "removed", "not installed"
}

// Installer registers and deregisters the server entry named by serverName
// across assistant hosts.
type Installer struct {
    serverName string
    binPath    string
    version    string

    // home and cwd are overridable for tests.
    home string
    cwd  string
}

// New returns an Installer for the current binary. version is the version
// recorded in the install manifest, normally the CLI's build version.
func New(serverName, version string) (*Installer, error) {
    binPath, err := os.Executable()
    if err != nil {
        return nil, fmt.Errorf("resolving executable path: %w", err)
    }
    binPath, err = filepath.EvalSymlinks(binPath)
    if err != nil {
        return nil, fmt.Errorf("resolving executable path: %w", err)
    }

    home, err := os.UserHomeDir()
    if err != nil {
        return nil, fmt.Errorf("resolving home directory: %w", err)
    }

    cwd, err := os.Getwd()
    if err != nil {
        return nil, fmt.Errorf("resolving working directory: %w", err)
    }

    return &Installer{
        serverName: serverName,
        binPath:    binPath,
        version:    version,
        home:       home,
        cwd:        cwd,
    }, nil
}

// claudeDesktopConfigPath is the platform-specific location of the Claude
// Desktop config file.
func (i *Installer) claudeDesktopConfigPath() string {
    switch runtime.GOOS {
    case "darwin":
        return filepath.Join(i.home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
    case "windows":
        if appData := os.Getenv("APPDATA"); appData != "" {
            return filepath.Join(appData, "Claude", "claude_desktop_config.json")
        }
        return filepath.Join(i.home, "AppData", "Roaming", "Claude", "claude_desktop_config.json")
    default:
        return filepath.Join(i.home, ".config", "Claude", "claude_desktop_config.json")
    }
}

// claudeCodeConfigPath is the .mcp.json file for the given scope.
func (i *Installer) claudeCodeConfigPath(scope Scope) string {
    if scope == ScopeUser {
        return filepath.Join(i.home, ".mcp.json")
    }
    return filepath.Join(i.cwd, ".mcp.json")
}

// configPaths resolves a target to the concrete files to edit. TargetAuto
// selects hosts whose config directory already exists; it errors when none
// is found so a typo'd setup doesn't silently install nothing.
func (i *Installer) configPaths(target Target, scope Scope) (map[Target]string, error) {
    switch target {
    case TargetClaudeDesktop:
        return map[Target]string{TargetClaudeDesktop: i.claudeDesktopConfigPath()}, nil
    case TargetClaudeCode:
        return map[Target]string{TargetClaudeCode: i.claudeCodeConfigPath(scope)}, nil
    case TargetAll:
        return map[Target]string{
            TargetClaudeDesktop: i.claudeDesktopConfigPath(),
            TargetClaudeCode:    i.claudeCodeConfigPath(scope),
        }, nil
    case TargetAuto:
        paths := make(map[Target]string)
        if dir := filepath.Dir(i.claudeDesktopConfigPath()); dirExists(dir) {
            paths[TargetClaudeDesktop] = i.claudeDesktopConfigPath()
        }
        if dirExists(filepath.Join(i.home, ".claude")) {
            paths[TargetClaudeCode] = i.claudeCodeConfigPath(scope)
        }
        if len(paths) == 0 {
            return nil, fmt.Errorf("no assistant host found; specify --target explicitly")
        }
        return paths, nil
    default:
        return nil, fmt.Errorf("unknown target %q (use auto, claude-desktop, claude-code, or all)", target)
    }
}

func dirExists(dir string) bool {
    info, err := os.Stat(dir)
    return err == nil && info.IsDir()
}

// Install registers the server with each resolved host. Already-registered
// hosts are left alone unless force is set, in which case the entry is
// rewritten with the current binary path.
func (i *Installer) Install(target Target, scope Scope, force bool) ([]Result, error) {
    paths, err := i.configPaths(target, scope)
    if err != nil {
        return nil, err
    }

    entry := ServerConfig{
        Command: i.binPath,
        Args:    []string{"mcp", "serve"},
    }

    var results []Result
    for tgt, path := range paths {
        cfg, err := loadHostConfig(path)
        if err != nil {
            return results, fmt.Errorf("reading %s: %w", path, err)
        }

        action := "installed"
        if existing, ok := cfg.MCPServers[i.serverName]; ok {
            if !force {
                results = append(results, Result{Target: tgt, Path: path, Action: "already installed"})
                continue
            }
            if existing.Command != entry.Command {
                action = "updated"
            }
        }

        cfg.MCPServers[i.serverName] = entry
        if err := writeHostConfig(path, cfg); err != nil {
            return results, fmt.Errorf("writing %s: %w", path, err)
        }
        if err := i.recordInstall(tgt, path); err != nil {
            return results, err
        }
        results = append(results, Result{Target: tgt, Path: path, Action: action})
    }
    return results, nil
}

// Uninstall removes the server entry from each resolved host. Hosts where
// the server is not registered are reported, not errored, so "uninstall
// everything" is always safe to run.
func (i *Installer) Uninstall(target Target, scope Scope) ([]Result, error) {
    paths, err := i.configPaths(target, scope)
    if err != nil {
        return nil, err
    }

    var results []Result
    for tgt, path := range paths {
        cfg, err := loadHostConfig(path)
        if err != nil {
            return results, fmt.Errorf("reading %s: %w", path, err)
        }

        if _, ok := cfg.MCPServers[i.serverName]; !ok {
            results = append(results, Result{Target: tgt, Path: path, Action: "not installed"})
            continue
        }

        delete(cfg.MCPServers, i.serverName)
        if err := writeHostConfig(path, cfg); err != nil {
            return results, fmt.Errorf("writing %s: %w", path, err)
        }
        if err := i.removeInstallRecord(tgt, path); err != nil {
            return results, err
        }
        results = append(results, Result{Target: tgt, Path: path, Action: "removed"})
    }
    return results, nil
}

// loadHostConfig reads a host config file. A missing file yields an empty
// config, since installing is what creates it.
func loadHostConfig(path string) (*hostConfig, error) {
    data, err := os.ReadFile(path)
    if os.IsNotExist(err) {
        return &hostConfig{MCPServers: make(map[string]ServerConfig)}, nil
    }
    if err != nil {
        return nil, err
    }

    var cfg hostConfig
    if err := json.Unmarshal(data, &cfg); err != nil {
        return nil, fmt.Errorf("parse %s: %w", path, err)
    }
    if cfg.MCPServers == nil {
        cfg.MCPServers = make(map[string]ServerConfig)
    }
    return &cfg, nil
}

func writeHostConfig(path string, cfg *hostConfig) error {
    if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
        return err
    }

    data, err := json.MarshalIndent(cfg, "", "  ")
    if err != nil {
        return err
    }
    return os.WriteFile(path, append(data, '\n'), 0644)
}

// manifestPath is where install records are kept.
func (i *Installer) manifestPath() string {
    return filepath.Join(i.home, ".hex", "mcp_installs.json")
}

// InstallRecord is one entry in the install manifest.
type InstallRecord struct {
    Target      Target    `json:"target"`
    Path        string    `json:"path"`
    Version     string    `json:"version"`
    InstalledAt time.Time `json:"installedAt"`
}

type manifest struct {
    Installs []InstallRecord `json:"installs"`
}

func (i *Installer) loadManifest() (*manifest, error) {
    data, err := os.ReadFile(i.manifestPath())
    if os.IsNotExist(err) {
        return &manifest{}, nil
    }
    if err != nil {
        return nil, err
    }

    var m manifest
    if err := json.Unmarshal(data, &m); err != nil {
        return nil, fmt.Errorf("parse %s: %w", i.manifestPath(), err)
    }
    return &m, nil
}

func (i *Installer) writeManifest(m *manifest) error {
    path := i.manifestPath()
    if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
        return err
    }

    data, err := json.MarshalIndent(m, "", "  ")
    if err != nil {
        return err
    }
    return os.WriteFile(path, append(data, '\n'), 0644)
}

func (i *Installer) recordInstall(target Target, path string) error {
    m, err := i.loadManifest()
    if err != nil {
        return err
    }

    record := InstallRecord{
        Target:      target,
        Path:        path,
        Version:     i.version,
        InstalledAt: time.Now().UTC(),
    }

    for idx, r := range m.Installs {
        if r.Target == target && r.Path == path {
            m.Installs[idx] = record
            return i.writeManifest(m)
        }
    }
    m.Installs = append(m.Installs, record)
    return i.writeManifest(m)
}

func (i *Installer) removeInstallRecord(target Target, path string) error {
    m, err := i.loadManifest()
    if err != nil {
        return err
    }

    kept := m.Installs[:0]
    for _, r := range m.Installs {
        if r.Target == target && r.Path == path {
            continue
        }
        kept = append(kept, r)
    }
    m.Installs = kept
    return i.writeManifest(m)
}
