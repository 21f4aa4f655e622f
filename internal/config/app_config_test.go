package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/ftree/internal/utils"
)

type configTestCase struct {
	name              string
	globalContent     string
	localContent      string
	explicitPath      string
	explicitContent   string
	expectPath        string
	expectFormat      string
	expectConcurrency *int
	expectCopy        *bool
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func intPointer(value int) *int {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:              "local_overrides_global",
			globalContent:     "tree:\n  format: json\n  concurrency: 4\n  copy: true\n",
			localContent:      "tree:\n  format: XML\n  copy: false\n",
			expectFormat:      "xml",
			expectConcurrency: intPointer(4),
			expectCopy:        boolPointer(false),
		},
		{
			name:            "explicit_path_replaces_local",
			globalContent:   "tree:\n  path: /srv\n",
			localContent:    "tree:\n  format: json\n",
			explicitPath:    "custom.yaml",
			explicitContent: "tree:\n  format: raw\n",
			expectPath:      "/srv",
			expectFormat:    "raw",
		},
		{
			name:          "global_only",
			globalContent: "tree:\n  path: src\n",
			expectPath:    "src",
		},
		{
			name: "no_files",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.ConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.ConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte(testCase.explicitContent), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			if loadedConfig.Tree.Path != testCase.expectPath {
				t.Fatalf("expected path %q, got %q", testCase.expectPath, loadedConfig.Tree.Path)
			}
			if loadedConfig.Tree.Format != testCase.expectFormat {
				t.Fatalf("expected format %q, got %q", testCase.expectFormat, loadedConfig.Tree.Format)
			}
			if testCase.expectConcurrency == nil {
				if loadedConfig.Tree.Concurrency != nil {
					t.Fatalf("expected no concurrency override")
				}
			} else if loadedConfig.Tree.Concurrency == nil || *loadedConfig.Tree.Concurrency != *testCase.expectConcurrency {
				t.Fatalf("unexpected concurrency value")
			}
			if testCase.expectCopy == nil {
				if loadedConfig.Tree.Copy != nil {
					t.Fatalf("expected no copy override")
				}
			} else if loadedConfig.Tree.Copy == nil || *loadedConfig.Tree.Copy != *testCase.expectCopy {
				t.Fatalf("unexpected copy value")
			}
		})
	}
}

func TestLoadApplicationConfigurationRequiresExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "missing.yaml",
	})
	if err == nil {
		t.Fatalf("expected error for missing explicit configuration")
	}
}

func TestLoadApplicationConfigurationRejectsMalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	workingDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workingDir, utils.ConfigFileName), []byte("tree: [unclosed\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected error for malformed configuration")
	}
}

func TestLoadApplicationConfigurationRejectsInvalidConcurrency(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{name: "zero", value: "0"},
		{name: "negative", value: "-3"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			t.Setenv("USERPROFILE", t.TempDir())
			workingDir := t.TempDir()
			content := "tree:\n  concurrency: " + testCase.value + "\n"
			if err := os.WriteFile(filepath.Join(workingDir, utils.ConfigFileName), []byte(content), 0o600); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir})
			if err == nil || !strings.Contains(err.Error(), "invalid concurrency "+testCase.value) {
				t.Fatalf("expected invalid concurrency error, got %v", err)
			}
		})
	}
}

func TestTreeConfigurationResolvedDefaults(t *testing.T) {
	var empty TreeConfiguration
	if empty.ResolvedPath() != utils.CurrentDirectoryPath {
		t.Fatalf("expected default path %q, got %q", utils.CurrentDirectoryPath, empty.ResolvedPath())
	}
	if empty.ResolvedFormat() != DefaultFormat {
		t.Fatalf("expected default format %q, got %q", DefaultFormat, empty.ResolvedFormat())
	}
	if empty.ResolvedConcurrency() != DefaultConcurrency {
		t.Fatalf("expected default concurrency %d, got %d", DefaultConcurrency, empty.ResolvedConcurrency())
	}

	configured := TreeConfiguration{Path: "src", Format: "json", Concurrency: intPointer(8)}
	if configured.ResolvedPath() != "src" || configured.ResolvedFormat() != "json" || configured.ResolvedConcurrency() != 8 {
		t.Fatalf("unexpected resolved values %+v", configured)
	}
}

func TestMergeDoesNotAliasPointers(t *testing.T) {
	override := ApplicationConfiguration{Tree: TreeConfiguration{Copy: boolPointer(true)}}
	merged := ApplicationConfiguration{}.Merge(override)
	*override.Tree.Copy = false
	if merged.Tree.Copy == nil || !*merged.Tree.Copy {
		t.Fatalf("expected merged copy flag to be independent of override")
	}
}
