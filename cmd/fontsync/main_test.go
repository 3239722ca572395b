package main

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFontServer serves a two-font catalog and both archives
func newFontServer(t *testing.T) *httptest.Server {
	t.Helper()
	archives := map[string]map[string]string{
		"bravura":  {"otf/bravura.otf": "otf", "svg/bravura.svg": "svg"},
		"gonville": {"otf/gonville.otf": "otf"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/CATALOG", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# fonts\nbravura 1.2 Bravura\ngonville 2.0 Gonville\n"))
	})
	for basename, files := range archives {
		mux.HandleFunc("/"+basename+"/"+basename+".zip", func(w http.ResponseWriter, r *http.Request) {
			zw := zip.NewWriter(w)
			for name, content := range files {
				fw, _ := zw.Create(name)
				fw.Write([]byte(content))
			}
			zw.Close()
		})
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// run executes the root command with args and returns stdout and stderr
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fontsync version info")
	assert.Contains(t, out, runtime.Version())
}

func TestFormatVersion(t *testing.T) {
	out := FormatVersion(&VersionInfo{
		Version:   "v1.0.0",
		GoVersion: "go1.23.5",
		Platform:  "linux/amd64",
		Revision:  "abc123",
		Modified:  true,
	})
	assert.Contains(t, out, "Version:   v1.0.0")
	assert.Contains(t, out, "Revision:  abc123 (modified)")
	assert.Contains(t, out, "Platform:  linux/amd64")
}

func TestCommands(t *testing.T) {
	srv := newFontServer(t)
	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	install := filepath.Join(root, "install")
	flags := []string{"--repo", repo, "--install-root", install, "--host", srv.URL}

	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantOut  []string
		validate func(t *testing.T)
	}{
		{
			name:    "status_before_sync",
			args:    append([]string{"status"}, flags...),
			wantOut: []string{"2 fonts: 2 to download, 0 to update, 0 up to date"},
			validate: func(t *testing.T) {
				assert.NoDirExists(t, repo)
			},
		},
		{
			name:    "sync_with_pattern",
			args:    append([]string{"sync", "gon*"}, flags...),
			wantOut: []string{"Installed Gonville", "1 skipped"},
			validate: func(t *testing.T) {
				assert.FileExists(t, filepath.Join(repo, "gonville.zip"))
				assert.NoFileExists(t, filepath.Join(repo, "bravura.zip"))
			},
		},
		{
			name:    "sync_everything",
			args:    append([]string{"sync"}, flags...),
			wantOut: []string{"Installed Bravura", "1 font(s) synced, 1 already up to date"},
			validate: func(t *testing.T) {
				_, err := os.Readlink(filepath.Join(install, "svg", "bravura.svg"))
				assert.NoError(t, err)
				assert.FileExists(t, filepath.Join(repo, "CATALOG"))
			},
		},
		{
			name:    "status_local_after_sync",
			args:    append([]string{"status", "--local"}, flags...),
			wantOut: []string{"2 fonts: 0 to download, 0 to update, 2 up to date"},
		},
		{
			name:    "clean",
			args:    append([]string{"clean"}, flags...),
			wantOut: []string{"2 font(s) cleaned"},
			validate: func(t *testing.T) {
				_, err := os.Lstat(filepath.Join(install, "svg", "bravura.svg"))
				assert.True(t, os.IsNotExist(err))
				assert.FileExists(t, filepath.Join(repo, "bravura.zip"))
			},
		},
		{
			name:    "missing_repo",
			args:    []string{"status", "--install-root", install, "--host", srv.URL},
			wantErr: "repo: cannot be blank",
		},
		{
			name:    "bad_pattern",
			args:    append([]string{"sync", "brav[ura"}, flags...),
			wantErr: "fonts",
		},
	}

	// cases build on each other and run in order
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err, out)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
			if tt.validate != nil {
				tt.validate(t)
			}
		})
	}
}

func TestConfigFileWithOverrides(t *testing.T) {
	srv := newFontServer(t)
	dir := t.TempDir()
	t.Setenv("FONTSYNC_TEST_ROOT", dir)

	path := filepath.Join(dir, ".fontsync.yaml")
	content := "repo: ${FONTSYNC_TEST_ROOT}/repo\ninstall_root: install\nhost: http://127.0.0.1:1\nfonts: [gonville]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	// --host replaces the unreachable host from the file
	out, _, err := run(t, "sync", "--config", path, "--host", srv.URL)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Installed Gonville")

	assert.FileExists(t, filepath.Join(dir, "repo", "gonville.zip"))
	_, err = os.Readlink(filepath.Join(dir, "install", "otf", "gonville.otf"))
	assert.NoError(t, err, "relative install_root resolves against the config file")
}

func TestSyncFailureExitsWithError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/CATALOG" {
			w.Write([]byte("bravura 1.2 Bravura\n"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	root := t.TempDir()
	out, _, err := run(t, "sync",
		"--repo", filepath.Join(root, "repo"),
		"--install-root", filepath.Join(root, "install"),
		"--host", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download")
	assert.Contains(t, out, "Failed Bravura")
	assert.FileExists(t, filepath.Join(root, "repo", "CATALOG"))
}
