package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/transync-cli/internal/adapters/driven/rest"
	"github.com/custodia-labs/transync-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
)

// cliEnv runs commands against an in-memory server in a temp project.
type cliEnv struct {
	t         *testing.T
	dir       string
	server    *memory.TranslationServer
	runs      *memory.RunStore
	stdout    bytes.Buffer
	stderr    bytes.Buffer
	connected []rest.Config
}

// newCLIEnv writes transync.toml into a temp dir. "{dir}" in the
// config is replaced by that dir.
func newCLIEnv(t *testing.T, projectTOML string) *cliEnv {
	t.Helper()
	e := &cliEnv{
		t:      t,
		dir:    t.TempDir(),
		server: memory.NewTranslationServer(),
		runs:   memory.NewRunStore(),
	}
	e.writeFile("transync.toml", strings.ReplaceAll(projectTOML, "{dir}", filepath.ToSlash(e.dir)))

	oldConnect, oldRunStore, oldStdin := connect, openRunStore, stdin
	connect = func(_ context.Context, cfg rest.Config) (driven.TranslationServer, error) {
		e.connected = append(e.connected, cfg)
		return e.server, nil
	}
	openRunStore = func() (driven.RunStore, io.Closer, error) {
		return e.runs, nil, nil
	}
	stdin = strings.NewReader("")
	t.Cleanup(func() {
		connect, openRunStore, stdin = oldConnect, oldRunStore, oldStdin
		resetFlags(rootCmd)
	})
	return e
}

func (e *cliEnv) path(name string) string {
	return filepath.Join(e.dir, filepath.FromSlash(name))
}

func (e *cliEnv) writeFile(name, content string) {
	e.t.Helper()
	p := e.path(name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0o644))
}

func (e *cliEnv) readFile(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(e.path(name))
	require.NoError(e.t, err)
	return string(data)
}

// run executes the root command with the env's config files.
func (e *cliEnv) run(args ...string) error {
	e.stdout.Reset()
	e.stderr.Reset()
	rootCmd.SetOut(&e.stdout)
	rootCmd.SetErr(&e.stderr)
	rootCmd.SetArgs(append(args,
		"--config", e.path("transync.toml"),
		"--user-config", e.path("user.toml"),
	))
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()
	return rootCmd.ExecuteContext(context.Background())
}

// resetFlags restores every flag to its default so commands can be
// executed repeatedly within one test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
			if f.DefValue != "[]" {
				_ = sv.Replace(strings.Split(strings.Trim(f.DefValue, "[]"), ","))
			}
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

const baseProject = `
url = "https://translate.example.com/"
username = "alice"
key = "secret"
project = "myproj"
project_version = "master"
project_type = "properties"
src_dir = "{dir}/src"
trans_dir = "{dir}/trans"
locales = ["de"]
`
