package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

func TestListRemote(t *testing.T) {
	e := newCLIEnv(t, baseProject)
	e.server.AddDocument(&domain.Resource{Name: "b"})
	e.server.AddDocument(&domain.Resource{Name: "a"})

	require.NoError(t, e.run("list-remote"))

	assert.Equal(t, "a\nb\n", e.stdout.String())
}

func TestListRemote_CurrentModule(t *testing.T) {
	e := newCLIEnv(t, baseProject+`
[modules]
enabled = true
current = "org/app"
`)
	e.server.AddDocument(&domain.Resource{Name: "org/app/messages"})
	e.server.AddDocument(&domain.Resource{Name: "org/lib/messages"})

	require.NoError(t, e.run("list-remote"))

	assert.Equal(t, "org/app/messages\n", e.stdout.String())
	assert.Contains(t, e.stderr.String(), "(1 documents outside the current module)")
}

func TestListRemote_NoURL(t *testing.T) {
	e := newCLIEnv(t, `project = "p"`)

	err := e.run("list-remote")

	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}
