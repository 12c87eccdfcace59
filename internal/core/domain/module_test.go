package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModuleID(t *testing.T) {
	m, err := ParseModuleID("org.example/app")
	require.NoError(t, err)
	assert.Equal(t, ModuleDescriptor{GroupID: "org.example", ArtifactID: "app"}, m)
	assert.Equal(t, "org.example/app", m.ID())

	for _, bad := range []string{"", "org.example", "/app", "org/", "a/b/c"} {
		_, err := ParseModuleID(bad)
		assert.True(t, errors.Is(err, ErrInvalidConfig), bad)
	}
}

func TestModuleOptions_Prefix(t *testing.T) {
	assert.Equal(t, "", ModuleOptions{Current: "g/a"}.Prefix())
	assert.Equal(t, "g/a/", ModuleOptions{Enabled: true, Current: "g/a"}.Prefix())
	assert.Equal(t, "g/a:", ModuleOptions{Enabled: true, Current: "g/a", Suffix: ":"}.Prefix())
}

func TestModuleOptions_Validate(t *testing.T) {
	assert.NoError(t, ModuleOptions{}.Validate())
	assert.NoError(t, ModuleOptions{Enabled: true, Current: "g/a", All: []string{"g/a", "g/b"}}.Validate())
	assert.Error(t, ModuleOptions{Enabled: true, Current: "ga"}.Validate())
	assert.Error(t, ModuleOptions{Enabled: true, Current: "g/a", All: []string{"bad"}}.Validate())
}

func TestModuleClass_IsObsolete(t *testing.T) {
	assert.False(t, ModuleClass{Kind: ModuleLive}.IsObsolete())
	assert.True(t, ModuleClass{Kind: ModuleObsolete}.IsObsolete())
	assert.True(t, ModuleClass{Kind: ModuleNone}.IsObsolete())
}
