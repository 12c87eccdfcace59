package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/transync-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

func basePullOptions() domain.PullOptions {
	return domain.PullOptions{
		ProjectOptions: domain.ProjectOptions{Project: "p", Version: "v", ProjectType: "fake"},
		SrcDir:         "src",
		TransDir:       "trans",
		PullType:       domain.TransferBoth,
		Locales:        domain.LocaleList{{Locale: "de"}, {Locale: "fr"}},
	}
}

func pullServer() *memory.TranslationServer {
	server := memory.NewTranslationServer()
	server.AddDocument(&domain.Resource{Name: "doc1"})
	server.AddDocument(&domain.Resource{Name: "doc2"})
	server.AddTranslations("doc1", "de", &domain.TranslationsResource{Targets: []domain.TextFlowTarget{{ResID: "k"}}})
	server.AddTranslations("doc2", "de", &domain.TranslationsResource{})
	server.AddTranslations("doc2", "fr", &domain.TranslationsResource{})
	return server
}

func TestPull_WritesSourcesAndTranslations(t *testing.T) {
	server := pullServer()
	format := newFakeFormat()
	svc := NewPullService(server, server, NewFormatRegistry(format), nil)

	result, err := svc.Pull(context.Background(), basePullOptions())
	require.NoError(t, err)

	assert.Equal(t, domain.RunDone, result.State)
	assert.Equal(t, []string{"doc1", "doc2"}, result.Documents)
	assert.Equal(t, 2, result.SourcesWritten)
	assert.Equal(t, 3, result.TranslationsWritten)
	assert.Equal(t, []string{"doc1:fr"}, result.Missing)
	assert.Equal(t, []string{"doc1", "doc2"}, format.writtenSrc)
	assert.Equal(t, []string{"doc1:de", "doc2:de", "doc2:fr"}, format.writtenTrans)
	assert.Zero(t, server.MutatingCalls())
}

func TestPull_TransOnlySkipsSourceFetch(t *testing.T) {
	server := pullServer()
	format := newFakeFormat()
	svc := NewPullService(server, server, NewFormatRegistry(format), nil)
	opts := basePullOptions()
	opts.PullType = domain.TransferTrans

	_, err := svc.Pull(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, server.CallsFor(memory.OpGetSource))
	assert.Empty(t, format.writtenSrc)

	opts.CreateSkeletons = true
	_, err = svc.Pull(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, server.CallsFor(memory.OpGetSource), 2)
}

func TestPull_DryRun(t *testing.T) {
	server := pullServer()
	format := newFakeFormat()
	svc := NewPullService(server, server, NewFormatRegistry(format), nil)
	opts := basePullOptions()
	opts.DryRun = true

	result, err := svc.Pull(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Zero(t, result.SourcesWritten)
	assert.Zero(t, result.TranslationsWritten)
	assert.Empty(t, format.writtenSrc)
	assert.Empty(t, format.writtenTrans)
}

func TestPull_Modules(t *testing.T) {
	server := memory.NewTranslationServer()
	server.AddDocument(&domain.Resource{Name: "org.example/app/messages"})
	server.AddDocument(&domain.Resource{Name: "org.example/lib/other"})
	format := newFakeFormat()
	svc := NewPullService(server, server, NewFormatRegistry(format), nil)
	opts := basePullOptions()
	opts.PullType = domain.TransferSource
	opts.Modules = modularOptions()

	result, err := svc.Pull(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"messages"}, result.Documents)
	assert.Equal(t, []string{"messages"}, format.writtenSrc)
}

func TestPull_NothingRemote(t *testing.T) {
	server := memory.NewTranslationServer()
	svc := NewPullService(server, server, NewFormatRegistry(newFakeFormat()), nil)

	result, err := svc.Pull(context.Background(), basePullOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.RunNoop, result.State)
}

func TestPull_DeclinedConfirmation(t *testing.T) {
	server := pullServer()
	format := newFakeFormat()
	confirmer := &stubConfirmer{answer: false}
	svc := NewPullService(server, server, NewFormatRegistry(format), confirmer)
	opts := basePullOptions()
	opts.Interactive = true

	result, err := svc.Pull(context.Background(), opts)
	assert.ErrorIs(t, err, domain.ErrAborted)
	assert.Equal(t, domain.RunAborted, result.State)
	assert.Equal(t, []string{confirmPullBoth}, confirmer.messages)
	assert.Empty(t, format.writtenSrc)
	assert.Empty(t, server.CallsFor(memory.OpGetSource))
}

func TestPull_TranslationErrorIsFatal(t *testing.T) {
	server := pullServer()
	boom := errors.New("500")
	server.FailOn(memory.OpGetTrans, "doc2", boom)
	svc := NewPullService(server, server, NewFormatRegistry(newFakeFormat()), nil)

	result, err := svc.Pull(context.Background(), basePullOptions())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.RunFailed, result.State)
}

func TestPull_Validation(t *testing.T) {
	server := pullServer()
	svc := NewPullService(server, server, NewFormatRegistry(newFakeFormat()), nil)
	opts := basePullOptions()
	opts.Locales = nil

	_, err := svc.Pull(context.Background(), opts)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Empty(t, server.Calls())
}
