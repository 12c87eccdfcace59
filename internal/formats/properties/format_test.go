package properties

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/transync-cli/internal/adapters/driven/fsscan"
	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
)

func memFormat(t *testing.T, files map[string]string) (*Format, billy.Filesystem) {
	t.Helper()
	fs := memfs.New()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}
	return NewLatin1(fsscan.ChrootOpener(fs)), fs
}

func readFile(t *testing.T, fs billy.Filesystem, name string) string {
	t.Helper()
	data, err := util.ReadFile(fs, name)
	require.NoError(t, err)
	return string(data)
}

var locales = domain.LocaleList{
	{Locale: "de"},
	{Locale: "zh-Hans", MapFrom: "zh-CN"},
	{Locale: "fr"},
}

func TestFormat_Names(t *testing.T) {
	open := fsscan.ChrootOpener(memfs.New())

	assert.Equal(t, TypeLatin1, NewLatin1(open).Name())
	assert.Equal(t, TypeUTF8, NewUTF8(open).Name())
	assert.Equal(t, ".properties", NewLatin1(open).FileExtension())
	assert.Equal(t, domain.ExtensionSet{"comment"}, NewLatin1(open).Extensions())
	assert.False(t, NewLatin1(open).NeedsSource())
}

func TestFormat_FindDocuments(t *testing.T) {
	f, _ := memFormat(t, map[string]string{
		"src/messages.properties":         "a=b\n",
		"src/messages_de.properties":      "a=c\n",
		"src/sub/errors.properties":       "x=y\n",
		"src/sub/errors_zh_CN.properties": "x=z\n",
		"src/readme.txt":                  "",
	})

	names, err := f.FindDocuments("src", domain.ScanSpec{
		DefaultExcludes:        true,
		ExcludeLocaleFilenames: true,
		Locales:                locales,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"messages", "sub/errors"}, names)
}

func TestFormat_LoadSource(t *testing.T) {
	f, _ := memFormat(t, map[string]string{
		"src/app/messages.properties": "# Greeting shown on start\nhello = Hello\\u00e9\n\n" +
			"! second\nbye: Goodbye ${name}\n",
	})

	res, err := f.LoadSource("src", "app/messages")
	require.NoError(t, err)
	assert.Equal(t, "app/messages", res.Name)
	assert.Equal(t, DefaultSourceLang, res.Lang)
	assert.Equal(t, domain.ContentTypeTextPlain, res.ContentType)
	require.Len(t, res.TextFlows, 2)
	assert.Equal(t, domain.TextFlow{ID: "hello", Content: "Helloé", Comment: "Greeting shown on start"}, res.TextFlows[0])
	assert.Equal(t, "Goodbye ${name}", res.TextFlows[1].Content)
}

func TestFormat_LoadSource_SourceLang(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "src/m.properties", []byte("a=b\n"), 0o644))

	res, err := NewUTF8(fsscan.ChrootOpener(fs), WithSourceLang("fr")).LoadSource("src", "m")
	require.NoError(t, err)
	assert.Equal(t, "fr", res.Lang)
}

func TestFormat_LoadSource_NonTranslatable(t *testing.T) {
	f, _ := memFormat(t, map[string]string{
		"src/flat.properties": "HELLO=Hello\n# START NON-TRANSLATABLE\nURL=http://x\n# END NON-TRANSLATABLE\nGOODBYE=Bye\n",
		"src/nested.properties": "HELLO=Hello\n# START NON-TRANSLATABLE\nA=1\n# START NON-TRANSLATABLE\nB=2\n" +
			"# END NON-TRANSLATABLE\nC=3\n# END NON-TRANSLATABLE\nGOODBYE=Bye\n",
		"src/mismatch.properties": "HELLO=Hello\n# END NON-TRANSLATABLE\nGOODBYE=Bye\n",
	})

	for _, doc := range []string{"flat", "nested"} {
		res, err := f.LoadSource("src", doc)
		require.NoError(t, err, doc)
		require.Len(t, res.TextFlows, 2, doc)
		assert.Equal(t, "HELLO", res.TextFlows[0].ID)
		assert.Equal(t, "GOODBYE", res.TextFlows[1].ID)
		assert.Empty(t, res.TextFlows[1].Comment)
	}

	_, err := f.LoadSource("src", "mismatch")
	assert.ErrorIs(t, err, ErrNonTranslatableMismatch)
}

func TestFormat_LoadSource_Missing(t *testing.T) {
	f, _ := memFormat(t, nil)

	_, err := f.LoadSource("src", "absent")
	assert.Error(t, err)
}

func TestFormat_VisitTranslations(t *testing.T) {
	f, _ := memFormat(t, map[string]string{
		"src/m.properties":         "a=A\nb=B\n",
		"trans/m_de.properties":    "# translator note\na=Ah\nb=\nextra=x\n",
		"trans/m_zh_CN.properties": "a=\\u4f60\n",
	})
	src, err := f.LoadSource("src", "m")
	require.NoError(t, err)

	type visited struct {
		locale string
		tr     *domain.TranslationsResource
	}
	var got []visited
	err = f.VisitTranslations("trans", "m", src, locales, func(locale domain.LocaleMapping, tr *domain.TranslationsResource) error {
		got = append(got, visited{locale.Locale, tr})
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "de", got[0].locale)
	assert.Equal(t, []domain.TextFlowTarget{
		{ResID: "a", State: domain.StateApproved, Content: "Ah", Comment: "translator note"},
		{ResID: "b", State: domain.StateNew},
	}, got[0].tr.Targets)
	assert.Equal(t, domain.ExtensionSet{"comment"}, got[0].tr.Extensions)

	assert.Equal(t, "zh-Hans", got[1].locale)
	require.Len(t, got[1].tr.Targets, 1)
	assert.Equal(t, "你", got[1].tr.Targets[0].Content)
}

func TestFormat_VisitTranslations_VisitorError(t *testing.T) {
	f, _ := memFormat(t, map[string]string{
		"trans/m_de.properties": "a=b\n",
		"trans/m_fr.properties": "a=c\n",
	})

	calls := 0
	err := f.VisitTranslations("trans", "m", nil, locales, func(domain.LocaleMapping, *domain.TranslationsResource) error {
		calls++
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}

func TestFormat_WriteSource_RoundTrip(t *testing.T) {
	f, fs := memFormat(t, nil)
	res := &domain.Resource{
		Name: "app/messages",
		TextFlows: []domain.TextFlow{
			{ID: "hello", Content: "Hello 你", Comment: "line one\nline two"},
			{ID: "key with space", Content: "v"},
		},
	}

	require.NoError(t, f.WriteSource("out", "app/messages", res))
	content := readFile(t, fs, "out/app/messages.properties")
	assert.Contains(t, content, "# line one\n# line two\n")
	assert.Contains(t, content, `\u4f60`)

	loaded, err := f.LoadSource("out", "app/messages")
	require.NoError(t, err)
	assert.Equal(t, res.TextFlows, loaded.TextFlows)
}

func TestFormat_WriteSource_UTF8(t *testing.T) {
	fs := memfs.New()
	f := NewUTF8(fsscan.ChrootOpener(fs))

	require.NoError(t, f.WriteSource("out", "m", &domain.Resource{
		TextFlows: []domain.TextFlow{{ID: "k", Content: "你好"}},
	}))
	assert.Contains(t, readFile(t, fs, "out/m.properties"), "你好")
}

func TestFormat_WriteTranslation(t *testing.T) {
	src := &domain.Resource{TextFlows: []domain.TextFlow{
		{ID: "a", Content: "A"},
		{ID: "b", Content: "B"},
		{ID: "c", Content: "C"},
	}}
	tr := &domain.TranslationsResource{Targets: []domain.TextFlowTarget{
		{ResID: "a", State: domain.StateApproved, Content: "Ah"},
		{ResID: "b", State: domain.StateNeedReview, Content: "Bh"},
		{ResID: "c", State: domain.StateNew, Content: "Ch"},
	}}
	locale := domain.LocaleMapping{Locale: "zh-Hans", MapFrom: "zh-CN"}

	tests := []struct {
		name string
		opts driven.WriteOptions
		want map[string]string
	}{
		{"approved only", driven.WriteOptions{}, map[string]string{"a": "Ah"}},
		{"fuzzy", driven.WriteOptions{IncludeFuzzy: true}, map[string]string{"a": "Ah", "b": "Bh"}},
		{"skeletons", driven.WriteOptions{CreateSkeletons: true}, map[string]string{"a": "Ah", "b": "", "c": ""}},
		{"skeletons fuzzy", driven.WriteOptions{CreateSkeletons: true, IncludeFuzzy: true}, map[string]string{"a": "Ah", "b": "Bh", "c": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := memFormat(t, nil)
			require.NoError(t, f.WriteTranslation("trans", "m", src, tr, locale, tt.opts))

			var got map[string]string
			err := f.VisitTranslations("trans", "m", nil, domain.LocaleList{locale}, func(_ domain.LocaleMapping, read *domain.TranslationsResource) error {
				got = make(map[string]string)
				for _, target := range read.Targets {
					got[target.ResID] = target.Content
				}
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_WriteTranslation_SkeletonsWithoutSource(t *testing.T) {
	f, fs := memFormat(t, nil)
	tr := &domain.TranslationsResource{Targets: []domain.TextFlowTarget{
		{ResID: "a", State: domain.StateTranslated, Content: "Ah"},
	}}

	err := f.WriteTranslation("trans", "m", nil, tr, domain.LocaleMapping{Locale: "de"}, driven.WriteOptions{CreateSkeletons: true})
	require.NoError(t, err)
	assert.Equal(t, "a = Ah\n", readFile(t, fs, "trans/m_de.properties"))
}
