package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocaleMapping(t *testing.T) {
	tests := []struct {
		in      string
		want    LocaleMapping
		wantErr bool
	}{
		{"de", LocaleMapping{Locale: "de"}, false},
		{"zh-Hans:zh_CN", LocaleMapping{Locale: "zh-Hans", MapFrom: "zh_CN"}, false},
		{" fr : fr_FR ", LocaleMapping{Locale: "fr", MapFrom: "fr_FR"}, false},
		{"", LocaleMapping{}, true},
		{":alias", LocaleMapping{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocaleMapping(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocaleMapping_JavaLocale(t *testing.T) {
	assert.Equal(t, "pt_BR", LocaleMapping{Locale: "pt-BR"}.JavaLocale())
	assert.Equal(t, "zh_CN", LocaleMapping{Locale: "zh-Hans", MapFrom: "zh-CN"}.JavaLocale())
}

func TestLocaleList_String(t *testing.T) {
	l := LocaleList{{Locale: "de"}, {Locale: "zh-Hans", MapFrom: "zh_CN"}}
	assert.Equal(t, "[de, zh-Hans(zh_CN)]", l.String())
}

func TestLocaleList_Restrict(t *testing.T) {
	l := LocaleList{{Locale: "de"}, {Locale: "fr"}, {Locale: "pt-BR"}}

	t.Run("empty keeps all", func(t *testing.T) {
		got, err := l.Restrict(nil)
		require.NoError(t, err)
		assert.Equal(t, l, got)
	})

	t.Run("java form and order", func(t *testing.T) {
		got, err := l.Restrict([]string{"pt_BR", "de"})
		require.NoError(t, err)
		assert.Equal(t, LocaleList{{Locale: "pt-BR"}, {Locale: "de"}}, got)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := l.Restrict([]string{"ja"})
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})
}
