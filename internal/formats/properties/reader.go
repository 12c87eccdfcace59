package properties

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	"github.com/magiconair/properties"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/transync-cli/internal/logger"
)

const (
	markerStartNonTrans = "START NON-TRANSLATABLE"
	markerEndNonTrans   = "END NON-TRANSLATABLE"
)

// ErrNonTranslatableMismatch is returned for an END marker without a
// matching START.
var ErrNonTranslatableMismatch = errors.New("properties: unmatched END NON-TRANSLATABLE")

// LoadSource reads srcDir/<docName>.properties.
func (f *Format) LoadSource(srcDir, docName string) (*domain.Resource, error) {
	props, err := f.load(srcDir, sourceFile(docName))
	if err != nil {
		return nil, err
	}

	res := &domain.Resource{
		Name:        docName,
		ContentType: domain.ContentTypeTextPlain,
		Lang:        f.sourceLang,
		Extensions:  f.Extensions(),
	}

	depth := 0
	for _, key := range props.Keys() {
		var comments []string
		for _, c := range props.GetComments(key) {
			switch strings.TrimSpace(c) {
			case markerStartNonTrans:
				depth++
			case markerEndNonTrans:
				if depth == 0 {
					return nil, fmt.Errorf("%s: %w before key %q", sourceFile(docName), ErrNonTranslatableMismatch, key)
				}
				depth--
			default:
				comments = append(comments, c)
			}
		}
		if depth > 0 {
			logger.Debug("skipping non-translatable key %s in %s", key, docName)
			continue
		}

		value, _ := props.Get(key)
		res.TextFlows = append(res.TextFlows, domain.TextFlow{
			ID:      key,
			Content: value,
			Comment: strings.Join(comments, "\n"),
		})
	}
	return res, nil
}

// VisitTranslations reads <docName>_<locale>.properties for every locale
// that has a file under transDir.
func (f *Format) VisitTranslations(transDir, docName string, src *domain.Resource, locales domain.LocaleList, visit driven.TranslationVisitor) error {
	fs, err := f.open(transDir)
	if err != nil {
		return fmt.Errorf("open %s: %w", transDir, err)
	}

	for _, locale := range locales {
		name := translationFile(docName, locale)
		if _, err := fs.Stat(name); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Debug("no translation file %s", name)
				continue
			}
			return fmt.Errorf("stat %s: %w", name, err)
		}

		props, err := f.load(transDir, name)
		if err != nil {
			return err
		}
		if err := visit(locale, f.targets(props, src, name)); err != nil {
			return err
		}
	}
	return nil
}

// targets converts translation entries. Non-empty values are approved,
// empty ones are new. Keys the source does not have are dropped.
func (f *Format) targets(props *properties.Properties, src *domain.Resource, file string) *domain.TranslationsResource {
	known := make(map[string]struct{}, src.Size())
	if src != nil {
		for _, tf := range src.TextFlows {
			known[tf.ID] = struct{}{}
		}
	}

	tr := &domain.TranslationsResource{Extensions: f.Extensions()}
	for _, key := range props.Keys() {
		if src != nil {
			if _, ok := known[key]; !ok {
				logger.Debug("ignoring key %s in %s: not in source", key, file)
				continue
			}
		}

		value, _ := props.Get(key)
		state := domain.StateApproved
		if value == "" {
			state = domain.StateNew
		}
		tr.Targets = append(tr.Targets, domain.TextFlowTarget{
			ResID:   key,
			State:   state,
			Content: value,
			Comment: strings.Join(props.GetComments(key), "\n"),
		})
	}
	return tr
}

func (f *Format) load(dir, name string) (*properties.Properties, error) {
	fs, err := f.open(dir)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dir, err)
	}
	data, err := util.ReadFile(fs, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	loader := &properties.Loader{Encoding: f.encoding, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return props, nil
}
