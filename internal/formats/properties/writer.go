package properties

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	"github.com/magiconair/properties"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
)

// WriteSource writes srcDir/<docName>.properties.
func (f *Format) WriteSource(srcDir, docName string, res *domain.Resource) error {
	props := newProperties()
	for _, tf := range res.TextFlows {
		if err := set(props, tf.ID, tf.Content, tf.Comment); err != nil {
			return err
		}
	}
	return f.write(srcDir, sourceFile(docName), props)
}

// WriteTranslation writes transDir/<docName>_<locale>.properties. With
// skeletons every source key is written, untranslated ones empty.
// Otherwise only usable translations are written.
func (f *Format) WriteTranslation(transDir, docName string, src *domain.Resource, tr *domain.TranslationsResource, locale domain.LocaleMapping, opts driven.WriteOptions) error {
	props := newProperties()

	if opts.CreateSkeletons && src != nil {
		for _, tf := range src.TextFlows {
			var content, comment string
			if target, ok := tr.Target(tf.ID); ok && usable(target.State, opts) {
				content, comment = target.Content, target.Comment
			}
			if err := set(props, tf.ID, content, comment); err != nil {
				return err
			}
		}
	} else if tr != nil {
		for _, target := range tr.Targets {
			if !usable(target.State, opts) {
				continue
			}
			if err := set(props, target.ResID, target.Content, target.Comment); err != nil {
				return err
			}
		}
	}

	return f.write(transDir, translationFile(docName, locale), props)
}

func usable(state domain.ContentState, opts driven.WriteOptions) bool {
	return state.IsTranslated() || (opts.IncludeFuzzy && state == domain.StateNeedReview)
}

func newProperties() *properties.Properties {
	props := properties.NewProperties()
	props.DisableExpansion = true
	return props
}

func set(props *properties.Properties, key, value, comment string) error {
	if _, _, err := props.Set(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if comment != "" {
		props.SetComments(key, strings.Split(comment, "\n"))
	}
	return nil
}

func (f *Format) write(dir, name string, props *properties.Properties) error {
	fs, err := f.open(dir)
	if err != nil {
		return fmt.Errorf("open %s: %w", dir, err)
	}
	if parent := path.Dir(name); parent != "." {
		if err := fs.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", parent, err)
		}
	}

	var buf bytes.Buffer
	if _, err := props.WriteComment(&buf, "# ", f.encoding); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := util.WriteFile(fs, name, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
