// Package glossary implements glossary file readers for glossary push.
package glossary
