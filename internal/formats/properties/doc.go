// Package properties implements the Java properties project types.
//
// Source documents are <name>.properties files under the source directory.
// Translations live in <name>_<locale>.properties under the translation
// directory, where <locale> is the local locale with '-' replaced by '_'.
//
// Two project types are provided: "properties" reads and writes
// ISO-8859-1 with \u escapes, "utf8properties" uses UTF-8.
//
// Entries between "# START NON-TRANSLATABLE" and "# END NON-TRANSLATABLE"
// comments are not pushed. Regions may nest.
package properties
