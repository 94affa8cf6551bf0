package loader_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/ast"
	"github.com/dmitrymomot/intl/pkg/loader"
)

func countMessage() []ast.Node {
	return []ast.Node{ast.Plural{
		Name: "count",
		Options: ast.Options{
			{Key: "=0", Value: []ast.Node{ast.Literal("none")}},
			{Key: "one", Value: []ast.Node{ast.Literal("one")}},
			{Key: "other", Value: []ast.Node{ast.Pound{}}},
		},
		Type: ast.Cardinal,
	}}
}

func assetsFS(t *testing.T) fstest.MapFS {
	t.Helper()

	cbor, err := ast.EncodeDictionaryCBOR(map[string][]ast.Node{"count": countMessage()})
	require.NoError(t, err)

	return fstest.MapFS{
		"locales/en.messages.json": {Data: []byte(`{
			"count": [[6, "count", {"=0": ["none"], "one": ["one"], "other": [[7]]}, 0, "cardinal"]],
			"greeting": "Hello"
		}`)},
		"locales/de.yaml": {Data: []byte(`
count:
  - [6, count, {other: [[7]], one: [one], "=0": [none]}, 0, cardinal]
greeting: Hallo
`)},
		"locales/fr.jsonc": {Data: []byte(`{
			// compiled by the message compiler
			"count": [[6, "count", {"=0": ["none"], "one": ["one"], "other": [[7]]}, 0, "cardinal"]],
			"greeting": "Bonjour",
		}`)},
		"locales/ja.cbor":        {Data: cbor},
		"locales/pt/common.json": {Data: []byte(`{"greeting": "Olá"}`)},
		"locales/pt/errors.json": {Data: []byte(`{"not_found": "Não encontrado"}`)},
		"locales/README.md":      {Data: []byte("ignored")},
		"locales/.hidden.json":   {Data: []byte("{")},
	}
}

func TestScanFS(t *testing.T) {
	t.Parallel()

	files, err := loader.ScanFS(assetsFS(t), "locales")
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"en": "locales/en.messages.json",
		"de": "locales/de.yaml",
		"fr": "locales/fr.jsonc",
		"ja": "locales/ja.cbor",
		"pt": "locales/pt",
	}, files)

	t.Run("duplicate locale", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"en.json": {Data: []byte(`{}`)},
			"en.yaml": {Data: []byte(`{}`)},
		}
		_, err := loader.ScanFS(fsys, ".")
		require.ErrorIs(t, err, loader.ErrInvalidAsset)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := loader.ScanFS(fstest.MapFS{}, "nope")
		require.Error(t, err)
	})
}

func TestFSImportMap(t *testing.T) {
	t.Parallel()

	importMap, err := loader.FSImportMap(assetsFS(t), "locales")
	require.NoError(t, err)

	l := newLoader(importMap, "en")
	ctx := testContext(t)
	for _, locale := range []string{"en", "de", "fr", "ja", "pt"} {
		require.NoError(t, l.Load(ctx, locale), locale)
	}

	for _, locale := range []string{"en", "de", "fr", "ja"} {
		m := l.Get("count", locale)
		require.Equal(t, locale, m.Locale())
		require.Equal(t, countMessage(), m.AST(), locale)
	}

	require.Equal(t, "Hallo", plainText(t, l.Get("greeting", "de")))
	require.Equal(t, "Bonjour", plainText(t, l.Get("greeting", "fr")))
	require.Equal(t, "Olá", plainText(t, l.Get("common.greeting", "pt")))
	require.Equal(t, "Não encontrado", plainText(t, l.Get("errors.not_found", "pt")))
}

func TestFS_InvalidAsset(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"en.json": {Data: []byte(`{"broken":`)}}
	l := newLoader(map[string]loader.Supplier{"en": loader.FS(fsys, "en.json")}, "en")
	require.ErrorIs(t, l.Load(testContext(t), "en"), loader.ErrInvalidAsset)
}

func TestDecodeAsset(t *testing.T) {
	t.Parallel()

	_, err := loader.DecodeAsset(".toml", []byte(""))
	require.Error(t, err)

	dict, err := loader.DecodeAsset(".yml", []byte("k: v\n"))
	require.NoError(t, err)
	require.Equal(t, loader.Dictionary{"k": "v"}, dict)
}
