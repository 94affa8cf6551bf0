package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/intl/pkg/ast"
)

// Static returns a Supplier serving dict.
func Static(dict Dictionary) Supplier {
	return func(context.Context) (Dictionary, error) {
		return maps.Clone(dict), nil
	}
}

// FS returns a Supplier reading a compiled asset from fsys on every load.
// The format follows the extension: .json, .jsonc, .yaml/.yml or .cbor.
// A directory is read as namespaces: {dir}/{namespace}.{ext} files whose
// keys are prefixed with "namespace.".
func FS(fsys fs.FS, name string) Supplier {
	return func(ctx context.Context) (Dictionary, error) {
		info, err := fs.Stat(fsys, name)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return readAsset(fsys, name)
		}
		return readNamespaces(ctx, fsys, name)
	}
}

// FSImportMap builds an import map from the assets in dir (see ScanFS).
func FSImportMap(fsys fs.FS, dir string) (map[string]Supplier, error) {
	files, err := ScanFS(fsys, dir)
	if err != nil {
		return nil, err
	}
	importMap := make(map[string]Supplier, len(files))
	for locale, name := range files {
		importMap[locale] = FS(fsys, name)
	}
	return importMap, nil
}

// ScanFS maps locales to their asset paths in dir. Accepted entries are
// {locale}.{ext}, {locale}.messages.{ext} and {locale}/ namespace
// directories. Two assets for one locale are an error.
//
// Example structure:
//
//	en.messages.json
//	de.yaml
//	fr/common.json
//	fr/errors.json
func ScanFS(fsys fs.FS, dir string) (map[string]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", dir, err)
	}

	files := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		locale := name
		if !entry.IsDir() {
			ext := strings.ToLower(path.Ext(name))
			if !supportedExt(ext) {
				continue
			}
			locale = strings.TrimSuffix(strings.TrimSuffix(name, path.Ext(name)), ".messages")
		}

		full := path.Join(dir, name)
		if prev, dup := files[locale]; dup {
			return nil, fmt.Errorf("%w: locale %q has both %q and %q", ErrInvalidAsset, locale, prev, full)
		}
		files[locale] = full
	}
	return files, nil
}

func supportedExt(ext string) bool {
	switch ext {
	case ".json", ".jsonc", ".yaml", ".yml", ".cbor":
		return true
	default:
		return false
	}
}

func readNamespaces(ctx context.Context, fsys fs.FS, dir string) (Dictionary, error) {
	dict := make(Dictionary)
	err := fs.WalkDir(fsys, dir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !supportedExt(strings.ToLower(path.Ext(filePath))) {
			return nil
		}

		rel := strings.TrimPrefix(filePath, dir+"/")
		namespace := strings.ReplaceAll(strings.TrimSuffix(rel, path.Ext(rel)), "/", ".")

		part, err := readAsset(fsys, filePath)
		if err != nil {
			return err
		}
		for key, value := range part {
			dict[namespace+"."+key] = value
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dict, nil
}

func readAsset(fsys fs.FS, name string) (Dictionary, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}

	dict, err := DecodeAsset(strings.ToLower(path.Ext(name)), data)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %w", ErrInvalidAsset, name, err)
	}
	return dict, nil
}

// DecodeAsset decodes a compiled asset in the format named by ext.
// JSON values stay raw so option order survives until the message is parsed.
func DecodeAsset(ext string, data []byte) (Dictionary, error) {
	switch ext {
	case ".json":
		return decodeJSON(data)
	case ".jsonc":
		return decodeJSON(jsonc.ToJSON(data))
	case ".yaml", ".yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return Dictionary(raw), nil
	case ".cbor":
		var raw map[string]any
		if err := ast.UnmarshalCBOR(data, &raw); err != nil {
			return nil, err
		}
		return Dictionary(raw), nil
	default:
		return nil, fmt.Errorf("unsupported asset format %q", ext)
	}
}

func decodeJSON(data []byte) (Dictionary, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	dict := make(Dictionary, len(raw))
	for key, value := range raw {
		dict[key] = value
	}
	return dict, nil
}
