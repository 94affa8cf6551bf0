// Package intl formats compiled ICU messages with rich-text tags and loads
// them lazily per locale.
//
// Messages are compiled ahead of time into a compact AST (see pkg/ast) and
// shipped as one asset per locale. A Loader serves them without blocking:
// while a locale loads, lookups fall back to the default locale, then to any
// chained loader, then to an empty message.
//
// # Quick Start
//
//	importMap, err := loader.FSImportMap(os.DirFS("locales"), ".")
//	if err != nil {
//	    return err
//	}
//	messages := loader.New(importMap, "en", loader.WithLogger(log))
//
//	i18n := intl.New(
//	    intl.WithLoader(messages),
//	    intl.WithLogger(log),
//	)
//	if err := i18n.Ready(ctx, "en"); err != nil {
//	    return err
//	}
//
//	s, err := i18n.Translate(ctx, "inbox.summary", "de", intl.Values{
//	    "name":  "Ada",
//	    "count": 3,
//	})
//
// # Output builders
//
// Format renders plain text, FormatMarkdown renders escaped Markdown,
// FormatHTML renders sanitized HTML and FormatAST keeps rich-text tags as
// nodes. Bind accepts any BuilderFactory for custom output types:
//
//	parts, err := intl.Bind(ctx, i18n, newSpanBuilder, msg, values)
//
// # Hooks
//
// A tag whose name does not start with "$" calls the hook of the same name
// in Values with its bound children:
//
//	values := intl.Values{
//	    "em": func(children []string) string {
//	        return "<" + strings.Join(children, "") + ">"
//	    },
//	}
//
// # Reloading
//
// Loader.Invalidate drops cached messages and reloads a locale. Package
// watch calls it when compiled assets change on disk.
package intl
