// Package loader lazily loads compiled message dictionaries per locale.
//
// A Loader is created with an import map of locale suppliers and a default
// locale. Get never blocks: the first request for a locale starts its load
// in the background and answers from the default locale, the fallback loader
// or the registry's fallback message until the data arrives.
//
//	importMap, err := loader.FSImportMap(os.DirFS("locales"), ".")
//	if err != nil {
//		return err
//	}
//	messages := loader.New(importMap, "en", loader.WithLogger(log))
//	if err := messages.WaitForDefaultLocale(ctx, false); err != nil {
//		return err
//	}
//	msg := messages.Get("inbox.summary", "de")
//
// # Failures
//
// A failing supplier fails every waiter of that load cycle. The locale keeps
// its previous data, if any, and the next request starts a new load.
// LastError reports the most recent failure.
//
// # Registry
//
// Loaders register with Default (or the registry given by WithRegistry).
// LoadAllMessagesInLocale and WaitForAllDefaultMessagesLoaded operate on
// every registered loader concurrently.
package loader
