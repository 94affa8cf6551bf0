// Package watch reloads locales when their compiled assets change on disk.
//
//	w, err := watch.New(messages, watch.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	if err := w.AddDir("locales"); err != nil {
//		return err
//	}
//	go w.Run(ctx)
package watch
