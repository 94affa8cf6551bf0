// intlfmt formats one compiled message from a directory of locale assets.
//
// Usage:
//
//	intlfmt [flags] <key>
//
// Values are passed as a JSON object (comments and trailing commas allowed).
// With --watch the message is re-rendered whenever its locale asset changes.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/dmitrymomot/intl"
	"github.com/dmitrymomot/intl/pkg/ast"
	"github.com/dmitrymomot/intl/pkg/loader"
	"github.com/dmitrymomot/intl/pkg/logger"
	"github.com/dmitrymomot/intl/pkg/watch"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], nil, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one invocation. A nil environ reads the process environment.
func run(ctx context.Context, args []string, environ map[string]string, stdout io.Writer) error {
	cfg, err := loadConfig(environ)
	if err != nil {
		return err
	}

	var (
		values         string
		valuesFile     string
		acceptLanguage string
		watchAssets    bool
	)
	flagSet := pflag.NewFlagSet("intlfmt", pflag.ContinueOnError)
	flagSet.StringVarP(&cfg.Dir, "dir", "d", cfg.Dir, "directory of compiled locale assets")
	flagSet.StringVarP(&cfg.Locale, "locale", "l", cfg.Locale, "locale to render (default: the default locale)")
	flagSet.StringVar(&cfg.DefaultLocale, "default-locale", cfg.DefaultLocale, "fallback locale")
	flagSet.StringVarP(&cfg.Output, "output", "o", cfg.Output, "output: "+strings.Join(outputs, ", "))
	flagSet.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	flagSet.StringVar(&values, "values", "", "message values as a JSON object")
	flagSet.StringVar(&valuesFile, "values-file", "", "read message values from a JSON or JSONC file")
	flagSet.StringVar(&acceptLanguage, "accept-language", "", "pick the locale from an Accept-Language header")
	flagSet.BoolVarP(&watchAssets, "watch", "w", false, "re-render when the locale asset changes")
	flagSet.SetOutput(os.Stderr)

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("expected exactly one message key, got %d arguments", flagSet.NArg())
	}
	key := flagSet.Arg(0)

	if !validOutput(cfg.Output) {
		return fmt.Errorf("unknown output %q, expected one of: %s", cfg.Output, strings.Join(outputs, ", "))
	}

	vals, err := parseValues(values, valuesFile)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log, logger.LocaleExtractor(), logger.MessageKeyExtractor())

	importMap, err := loader.FSImportMap(os.DirFS(cfg.Dir), ".")
	if err != nil {
		return err
	}
	messages := loader.New(importMap, cfg.DefaultLocale,
		loader.WithName("intlfmt"),
		loader.WithLogger(log),
		loader.WithRegistry(loader.NewRegistry()),
	)

	locale := cfg.Locale
	if acceptLanguage != "" {
		locale = messages.Negotiate(acceptLanguage)
	}
	if locale == "" {
		locale = cfg.DefaultLocale
	}

	i18n := intl.New(intl.WithLoader(messages), intl.WithLogger(log))
	if err := messages.WaitForDefaultLocale(ctx, false); err != nil {
		return err
	}
	if err := i18n.Ready(ctx, locale); err != nil && !errors.Is(err, loader.ErrUnsupportedLocale) {
		return err
	}

	ctx = logger.WithMessageKey(logger.WithLocale(ctx, locale), key)
	if err := render(ctx, i18n, stdout, cfg.Output, key, locale, vals); err != nil {
		return err
	}
	if !watchAssets {
		return nil
	}
	return watchAndRender(ctx, i18n, messages, cfg, stdout, key, locale, vals)
}

func watchAndRender(ctx context.Context, i18n *intl.Intl, messages *loader.Loader, cfg Config, stdout io.Writer, key, locale string, vals intl.Values) error {
	w, err := watch.New(messages, watch.WithLogger(logger.New(cfg.Log)))
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.AddDir(cfg.Dir); err != nil {
		return err
	}

	changed := make(chan struct{}, 1)
	unsubscribe := messages.OnChange(func(changedLocale string) {
		if changedLocale != locale && changedLocale != messages.DefaultLocale() {
			return
		}
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			return err
		case <-changed:
			if err := waitCurrent(ctx, messages, locale); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			if err := render(ctx, i18n, stdout, cfg.Output, key, locale, vals); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
		}
	}
}

// waitCurrent waits until neither locale nor the default locale has a
// reload in flight.
func waitCurrent(ctx context.Context, messages *loader.Loader, locale string) error {
	if err := messages.WaitForDefaultLocale(ctx, true); err != nil {
		return err
	}
	if err := messages.WaitForLocaleLoaded(ctx, locale, true); err != nil && !errors.Is(err, loader.ErrUnsupportedLocale) {
		return err
	}
	return nil
}

func render(ctx context.Context, i18n *intl.Intl, stdout io.Writer, output, key, locale string, vals intl.Values) error {
	m, err := i18n.Message(key, locale)
	if err != nil {
		return err
	}

	var out string
	switch output {
	case "source":
		out = m.Reserialize()
	case "markdown":
		out, err = i18n.FormatMarkdown(ctx, m, vals)
	case "html":
		out, err = i18n.FormatHTML(ctx, m, vals)
	case "ast":
		var nodes []ast.Node
		if nodes, err = i18n.FormatAST(ctx, m, vals); err == nil {
			var data []byte
			data, err = json.Marshal(ast.Nodes(nodes))
			out = string(data)
		}
	default:
		out, err = i18n.Format(ctx, m, vals)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, out)
	return err
}

// parseValues decodes the --values flag, falling back to --values-file.
// Numbers stay json.Number so integers are not rounded through float64.
func parseValues(inline, file string) (intl.Values, error) {
	data := []byte(inline)
	if inline == "" && file != "" {
		var err error
		if data, err = os.ReadFile(file); err != nil {
			return nil, fmt.Errorf("reading values: %w", err)
		}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return intl.Values{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(string(jsonc.ToJSON(data))))
	dec.UseNumber()
	var vals map[string]any
	if err := dec.Decode(&vals); err != nil {
		return nil, fmt.Errorf("parsing values: %w", err)
	}
	return intl.Values(vals), nil
}
