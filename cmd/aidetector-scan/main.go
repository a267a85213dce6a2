// Command aidetector-scan scores a file or inline text with the configured backend
// and prints the result, without touching accounts or quotas
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"aidetector/internal/core/detection"
	"aidetector/internal/platform/config"
	perr "aidetector/internal/platform/errors"

	detectmod "aidetector/internal/services/api/detect/module"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "aidetector-scan:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, out io.Writer) error {
	o := detectmod.FromConfig(config.New())

	fs := flag.NewFlagSet("aidetector-scan", flag.ContinueOnError)
	var (
		file    = fs.String("file", "", "read text from this file; - for stdin")
		text    = fs.String("text", "", "inline text to score")
		backend = fs.String("backend", o.Backend, "heuristic or remote")
		minLen  = fs.Int("min-length", o.MinLength, "minimum text length in runes; whitespace-only text is always rejected")
		asJSON  = fs.Bool("json", false, "print the result as JSON")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	body, err := input(*file, *text, stdin)
	if err != nil {
		return err
	}

	switch *backend {
	case detectmod.BackendHeuristic, detectmod.BackendRemote:
	default:
		return fmt.Errorf("unknown backend %q", *backend)
	}
	o.Backend = *backend

	c := detectmod.NewClassifier(o)
	pipe := detection.NewPipeline(c, detection.WithMinLength(*minLen))

	res, err := pipe.Run(ctx, body)
	if err != nil {
		if u, ok := detection.Upstream(err); ok {
			return fmt.Errorf("%s: %w", perr.CodeOf(err), u)
		}
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err = fmt.Fprintf(out, "%d%% %s (%s confidence, %d chars, %s)\n",
		res.AIProbability, res.Assessment, res.Confidence, res.TextLength, res.Model)
	return err
}

func input(file, text string, stdin io.Reader) (string, error) {
	switch {
	case file != "" && text != "":
		return "", errors.New("use one of -file or -text")
	case text != "":
		return text, nil
	case file == "-":
		b, err := io.ReadAll(stdin)
		return string(b), err
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return "", errors.New("one of -file or -text is required")
}

