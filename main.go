package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/djherbis/atime"
	"github.com/heathj/gobrowse/charset"
	"github.com/heathj/gobrowse/fetch"
	"github.com/heathj/gobrowse/parser"
	"github.com/heathj/gobrowse/parser/spec"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tdewolff/argp"
)

// Version is the current gobrowse version.
var Version = "built from source"

const (
	formatTree   = "tree"
	formatTokens = "tokens"
	formatHTML   = "html"
)

var (
	inputs        []string
	output        string
	format        string
	scripting     bool
	charsetLabel  string
	watch         bool
	preserveTimes bool
	quiet         bool
	verbose       int
	version       bool
)

var logger = logrus.New()

func main() {
	os.Exit(run())
}

func run() int {
	f := argp.New("gobrowse")
	f.AddRest(&inputs, "inputs", "Input files or http(s) URLs, reads stdin when empty or -")
	f.AddOpt(&output, "o", "output", nil, "Output file, stdout when empty")
	f.AddOpt(&format, "", "format", formatTree, "Output format: tree, tokens or html")
	f.AddOpt(&scripting, "", "scripting", false, "Parse with scripting enabled, noscript content becomes text")
	f.AddOpt(&charsetLabel, "", "charset", nil, "Input character encoding, overrides byte order mark sniffing and meta declarations")
	f.AddOpt(&watch, "w", "watch", false, "Watch input files and parse again upon changes")
	f.AddOpt(&preserveTimes, "", "preserve-times", false, "Copy access and modification times of the input file to the output file")
	f.AddOpt(&quiet, "q", "quiet", false, "Quiet mode to suppress all diagnostics")
	f.AddOpt(argp.Count{&verbose}, "v", "verbose", nil, "Verbose mode, set twice for parse errors and three times for every step")
	f.AddOpt(&version, "", "version", false, "Version")
	f.Parse()

	if version {
		if !quiet {
			fmt.Printf("gobrowse %s\n", Version)
		}
		return 0
	}

	configureLogger(logger, quiet, verbose)

	if err := validate(); err != nil {
		logger.Error(err)
		return 1
	}

	if !watch {
		if !parseAll() {
			return 1
		}
		return 0
	}

	start := time.Now()
	parseAll()
	logger.WithField("elapsed", time.Since(start)).Info("watching for changes")

	watcher, err := NewWatcher()
	if err != nil {
		logger.Error(err)
		return 1
	}
	defer watcher.Close()
	for _, input := range inputs {
		if err := watcher.AddPath(input); err != nil {
			logger.Error(err)
			return 1
		}
	}
	changes := watcher.Run()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	for changes != nil {
		select {
		case <-c:
			watcher.Close()
		case file, ok := <-changes:
			if !ok {
				changes = nil
				break
			}
			logger.WithField("file", file).Info("changed")
			parseAll()
		}
	}
	return 0
}

// configureLogger sets the level of diagnostics: warnings by default, then
// info, debug (parse errors) and trace (every step) for each -v.
func configureLogger(l *logrus.Logger, quiet bool, verbose int) {
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case quiet:
		l.SetOutput(io.Discard)
	case 2 < verbose:
		l.SetLevel(logrus.TraceLevel)
	case 1 < verbose:
		l.SetLevel(logrus.DebugLevel)
	case 0 < verbose:
		l.SetLevel(logrus.InfoLevel)
	default:
		l.SetLevel(logrus.WarnLevel)
	}
}

func validate() error {
	switch format {
	case formatTree, formatTokens, formatHTML:
	default:
		return errors.Errorf("unknown format %q, use tree, tokens or html", format)
	}
	if charsetLabel != "" {
		if _, _, ok := charset.Lookup(charsetLabel); !ok {
			return errors.Wrapf(charset.ErrUnknownLabel, "%q", charsetLabel)
		}
	}

	if len(inputs) == 1 && inputs[0] == "-" {
		inputs = inputs[:0]
	}
	if output == "-" {
		output = ""
	}
	for _, input := range inputs {
		if input == "-" {
			return errors.New("cannot mix files and stdin as input")
		}
	}

	useStdin := len(inputs) == 0
	if watch {
		if useStdin {
			return errors.New("--watch doesn't work with stdin, specify input files")
		}
		for _, input := range inputs {
			if isURL(input) {
				return errors.Errorf("--watch doesn't work with URLs: %s", input)
			}
		}
	}
	if preserveTimes {
		if useStdin || output == "" {
			return errors.New("--preserve-times cannot be used together with stdin or stdout")
		} else if len(inputs) != 1 || isURL(inputs[0]) {
			return errors.New("--preserve-times needs exactly one input file")
		}
	}
	return nil
}

// parseAll parses every input into the output and reports whether all of
// them succeeded.
func parseAll() bool {
	w, err := openOutputFile(output)
	if err != nil {
		logger.Error(err)
		return false
	}

	ok := true
	if len(inputs) == 0 {
		ok = parseOne(w, "")
	}
	for _, input := range inputs {
		if !parseOne(w, input) {
			ok = false
		}
	}

	if w != os.Stdout {
		if err := w.Close(); err != nil {
			logger.Error(err)
			return false
		}
	}
	if ok && preserveTimes {
		if err := copyTimes(inputs[0], output); err != nil {
			logger.Warn(err)
		}
	}
	return ok
}

func parseOne(w io.Writer, input string) bool {
	name := input
	if name == "" {
		name = "stdin"
	}
	log := logger.WithField("input", name)

	start := time.Now()
	b, err := readInput(context.Background(), input)
	if err != nil {
		log.Error(err)
		return false
	}
	b, enc, err := charset.DecodeToUTF8(b, charsetLabel)
	if err != nil {
		log.Error(err)
		return false
	}
	log.WithField("charset", enc).Debug("decoded input")

	truncated, err := render(w, b, format, scripting)
	if err != nil {
		log.Error(err)
		return false
	}
	if truncated {
		log.Warn("parse stopped at an unsupported construct, output may be incomplete")
	}
	log.WithField("elapsed", time.Since(start)).Info("parsed")
	return true
}

// render writes the chosen view of the document in b. It reports whether the
// tokenizer stopped early.
func render(w io.Writer, b []byte, format string, scripting bool) (bool, error) {
	opts := []parser.Option{
		parser.WithScripting(scripting),
		parser.WithLogger(logger),
	}

	if format == formatTokens {
		tokenizer := parser.NewHTMLTokenizer(bytes.NewReader(b), opts...)
		var sb strings.Builder
		for {
			t := tokenizer.NextToken()
			sb.WriteString(t.String())
			sb.WriteByte('\n')
			if t.TokenType == parser.EndOfFileToken {
				break
			}
		}
		if err := tokenizer.Err(); err != nil {
			return false, err
		}
		_, err := io.WriteString(w, sb.String())
		return tokenizer.Truncated(), err
	}

	p := parser.NewParser(bytes.NewReader(b), opts...)
	doc, err := p.Start()
	if err != nil {
		return false, err
	}

	var out string
	switch format {
	case formatHTML:
		out = parser.SerializeDocument(doc, scripting) + "\n"
	default:
		out = spec.Dump(doc)
	}
	_, err = io.WriteString(w, out)
	return p.Truncated(), err
}

func copyTimes(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chtimes(dst, atime.Get(info), info.ModTime())
}

var fetcher = fetch.New(logger.WithField("component", "fetch"))

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}
