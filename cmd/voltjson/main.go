// voltjson validates and compacts JSON documents.
//
// Input comes from the files named on the command line, or stdin when
// there are none. Compressed input is inflated first (--encoding, or
// "auto" to sniff the header), and JSONC comments and trailing commas can
// be stripped with --jsonc. Each document is checked for exactly one
// well-formed value; with --compact the value is also written to stdout
// with insignificant whitespace removed, one document per line.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/biggeezerdevelopment/voltjson"
	"github.com/biggeezerdevelopment/voltjson/buffer"
	"github.com/biggeezerdevelopment/voltjson/inflate"
)

// errInvalid reports that at least one document failed validation; the
// details have already been logged.
var errInvalid = errors.New("invalid input")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	compact    bool
	jsonc      bool
	encoding   string
	configPath string
	logLevel   string
	logFormat  string
	maxSize    int64
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("voltjson", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.BoolVarP(&opts.compact, "compact", "c", false, "write each document compacted to stdout")
	flagSet.BoolVar(&opts.jsonc, "jsonc", false, "strip comments and trailing commas before validating")
	flagSet.StringVarP(&opts.encoding, "encoding", "e", "none", "input compression: none, auto, zlib, gzip, brotli, lz4, zstd")
	flagSet.StringVar(&opts.configPath, "config", "", "path to a YAML serializer config")
	flagSet.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	flagSet.Int64Var(&opts.maxSize, "max-size", -1, "maximum decompressed document size in bytes (overrides config; 0 = unlimited)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	logger, err := newLogger(stderr, opts.logLevel, opts.logFormat)
	if err != nil {
		return err
	}

	cfg := voltjson.DefaultConfig()
	if opts.configPath != "" {
		if cfg, err = voltjson.LoadConfig(opts.configPath); err != nil {
			return err
		}
	}
	if opts.maxSize >= 0 {
		cfg.MaxInputSize = opts.maxSize
	}

	s := voltjson.New(nil, voltjson.WithConfig(cfg), voltjson.WithLogger(logger))

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	inputs := flagSet.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	failed := 0
	for _, name := range inputs {
		if err := process(s, name, stdin, out, opts, cfg.MaxInputSize, logger); err != nil {
			var syntaxErr *voltjson.SyntaxError
			if !errors.As(err, &syntaxErr) && !errors.Is(err, buffer.ErrTooLarge) {
				return fmt.Errorf("%s: %w", name, err)
			}
			logger.Error("invalid document", "input", name, "error", err)
			failed++
			continue
		}
		logger.Debug("valid document", "input", name)
	}
	if failed > 0 {
		return errInvalid
	}
	return nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}
	handlerOptions := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, handlerOptions)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOptions)), nil
	}
	return nil, fmt.Errorf("invalid --log-format %q (supported: text, json)", format)
}

func process(s *voltjson.Serializer, name string, stdin io.Reader, out io.Writer, opts options, limit int64, logger *slog.Logger) error {
	var src io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	enc, src, err := resolveEncoding(opts.encoding, src)
	if err != nil {
		return err
	}
	if enc != inflate.None {
		logger.Debug("inflating input", "input", name, "encoding", enc.String())
	}

	doc := buffer.New[byte](0, nil)
	defer doc.Release()
	if _, err := inflate.ReadAll(&doc, src, enc, limit); err != nil {
		return err
	}

	data := doc.View()
	if opts.jsonc {
		data = jsonc.ToJSON(data)
	}

	raw, err := voltjson.ReadWith(s, voltjson.Raw(), data)
	if err != nil {
		return err
	}
	if !opts.compact {
		return nil
	}
	b, err := voltjson.WriteWith(s, voltjson.Raw(), raw)
	if err != nil {
		return err
	}
	defer b.Release()
	b.Push('\n')
	_, err = out.Write(b.View())
	return err
}

// resolveEncoding parses the --encoding flag. For "auto" it peeks at the
// head of src and returns a reader that still yields those bytes.
func resolveEncoding(name string, src io.Reader) (inflate.Encoding, io.Reader, error) {
	if strings.EqualFold(name, "auto") {
		br := bufio.NewReader(src)
		head, err := br.Peek(4)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return inflate.None, nil, err
		}
		return inflate.Detect(bytes.Clone(head)), br, nil
	}
	enc, err := inflate.ParseEncoding(strings.ToLower(name))
	return enc, src, err
}
