package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bitwire/ethercat"
	"github.com/wippyai/bitwire/layoutfile"
	"github.com/wippyai/bitwire/wire"
)

type config struct {
	layout      string
	file        string
	hex         string
	encode      string
	format      string
	list        bool
	interactive bool
	verbose     bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.layout, "layout", "", "Layout name or type expression (al-control, u4[2], be:u16)")
	flag.StringVar(&cfg.file, "file", "", "Layout file (.yaml, .yml, .toml) extending the built-in EtherCAT layouts")
	flag.StringVar(&cfg.hex, "hex", "", "Bytes to decode as hex, or - to read stdin")
	flag.StringVar(&cfg.encode, "encode", "", "YAML value file to encode, or - to read stdin")
	flag.StringVar(&cfg.format, "format", "text", "Decode output format: text, yaml or cbor")
	flag.BoolVar(&cfg.list, "list", false, "List layouts, or the fields of -layout, and exit")
	flag.BoolVar(&cfg.interactive, "i", false, "Interactive mode with TUI")
	flag.BoolVar(&cfg.verbose, "v", false, "Log layout compilation to stderr")
	flag.Parse()

	if cfg.layout == "" && !cfg.list && !cfg.interactive {
		fmt.Fprintln(os.Stderr, "Usage: wiredump -layout <name> -hex <bytes> [-format text|yaml|cbor]")
		fmt.Fprintln(os.Stderr, "       wiredump -layout <name> -encode <value.yaml>")
		fmt.Fprintln(os.Stderr, "       wiredump [-file layouts.yaml] -list [-layout <name>]")
		fmt.Fprintln(os.Stderr, "       wiredump [-file layouts.yaml] -i  (interactive mode)")
		os.Exit(1)
	}

	if cfg.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync() //nolint:errcheck
		wire.SetLogger(logger)
		layoutfile.SetLogger(logger)
	}

	reg, err := loadRegistry(cfg.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))

	if cfg.interactive {
		if err := runInteractive(reg, cfg.layout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, os.Stdin, reg, cfg, newStyles(tty), tty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadRegistry returns the built-in layouts, extended by path when set.
func loadRegistry(path string) (*layoutfile.Registry, error) {
	base := ethercat.Layouts()
	if path == "" {
		return base, nil
	}
	r, err := layoutfile.Load(path, layoutfile.WithBase(base))
	if err != nil {
		return nil, err
	}
	return base.Extend(r)
}

func run(w io.Writer, stdin io.Reader, reg *layoutfile.Registry, cfg config, st styles, tty bool) error {
	if cfg.list {
		if cfg.layout == "" {
			return printList(w, reg, st)
		}
		d, err := reg.Resolve(cfg.layout)
		if err != nil {
			return err
		}
		return printFields(w, d, st)
	}

	d, err := reg.Resolve(cfg.layout)
	if err != nil {
		return err
	}

	if cfg.encode != "" {
		return encode(w, stdin, d, cfg.encode, st)
	}
	if cfg.hex == "" {
		return fmt.Errorf("nothing to do: pass -hex or -encode")
	}

	format, err := parseOutputFormat(cfg.format)
	if err != nil {
		return err
	}

	text := cfg.hex
	if text == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(raw)
	}
	data, err := parseHex(text)
	if err != nil {
		return err
	}

	v, err := wire.Unpack(d, data)
	if err != nil {
		return err
	}
	return writeValue(w, format, d, v, data, st, tty)
}

func encode(w io.Writer, stdin io.Reader, d *wire.Descriptor, path string, st styles) error {
	v, err := readValue(path, stdin)
	if err != nil {
		return err
	}
	buf, err := wire.PackValue(d, v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, st.bytes.Render(formatHex(buf)))
	return err
}
