package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/bitwire/layoutfile"
	"github.com/wippyai/bitwire/wire"
)

type styles struct {
	title    lipgloss.Style
	name     lipgloss.Style
	kind     lipgloss.Style
	value    lipgloss.Style
	bytes    lipgloss.Style
	offset   lipgloss.Style
	selected lipgloss.Style
	err      lipgloss.Style
	help     lipgloss.Style
}

// newStyles returns colored styles, or plain ones when color is false.
func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		name:  lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		kind:  lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		value: lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		bytes: lipgloss.NewStyle().Foreground(lipgloss.Color("#F0E68C")),
		offset: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")),
		err:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		help: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

type outputFormat int

const (
	formatText outputFormat = iota
	formatYAML
	formatCBOR
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return formatText, nil
	case "yaml", "yml":
		return formatYAML, nil
	case "cbor":
		return formatCBOR, nil
	}
	return 0, fmt.Errorf("unknown format %q (want text, yaml or cbor)", s)
}

var cborMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("wiredump: CBOR encoder initialization failed: " + err.Error())
	}
	return em
}()

// writeValue prints a decoded value. CBOR is written raw unless stdout is
// a terminal, in which case it is shown as hex.
func writeValue(w io.Writer, format outputFormat, d *wire.Descriptor, v any, data []byte, st styles, tty bool) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	case formatCBOR:
		b, err := cborMode.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode cbor: %w", err)
		}
		if tty {
			_, err = fmt.Fprintln(w, st.bytes.Render(formatHex(b)))
			return err
		}
		_, err = w.Write(b)
		return err
	}

	var b strings.Builder
	b.WriteString(st.title.Render(d.WireName()))
	fmt.Fprintf(&b, " %d bits, %d bytes\n", d.Bits, d.ByteWidth())
	renderText(&b, d, v, "", 0, st)
	if extra := len(data) - int(d.ByteWidth()); extra > 0 {
		b.WriteString(st.offset.Render(fmt.Sprintf("(%d trailing bytes ignored)", extra)))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// renderText writes v as an indented tree following the field order of d.
// Padding is not shown.
func renderText(b *strings.Builder, d *wire.Descriptor, v any, name string, depth int, st styles) {
	indent := strings.Repeat("  ", depth)
	label := func() {
		b.WriteString(indent)
		b.WriteString(st.name.Render(name))
		b.WriteString(":")
	}
	child := depth
	if name != "" {
		child++
	}

	switch d.Kind {
	case wire.KindPad:
		return

	case wire.KindStruct:
		if name != "" {
			label()
			b.WriteByte('\n')
		}
		m, _ := v.(map[string]any)
		for _, f := range d.Fields {
			if f.Name == "" || f.Type.Kind == wire.KindPad {
				continue
			}
			renderText(b, f.Type, m[f.Name], f.Name, child, st)
		}

	case wire.KindTuple, wire.KindArray:
		if name != "" {
			label()
			b.WriteByte('\n')
		}
		items, _ := v.([]any)
		for i, item := range items {
			elem := d.Elem
			if d.Kind == wire.KindTuple {
				elem = d.Fields[i].Type
			}
			if item == nil {
				continue
			}
			renderText(b, elem, item, fmt.Sprintf("[%d]", i), child, st)
		}

	case wire.KindEnum:
		ev, _ := v.(wire.EnumValue)
		if name != "" {
			label()
			b.WriteByte(' ')
		} else {
			b.WriteString(indent)
		}
		b.WriteString(st.value.Render(ev.Variant))
		b.WriteString(st.offset.Render(fmt.Sprintf(" (%#x)", ev.Raw)))
		b.WriteByte('\n')
		if i, ok := d.VariantByName(ev.Variant); ok && d.Variants[i].Payload != nil && ev.Payload != nil {
			renderText(b, d.Variants[i].Payload, ev.Payload, "", child, st)
		}

	default:
		if name != "" {
			label()
			b.WriteByte(' ')
		} else {
			b.WriteString(indent)
		}
		b.WriteString(st.value.Render(formatLeaf(d, v)))
		b.WriteByte('\n')
	}
}

func formatLeaf(d *wire.Descriptor, v any) string {
	switch x := v.(type) {
	case uint64:
		if d.Bits >= 8 {
			return fmt.Sprintf("%d (%#x)", x, x)
		}
		return fmt.Sprintf("%d", x)
	case float32, float64:
		return fmt.Sprintf("%g", x)
	}
	return fmt.Sprintf("%v", v)
}

func printList(w io.Writer, reg *layoutfile.Registry, st styles) error {
	var b strings.Builder
	for _, name := range reg.Names() {
		d, _ := reg.Lookup(name)
		b.WriteString(st.name.Render(fmt.Sprintf("%-20s", name)))
		b.WriteString(st.kind.Render(fmt.Sprintf(" %-8s", d.Kind)))
		fmt.Fprintf(&b, " %4d bits %3d bytes\n", d.Bits, d.ByteWidth())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// printFields shows the bit map of d: offset, width and type of every node.
func printFields(w io.Writer, d *wire.Descriptor, st styles) error {
	var b strings.Builder
	b.WriteString(st.title.Render(d.WireName()))
	fmt.Fprintf(&b, " %d bits, %d bytes\n", d.Bits, d.ByteWidth())
	wire.Walk(d, func(fi wire.FieldInfo) bool {
		if fi.Depth == 0 {
			return true
		}
		b.WriteString(st.offset.Render(fmt.Sprintf("%5d +%-3d", fi.Offset, fi.Bits)))
		b.WriteString(strings.Repeat("  ", fi.Depth))
		name := fi.Path
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		b.WriteString(st.name.Render(name))
		b.WriteByte(' ')
		b.WriteString(st.kind.Render(fi.Type.WireName()))
		b.WriteByte('\n')
		return true
	})
	_, err := io.WriteString(w, b.String())
	return err
}
