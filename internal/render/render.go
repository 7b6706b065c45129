// Package render prints lookup results for the phonedata CLI.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bft-labs/phonedata/pkg/phonedata"
)

// Formats understood by New.
const (
	Text = "text"
	JSON = "json"
)

// result is one JSON output line.
type result struct {
	Number string `json:"number"`
	*phonedata.PhoneInfo
	Error string `json:"error,omitempty"`
}

// Printer writes one line per lookup. Text output is column aligned and
// buffered until Flush.
type Printer struct {
	format string
	enc    *json.Encoder
	tw     *tabwriter.Writer
}

// New returns a Printer writing format to w.
func New(w io.Writer, format string) (*Printer, error) {
	p := &Printer{format: format}
	switch format {
	case JSON:
		p.enc = json.NewEncoder(w)
		p.enc.SetEscapeHTML(false)
	case Text:
		p.tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return p, nil
}

// Result prints a resolved number.
func (p *Printer) Result(number string, info phonedata.PhoneInfo) error {
	if p.enc != nil {
		return p.enc.Encode(result{Number: number, PhoneInfo: &info})
	}
	_, err := fmt.Fprintf(p.tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		number, info.Province, info.City, info.ZipCode, info.AreaCode, info.CardType)
	return err
}

// Failure prints a number that could not be resolved.
func (p *Printer) Failure(number string, lookupErr error) error {
	if p.enc != nil {
		return p.enc.Encode(result{Number: number, Error: lookupErr.Error()})
	}
	_, err := fmt.Fprintf(p.tw, "%s\terror: %v\n", number, lookupErr)
	return err
}

// Flush writes buffered text output.
func (p *Printer) Flush() error {
	if p.tw != nil {
		return p.tw.Flush()
	}
	return nil
}
