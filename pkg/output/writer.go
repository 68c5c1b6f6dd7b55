package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Outputter formats and writes a full URL collection either to a file (when
// path is non-empty) or to stdout (unless silent).
type Outputter interface {
	Format(data UrlData, isLast bool) string
	Output(urls []UrlData, path string, silent bool) error
}

// CreateOutputter resolves a --format name to its Outputter, defaulting to
// plain text for unrecognized names.
func CreateOutputter(format string) Outputter {
	switch normalizeFormat(format) {
	case "json":
		return &JsonOutputter{formatter: JsonFormatter{}}
	case "csv":
		return &CsvOutputter{formatter: CsvFormatter{}}
	default:
		return &PlainOutputter{formatter: PlainFormatter{}}
	}
}

func normalizeFormat(format string) string {
	out := make([]byte, len(format))
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func writeOut(urls []UrlData, path string, silent bool, write func(w io.Writer) error) error {
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		buf := bufio.NewWriter(f)
		if err := write(buf); err != nil {
			return err
		}
		return buf.Flush()
	}

	if silent {
		return nil
	}
	return write(os.Stdout)
}

// PlainOutputter writes one formatted line per URL.
type PlainOutputter struct {
	formatter Formatter
}

func (o *PlainOutputter) Format(data UrlData, isLast bool) string {
	return o.formatter.Format(data, isLast)
}

func (o *PlainOutputter) Output(urls []UrlData, path string, silent bool) error {
	return writeOut(urls, path, silent, func(w io.Writer) error {
		for i, u := range urls {
			if _, err := io.WriteString(w, o.Format(u, i == len(urls)-1)); err != nil {
				return err
			}
		}
		return nil
	})
}

// JsonOutputter writes the collection as a single JSON array.
type JsonOutputter struct {
	formatter Formatter
}

func (o *JsonOutputter) Format(data UrlData, isLast bool) string {
	return o.formatter.Format(data, isLast)
}

func (o *JsonOutputter) Output(urls []UrlData, path string, silent bool) error {
	return writeOut(urls, path, silent, func(w io.Writer) error {
		if _, err := io.WriteString(w, "["); err != nil {
			return err
		}
		for i, u := range urls {
			if _, err := io.WriteString(w, o.Format(u, i == len(urls)-1)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "]\n")
		return err
	})
}

// CsvOutputter writes a header row (with a status column only when at
// least one entry carries a status) followed by one row per URL.
type CsvOutputter struct {
	formatter Formatter
}

func (o *CsvOutputter) Format(data UrlData, isLast bool) string {
	return o.formatter.Format(data, isLast)
}

func (o *CsvOutputter) Output(urls []UrlData, path string, silent bool) error {
	return writeOut(urls, path, silent, func(w io.Writer) error {
		hasStatus := false
		for _, u := range urls {
			if u.Status != nil {
				hasStatus = true
				break
			}
		}

		header := "url\n"
		if hasStatus {
			header = "url,status\n"
		}
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}

		for i, u := range urls {
			if _, err := io.WriteString(w, o.Format(u, i == len(urls)-1)); err != nil {
				return err
			}
		}
		return nil
	})
}
