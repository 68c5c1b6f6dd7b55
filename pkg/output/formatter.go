package output

import "fmt"

// Formatter renders a single UrlData entry. is_last matters for formats
// that need to omit a trailing separator (JSON's comma).
type Formatter interface {
	Format(data UrlData, isLast bool) string
}

// PlainFormatter renders one "url [status]" (or bare "url") per line.
type PlainFormatter struct{}

func (PlainFormatter) Format(data UrlData, _ bool) string {
	if data.Status != nil {
		return fmt.Sprintf("%s [%s]\n", data.URL, *data.Status)
	}
	return data.URL + "\n"
}

// JsonFormatter renders one JSON object per entry, comma-joined, with the
// final entry terminated by a newline instead of a comma.
type JsonFormatter struct{}

func (JsonFormatter) Format(data UrlData, isLast bool) string {
	var body string
	if data.Status != nil {
		body = fmt.Sprintf(`{"url":%q,"status":%q}`, data.URL, *data.Status)
	} else {
		body = fmt.Sprintf(`{"url":%q}`, data.URL)
	}
	if isLast {
		return body + "\n"
	}
	return body + ","
}

// CsvFormatter renders one "url,status" (or "url,") row per entry.
type CsvFormatter struct{}

func (CsvFormatter) Format(data UrlData, _ bool) string {
	if data.Status != nil {
		return fmt.Sprintf("%s,%s\n", data.URL, *data.Status)
	}
	return data.URL + ",\n"
}
