package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainFormatter(t *testing.T) {
	f := PlainFormatter{}
	assert.Equal(t, "https://example.com\n", f.Format(New("https://example.com"), false))
	assert.Equal(t, "https://example.com [200 OK]\n", f.Format(WithStatus("https://example.com", "200 OK"), true))
}

func TestJsonFormatter(t *testing.T) {
	f := JsonFormatter{}
	assert.Equal(t, `{"url":"https://example.com"},`, f.Format(New("https://example.com"), false))
	assert.Equal(t, "{\"url\":\"https://example.com\"}\n", f.Format(New("https://example.com"), true))
	assert.Equal(t, `{"url":"https://example.com","status":"200 OK"},`, f.Format(WithStatus("https://example.com", "200 OK"), false))
}

func TestCsvFormatter(t *testing.T) {
	f := CsvFormatter{}
	assert.Equal(t, "https://example.com,\n", f.Format(New("https://example.com"), false))
	assert.Equal(t, "https://example.com,200 OK\n", f.Format(WithStatus("https://example.com", "200 OK"), true))
}

func TestCreateOutputterSelectsByFormat(t *testing.T) {
	assert.IsType(t, &JsonOutputter{}, CreateOutputter("json"))
	assert.IsType(t, &JsonOutputter{}, CreateOutputter("JSON"))
	assert.IsType(t, &CsvOutputter{}, CreateOutputter("csv"))
	assert.IsType(t, &PlainOutputter{}, CreateOutputter("plain"))
	assert.IsType(t, &PlainOutputter{}, CreateOutputter("unknown"))
}

func TestFromString(t *testing.T) {
	d := FromString("https://example.com - 200 OK")
	require.NotNil(t, d.Status)
	assert.Equal(t, "https://example.com", d.URL)
	assert.Equal(t, "200 OK", *d.Status)

	bare := FromString("https://example.com")
	assert.Nil(t, bare.Status)
}

func TestPlainOutputterWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	o := CreateOutputter("plain")
	err := o.Output([]UrlData{New("https://a.com"), WithStatus("https://b.com", "200 OK")}, path, false)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://a.com\nhttps://b.com [200 OK]\n", string(content))
}

func TestJsonOutputterWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	o := CreateOutputter("json")
	err := o.Output([]UrlData{New("https://a.com"), New("https://b.com")}, path, false)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"url":"https://a.com"},{"url":"https://b.com"}`+"\n]\n", string(content))
}

func TestCsvOutputterHeaderReflectsStatusPresence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	o := CreateOutputter("csv")
	err := o.Output([]UrlData{New("https://a.com")}, path, false)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "url\nhttps://a.com,\n", string(content))

	path2 := filepath.Join(t.TempDir(), "out2.csv")
	err = o.Output([]UrlData{WithStatus("https://a.com", "200 OK")}, path2, false)
	require.NoError(t, err)
	content2, err := os.ReadFile(path2)
	require.NoError(t, err)
	assert.Equal(t, "url,status\nhttps://a.com,200 OK\n", string(content2))
}

func TestOutputterSilentSkipsStdout(t *testing.T) {
	o := CreateOutputter("plain")
	err := o.Output([]UrlData{New("https://a.com")}, "", true)
	require.NoError(t, err)
}
