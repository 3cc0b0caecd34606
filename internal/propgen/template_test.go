package propgen

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "testdata/model.properties"

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.properties")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTemplate(t *testing.T) {
	tmpl, err := LoadTemplate(fixture)
	require.NoError(t, err)

	assert.Equal(t, fixture, tmpl.Path)
	assert.Len(t, tmpl.Lines, 6)
	assert.Equal(t, "max.hh.id = 150000\n", tmpl.Lines[1])

	assert.Equal(t, []string{
		"schedule.adjustment.parameters.file ",
		"max.hh.id ",
		"simulated.vehicle.dat.file ",
		"adjusted.schedules.output.file ",
		"inner.loop.abm.data.folder ",
		"special.purpose.models.trip.file ",
	}, tmpl.Defaults.Keys())

	v, ok := tmpl.Defaults.Get("max.hh.id ")
	require.True(t, ok)
	assert.Equal(t, "150000", v)

	v, _ = tmpl.Defaults.Get("simulated.vehicle.dat.file ")
	assert.Equal(t, "BASEPATHLOOP_PAIR/output_vehicle_#.dat", v)
}

func TestLoadTemplate_Missing(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.properties"))
	require.Error(t, err)

	var rerr *ResourceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "read", rerr.Op)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadTemplate_MissingSeparator(t *testing.T) {
	path := writeTemplate(t, "a = 1\nbroken line\nb = 2\n")

	_, err := LoadTemplate(path)
	require.Error(t, err)

	var ferr *FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 2, ferr.Line)
	assert.Equal(t, "broken line", ferr.Text)
	assert.Contains(t, err.Error(), path+":2")
}

func TestLoadTemplate_BlankLineIsFormatError(t *testing.T) {
	path := writeTemplate(t, "a = 1\n\nb = 2\n")

	_, err := LoadTemplate(path)

	var ferr *FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 2, ferr.Line)
}

func TestLoadTemplate_Empty(t *testing.T) {
	tmpl, err := LoadTemplate(writeTemplate(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 0, tmpl.Defaults.Len())
	assert.Empty(t, tmpl.Lines)
}

func TestReadTemplate_KeepsTerminators(t *testing.T) {
	lines, err := ReadTemplate(writeTemplate(t, "a = 1\r\nb = 2\nc = 3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a = 1\r\n", "b = 2\n", "c = 3"}, lines)
}

func TestParseParameters(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		key   string
		value string
	}{
		{"spaced", "a = b\n", "a ", "b"},
		{"tight", "a=b\n", "a", "b"},
		{"crlf", "a = b\r\n", "a ", "b"},
		{"no terminator", "a = b", "a ", "b"},
		{"first equals splits", "a = b = c\n", "a ", "b = c"},
		{"only one space dropped", "a =  b\n", "a ", " b"},
		{"empty value", "a = \n", "a ", ""},
		{"empty value tight", "a=\n", "a", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := ParseParameters([]string{tt.line})
			require.NoError(t, err)
			require.Equal(t, []string{tt.key}, params.Keys())
			v, _ := params.Get(tt.key)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestParseParameters_DuplicateKeepsFirstPosition(t *testing.T) {
	params, err := ParseParameters([]string{"a = 1\n", "b = 2\n", "a = 3\n"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a ", "b "}, params.Keys())
	v, _ := params.Get("a ")
	assert.Equal(t, "3", v)
}

func TestParseParameters_ErrorWithoutPath(t *testing.T) {
	_, err := ParseParameters([]string{"nothing here\n"})
	require.Error(t, err)
	assert.Equal(t, `line 1: missing '=' in "nothing here"`, err.Error())
}
