package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_Identical(t *testing.T) {
	content := []byte("a = 1\nb = 2\n")
	assert.Empty(t, Diff("old", "new", content, content, nil))
}

func TestDiff_ChangedValue(t *testing.T) {
	old := []byte("a = 1\nmax.hh.id = 150000\nc = 3\n")
	newer := []byte("a = 1\nmax.hh.id = 200000\nc = 3\n")

	diff := Diff("model.properties", "model.properties", old, newer, &DiffOptions{Width: 120})

	assert.Contains(t, diff, "--- model.properties")
	assert.Contains(t, diff, "+++ model.properties")
	assert.Contains(t, diff, "@@ -1,3 +1,3 @@")
	assert.Contains(t, diff, "-max.hh.id = 150000")
	assert.Contains(t, diff, "+max.hh.id = 200000")
	assert.Contains(t, diff, " a = 1")
}

func TestDiff_NewFile(t *testing.T) {
	diff := Diff("/dev/null", "model.properties", nil, []byte("a = 1\nb = 2\n"), &DiffOptions{Width: 120})

	assert.Contains(t, diff, "@@ -0,0 +1,2 @@")
	assert.Contains(t, diff, "+a = 1")
	assert.Contains(t, diff, "+b = 2")
}

func TestDiff_SeparateHunks(t *testing.T) {
	var oldLines, newLines []string
	for i := 0; i < 20; i++ {
		line := "key" + string(rune('a'+i)) + " = v"
		oldLines = append(oldLines, line)
		newLines = append(newLines, line)
	}
	newLines[1] = "keyb = changed"
	newLines[18] = "keys = changed"

	diff := Diff("a", "b",
		[]byte(strings.Join(oldLines, "\n")+"\n"),
		[]byte(strings.Join(newLines, "\n")+"\n"),
		&DiffOptions{ContextLines: 1, Width: 120})

	assert.Equal(t, 2, strings.Count(diff, "@@ -"))
	assert.Contains(t, diff, "@@ -1,3 +1,3 @@")
	assert.Contains(t, diff, "@@ -18,3 +18,3 @@")
}

func TestEditScript(t *testing.T) {
	script := editScript([]string{"a", "b", "c"}, []string{"a", "c", "d"})

	var ops []string
	for _, l := range script {
		switch l.op {
		case opEqual:
			ops = append(ops, "="+l.text)
		case opAdded:
			ops = append(ops, "+"+l.text)
		case opRemoved:
			ops = append(ops, "-"+l.text)
		}
	}
	assert.Equal(t, []string{"=a", "-b", "=c", "+d"}, ops)
}

func TestTruncateLine(t *testing.T) {
	assert.Equal(t, "short", truncateLine("short", 10))
	assert.Equal(t, "abcdefg...", truncateLine("abcdefghijklmnop", 10))
	assert.Equal(t, "...", truncateLine("abcdef", 1))
}
