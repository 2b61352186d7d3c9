package project

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkotlin/pkc/analyzer"
	"github.com/pkotlin/pkc/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResult(t *testing.T) {
	src := `INICIO { ENTERO a1, a2; FIN }`
	doc := FromResult(src, analyzer.Analyze(src))

	assert.Equal(t, src, doc.Code)
	assert.Equal(t, []string{"a1", "a2"}, doc.Vars)
	require.Len(t, doc.Tokens, 9)
	assert.Equal(t, &TokenEntry{Type: token.KindTypeInteger, Value: "ENTERO"}, doc.Tokens[2])
}

func TestSaveLoad(t *testing.T) {
	src := "INICIO {\nIMPRIMIR(x);\nFIN }"
	doc := FromResult(src, analyzer.Analyze(src))

	t.Run("the extension is appended when missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hello")
		title, err := Save(path, doc)
		require.NoError(t, err)
		assert.Equal(t, "hello", title)

		loaded, err := Load(path + Extension)
		require.NoError(t, err)
		assert.Equal(t, doc, loaded)
	})

	t.Run("the extension is kept when present", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hello.pk")
		title, err := Save(path, doc)
		require.NoError(t, err)
		assert.Equal(t, "hello", title)
		_, err = os.Stat(path + Extension)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("a missing file cannot be loaded", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.pk"))
		assert.Error(t, err)
	})
}

func TestWrite(t *testing.T) {
	doc := &Document{
		Code: "INICIO",
		Tokens: []*TokenEntry{
			{Type: token.KindStart, Value: "INICIO"},
		},
		Vars: []string{},
	}
	var b bytes.Buffer
	require.NoError(t, Write(&b, doc))
	assert.JSONEq(t, `{"code":"INICIO","tokens":[{"type":"START","value":"INICIO"}],"vars":[]}`, b.String())
}

func TestRead(t *testing.T) {
	t.Run("missing lists are empty", func(t *testing.T) {
		doc, err := Read(strings.NewReader(`{"code":"INICIO"}`))
		require.NoError(t, err)
		assert.Equal(t, "INICIO", doc.Code)
		assert.Empty(t, doc.Tokens)
		assert.NotNil(t, doc.Vars)
	})

	t.Run("an unknown token kind is rejected", func(t *testing.T) {
		_, err := Read(strings.NewReader(`{"code":"","tokens":[{"type":"KEYWORD","value":"x"}]}`))
		assert.Error(t, err)
	})
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "prog", Title("/tmp/dir/prog.pk"))
	assert.Equal(t, "prog", Title("prog"))
}
