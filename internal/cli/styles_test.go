package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/product-monitor/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatters(t *testing.T) {
	assert.Contains(t, FormatSuccess("ok"), "ok")
	assert.Contains(t, FormatSuccess("ok"), SuccessIcon)
	assert.Contains(t, FormatError("falhou"), ErrorIcon)
	assert.Contains(t, FormatTitle("Resumo"), "Resumo")

	box := RenderBox("Título", "conteúdo")
	assert.Contains(t, box, "Título")
	assert.Contains(t, box, "conteúdo")
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, []string{"Classificação", "1º"}, [][]string{
		{"A Combo", "R$ 10,00"},
		{"P1P", "-"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Classificação"))
	assert.True(t, strings.HasPrefix(lines[1], "A Combo"))
	assert.Contains(t, lines[1], "R$ 10,00")
	assert.Equal(t, strings.Index(lines[1], "R$"), strings.Index(lines[2], "-"))
}

func TestLoadProgress(t *testing.T) {
	var buf bytes.Buffer
	progress := NewLoadProgress(&buf, 2)

	progress.Settled(service.ResourceClassConfig, nil)
	progress.Settled(service.ResourceProducts, errors.New("timeout"))

	assert.Contains(t, buf.String(), "2/2")
}
