package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	e := NewCSVExporter()
	out, err := e.Render(Dataset{
		Headers: []string{"Estudiante", "Nota"},
		Rows: []map[string]string{
			{"Estudiante": "María Pérez", "Nota": "95"},
			{"Estudiante": "José Núñez"},
		},
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, utf8BOM), "output must start with the BOM")

	records, err := csv.NewReader(bytes.NewReader(out[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Estudiante", "Nota"}, records[0])
	assert.Equal(t, []string{"María Pérez", "95"}, records[1])
	assert.Equal(t, "", records[2][1], "missing cell renders empty")
}

func TestCSVExporterRenderSinHeaders(t *testing.T) {
	e := NewCSVExporter()
	_, err := e.Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	e := NewPDFExporter()
	out, err := e.Render(Dataset{
		Headers: []string{"Concepto", "Valor"},
		Rows:    []map[string]string{{"Concepto": "Promedio", "Valor": "88.5"}},
	}, "Boletín")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterRenderSinHeaders(t *testing.T) {
	e := NewPDFExporter()
	_, err := e.Render(Dataset{}, "vacío")
	require.Error(t, err)
}
