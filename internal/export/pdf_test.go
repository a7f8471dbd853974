// internal/export/pdf_test.go
package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderChatPDF(t *testing.T) {
	pdf, err := RenderChatPDF("Mi chat", "Usuario: quiero un celular\nMatchTech: te recomiendo estos.")

	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]), "output must start with the PDF magic bytes")
	assert.Contains(t, string(pdf[len(pdf)-16:]), "%%EOF")
}

func TestRenderChatPDF_SpanishAccents(t *testing.T) {
	pdf, err := RenderChatPDF("Recomendación de audífonos", "El niño pidió una canción.")

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderChatPDF_EmptyContent(t *testing.T) {
	pdf, err := RenderChatPDF("Chat vacío", "")

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderChatPDF_LongTranscriptSpansPages(t *testing.T) {
	var content string
	for i := 0; i < 400; i++ {
		content += "Usuario: pregunta sobre celulares de gama media.\n"
	}

	pdf, err := RenderChatPDF("Chat largo", content)

	require.NoError(t, err)
	assert.Greater(t, len(pdf), 2000)
}
