// internal/assistant/prompt.go
package assistant

import (
	"fmt"
	"strings"
)

const (
	// noContextSentinel keeps the prompt shape identical whether or not the
	// web search produced anything.
	noContextSentinel = "No se encontró información específica."

	snippetLimit = 250
)

// BuildPrompt assembles the full instruction prompt for one query. Entirely
// deterministic given the query and result list.
func BuildPrompt(query string, results []SearchResult) string {
	return fmt.Sprintf(`Eres MatchTech, un asistente experto en dispositivos electrónicos.

El usuario pregunta: "%s"

INFORMACIÓN DE INTERNET:
%s

REGLAS IMPORTANTES:
1. Si el usuario pide un dispositivo electrónico, DEBES recomendar SIEMPRE 5 productos en formato:

📱 Nombre del producto
• Descripción del producto (pantalla, batería, procesador, rendimiento, cámara, construcción, para qué sirve)
• Precio aproximado en COP
• Link de Mercado Libre usando este formato:
  https://listado.mercadolibre.com.co/{nombre-del-producto-sin-espacios}

2. Si menciona un presupuesto, respeta ese rango.

3. Debes ser descriptivo y claro, estilo experto amable.

4. Prohibido mencionar "búsquedas web", "Tavily", "fuente", ni nada técnico.

5. Responde en texto plano.

RESPUESTA:`, query, formatContext(results))
}

// formatContext renders the retrieved results in input order, or the sentinel
// when there is nothing to show.
func formatContext(results []SearchResult) string {
	if len(results) == 0 {
		return noContextSentinel
	}

	sections := make([]string, 0, len(results))
	for _, r := range results {
		sections = append(sections, fmt.Sprintf(
			"Título: %s\nContenido: %s...\nURL: %s",
			r.Title, truncate(r.Content, snippetLimit), r.URL,
		))
	}
	return strings.Join(sections, "\n\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
