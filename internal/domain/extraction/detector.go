package extraction

import "strings"

// DetectProvider clasifica una boleta a partir del texto de sus primeras
// páginas. La señal de agua tiene precedencia sobre la de electricidad:
// un texto que contenga ambas palabras clave se clasifica como agua.
// Cualquier texto sin señal reconocible es ProviderUnknown; la detección
// nunca aborta el pipeline.
func DetectProvider(firstPages string) Provider {
	text := strings.ToLower(firstPages)
	if strings.Contains(text, "agua") {
		return ProviderAguas
	}
	if strings.Contains(text, "electricidad") {
		return ProviderEnel
	}
	return ProviderUnknown
}
