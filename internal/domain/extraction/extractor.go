package extraction

// BillExtractor es la estrategia de extracción de una familia de boletas.
// Extract es una función pura del texto concatenado del documento: ejecutarla
// dos veces sobre el mismo texto produce exactamente el mismo resultado.
type BillExtractor interface {
	Provider() Provider
	Extract(text, file string) *Result
}

// ForProvider devuelve el extractor para el proveedor detectado.
// ok=false para ProviderUnknown.
func ForProvider(p Provider) (BillExtractor, bool) {
	switch p {
	case ProviderAguas:
		return NewAguasExtractor(), true
	case ProviderEnel:
		return NewEnelExtractor(), true
	default:
		return nil, false
	}
}
