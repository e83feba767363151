package pkg

// SchemaColor maps a schema type to the stroke color its param edges
// are drawn with. Unknown and null types fall back to white.
func SchemaColor(schemaType string) string {
	switch schemaType {
	case "integer", "number":
		return "#a456e5"
	case "string":
		return "#2bb74a"
	case "array":
		return "#f1ee07"
	case "boolean":
		return "#FF4747"
	default:
		return "#ffffff"
	}
}
