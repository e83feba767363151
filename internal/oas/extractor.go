package oas

import "encoding/json"

// Parameters is a bucketed parameter tree. For requests the buckets are
// query/body/path/cookie/header; for responses they are "Status Codes",
// "headers" and one "body (<code>)" bucket per declared status code.
type Parameters map[string][]map[string]any

const noDescription = "No description available"

// DeepCopy returns a structurally independent copy of the tree, so a
// consumer can strip buckets without touching the shared original.
func (slf Parameters) DeepCopy() Parameters {
	if slf == nil {
		return nil
	}
	raw, err := json.Marshal(slf)
	if err != nil {
		return Parameters{}
	}
	var out Parameters
	if err := json.Unmarshal(raw, &out); err != nil {
		return Parameters{}
	}
	return out
}

// EmptyParameters is injected when a graph is materialized without
// endpoint context (playbooks, integrations).
func EmptyParameters() Parameters {
	return Parameters{}
}

// RequestParameters extracts the operation's declared parameters,
// bucketed by their "in" location, merged with the request-body
// properties. Schema types are passed through verbatim, never coerced.
func (slf Document) RequestParameters(operation map[string]any) Parameters {
	parameters := Parameters{
		"query":  {},
		"body":   {},
		"path":   {},
		"cookie": {},
		"header": {},
	}

	parameters["body"] = slf.requestBodyProperties(operation)

	declared, _ := operation["parameters"].([]any)
	for _, entry := range declared {
		param, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		switch param["in"] {
		case "query":
			parameters["query"] = append(parameters["query"], param)
		case "body":
			// Swagger 2 style; OpenAPI 3 moved these to requestBody.
			parameters["body"] = append(parameters["body"], param)
		case "path":
			parameters["path"] = append(parameters["path"], param)
		case "cookie":
			parameters["cookie"] = append(parameters["cookie"], param)
		case "header":
			parameters["header"] = append(parameters["header"], param)
		}
	}
	return parameters
}

// ResponseParameters extracts per-status-code body properties plus one
// flat header list aggregated across every status code. The "Status
// Codes" bucket is always present, even for codes without a body.
func (slf Document) ResponseParameters(operation map[string]any) Parameters {
	responseParameters := Parameters{
		"Status Codes": {},
		"headers":      {},
	}

	responses, _ := operation["responses"].(map[string]any)
	for statusCode := range responses {
		responseParameters["body ("+statusCode+")"] = []map[string]any{}
	}

	for _, statusCode := range sortedKeys(responses) {
		response, ok := responses[statusCode].(map[string]any)
		if !ok {
			continue
		}

		statusCodeDetail := map[string]any{
			"name":        statusCode,
			"schema":      map[string]any{"type": nil},
			"description": response["description"],
		}

		if content, ok := response["content"].(map[string]any); ok {
			bucket := "body (" + statusCode + ")"
			for _, contentType := range sortedKeys(content) {
				media, ok := content[contentType].(map[string]any)
				if !ok {
					continue
				}
				if schema, ok := media["schema"].(map[string]any); ok {
					list := responseParameters[bucket]
					slf.extractSchemaProperties(schema, &list)
					responseParameters[bucket] = list
					statusCodeDetail["schema"] = map[string]any{"type": "null"}
				}
			}
		}

		if headers, ok := response["headers"].(map[string]any); ok {
			for _, headerName := range sortedKeys(headers) {
				header, ok := headers[headerName].(map[string]any)
				if !ok {
					continue
				}
				schema, _ := header["schema"].(map[string]any)
				if ref, ok := schema["$ref"].(string); ok {
					if resolved := slf.ResolveRef(ref); resolved != nil {
						schema = resolved
					}
				}
				description := noDescription
				if d, ok := header["description"].(string); ok && d != "" {
					description = d
				}
				responseParameters["headers"] = append(responseParameters["headers"], map[string]any{
					"name":        headerName,
					"schema":      map[string]any{"type": schema["type"]},
					"description": description,
				})
			}
		}

		responseParameters["Status Codes"] = append(responseParameters["Status Codes"], statusCodeDetail)
	}

	return responseParameters
}

// requestBodyProperties flattens requestBody.content[*].schema into one
// entry per concrete property, chasing $ref chains as needed.
func (slf Document) requestBodyProperties(operation map[string]any) []map[string]any {
	parameters := []map[string]any{}

	requestBody, ok := operation["requestBody"].(map[string]any)
	if !ok {
		return parameters
	}
	content, ok := requestBody["content"].(map[string]any)
	if !ok {
		return parameters
	}

	for _, contentType := range sortedKeys(content) {
		media, ok := content[contentType].(map[string]any)
		if !ok {
			continue
		}
		if schema, ok := media["schema"].(map[string]any); ok {
			slf.extractSchemaProperties(schema, &parameters)
		}
	}
	return parameters
}

// extractSchemaProperties follows $ref until concrete properties are
// reached, emitting one {name, schema{type}, description} entry per
// property. Unresolvable schemas contribute nothing, and a reference
// already seen on the chain ends it, so cyclic documents degrade to
// whatever was collected before the cycle closed.
func (slf Document) extractSchemaProperties(schema map[string]any, out *[]map[string]any) {
	slf.collectSchemaProperties(schema, out, map[string]bool{})
}

func (slf Document) collectSchemaProperties(schema map[string]any, out *[]map[string]any, seen map[string]bool) {
	if properties, ok := schema["properties"].(map[string]any); ok {
		for _, propName := range sortedKeys(properties) {
			prop, ok := properties[propName].(map[string]any)
			if !ok {
				continue
			}
			description := noDescription
			if d, ok := prop["description"].(string); ok && d != "" {
				description = d
			}
			*out = append(*out, map[string]any{
				"name":        propName,
				"schema":      map[string]any{"type": prop["type"]},
				"description": description,
			})
		}
		return
	}
	if ref, ok := schema["$ref"].(string); ok {
		if seen[ref] {
			return
		}
		seen[ref] = true
		if resolved := slf.ResolveRef(ref); resolved != nil {
			slf.collectSchemaProperties(resolved, out, seen)
		}
	}
}
