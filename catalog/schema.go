package catalog

const descriptorSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "scriptPath"],
	"properties": {
		"name": {
			"type": "string",
			"minLength": 1
		},
		"description": {
			"type": "string"
		},
		"scriptPath": {
			"type": "string",
			"minLength": 1
		},
		"arguments": {
			"type": "array"
		}
	}
}`
