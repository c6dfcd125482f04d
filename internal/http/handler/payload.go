package handler

import (
	"github.com/gofiber/fiber/v2"

	"saraban/internal/model"
)

// flatten converts a record to the wire shape the registry UI consumes:
// {id, ...attributes, filePath}. Attribute keys named "id" or "filePath"
// cannot shadow the envelope fields.
func flatten(rec *model.Record) fiber.Map {
	out := fiber.Map{}
	for k, v := range rec.Attributes {
		out[k] = v
	}
	out["id"] = rec.ID
	out["filePath"] = rec.FilePath
	return out
}

func flattenAll(recs []model.Record) []fiber.Map {
	out := make([]fiber.Map, len(recs))
	for i := range recs {
		out[i] = flatten(&recs[i])
	}
	return out
}
