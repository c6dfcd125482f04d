package handler

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"saraban/internal/model"
	"saraban/internal/service"
)

// parseAttachment extracts the optional single file part of a multipart
// write. Returns nil when the request carries no file.
func parseAttachment(c *fiber.Ctx) (*service.Attachment, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		// Missing part, not a malformed request.
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &service.Attachment{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
	}, nil
}

// parseAttributes decodes the multipart "data" field, a JSON string of the
// attribute bag. An empty field means an empty bag; malformed JSON is the
// one distinct client-error kind of the write path.
func parseAttributes(c *fiber.Ctx) (model.Attributes, error) {
	raw := c.FormValue("data")
	if raw == "" {
		return model.Attributes{}, nil
	}
	var attrs model.Attributes
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return nil, service.ErrInvalidPayload
	}
	return attrs, nil
}

// ListRecords returns the category's full record list, newest first, in the
// flattened wire shape.
func ListRecords(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := svc.List(c.UserContext(), c.Params("category"))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		}
		return c.JSON(flattenAll(recs))
	}
}

// CreateRecord stores a new record from a multipart form: a JSON "data"
// field and at most one "file" part.
func CreateRecord(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		attrs, err := parseAttributes(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "data field is not valid JSON")
		}
		att, err := parseAttachment(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		if att != nil {
			defer att.Close()
		}

		rec, err := svc.Create(c.UserContext(), c.Params("category"), attrs, att)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		}
		return c.JSON(flatten(rec))
	}
}

// UpdateRecord replaces a record's attributes wholesale; the existing
// attachment pointer survives unless a new file part is supplied.
func UpdateRecord(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		attrs, err := parseAttributes(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "data field is not valid JSON")
		}
		att, err := parseAttachment(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		if att != nil {
			defer att.Close()
		}

		rec, err := svc.Update(c.UserContext(), c.Params("category"), id, attrs, att)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "record not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		}
		return c.JSON(flatten(rec))
	}
}

// DeleteRecord removes a record. Deleting an id that does not exist is
// still a success, matching the registry UI's expectations.
func DeleteRecord(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), c.Params("category"), id); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		}
		return c.JSON(fiber.Map{"message": "Deleted"})
	}
}

// ServeUpload streams a stored attachment back under the public /uploads
// prefix.
func ServeUpload(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		if name == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PATH", "missing file name")
		}
		rc, info, err := svc.OpenAttachment(c.UserContext(), service.UploadsPrefix+name)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
		}
		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		return c.SendStream(rc, int(info.Size))
	}
}
