package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"saraban/internal/model"
	"saraban/internal/registry"
	"saraban/internal/repository"
	"saraban/internal/storage"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidPayload = errors.New("invalid attribute payload")
)

// UploadsPrefix is the public route prefix under which stored attachments
// are retrievable; FilePath values on records start with it.
const UploadsPrefix = "/uploads/"

// Attachment is an optional uploaded file accompanying a create or update.
// At most one per write.
type Attachment struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// Close releases the underlying file handle when the reader holds one.
// Multipart uploads spooled to disk keep a descriptor open until this is
// called; the handler that opened the file owns the close.
func (a *Attachment) Close() error {
	if c, ok := a.Reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// DocumentService defines the registry use cases: category-scoped CRUD with
// at-most-one attachment per write.
type DocumentService interface {
	// List returns the category's full record list, newest first.
	List(ctx context.Context, category string) ([]model.Record, error)

	// Create stores a new record, uploading the attachment first when one
	// is supplied. For the stamp category, a missing transactionKind
	// defaults to USE.
	Create(ctx context.Context, category string, attrs model.Attributes, att *Attachment) (*model.Record, error)

	// Update replaces the record's attribute bag wholesale. Without a new
	// attachment the previous file path is preserved; with one, the
	// pointer is replaced (the old object is not deleted).
	Update(ctx context.Context, category string, id int64, attrs model.Attributes, att *Attachment) (*model.Record, error)

	// Delete removes the record. Deleting a nonexistent id is not an
	// error and the attachment object is never cascaded.
	Delete(ctx context.Context, category string, id int64) error

	// OpenAttachment streams a stored attachment by its public file path.
	OpenAttachment(ctx context.Context, filePath string) (io.ReadCloser, storage.ObjectInfo, error)
}

type documentService struct {
	store storage.Storage
	repo  repository.RecordRepository
	now   func() time.Time
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(store storage.Storage, repo repository.RecordRepository) DocumentService {
	return &documentService{store: store, repo: repo, now: time.Now}
}

func (s *documentService) List(ctx context.Context, category string) ([]model.Record, error) {
	return s.repo.List(ctx, category)
}

func (s *documentService) Create(ctx context.Context, category string, attrs model.Attributes, att *Attachment) (*model.Record, error) {
	if attrs == nil {
		attrs = model.Attributes{}
	}
	applyDefaults(category, attrs)

	rec := &model.Record{Category: category, Attributes: attrs}

	var key string
	if att != nil {
		filePath, objKey, err := s.putAttachment(ctx, att)
		if err != nil {
			return nil, err
		}
		rec.FilePath = &filePath
		key = objKey
	}

	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		if key != "" {
			// Roll the upload back so a failed insert does not orphan
			// the object.
			if delErr := s.store.Delete(ctx, key); delErr != nil {
				return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) Update(ctx context.Context, category string, id int64, attrs model.Attributes, att *Attachment) (*model.Record, error) {
	if attrs == nil {
		attrs = model.Attributes{}
	}

	// Read the old row first: an attribute-only update must carry the
	// existing attachment pointer forward, not silently drop it.
	old, err := s.repo.FindByID(ctx, category, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rec := &model.Record{
		ID:         id,
		Category:   category,
		Attributes: attrs,
		FilePath:   old.FilePath,
	}
	if att != nil {
		filePath, _, err := s.putAttachment(ctx, att)
		if err != nil {
			return nil, err
		}
		// The old object stays put; attachment garbage collection is out
		// of scope.
		rec.FilePath = &filePath
	}

	n, err := s.repo.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	rec.CreatedAt = old.CreatedAt
	return rec, nil
}

func (s *documentService) Delete(ctx context.Context, category string, id int64) error {
	return s.repo.Delete(ctx, category, id)
}

func (s *documentService) OpenAttachment(ctx context.Context, filePath string) (io.ReadCloser, storage.ObjectInfo, error) {
	name := strings.TrimPrefix(filePath, UploadsPrefix)
	name = path.Base(name) // no traversal past the uploads prefix
	return s.store.Get(ctx, "uploads/"+name)
}

// putAttachment stores the upload under a collision-avoidant key and
// returns the public file path plus the object key.
func (s *documentService) putAttachment(ctx context.Context, att *Attachment) (string, string, error) {
	name := DecodeFilename(att.Filename)
	stored := strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + sanitizeFilename(name)
	key := "uploads/" + stored

	_, err := s.store.Put(ctx, key, att.Reader, storage.PutOptions{
		Size:        att.Size,
		ContentType: att.ContentType,
		Metadata:    map[string]string{"original-filename": name},
	})
	if err != nil {
		return "", "", fmt.Errorf("upload to storage: %w", err)
	}
	return UploadsPrefix + stored, key, nil
}

// applyDefaults fills category-specific defaults the form relies on.
func applyDefaults(category string, attrs model.Attributes) {
	if category == registry.Stamp && !attrs.Has(model.KeyTransactionKind) {
		attrs[model.KeyTransactionKind] = model.TxnUse
	}
}

// DecodeFilename repairs multipart filenames that arrived Latin-1 mangled.
// Browsers sending non-ASCII names without RFC 2231 encoding produce bytes
// that decode as Latin-1 but are really UTF-8; remapping each rune back to
// its byte recovers the original name. Names that are not valid UTF-8
// after the remap are left as received.
func DecodeFilename(name string) string {
	if isASCII(name) {
		return name
	}
	b, err := charmap.ISO8859_1.NewEncoder().String(name)
	if err != nil || !utf8.ValidString(b) {
		return name
	}
	return b
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// sanitizeFilename keeps the display name but strips path separators so the
// stored key stays flat under the uploads prefix.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}
