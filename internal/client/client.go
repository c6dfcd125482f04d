// Package client is the Go consumer of the registry API, used by the
// terminal watcher and suitable for scripting against a running server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"saraban/internal/model"
)

// Client talks to a running registry server over HTTP.
type Client struct {
	BaseURL string
	client  *http.Client
}

// New creates a Client against the given base URL, e.g. "http://localhost:5000".
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type apiError struct {
	RequestID string `json:"request_id"`
	Error     struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload apiError
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Code != "" {
		return fmt.Errorf("%s: %s (%s)", resp.Status, payload.Error.Message, payload.Error.Code)
	}
	return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
}

// unflatten rebuilds a Record from the wire shape, where attributes sit at
// the top level next to id and filePath.
func unflatten(category string, raw map[string]any) model.Record {
	rec := model.Record{Category: category, Attributes: model.Attributes{}}
	for k, v := range raw {
		switch k {
		case "id":
			if f, ok := v.(float64); ok {
				rec.ID = int64(f)
			}
		case "filePath":
			if s, ok := v.(string); ok {
				rec.FilePath = &s
			}
		default:
			rec.Attributes[k] = v
		}
	}
	return rec
}

// List fetches a category's records, newest first.
func (c *Client) List(ctx context.Context, category string) ([]model.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/docs/"+category, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var raw []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	recs := make([]model.Record, 0, len(raw))
	for _, m := range raw {
		recs = append(recs, unflatten(category, m))
	}
	return recs, nil
}

// Login authenticates and returns the user's profile.
func (c *Client) Login(ctx context.Context, username, password string) (*model.User, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var user model.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &user, nil
}

// Upload pairs a file's bytes with its name for a multipart write.
type Upload struct {
	Name   string
	Reader io.Reader
}

func multipartForm(attrs model.Attributes, up *Upload) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	data, err := json.Marshal(attrs)
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("data", string(data)); err != nil {
		return nil, "", err
	}
	if up != nil {
		fw, err := w.CreateFormFile("file", up.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(fw, up.Reader); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func (c *Client) write(ctx context.Context, method, url string, attrs model.Attributes, up *Upload) (*model.Record, error) {
	body, contentType, err := multipartForm(attrs, up)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	rec := unflatten("", raw)
	return &rec, nil
}

// Create stores a new record with an optional attachment.
func (c *Client) Create(ctx context.Context, category string, attrs model.Attributes, up *Upload) (*model.Record, error) {
	return c.write(ctx, http.MethodPost, c.BaseURL+"/docs/"+category, attrs, up)
}

// Update replaces a record's attributes wholesale.
func (c *Client) Update(ctx context.Context, category string, id int64, attrs model.Attributes, up *Upload) (*model.Record, error) {
	return c.write(ctx, http.MethodPut, c.BaseURL+"/docs/"+category+"/"+strconv.FormatInt(id, 10), attrs, up)
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, category string, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.BaseURL+"/docs/"+category+"/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}
