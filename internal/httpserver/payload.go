package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-content-api/internal/domain"
	"clinic-content-api/internal/media"
)

// errFileTooLarge is reported when an upload exceeds the route's ceiling.
var errFileTooLarge = errors.New("File too large")

// payload is a request body read either as multipart/urlencoded form fields
// or as a JSON object. Accessors return nil when a field is absent so
// handlers can tell "not supplied" from "supplied empty".
type payload struct {
	form map[string][]string
	json map[string]json.RawMessage
	file *media.File
	errs []string
}

// parsePayload reads the request body. For multipart bodies the file under
// fileField is read fully, provided it is within maxFile bytes.
func parsePayload(c *gin.Context, fileField string, maxFile int64) (*payload, error) {
	ct := c.ContentType()
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, bodyError(err)
		}
		p := &payload{form: form.Value}
		if fileField != "" {
			if headers := form.File[fileField]; len(headers) > 0 {
				f, err := readFile(headers[0], maxFile)
				if err != nil {
					return nil, err
				}
				p.file = f
			}
		}
		return p, nil
	case ct == "application/x-www-form-urlencoded":
		if err := c.Request.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		return &payload{form: c.Request.PostForm}, nil
	default:
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, bodyError(err)
		}
		p := &payload{json: map[string]json.RawMessage{}}
		if len(bytes.TrimSpace(raw)) == 0 {
			return p, nil
		}
		if err := json.Unmarshal(raw, &p.json); err != nil {
			return nil, domain.NewValidationError("Invalid JSON body")
		}
		return p, nil
	}
}

func readFile(h *multipart.FileHeader, maxFile int64) (*media.File, error) {
	if maxFile > 0 && h.Size > maxFile {
		return nil, errFileTooLarge
	}
	f, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &media.File{Name: h.Filename, Data: data}, nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
		return errFileTooLarge
	}
	return domain.NewValidationError("Invalid request body")
}

// Err reports the first malformed field seen by a typed accessor.
func (p *payload) Err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return domain.NewValidationError(strings.Join(p.errs, "; "))
}

func (p *payload) invalid(name, kind string) {
	p.errs = append(p.errs, fmt.Sprintf("%s must be %s", name, kind))
}

// raw returns the JSON value or first form value for name.
func (p *payload) raw(name string) (json.RawMessage, []string, bool) {
	if p.json != nil {
		v, ok := p.json[name]
		if !ok || string(v) == "null" {
			return nil, nil, false
		}
		return v, nil, true
	}
	vals, ok := p.form[name]
	if !ok {
		vals, ok = p.form[name+"[]"]
	}
	if !ok || len(vals) == 0 {
		return nil, nil, false
	}
	return nil, vals, true
}

func (p *payload) str(name string) *string {
	js, vals, ok := p.raw(name)
	if !ok {
		return nil
	}
	if js == nil {
		return &vals[0]
	}
	var s string
	if err := json.Unmarshal(js, &s); err != nil {
		s = string(js)
	}
	return &s
}

// list accepts an array or a comma separated string.
func (p *payload) list(name string) *[]string {
	js, vals, ok := p.raw(name)
	if !ok {
		return nil
	}
	if js != nil {
		var arr []string
		if err := json.Unmarshal(js, &arr); err == nil {
			if arr == nil {
				arr = []string{}
			}
			return &arr
		}
		var s string
		if err := json.Unmarshal(js, &s); err != nil {
			p.invalid(name, "a list or a comma separated string")
			return nil
		}
		out := splitList(s)
		return &out
	}
	if len(vals) > 1 {
		return &vals
	}
	if v := strings.TrimSpace(vals[0]); strings.HasPrefix(v, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(v), &arr); err == nil {
			return &arr
		}
	}
	out := splitList(vals[0])
	return &out
}

func (p *payload) boolean(name string) *bool {
	s, ok := p.scalar(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		p.invalid(name, "a boolean")
		return nil
	}
	return &b
}

func (p *payload) integer(name string) *int {
	s, ok := p.scalar(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			p.invalid(name, "an integer")
			return nil
		}
		n = int(f)
	}
	return &n
}

// scalar returns the textual form of a field; blank form values count as
// absent.
func (p *payload) scalar(name string) (string, bool) {
	v := p.str(name)
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", false
	}
	return strings.TrimSpace(*v), true
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
