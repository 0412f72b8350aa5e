package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/hikelog/internal/client/models"
	"github.com/gabriel-vasile/mimetype"
)

const fileScheme = "file://"

// form accumulates a multipart body. The first error sticks and is returned
// by finish.
type form struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newForm() *form {
	f := &form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

// field writes a text part; empty values are omitted.
func (f *form) field(name, value string) {
	if f.err != nil || value == "" {
		return
	}
	f.err = f.w.WriteField(name, value)
}

// set writes a text part whenever v is non-nil, so an empty string clears
// the value on the backend.
func (f *form) set(name string, v *string) {
	if f.err != nil || v == nil {
		return
	}
	f.err = f.w.WriteField(name, *v)
}

func (f *form) float(name string, v *float64) {
	if v == nil {
		return
	}
	f.field(name, strconv.FormatFloat(*v, 'f', -1, 64))
}

func (f *form) file(name string, file *models.File) {
	if f.err != nil || file == nil {
		return
	}

	path, err := localPath(file.URI)
	if err != nil {
		f.err = err
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		f.err = fmt.Errorf("read %s: %w", name, err)
		return
	}

	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}
	filename := file.Filename
	if filename == "" {
		filename = filepath.Base(path)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(name), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", mimeType)

	part, err := f.w.CreatePart(h)
	if err != nil {
		f.err = err
		return
	}
	_, f.err = part.Write(data)
}

// finish closes the body and returns it with its content type.
func (f *form) finish() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.w.Close(); err != nil {
		return nil, "", err
	}
	return &f.buf, f.w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// localPath turns a plain path or file:// URL into a filesystem path.
func localPath(uri string) (string, error) {
	if uri == "" {
		return "", fmt.Errorf("empty file uri")
	}
	if !strings.HasPrefix(uri, fileScheme) {
		return uri, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse file uri: %w", err)
	}
	return filepath.FromSlash(u.Path), nil
}
