package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
)

// UploadFile describes one multipart file upload.
type UploadFile struct {
	// Field is the form field name of the file part.
	Field    string
	FileName string
	Content  io.Reader
	// Size is the content length in bytes. Without it progress is only
	// reported once, at 100.
	Size int64
	// Fields are extra plain form values sent before the file.
	Fields map[string]string
}

// ProgressFunc receives upload progress in percent, 0 to 100.
type ProgressFunc func(pct int)

// progressReader reports read progress monotonically. It never reports 100
// by itself: the upload is complete only when the server answered.
type progressReader struct {
	r        io.Reader
	size     int64
	read     int64
	last     int
	onChange ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.size > 0 && p.onChange != nil {
		p.read += int64(n)
		pct := int(p.read * 100 / p.size)
		if pct > 99 {
			pct = 99
		}
		if pct > p.last {
			p.last = pct
			p.onChange(pct)
		}
	}
	return n, err
}

// Upload streams file as multipart/form-data to path with POST. The body is
// produced on the fly through a pipe, so large files are never buffered.
func (t *Transport) Upload(ctx context.Context, path string, file UploadFile, onProgress ProgressFunc, opts ...RequestOption) (json.RawMessage, error) {
	if file.Content == nil {
		return nil, ErrUploadNoContent
	}
	if file.Field == "" {
		file.Field = "file"
	}

	o := t.options(opts)
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var (
		mu   sync.Mutex
		last = -1
	)
	report := func(pct int) {
		mu.Lock()
		defer mu.Unlock()
		if onProgress != nil && pct > last {
			last = pct
			onProgress(pct)
		}
	}
	report(0)

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeMultipart(form, file, report))
	}()
	defer pr.Close()

	req := t.client.R().
		SetContext(callCtx).
		SetHeader("Content-Type", form.FormDataContentType()).
		SetBody(pr)
	t.authorize(ctx, req, o)

	resp, err := req.Execute(http.MethodPost, path)
	if err != nil {
		return nil, t.fail(ctx, http.MethodPost, path, o, classifyTransportError(ctx, callCtx, err))
	}

	data, apiErr := decodeResponse(resp.StatusCode(), resp.Header(), resp.Body())
	if apiErr != nil {
		return nil, t.fail(ctx, http.MethodPost, path, o, apiErr)
	}
	report(100)
	return data, nil
}

func writeMultipart(form *multipart.Writer, file UploadFile, report ProgressFunc) error {
	for k, v := range file.Fields {
		if err := form.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}

	part, err := form.CreateFormFile(file.Field, file.FileName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}

	src := &progressReader{r: file.Content, size: file.Size, onChange: report}
	if _, err = io.Copy(part, src); err != nil {
		return fmt.Errorf("copy file content: %w", err)
	}
	return form.Close()
}
