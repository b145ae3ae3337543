package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/11JOB/11JOB-frontend/internal/ports"
)

type filePart struct {
	field   string
	name    string
	content []byte
}

func uploadParts(field string, files []ports.FileUpload) []filePart {
	parts := make([]filePart, 0, len(files))
	for _, f := range files {
		parts = append(parts, filePart{field: field, name: f.Name, content: f.Content})
	}
	return parts
}

// multipartBody encodes the backend's upload shape: a "dto" part carrying
// the JSON payload with an explicit application/json content type, then
// one part per file under a repeated field name.
func multipartBody(dto interface{}, parts []filePart) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="dto"`)
	header.Set("Content-Type", "application/json")
	dtoPart, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create dto part: %w", err)
	}
	if err := json.NewEncoder(dtoPart).Encode(dto); err != nil {
		return nil, "", fmt.Errorf("failed to encode dto part: %w", err)
	}

	for _, p := range parts {
		filePart, err := writer.CreateFormFile(p.field, p.name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := filePart.Write(p.content); err != nil {
			return nil, "", fmt.Errorf("failed to write file part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
