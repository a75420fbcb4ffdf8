package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
)

// Upload is a binary image attachment for a multipart submission.
type Upload struct {
	Filename string
	Content  []byte
}

// encodeMultipart assembles the backend's multipart convention: one
// JSON-encoded metadata part under partName plus an optional image part.
func encodeMultipart(partName string, payload any, image *Upload) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode %s part: %w", partName, err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, partName))
	header.Set("Content-Type", "application/json")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}

	if image != nil {
		file, err := w.CreateFormFile("image", image.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := file.Write(image.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
