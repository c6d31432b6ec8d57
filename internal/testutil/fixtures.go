package testutil

import (
	"bytes"
	"mime/multipart"
)

// PNGBytes returns bytes that content sniffing identifies as image/png.
func PNGBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
}

// JPEGBytes returns bytes that content sniffing identifies as image/jpeg.
func JPEGBytes() []byte {
	return append([]byte("\xff\xd8\xff"), bytes.Repeat([]byte{0}, 64)...)
}

// WebPBytes returns bytes that content sniffing identifies as image/webp.
func WebPBytes() []byte {
	header := []byte("RIFF\x24\x00\x00\x00WEBPVP8 ")
	return append(header, bytes.Repeat([]byte{0}, 64)...)
}

// TextBytes returns bytes that content sniffing rejects as non-image.
func TextBytes() []byte {
	return []byte("definitely not an image")
}

// BuildMultipartForm assembles a multipart body with the given text fields
// and, when filename is non-empty, an "image" file part.
func BuildMultipartForm(fields map[string]string, filename string, content []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}

	if filename != "" {
		part, err := writer.CreateFormFile("image", filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(content); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}
