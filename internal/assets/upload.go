package assets

import (
	"fmt"
	"mime/multipart"
	"net/http"
)

const MaxUploadBytes = 5 * 1024 * 1024 // 5 MiB

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
}

// ValidateUpload checks the candidate image against the size cap and the
// allowed content types before anything is written anywhere. The content type
// is sniffed from the first bytes, not taken from the client header. Returns
// the detected content type.
func ValidateUpload(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxUploadBytes {
		return "", fmt.Errorf("file size exceeds maximum limit of %d MB", MaxUploadBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && n == 0 {
		return "", err
	}
	contentType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedImageTypes {
		if contentType == allowed {
			return contentType, nil
		}
	}
	return "", fmt.Errorf("invalid file type. Allowed types: %v", allowedImageTypes)
}
