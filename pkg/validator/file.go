package validator

import (
	"strconv"
	"strings"
)

const (
	// MaxUploadSize is the default upload limit (5 MiB).
	MaxUploadSize int64 = 5 << 20
	// ImageMIMEPrefix is the default accepted content type prefix.
	ImageMIMEPrefix = "image/"
)

// FileInfo describes an uploaded file as declared by the client.
type FileInfo struct {
	Name        string
	Size        int64
	ContentType string
}

// FileUpload validates an image upload of at most 5 MiB.
func FileUpload(file FileInfo) Result {
	return FileUploadWith(file, 0, MaxUploadSize, ImageMIMEPrefix)
}

// FileUploadWith validates file against a size window and a content type
// prefix. Zero bounds and an empty prefix are not checked.
func FileUploadWith(file FileInfo, minSize, maxSize int64, mimePrefix string) Result {
	if maxSize > 0 && file.Size > maxSize {
		return Invalid(ValidationError{
			Kind:           KindTooLarge,
			Message:        "file must not exceed " + formatMiB(maxSize),
			TranslationKey: "validation.file.too_large",
			TranslationValues: map[string]any{
				"max": formatMiB(maxSize),
			},
		}, nil)
	}

	if minSize > 0 && file.Size < minSize {
		return Invalid(ValidationError{
			Kind:           KindTooSmall,
			Message:        "file is too small",
			TranslationKey: "validation.file.too_small",
		}, nil)
	}

	if mimePrefix != "" && !strings.HasPrefix(file.ContentType, mimePrefix) {
		return Invalid(ValidationError{
			Kind:           KindUnsupportedType,
			Message:        "choose an image file",
			TranslationKey: "validation.file.not_image",
			TranslationValues: map[string]any{
				"type": file.ContentType,
			},
		}, nil)
	}

	return Valid(nil)
}

func formatMiB(size int64) string {
	if size%(1<<20) == 0 {
		return strconv.FormatInt(size>>20, 10) + " MB"
	}
	return strconv.FormatFloat(float64(size)/(1<<20), 'f', 1, 64) + " MB"
}
