package form

import (
	"mime/multipart"
	"net/url"

	"github.com/dmitrymomot/familyspace/pkg/validator"
)

// Values is a submitted form.
type Values interface {
	Value(name string) string
	All(name string) []string
	File(name string) (validator.FileInfo, bool)
}

// MapValues is the Values implementation backed by parsed request data.
type MapValues struct {
	values url.Values
	files  map[string]validator.FileInfo
}

// NewValues wraps raw, untrimmed form data.
func NewValues(values url.Values, files map[string]validator.FileInfo) MapValues {
	if values == nil {
		values = url.Values{}
	}
	return MapValues{values: values, files: files}
}

// FromMultipart converts parsed multipart data. File parts without a name and
// content are treated as "no file chosen".
func FromMultipart(values url.Values, headers map[string][]*multipart.FileHeader) MapValues {
	files := make(map[string]validator.FileInfo, len(headers))
	for name, list := range headers {
		if len(list) == 0 {
			continue
		}
		fh := list[0]
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}
		files[name] = validator.FileInfo{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
		}
	}
	return NewValues(values, files)
}

func (v MapValues) Value(name string) string {
	return v.values.Get(name)
}

func (v MapValues) All(name string) []string {
	return v.values[name]
}

func (v MapValues) File(name string) (validator.FileInfo, bool) {
	f, ok := v.files[name]
	return f, ok
}
