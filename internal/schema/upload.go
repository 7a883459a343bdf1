package schema

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"slices"

	_ "golang.org/x/image/webp"
)

const MaxUploadSize = 5 << 20

var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// CheckUpload enforces the upload constraints and confirms the image header
// matches the declared content type.
func CheckUpload(size int64, contentType string, body io.Reader) *ValidationErrors {
	errs := &ValidationErrors{}
	if size > MaxUploadSize {
		errs.Add("size", "file size must be less than 5MB")
	}
	if !slices.Contains(AllowedImageTypes, contentType) {
		errs.Add("type", "only JPEG, PNG, WebP, and GIF images are allowed")
		return errs
	}

	_, format, err := image.DecodeConfig(body)
	if err != nil {
		errs.Add("file", "is not a readable image")
		return errs
	}
	if "image/"+format != contentType {
		errs.Add("type", fmt.Sprintf("content is %s, not %s", format, contentType))
	}
	return errs
}
