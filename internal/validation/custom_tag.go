package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

func init() {
	MustRegisterGin("qrfilename", ValidateDownloadFilename)
	MustRegisterGinAlias("qrversion", "omitempty,min=1,max=40")
	MustRegisterGinAlias("qrboxsize", "omitempty,min=1,max=50")
	MustRegisterGinAlias("qrborder", "omitempty,min=0,max=50")
	MustRegisterGinAlias("qrscale", "omitempty,min=1,max=50")
}

// ValidateDownloadFilename rejects names that could escape an archive
// or a Content-Disposition header: path separators, traversal, quotes
// and control characters.
func ValidateDownloadFilename(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return true // optional field, absence handled by omitempty
	}
	if strings.ContainsAny(name, `/\"`) || strings.Contains(name, "..") {
		return false
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
