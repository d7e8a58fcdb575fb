package cloudinary

import (
	"github.com/cloudinary/cloudinary-go/v2"
)

// New connects to the account named by a cloudinary:// URL. An empty URL
// means image uploads are disabled and returns nil.
func New(url string) (*cloudinary.Cloudinary, error) {
	if url == "" {
		return nil, nil
	}
	return cloudinary.NewFromURL(url)
}
