// Package media stores uploaded files at a media host and returns their public URL.
package media

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Asset identifies a stored file
type Asset struct {
	URL      string
	PublicID string
}

// Storage uploads and deletes files at a media host
type Storage interface {
	// Upload stores the content read from r under folder and returns its location
	Upload(ctx context.Context, filename string, r io.Reader, folder string) (Asset, error)
	// Delete removes the asset with publicID. Deleting a missing asset is not an error.
	Delete(ctx context.Context, publicID string) error
}

// objectName builds a collision-free name under folder, keeping the file extension
func objectName(folder, filename string) string {
	name := uuid.New().String() + strings.ToLower(path.Ext(filename))
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
