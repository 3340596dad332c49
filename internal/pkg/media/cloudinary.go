package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// CloudinaryConfig holds the account credentials
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	// BaseURL overrides the upload API host
	BaseURL string
}

// uploadAPI is the part of the Cloudinary upload client used here
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Cloudinary stores files at Cloudinary. The public ID is Cloudinary's.
type Cloudinary struct {
	client uploadAPI
}

// NewCloudinary creates a Cloudinary storage from account credentials
func NewCloudinary(cfg CloudinaryConfig) (*Cloudinary, error) {
	conf, err := config.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: invalid configuration: %w", err)
	}
	if cfg.BaseURL != "" {
		conf.API.UploadPrefix = strings.TrimRight(cfg.BaseURL, "/")
	}

	cld, err := cloudinary.NewFromConfiguration(*conf)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: create client: %w", err)
	}
	return newCloudinaryWithClient(&cld.Upload), nil
}

func newCloudinaryWithClient(client uploadAPI) *Cloudinary {
	return &Cloudinary{client: client}
}

func (c *Cloudinary) Upload(ctx context.Context, filename string, r io.Reader, folder string) (Asset, error) {
	result, err := c.client.Upload(ctx, r, uploader.UploadParams{
		Folder:       strings.Trim(folder, "/"),
		ResourceType: "auto",
	})
	if err != nil {
		return Asset{}, fmt.Errorf("cloudinary: upload %s: %w", filename, err)
	}
	if result.Error.Message != "" {
		return Asset{}, fmt.Errorf("cloudinary: upload %s: %s", filename, result.Error.Message)
	}

	url := result.SecureURL
	if url == "" {
		url = result.URL
	}
	return Asset{URL: url, PublicID: result.PublicID}, nil
}

func (c *Cloudinary) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	result, err := c.client.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("cloudinary: destroy %s: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary: destroy %s: %s", publicID, result.Error.Message)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary: destroy %s returned %q", publicID, result.Result)
	}
	return nil
}
