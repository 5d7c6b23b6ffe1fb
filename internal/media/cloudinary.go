package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cloudinary uploads images to a Cloudinary account.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	root   string
	logger *zap.Logger
}

// NewCloudinary builds an uploader from account credentials. root prefixes
// every folder passed to Upload.
func NewCloudinary(cloudName, apiKey, apiSecret, root string, logger *zap.Logger) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cloudinary{cld: cld, root: root, logger: logger}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, folder string) (string, error) {
	if c.root != "" {
		folder = c.root + "/" + folder
	}
	resp, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("%w: %s", ErrUpload, resp.Error.Message)
	}
	c.logger.Debug("image uploaded", zap.String("folder", folder), zap.String("url", resp.SecureURL))
	return resp.SecureURL, nil
}
