package dto

// DeleteUploadRequest removes an asset from the media host
type DeleteUploadRequest struct {
	PublicID string `json:"publicId" binding:"required"`
}

// UploadResponse describes a stored file
type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Folder   string `json:"folder,omitempty"`
}
