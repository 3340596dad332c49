package models

// Role defines the account role
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// MediaAsset references a file stored at the media host
type MediaAsset struct {
	URL      string `json:"url" example:"https://res.cloudinary.com/demo/image/upload/v1/students/photo.jpg"`
	PublicID string `json:"publicId" example:"students/photo"`
}

// IsZero reports whether no file is attached
func (m MediaAsset) IsZero() bool {
	return m.URL == "" && m.PublicID == ""
}
