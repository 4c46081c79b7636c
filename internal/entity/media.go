package entity

// Image is one derived rendition of an attachment.
type Image struct {
	Src         string  `json:"src"`
	SrcSet      string  `json:"srcSet,omitempty"`
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	AspectRatio float64 `json:"aspectRatio,omitempty"`
}

// ImageVariants holds the renditions produced for one attachment.
type ImageVariants struct {
	Fluid *Image `json:"fluid,omitempty"`
	Fixed *Image `json:"fixed,omitempty"`
}

// ImageFile is the derived file for one attachment.
type ImageFile struct {
	PublicURL string         `json:"publicURL,omitempty"`
	Variants  *ImageVariants `json:"variants,omitempty"`
}

// Thumbnail is a thumbnail reported by the content source.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Thumbnails groups the thumbnail sizes of an attachment.
type Thumbnails struct {
	Small *Thumbnail `json:"small,omitempty"`
	Large *Thumbnail `json:"large,omitempty"`
	Full  *Thumbnail `json:"full,omitempty"`
}

// AttachmentMeta is the raw metadata of an attachment.
type AttachmentMeta struct {
	ID         string      `json:"id,omitempty"`
	URL        string      `json:"url"`
	Filename   string      `json:"filename,omitempty"`
	Type       string      `json:"type,omitempty"`
	Size       int64       `json:"size,omitempty"`
	Thumbnails *Thumbnails `json:"thumbnails,omitempty"`
}

// Attachments is an attachment field. Files[i] is derived from Raw[i].
type Attachments struct {
	Files []*ImageFile      `json:"files,omitempty"`
	Raw   []*AttachmentMeta `json:"raw,omitempty"`
}

// FirstFile returns the first derived file, or nil.
func (a *Attachments) FirstFile() *ImageFile {
	if a == nil || len(a.Files) == 0 {
		return nil
	}
	return a.Files[0]
}

// RawAt returns the metadata at index i, or nil.
func (a *Attachments) RawAt(i int) *AttachmentMeta {
	if a == nil || i < 0 || i >= len(a.Raw) {
		return nil
	}
	return a.Raw[i]
}

// Fluid returns the fluid variant of f.
func (f *ImageFile) Fluid() *Image {
	if f == nil || f.Variants == nil {
		return nil
	}
	return f.Variants.Fluid
}

// Fixed returns the fixed variant of f.
func (f *ImageFile) Fixed() *Image {
	if f == nil || f.Variants == nil {
		return nil
	}
	return f.Variants.Fixed
}
