package dto

import "mime/multipart"

type UploadImageRequest struct {
	Directory string                `json:"directory" validate:"required,oneof=rooms venues"`
	Image     *multipart.FileHeader `json:"image"     validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5" swaggerignore:"true"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromUpload(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}

type DeleteImagesRequest struct {
	Directory string   `json:"directory"  validate:"required,oneof=rooms venues"`
	ImageURLs []string `json:"image_urls" validate:"required,min=1,dive,url"`
}
