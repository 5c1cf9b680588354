package dto

// UploadedFileResponse archivo aceptado por el widget de carga.
type UploadedFileResponse struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// UploadResponse resultado de una selección de archivos.
type UploadResponse struct {
	Accepted []UploadedFileResponse `json:"accepted"`
	Notices  []NoticeResponse       `json:"notices"`
}

// ThumbnailsRequest lista de imágenes que controla el dueño del widget.
type ThumbnailsRequest struct {
	Images []string `json:"images"`
}

// ThumbnailResponse miniatura con su URL ya preparada.
type ThumbnailResponse struct {
	Index    int    `json:"index"`
	URL      string `json:"url"`
	Original string `json:"original"`
}

// ThumbnailsResponse grilla de miniaturas.
type ThumbnailsResponse struct {
	Items []ThumbnailResponse `json:"items"`
}

// RemoveImageRequest petición de eliminación por índice.
type RemoveImageRequest struct {
	Images []string `json:"images"`
	Index  int      `json:"index"`
}

// RemoveImageResponse lista resultante tras eliminar.
type RemoveImageResponse struct {
	Images []string `json:"images"`
}
