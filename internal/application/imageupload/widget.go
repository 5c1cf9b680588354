package imageupload

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/category-admin/internal/application/ports"
	"github.com/jhoicas/category-admin/pkg/imageurl"
)

// MaxFileSize tamaño máximo por imagen (5 MiB).
const MaxFileSize int64 = 5 * 1024 * 1024

// AcceptedTypes tipos que ofrece el selector de archivos.
var AcceptedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

var (
	ErrFileTooLarge = errors.New("la imagen supera el tamaño máximo")
	ErrNotAnImage   = errors.New("el archivo no es una imagen")
)

// AcceptAttr valor del atributo accept del input file.
func AcceptAttr() string {
	return strings.Join(AcceptedTypes, ",")
}

// File archivo seleccionado por el operador. Open es opcional; solo se usa para detectar el tipo
// cuando el navegador no lo declaró.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// DetectContentType tipo declarado o, si falta, el detectado por contenido.
func DetectContentType(f File) string {
	if ct := strings.TrimSpace(f.ContentType); ct != "" && ct != "application/octet-stream" {
		return strings.ToLower(ct)
	}
	if f.Open == nil {
		return strings.ToLower(strings.TrimSpace(f.ContentType))
	}
	r, err := f.Open()
	if err != nil {
		return ""
	}
	defer r.Close()
	m, err := mimetype.DetectReader(r)
	if err != nil {
		return ""
	}
	return m.String()
}

// Validate rechaza archivos de más de 5 MiB o cuyo tipo no empiece por "image/".
func Validate(f File) error {
	if f.Size > MaxFileSize {
		return fmt.Errorf("%w: «%s» pesa %s (máximo %s)",
			ErrFileTooLarge, f.Name, humanize.IBytes(uint64(f.Size)), humanize.IBytes(uint64(MaxFileSize)))
	}
	ct := DetectContentType(f)
	if !strings.HasPrefix(ct, "image/") {
		if ct == "" {
			ct = "desconocido"
		}
		return fmt.Errorf("%w: «%s» (%s)", ErrNotAnImage, f.Name, ct)
	}
	return nil
}

// Widget componente de carga de imágenes. No guarda la lista de imágenes: el dueño la controla
// a través de OnUpload y OnRemove y hace el envío remoto.
type Widget struct {
	OnUpload func(File)
	OnRemove func(index int)
	Notifier ports.Notifier
}

// Select procesa una selección de archivos en orden. Cada rechazo genera un aviso y el archivo se
// omite; cada archivo válido llama a OnUpload exactamente una vez. Devuelve cuántos se aceptaron.
func (w *Widget) Select(files []File) int {
	accepted := 0
	for _, f := range files {
		if err := Validate(f); err != nil {
			if w.Notifier != nil {
				w.Notifier.Notify(ports.NoticeError, err.Error())
			}
			continue
		}
		if f.ContentType == "" {
			f.ContentType = DetectContentType(f)
		}
		if w.OnUpload != nil {
			w.OnUpload(f)
		}
		accepted++
	}
	return accepted
}

// Remove pide al dueño que elimine la imagen index.
func (w *Widget) Remove(index int) {
	if w.OnRemove != nil {
		w.OnRemove(index)
	}
}

// Thumbnail celda de la grilla de miniaturas; Index es lo que recibe OnRemove.
type Thumbnail struct {
	Index    int
	URL      string
	Original string
}

// Thumbnails arma la grilla con las URLs preparadas (absolutas y con token si son del API).
func Thumbnails(images []string, p imageurl.Preparer) []Thumbnail {
	out := make([]Thumbnail, 0, len(images))
	for i, img := range images {
		out = append(out, Thumbnail{Index: i, URL: p.Prepare(img), Original: img})
	}
	return out
}

// RemoveAt copia de images sin el elemento index. Un índice fuera de rango deja la lista igual.
func RemoveAt(images []string, index int) []string {
	out := make([]string, 0, len(images))
	for i, img := range images {
		if i == index {
			continue
		}
		out = append(out, img)
	}
	return out
}
