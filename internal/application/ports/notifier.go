package ports

import "github.com/jhoicas/category-admin/internal/application/dto"

// NoticeLevel severidad de un aviso al operador.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice aviso transitorio.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notifier recibe los avisos que genera un caso de uso (guardando, éxito, error, rechazo de archivo).
// Se pasa explícitamente a cada operación; no hay canal global.
type Notifier interface {
	Notify(level NoticeLevel, message string)
}

// NoticeList Notifier que acumula los avisos en orden (uno por petición HTTP).
type NoticeList []Notice

var _ Notifier = (*NoticeList)(nil)

// Notify agrega el aviso.
func (l *NoticeList) Notify(level NoticeLevel, message string) {
	*l = append(*l, Notice{Level: level, Message: message})
}

// Last último aviso registrado o nil.
func (l NoticeList) Last() *Notice {
	if len(l) == 0 {
		return nil
	}
	n := l[len(l)-1]
	return &n
}

// Responses convierte los avisos al DTO de salida.
func (l NoticeList) Responses() []dto.NoticeResponse {
	out := make([]dto.NoticeResponse, 0, len(l))
	for _, n := range l {
		out = append(out, dto.NoticeResponse{Level: string(n.Level), Message: n.Message})
	}
	return out
}
